package projects

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/components/dialog"
	"github.com/worktrack/worktrack/components/table"
	"github.com/worktrack/worktrack/modules/core/presentation/templates/layouts"
	"github.com/worktrack/worktrack/modules/projects/presentation/templates/pages/activity"
	"github.com/worktrack/worktrack/modules/projects/presentation/viewmodels"
	"github.com/worktrack/worktrack/pkg/intl"
)

const (
	MembersID      = "project-members"
	MembersEvent   = "membersChanged"
	MainTasksID    = "project-main-tasks"
	MainTasksEvent = "mainTasksChanged"
	MainTaskDialog = "main-task-dialog"
	FilesID        = "project-files"
	FilesEvent     = "filesChanged"
	PreviewID      = "file-preview"
)

// ActivityRefreshOn reloads the feed after any change on the page.
var ActivityRefreshOn = ChangeEvent + " from:body, " + MembersEvent + " from:body, " +
	MainTasksEvent + " from:body, " + FilesEvent + " from:body"

type DetailPageProps struct {
	Project   viewmodels.Project
	Members   MembersProps
	MainTasks MainTasksProps
	Files     FilesProps
	Activity  []viewmodels.Activity
	BasePath  string
	TasksPath string
	CanUpdate bool
	CanDelete bool
}

func (p *DetailPageProps) url() string {
	return p.BasePath + "/" + p.Project.ID
}

func overview(p *DetailPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		pr := p.Project
		b.Raw(`<div class="flex flex-col gap-4">`)
		b.Raw(`<div data-status>`).Component(ctx, StatusBadge(pr.Status)).Raw(`</div>`)
		b.Component(ctx, base.DefinitionList(
			[2]string{intl.T(ctx, "Projects.Single.Code", "Code"), pr.Code},
			[2]string{intl.T(ctx, "Projects.Single.ManagerID", "Manager"), pr.ManagerName},
			[2]string{intl.T(ctx, "Projects.Single.StartDate", "Start date"), pr.StartDate},
			[2]string{intl.T(ctx, "Projects.Single.EndDate", "End date"), pr.EndDate},
		))
		if pr.Description != "" {
			b.Raw(`<p class="whitespace-pre-line text-sm text-gray-700">`).Text(pr.Description).Raw(`</p>`)
		}
		b.Raw(`</div>`)
	})
}

func headerActions(p *DetailPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Component(ctx, base.Button(base.ButtonProps{
			Variant: base.ButtonSecondary,
			Href:    p.TasksPath + "?project_id=" + p.Project.ID,
			Label:   intl.T(ctx, "Projects.Detail.Tasks", "Tasks"),
			Icon:    icons.List(icons.Props{Size: "18"}),
		}))
		if p.CanUpdate {
			b.Component(ctx, dialog.OpenButton(base.ButtonProps{
				Variant: base.ButtonSecondary,
				Label:   intl.T(ctx, "Actions.Edit", "Edit"),
				Attrs:   templ.Attributes{"data-action": "edit"},
			}, p.url()+"/edit"))
		}
		if p.CanDelete {
			b.Component(ctx, DeleteConfirm(p.BasePath, p.Project))
		}
	})
}

func Detail(p *DetailPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		title := p.Project.Name
		content := base.Func(func(ctx context.Context, b *base.Writer) {
			b.Component(ctx, base.PageHeader(title, p.Project.Code, headerActions(p)))
			b.Raw(`<div class="grid grid-cols-1 gap-6 lg:grid-cols-3"><div class="flex flex-col gap-6 lg:col-span-2">`)
			b.Component(ctx, base.Card(intl.T(ctx, "Projects.Detail.Overview", "Overview"), overview(p)))
			b.Component(ctx, base.Card(intl.T(ctx, "Projects.Detail.MainTasks", "Main tasks"), MainTasks(&p.MainTasks)))
			b.Component(ctx, base.Card(intl.T(ctx, "Projects.Detail.Files", "Files"), Files(&p.Files)))
			b.Raw(`</div><div class="flex flex-col gap-6">`)
			b.Component(ctx, base.Card(intl.T(ctx, "Projects.Detail.Members", "Members"), Members(&p.Members)))
			b.Component(ctx, base.Card(intl.T(ctx, "Projects.Detail.Activity", "Activity"), activity.Feed(activity.FeedProps{
				Items:     p.Activity,
				URL:       p.url() + "/activity",
				RefreshOn: ActivityRefreshOn,
			})))
			b.Raw(`</div></div>`)
		})
		b.Component(ctx, layouts.Authenticated(layouts.AuthenticatedProps{BaseProps: layouts.BaseProps{Title: title}}, content))
	})
}

type MembersProps struct {
	ProjectURL string
	Members    []viewmodels.Member
	// Candidates are the users that can still be added.
	Candidates []viewmodels.Option
	CanManage  bool
}

// Members is the member list with the assignment picker. It reloads itself
// on MembersEvent.
func Members(p *MembersProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div class="flex flex-col gap-3"`).Attr("id", MembersID).
			Attr("hx-get", p.ProjectURL+"/members").Attr("hx-trigger", MembersEvent+" from:body").Attr("hx-swap", "outerHTML").Raw(`>`)
		if len(p.Members) == 0 {
			b.Raw(`<p class="text-sm text-gray-500" data-empty>`).Text(intl.T(ctx, "Projects.Members.Empty", "No members yet.")).Raw(`</p>`)
		} else {
			b.Raw(`<ul class="flex flex-col gap-2">`)
			for _, m := range p.Members {
				b.Raw(`<li class="flex items-center justify-between gap-2"`).Attr("data-member", m.UserID).Raw(`><span class="flex items-center gap-2 text-sm">`)
				b.Component(ctx, base.Avatar(m.Name))
				b.Raw(`<span><span class="block text-gray-900">`).Text(m.Name).Raw(`</span><span class="block text-xs text-gray-500">`).Text(m.Role).Raw(`</span></span></span>`)
				if p.CanManage {
					b.Component(ctx, dialog.Confirm(dialog.ConfirmProps{
						ID:           "remove-member-" + m.UserID,
						Title:        intl.T(ctx, "Projects.Members.RemoveTitle", "Remove member"),
						Text:         intl.T(ctx, "Projects.Members.RemoveText", m.Name+" will be removed from the project.", map[string]interface{}{"Name": m.Name}),
						ConfirmLabel: intl.T(ctx, "Projects.Members.Remove", "Remove"),
						Action:       p.ProjectURL + "/members/" + m.UserID,
						Swap:         "none",
						Trigger: base.ButtonProps{
							Variant: base.ButtonGhost,
							Label:   intl.T(ctx, "Projects.Members.Remove", "Remove"),
							Class:   "px-2 py-1 text-red-600",
							Attrs:   templ.Attributes{"data-action": "remove-member"},
						},
					}))
				}
				b.Raw(`</li>`)
			}
			b.Raw(`</ul>`)
		}
		if p.CanManage && len(p.Candidates) > 0 {
			options := make([]base.SelectOption, 0, len(p.Candidates))
			for _, c := range p.Candidates {
				options = append(options, base.SelectOption{Value: c.Value, Label: c.Label})
			}
			b.Raw(`<form class="flex items-end gap-2"`).Attr("hx-post", p.ProjectURL+"/members").Attr("hx-swap", "none").Raw(`><div class="flex-1">`)
			b.Component(ctx, base.Select(base.SelectProps{
				Name:        "UserID",
				Label:       intl.T(ctx, "Projects.Members.User", "Add member"),
				Options:     options,
				Placeholder: intl.T(ctx, "Projects.Members.SelectUser", "Select a user"),
				Required:    true,
			}))
			b.Raw(`</div>`).Component(ctx, base.Button(base.ButtonProps{
				Type:  "submit",
				Label: intl.T(ctx, "Projects.Members.Add", "Add"),
				Attrs: templ.Attributes{"data-action": "add-member"},
			})).Raw(`</form>`)
		}
		b.Raw(`</div>`)
	})
}

type MainTasksProps struct {
	ProjectURL string
	TasksPath  string
	MainTasks  []viewmodels.MainTask
	CanCreate  bool
	CanUpdate  bool
	CanDelete  bool
}

func (p *MainTasksProps) url() string {
	return p.ProjectURL + "/main-tasks"
}

func progress(value int) templ.Component {
	return base.Func(func(_ context.Context, b *base.Writer) {
		value = min(max(value, 0), 100)
		pct := strconv.Itoa(value)
		b.Raw(`<div class="flex items-center gap-2"><div class="h-1.5 w-24 rounded bg-gray-100"><div class="h-1.5 rounded bg-brand-500"`).
			Attr("style", "width: "+pct+"%").Raw(`></div></div><span class="text-xs text-gray-500">`).Text(pct + "%").Raw(`</span></div>`)
	})
}

func MainTasksTableProps(ctx context.Context, p *MainTasksProps) table.Props {
	props := table.Props{
		ID: MainTasksID + "-table",
		Columns: []table.Column{
			{Key: "title", Label: intl.T(ctx, "MainTasks.List.Title", "Title")},
			{Key: "due", Label: intl.T(ctx, "MainTasks.List.DueDate", "Due")},
			{Key: "weight", Label: intl.T(ctx, "MainTasks.List.Weight", "Weight")},
			{Key: "progress", Label: intl.T(ctx, "MainTasks.List.Progress", "Progress")},
			{Key: "tasks", Label: intl.T(ctx, "MainTasks.List.Tasks", "Tasks")},
			{Key: "actions", Label: "", Class: "px-4 py-2 text-right"},
		},
		EmptyText: intl.T(ctx, "MainTasks.List.Empty", "No main tasks yet."),
	}
	for _, m := range p.MainTasks {
		props.Rows = append(props.Rows, table.Row{
			ID: "main-task-" + m.ID,
			Cells: []templ.Component{
				table.TextCell(m.Title),
				table.TextCell(m.DueDate),
				table.TextCell(strconv.Itoa(m.Weight)),
				progress(m.Progress),
				table.LinkCell(strconv.Itoa(m.TasksCount), p.TasksPath+"?project_id="+m.ProjectID+"&main_task_id="+m.ID),
				mainTaskActions(p, m),
			},
		})
	}
	return props
}

func mainTaskActions(p *MainTasksProps, m viewmodels.MainTask) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div class="flex justify-end gap-1">`)
		if p.CanUpdate {
			b.Component(ctx, dialog.OpenButton(base.ButtonProps{
				Variant: base.ButtonGhost,
				Label:   intl.T(ctx, "Actions.Edit", "Edit"),
				Class:   "px-2 py-1",
				Attrs:   templ.Attributes{"data-action": "edit-main-task"},
			}, p.url()+"/"+m.ID))
		}
		if p.CanDelete {
			b.Component(ctx, dialog.Confirm(dialog.ConfirmProps{
				ID:           "delete-main-task-" + m.ID,
				Title:        intl.T(ctx, "MainTasks.Delete.Title", "Delete main task"),
				Text:         intl.T(ctx, "MainTasks.Delete.Text", "The main task will be removed.", map[string]interface{}{"Title": m.Title}),
				ConfirmLabel: intl.T(ctx, "Actions.Delete", "Delete"),
				Action:       p.url() + "/" + m.ID,
				Swap:         "none",
				Trigger: base.ButtonProps{
					Variant: base.ButtonGhost,
					Label:   intl.T(ctx, "Actions.Delete", "Delete"),
					Class:   "px-2 py-1 text-red-600",
					Attrs:   templ.Attributes{"data-action": "delete-main-task"},
				},
			}))
		}
		b.Raw(`</div>`)
	})
}

// MainTasks is the main task table of a project. It reloads itself on
// MainTasksEvent.
func MainTasks(p *MainTasksProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div class="flex flex-col gap-3"`).Attr("id", MainTasksID).
			Attr("hx-get", p.url()).Attr("hx-trigger", MainTasksEvent+" from:body").Attr("hx-swap", "outerHTML").Raw(`>`)
		if p.CanCreate {
			b.Raw(`<div class="flex justify-end">`).Component(ctx, dialog.OpenButton(base.ButtonProps{
				Variant: base.ButtonSecondary,
				Label:   intl.T(ctx, "MainTasks.List.New", "New main task"),
				Icon:    icons.PlusCircle(icons.Props{Size: "18"}),
				Attrs:   templ.Attributes{"data-action": "create-main-task"},
			}, p.url()+"/new")).Raw(`</div>`)
		}
		b.Component(ctx, table.Table(MainTasksTableProps(ctx, p)))
		b.Raw(`</div>`)
	})
}

type MainTaskFormProps struct {
	MainTask   viewmodels.MainTask
	Errors     map[string]string
	Error      string
	IsNew      bool
	ProjectURL string
}

func MainTaskForm(p *MainTaskFormProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		weight := ""
		if p.MainTask.Weight > 0 {
			weight = strconv.Itoa(p.MainTask.Weight)
		}
		body := base.Join(
			base.Input(base.InputProps{
				Name: "Title", Label: intl.T(ctx, "MainTasks.Single.Title", "Title"),
				Value: p.MainTask.Title, Required: true, Error: p.Errors["Title"],
			}),
			base.Textarea(base.TextareaProps{
				Name: "Description", Label: intl.T(ctx, "MainTasks.Single.Details", "Description"),
				Value: p.MainTask.Description, Rows: 3, Error: p.Errors["Description"],
			}),
			base.Input(base.InputProps{
				Name: "DueDate", Type: "date", Label: intl.T(ctx, "MainTasks.Single.DueDate", "Due date"),
				Value: p.MainTask.DueDate, Error: p.Errors["DueDate"],
			}),
			base.Input(base.InputProps{
				Name: "Weight", Type: "number", Label: intl.T(ctx, "MainTasks.Single.Weight", "Weight"),
				Value: weight, Error: p.Errors["Weight"],
				Attrs: templ.Attributes{"min": "0", "max": "100"},
			}),
		)
		props := dialog.FormDialogProps{
			ID:     MainTaskDialog,
			Title:  intl.T(ctx, "MainTasks.New.Title", "New main task"),
			Action: p.ProjectURL + "/main-tasks",
			Body:   body,
			Error:  p.Error,
		}
		if !p.IsNew {
			props.Title = intl.T(ctx, "MainTasks.Edit.Title", "Edit main task")
			props.Action = p.ProjectURL + "/main-tasks/" + p.MainTask.ID
			props.Method = "PUT"
		}
		b.Component(ctx, dialog.FormDialog(props))
	})
}
