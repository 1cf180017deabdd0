package tasks

import (
	"context"

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
	StatusID        = "task-status"
	SubTasksID      = "task-subtasks"
	AssigneesID     = "task-assignees"
	AssigneesDialog = "task-assignees-dialog"
	StatusEvent     = "taskStatusChanged"
	AssigneesEvent  = "assigneesChanged"
	detailRefreshOn = ChangeEvent + " from:body, " + StatusEvent + " from:body, " + AssigneesEvent + " from:body"
)

type DetailPageProps struct {
	Task         viewmodels.Task
	SubTasks     []viewmodels.Task
	Activity     []viewmodels.Activity
	BasePath     string
	ProjectsPath string
	CanCreate    bool
	CanUpdate    bool
	CanDelete    bool
	CanAssign    bool
}

func (p *DetailPageProps) url() string {
	return p.BasePath + "/" + p.Task.ID
}

// StatusControl changes the status in place. Without update permission it is
// a plain badge.
func StatusControl(basePath string, t viewmodels.Task, canUpdate bool) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div class="flex items-center gap-3"`).Attr("id", StatusID).Raw(`>`)
		if !canUpdate {
			b.Component(ctx, StatusBadge(t.Status))
		} else {
			b.Raw(`<select name="Status" class="rounded-md border border-gray-300 px-2 py-1 text-sm"`).
				Attr("hx-patch", basePath+"/"+t.ID+"/status").Attr("hx-trigger", "change").Attr("hx-swap", "none").
				Attr("aria-label", intl.T(ctx, "Tasks.Single.Status", "Status")).Raw(`>`)
			for _, o := range StatusOptions(ctx) {
				b.Raw(`<option`).Attr("value", o.Value).Flag("selected", o.Value == t.Status).Raw(`>`).Text(o.Label).Raw(`</option>`)
			}
			b.Raw(`</select>`)
		}
		b.Raw(`<span class="text-xs text-gray-500" data-progress>`).Text(progressText(t.Progress)).Raw(`</span></div>`)
	})
}

func overview(p *DetailPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		t := p.Task
		b.Raw(`<div class="flex flex-col gap-4">`)
		b.Component(ctx, StatusControl(p.BasePath, t, p.CanUpdate))
		b.Component(ctx, base.DefinitionList(
			[2]string{intl.T(ctx, "Tasks.Single.ProjectID", "Project"), t.ProjectName},
			[2]string{intl.T(ctx, "Tasks.Single.MainTaskID", "Main task"), t.MainTaskTitle},
			[2]string{intl.T(ctx, "Tasks.Single.Priority", "Priority"), PriorityLabel(ctx, t.Priority)},
			[2]string{intl.T(ctx, "Tasks.Single.DueDate", "Due date"), t.DueDate},
			[2]string{intl.T(ctx, "Tasks.Single.EstimateHours", "Estimate (hours)"), t.EstimateHours},
		))
		if t.Description != "" {
			b.Raw(`<p class="whitespace-pre-line text-sm text-gray-700" data-description>`).Text(t.Description).Raw(`</p>`)
		}
		b.Raw(`</div>`)
	})
}

// Assignees lists who works on the task. It reloads itself on
// AssigneesEvent.
func Assignees(basePath string, t viewmodels.Task, canAssign bool) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		url := basePath + "/" + t.ID + "/assignees"
		b.Raw(`<div class="flex flex-col gap-3"`).Attr("id", AssigneesID).
			Attr("hx-get", url+"?fragment=list").Attr("hx-trigger", AssigneesEvent+" from:body").Attr("hx-swap", "outerHTML").Raw(`>`)
		if len(t.Assignees) == 0 {
			b.Raw(`<p class="text-sm text-gray-500" data-empty>`).Text(intl.T(ctx, "Tasks.Assignees.Empty", "Nobody is assigned.")).Raw(`</p>`)
		} else {
			b.Raw(`<ul class="flex flex-col gap-2">`)
			for _, a := range t.Assignees {
				b.Raw(`<li class="flex items-center gap-2 text-sm"`).Attr("data-assignee", a.UserID).Raw(`>`).
					Component(ctx, base.Avatar(a.Name)).Text(a.Name).Raw(`</li>`)
			}
			b.Raw(`</ul>`)
		}
		if canAssign {
			b.Component(ctx, dialog.OpenButton(base.ButtonProps{
				Variant: base.ButtonSecondary,
				Label:   intl.T(ctx, "Tasks.Assignees.Edit", "Assign"),
				Icon:    icons.UsersThree(icons.Props{Size: "18"}),
				Attrs:   templ.Attributes{"data-action": "assign"},
			}, url))
		}
		b.Raw(`</div>`)
	})
}

type AssigneesFormProps struct {
	Task     viewmodels.Task
	Users    []viewmodels.Option
	Error    string
	BasePath string
}

// AssigneesForm is the assignee picker dialog.
func AssigneesForm(p *AssigneesFormProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		assigned := make(map[string]bool, len(p.Task.Assignees))
		for _, a := range p.Task.Assignees {
			assigned[a.UserID] = true
		}
		body := base.Func(func(ctx context.Context, b *base.Writer) {
			if len(p.Users) == 0 {
				b.Raw(`<p class="text-sm text-gray-500">`).Text(intl.T(ctx, "Tasks.Assignees.NoUsers", "No users to pick from.")).Raw(`</p>`)
				return
			}
			b.Raw(`<div class="grid max-h-80 grid-cols-1 gap-2 overflow-y-auto sm:grid-cols-2">`)
			for _, u := range p.Users {
				b.Component(ctx, base.CheckboxValue("user_ids", u.Value, u.Label, assigned[u.Value]))
			}
			b.Raw(`</div>`)
		})
		b.Component(ctx, dialog.FormDialog(dialog.FormDialogProps{
			ID:     AssigneesDialog,
			Title:  intl.T(ctx, "Tasks.Assignees.Title", "Assignees"),
			Action: p.BasePath + "/" + p.Task.ID + "/assignees",
			Method: "PUT",
			Body:   body,
			Error:  p.Error,
		}))
	})
}

func SubTasksTableProps(ctx context.Context, p *DetailPageProps) table.Props {
	props := table.Props{
		ID: SubTasksID + "-table",
		Columns: []table.Column{
			{Key: "title", Label: intl.T(ctx, "Tasks.List.Title", "Title")},
			{Key: "status", Label: intl.T(ctx, "Tasks.List.Status", "Status")},
			{Key: "priority", Label: intl.T(ctx, "Tasks.List.Priority", "Priority")},
			{Key: "due", Label: intl.T(ctx, "Tasks.List.DueDate", "Due")},
			{Key: "actions", Label: "", Class: "px-4 py-2 text-right"},
		},
		EmptyText: intl.T(ctx, "Tasks.SubTasks.Empty", "No sub-tasks."),
	}
	for _, t := range p.SubTasks {
		props.Rows = append(props.Rows, table.Row{
			ID: "subtask-" + t.ID,
			Cells: []templ.Component{
				table.LinkCell(t.Title, p.BasePath+"/"+t.ID),
				StatusBadge(t.Status),
				PriorityBadge(t.Priority),
				dueCell(t),
				actions(p.BasePath, p.CanUpdate, p.CanDelete, t),
			},
		})
	}
	return props
}

// SubTasks is the nested task table. It reloads itself when tasks change.
func SubTasks(p *DetailPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div class="flex flex-col gap-3"`).Attr("id", SubTasksID).
			Attr("hx-get", p.url()+"/subtasks").Attr("hx-trigger", ChangeEvent+" from:body").Attr("hx-swap", "outerHTML").Raw(`>`)
		if p.CanCreate && !p.Task.IsSubTask() {
			b.Raw(`<div class="flex justify-end">`).Component(ctx, dialog.OpenButton(base.ButtonProps{
				Variant: base.ButtonSecondary,
				Label:   intl.T(ctx, "Tasks.SubTasks.New", "New sub-task"),
				Icon:    icons.PlusCircle(icons.Props{Size: "18"}),
				Attrs:   templ.Attributes{"data-action": "create-subtask"},
			}, p.BasePath+"/new?parent_id="+p.Task.ID)).Raw(`</div>`)
		}
		b.Component(ctx, table.Table(SubTasksTableProps(ctx, p)))
		b.Raw(`</div>`)
	})
}

func headerActions(p *DetailPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		back := p.ProjectsPath + "/" + p.Task.ProjectID
		if p.Task.IsSubTask() {
			back = p.BasePath + "/" + p.Task.ParentID
		}
		b.Component(ctx, base.Button(base.ButtonProps{
			Variant: base.ButtonSecondary,
			Href:    back,
			Label:   intl.T(ctx, "Tasks.Detail.Back", "Back"),
		}))
		if p.CanUpdate {
			b.Component(ctx, dialog.OpenButton(base.ButtonProps{
				Variant: base.ButtonSecondary,
				Label:   intl.T(ctx, "Actions.Edit", "Edit"),
				Attrs:   templ.Attributes{"data-action": "edit"},
			}, p.url()+"/edit"))
		}
		if p.CanDelete {
			b.Component(ctx, DeleteConfirm(p.BasePath, p.Task))
		}
	})
}

func Detail(p *DetailPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		title := p.Task.Title
		subtitle := p.Task.ProjectName
		if p.Task.IsSubTask() {
			subtitle = intl.T(ctx, "Tasks.Detail.SubTask", "Sub-task")
		}
		content := base.Func(func(ctx context.Context, b *base.Writer) {
			b.Component(ctx, base.PageHeader(title, subtitle, headerActions(p)))
			b.Raw(`<div class="grid grid-cols-1 gap-6 lg:grid-cols-3"><div class="flex flex-col gap-6 lg:col-span-2">`)
			b.Component(ctx, base.Card(intl.T(ctx, "Tasks.Detail.Overview", "Overview"), overview(p)))
			if !p.Task.IsSubTask() {
				b.Component(ctx, base.Card(intl.T(ctx, "Tasks.Detail.SubTasks", "Sub-tasks"), SubTasks(p)))
			}
			b.Raw(`</div><div class="flex flex-col gap-6">`)
			b.Component(ctx, base.Card(intl.T(ctx, "Tasks.Detail.Assignees", "Assignees"), Assignees(p.BasePath, p.Task, p.CanAssign)))
			b.Component(ctx, base.Card(intl.T(ctx, "Tasks.Detail.Activity", "Activity"), activity.Feed(activity.FeedProps{
				Items:     p.Activity,
				URL:       p.url() + "/activity",
				RefreshOn: detailRefreshOn,
			})))
			b.Raw(`</div></div>`)
		})
		b.Component(ctx, layouts.Authenticated(layouts.AuthenticatedProps{BaseProps: layouts.BaseProps{Title: title}}, content))
	})
}
