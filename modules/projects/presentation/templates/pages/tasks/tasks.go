package tasks

import (
	"context"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/components/dialog"
	"github.com/worktrack/worktrack/components/filters"
	"github.com/worktrack/worktrack/components/pagination"
	"github.com/worktrack/worktrack/components/table"
	"github.com/worktrack/worktrack/modules/core/presentation/templates/layouts"
	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/task"
	"github.com/worktrack/worktrack/modules/projects/presentation/viewmodels"
	"github.com/worktrack/worktrack/pkg/intl"
)

const (
	TableID     = "tasks"
	ListID      = "tasks-list"
	FilterID    = "tasks-filter"
	DialogID    = "task-dialog"
	ChangeEvent = "tasksChanged"
	// MainTaskFieldID wraps the main task select that follows the project.
	MainTaskFieldID = "task-main-task-field"
)

var statusBadges = map[string]base.BadgeVariant{
	string(task.StatusTodo):       base.BadgeGray,
	string(task.StatusInProgress): base.BadgeBlue,
	string(task.StatusReview):     base.BadgeYellow,
	string(task.StatusDone):       base.BadgeGreen,
}

var priorityBadges = map[string]base.BadgeVariant{
	string(task.PriorityLow):    base.BadgeGray,
	string(task.PriorityMedium): base.BadgeBlue,
	string(task.PriorityHigh):   base.BadgeYellow,
	string(task.PriorityUrgent): base.BadgeRed,
}

func StatusLabel(ctx context.Context, status string) string {
	return intl.T(ctx, "Tasks.Statuses."+status, status)
}

func PriorityLabel(ctx context.Context, priority string) string {
	return intl.T(ctx, "Tasks.Priorities."+priority, priority)
}

func StatusBadge(status string) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		variant, ok := statusBadges[status]
		if !ok {
			variant = base.BadgeGray
		}
		b.Component(ctx, base.Badge(StatusLabel(ctx, status), variant))
	})
}

func PriorityBadge(priority string) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		variant, ok := priorityBadges[priority]
		if !ok {
			variant = base.BadgeGray
		}
		b.Component(ctx, base.Badge(PriorityLabel(ctx, priority), variant))
	})
}

func StatusOptions(ctx context.Context) []base.SelectOption {
	out := make([]base.SelectOption, 0, len(task.Statuses))
	for _, s := range task.Statuses {
		out = append(out, base.SelectOption{Value: string(s), Label: StatusLabel(ctx, string(s))})
	}
	return out
}

func priorityOptions(ctx context.Context) []base.SelectOption {
	out := make([]base.SelectOption, 0, len(task.Priorities))
	for _, p := range task.Priorities {
		out = append(out, base.SelectOption{Value: string(p), Label: PriorityLabel(ctx, string(p))})
	}
	return out
}

func selectOptions(opts []viewmodels.Option) []base.SelectOption {
	out := make([]base.SelectOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, base.SelectOption{Value: o.Value, Label: o.Label})
	}
	return out
}

type Filter struct {
	Search     string
	ProjectID  string
	MainTaskID string
	Status     string
	AssigneeID string
}

type IndexPageProps struct {
	Tasks     []viewmodels.Task
	Filter    Filter
	Projects  []viewmodels.Option
	MainTasks []viewmodels.Option
	Users     []viewmodels.Option
	BasePath  string
	Page      pagination.State
	CanCreate bool
	CanUpdate bool
	CanDelete bool
}

func dueCell(t viewmodels.Task) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		if t.Overdue {
			b.Raw(`<span class="text-red-600" data-overdue>`).Text(t.DueDate).Raw(`</span>`)
			return
		}
		b.Text(t.DueDate)
	})
}

func TableProps(ctx context.Context, p *IndexPageProps) table.Props {
	props := table.Props{
		ID: TableID,
		Columns: []table.Column{
			{Key: "title", Label: intl.T(ctx, "Tasks.List.Title", "Title")},
			{Key: "project", Label: intl.T(ctx, "Tasks.List.Project", "Project")},
			{Key: "status", Label: intl.T(ctx, "Tasks.List.Status", "Status")},
			{Key: "priority", Label: intl.T(ctx, "Tasks.List.Priority", "Priority")},
			{Key: "due", Label: intl.T(ctx, "Tasks.List.DueDate", "Due")},
			{Key: "assignees", Label: intl.T(ctx, "Tasks.List.Assignees", "Assignees")},
			{Key: "actions", Label: "", Class: "px-4 py-2 text-right"},
		},
		EmptyText: intl.T(ctx, "Tasks.List.Empty", "No tasks match the filters."),
		RowsURL:   p.BasePath,
		RefreshOn: ChangeEvent + " from:body",
		Include:   "#" + FilterID,
	}
	for _, t := range p.Tasks {
		props.Rows = append(props.Rows, table.Row{
			ID: "task-" + t.ID,
			Cells: []templ.Component{
				table.LinkCell(t.Title, p.BasePath+"/"+t.ID),
				table.TextCell(t.ProjectName),
				StatusBadge(t.Status),
				PriorityBadge(t.Priority),
				dueCell(t),
				table.TextCell(strings.Join(t.AssigneeNames(), ", ")),
				actions(p.BasePath, p.CanUpdate, p.CanDelete, t),
			},
		})
	}
	return props
}

func actions(basePath string, canUpdate, canDelete bool, t viewmodels.Task) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div class="flex justify-end gap-1">`)
		if canUpdate {
			b.Component(ctx, dialog.OpenButton(base.ButtonProps{
				Variant: base.ButtonGhost,
				Label:   intl.T(ctx, "Actions.Edit", "Edit"),
				Class:   "px-2 py-1",
				Attrs:   templ.Attributes{"data-action": "edit"},
			}, basePath+"/"+t.ID+"/edit"))
		}
		if canDelete {
			b.Component(ctx, DeleteConfirm(basePath, t))
		}
		b.Raw(`</div>`)
	})
}

func DeleteConfirm(basePath string, t viewmodels.Task) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		text := intl.T(ctx, "Tasks.Delete.Text", "The task will be removed.", map[string]interface{}{"Title": t.Title})
		if t.SubTasksCount > 0 {
			text = intl.T(ctx, "Tasks.Delete.TextWithSubTasks", "The task and its sub-tasks will be removed.", map[string]interface{}{"Title": t.Title, "Count": t.SubTasksCount})
		}
		b.Component(ctx, dialog.Confirm(dialog.ConfirmProps{
			ID:           "delete-task-" + t.ID,
			Title:        intl.T(ctx, "Tasks.Delete.Title", "Delete task"),
			Text:         text,
			ConfirmLabel: intl.T(ctx, "Actions.Delete", "Delete"),
			Action:       basePath + "/" + t.ID,
			Swap:         "none",
			Trigger: base.ButtonProps{
				Variant: base.ButtonGhost,
				Label:   intl.T(ctx, "Actions.Delete", "Delete"),
				Class:   "px-2 py-1 text-red-600",
				Attrs:   templ.Attributes{"data-action": "delete"},
			},
		}))
	})
}

func filterForm(p *IndexPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		fp := filters.Props{ID: FilterID, URL: p.BasePath, Target: "#" + ListID}
		fp.Fields = []templ.Component{
			filters.Search(fp, "search", p.Filter.Search, intl.T(ctx, "Tasks.List.Search", "Search tasks")),
			filters.Select("project_id", p.Filter.ProjectID, intl.T(ctx, "Tasks.List.AllProjects", "All projects"), selectOptions(p.Projects)),
		}
		if len(p.MainTasks) > 0 {
			fp.Fields = append(fp.Fields, filters.Select("main_task_id", p.Filter.MainTaskID, intl.T(ctx, "Tasks.List.AllMainTasks", "All main tasks"), selectOptions(p.MainTasks)))
		}
		fp.Fields = append(fp.Fields,
			filters.Select("status", p.Filter.Status, intl.T(ctx, "Tasks.List.AllStatuses", "All statuses"), StatusOptions(ctx)),
			filters.Select("assignee_id", p.Filter.AssigneeID, intl.T(ctx, "Tasks.List.AllAssignees", "Anyone"), selectOptions(p.Users)),
		)
		b.Component(ctx, filters.Form(fp))
	})
}

func List(p *IndexPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div`).Attr("id", ListID).Raw(`>`)
		b.Component(ctx, table.Table(TableProps(ctx, p)))
		b.Component(ctx, pagination.Pagination(p.Page))
		b.Raw(`</div>`)
	})
}

func Rows(p *IndexPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Component(ctx, table.Rows(TableProps(ctx, p)))
	})
}

func Index(p *IndexPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		title := intl.T(ctx, "Tasks.Meta.Title", "Tasks")
		var create templ.Component
		if p.CanCreate {
			url := p.BasePath + "/new"
			if p.Filter.ProjectID != "" {
				url += "?project_id=" + p.Filter.ProjectID
			}
			create = dialog.OpenButton(base.ButtonProps{
				Label: intl.T(ctx, "Tasks.List.New", "New task"),
				Icon:  icons.PlusCircle(icons.Props{Size: "18"}),
				Attrs: templ.Attributes{"data-action": "create"},
			}, url)
		}
		content := base.Join(base.PageHeader(title, "", create), filterForm(p), List(p))
		b.Component(ctx, layouts.Authenticated(layouts.AuthenticatedProps{BaseProps: layouts.BaseProps{Title: title}}, content))
	})
}

type FormProps struct {
	Task      viewmodels.Task
	Projects  []viewmodels.Option
	MainTasks []viewmodels.Option
	// Parent is set when a sub-task is created or edited.
	Parent   *viewmodels.Task
	Errors   map[string]string
	Error    string
	IsNew    bool
	BasePath string
}

// MainTaskField is the main task select. It is re-rendered when the project
// select changes.
func MainTaskField(selected, errText string, options []viewmodels.Option) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div`).Attr("id", MainTaskFieldID).Raw(`>`)
		b.Component(ctx, base.Select(base.SelectProps{
			Name: "MainTaskID", Label: intl.T(ctx, "Tasks.Single.MainTaskID", "Main task"),
			Options: selectOptions(options), Selected: selected, Error: errText,
			Placeholder: intl.T(ctx, "Tasks.Single.NoMainTask", "None"),
		}))
		b.Raw(`</div>`)
	})
}

func Form(p *FormProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		var fields []templ.Component
		if p.Parent != nil {
			fields = append(fields,
				base.Hidden("ParentID", p.Parent.ID),
				base.Hidden("ProjectID", p.Parent.ProjectID),
				base.Hidden("MainTaskID", p.Parent.MainTaskID),
				base.Func(func(ctx context.Context, b *base.Writer) {
					b.Raw(`<p class="text-sm text-gray-600" data-parent>`).
						Text(intl.T(ctx, "Tasks.Single.ParentOf", "Sub-task of "+p.Parent.Title, map[string]interface{}{"Title": p.Parent.Title})).Raw(`</p>`)
				}),
			)
		} else {
			fields = append(fields,
				base.Select(base.SelectProps{
					Name: "ProjectID", Label: intl.T(ctx, "Tasks.Single.ProjectID", "Project"),
					Options: selectOptions(p.Projects), Selected: p.Task.ProjectID, Required: true, Error: p.Errors["ProjectID"],
					Placeholder: intl.T(ctx, "Tasks.Single.SelectProject", "Select a project"),
					Attrs: templ.Attributes{
						"hx-get":     p.BasePath + "/main-task-options",
						"hx-target":  "#" + MainTaskFieldID,
						"hx-swap":    "outerHTML",
						"hx-trigger": "change",
					},
				}),
				MainTaskField(p.Task.MainTaskID, p.Errors["MainTaskID"], p.MainTasks),
			)
		}
		fields = append(fields,
			base.Input(base.InputProps{
				Name: "Title", Label: intl.T(ctx, "Tasks.Single.Title", "Title"),
				Value: p.Task.Title, Required: true, Error: p.Errors["Title"],
			}),
			base.Textarea(base.TextareaProps{
				Name: "Description", Label: intl.T(ctx, "Tasks.Single.Details", "Description"),
				Value: p.Task.Description, Rows: 4, Error: p.Errors["Description"],
			}),
			base.Func(func(ctx context.Context, b *base.Writer) {
				b.Raw(`<div class="grid grid-cols-2 gap-4">`)
				b.Component(ctx, base.Select(base.SelectProps{
					Name: "Priority", Label: intl.T(ctx, "Tasks.Single.Priority", "Priority"),
					Options: priorityOptions(ctx), Selected: p.Task.Priority, Required: true, Error: p.Errors["Priority"],
				}))
				b.Component(ctx, base.Select(base.SelectProps{
					Name: "Status", Label: intl.T(ctx, "Tasks.Single.Status", "Status"),
					Options: StatusOptions(ctx), Selected: p.Task.Status, Required: true, Error: p.Errors["Status"],
				}))
				b.Component(ctx, base.Input(base.InputProps{
					Name: "DueDate", Type: "date", Label: intl.T(ctx, "Tasks.Single.DueDate", "Due date"),
					Value: p.Task.DueDate, Error: p.Errors["DueDate"],
				}))
				b.Component(ctx, base.Input(base.InputProps{
					Name: "EstimateHours", Type: "number", Label: intl.T(ctx, "Tasks.Single.EstimateHours", "Estimate (hours)"),
					Value: p.Task.EstimateHours, Error: p.Errors["EstimateHours"],
					Attrs: templ.Attributes{"min": "0", "step": "0.5"},
				}))
				b.Raw(`</div>`)
			}),
		)

		props := dialog.FormDialogProps{
			ID:     DialogID,
			Title:  intl.T(ctx, "Tasks.New.Title", "New task"),
			Action: p.BasePath,
			Body:   base.Join(fields...),
			Error:  p.Error,
		}
		if p.Parent != nil {
			props.Title = intl.T(ctx, "Tasks.New.SubTaskTitle", "New sub-task")
		}
		if !p.IsNew {
			props.Title = intl.T(ctx, "Tasks.Edit.Title", "Edit task")
			props.Action = p.BasePath + "/" + p.Task.ID
			props.Method = "PUT"
		}
		b.Component(ctx, dialog.FormDialog(props))
	})
}

func progressText(value int) string {
	return strconv.Itoa(min(max(value, 0), 100)) + "%"
}
