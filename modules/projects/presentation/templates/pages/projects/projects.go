package projects

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/components/dialog"
	"github.com/worktrack/worktrack/components/filters"
	"github.com/worktrack/worktrack/components/pagination"
	"github.com/worktrack/worktrack/components/table"
	"github.com/worktrack/worktrack/modules/core/presentation/templates/layouts"
	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/project"
	"github.com/worktrack/worktrack/modules/projects/presentation/viewmodels"
	"github.com/worktrack/worktrack/pkg/intl"
)

const (
	TableID     = "projects"
	ListID      = "projects-list"
	FilterID    = "projects-filter"
	DialogID    = "project-dialog"
	ChangeEvent = "projectsChanged"
)

var statusBadges = map[string]base.BadgeVariant{
	string(project.StatusPlanned):   base.BadgeGray,
	string(project.StatusActive):    base.BadgeGreen,
	string(project.StatusOnHold):    base.BadgeYellow,
	string(project.StatusCompleted): base.BadgeBlue,
}

func StatusLabel(ctx context.Context, status string) string {
	return intl.T(ctx, "Projects.Statuses."+status, status)
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

func statusOptions(ctx context.Context) []base.SelectOption {
	out := make([]base.SelectOption, 0, len(project.Statuses))
	for _, s := range project.Statuses {
		out = append(out, base.SelectOption{Value: string(s), Label: StatusLabel(ctx, string(s))})
	}
	return out
}

type IndexPageProps struct {
	Projects  []viewmodels.Project
	Search    string
	Status    string
	BasePath  string
	Page      pagination.State
	CanCreate bool
	CanUpdate bool
	CanDelete bool
}

func dates(p viewmodels.Project) string {
	switch {
	case p.StartDate != "" && p.EndDate != "":
		return p.StartDate + " – " + p.EndDate
	case p.StartDate != "":
		return p.StartDate + " –"
	case p.EndDate != "":
		return "– " + p.EndDate
	}
	return ""
}

func TableProps(ctx context.Context, p *IndexPageProps) table.Props {
	props := table.Props{
		ID: TableID,
		Columns: []table.Column{
			{Key: "code", Label: intl.T(ctx, "Projects.List.Code", "Code")},
			{Key: "name", Label: intl.T(ctx, "Projects.List.Name", "Name")},
			{Key: "status", Label: intl.T(ctx, "Projects.List.Status", "Status")},
			{Key: "manager", Label: intl.T(ctx, "Projects.List.Manager", "Manager")},
			{Key: "dates", Label: intl.T(ctx, "Projects.List.Dates", "Dates")},
			{Key: "members", Label: intl.T(ctx, "Projects.List.Members", "Members")},
			{Key: "actions", Label: "", Class: "px-4 py-2 text-right"},
		},
		EmptyText: intl.T(ctx, "Projects.List.Empty", "No projects match the filters."),
		RowsURL:   p.BasePath,
		RefreshOn: ChangeEvent + " from:body",
		Include:   "#" + FilterID,
	}
	for _, pr := range p.Projects {
		props.Rows = append(props.Rows, table.Row{
			ID: "project-" + pr.ID,
			Cells: []templ.Component{
				table.TextCell(pr.Code),
				table.LinkCell(pr.Name, p.BasePath+"/"+pr.ID),
				StatusBadge(pr.Status),
				table.TextCell(pr.ManagerName),
				table.TextCell(dates(pr)),
				table.TextCell(strconv.Itoa(pr.MembersCount)),
				actions(p, pr),
			},
		})
	}
	return props
}

func actions(p *IndexPageProps, pr viewmodels.Project) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div class="flex justify-end gap-1">`)
		if p.CanUpdate {
			b.Component(ctx, dialog.OpenButton(base.ButtonProps{
				Variant: base.ButtonGhost,
				Label:   intl.T(ctx, "Actions.Edit", "Edit"),
				Class:   "px-2 py-1",
				Attrs:   templ.Attributes{"data-action": "edit"},
			}, p.BasePath+"/"+pr.ID+"/edit"))
		}
		if p.CanDelete {
			b.Component(ctx, DeleteConfirm(p.BasePath, pr))
		}
		b.Raw(`</div>`)
	})
}

// DeleteConfirm is shared by the list row and the detail header.
func DeleteConfirm(basePath string, pr viewmodels.Project) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Component(ctx, dialog.Confirm(dialog.ConfirmProps{
			ID:           "delete-project-" + pr.ID,
			Title:        intl.T(ctx, "Projects.Delete.Title", "Delete project"),
			Text:         intl.T(ctx, "Projects.Delete.Text", "The project and its tasks will be removed.", map[string]interface{}{"Name": pr.Name}),
			ConfirmLabel: intl.T(ctx, "Actions.Delete", "Delete"),
			Action:       basePath + "/" + pr.ID,
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
			filters.Search(fp, "search", p.Search, intl.T(ctx, "Projects.List.Search", "Search by name or code")),
			filters.Select("status", p.Status, intl.T(ctx, "Projects.List.AllStatuses", "All statuses"), statusOptions(ctx)),
		}
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
		title := intl.T(ctx, "Projects.Meta.Title", "Projects")
		var create templ.Component
		if p.CanCreate {
			create = dialog.OpenButton(base.ButtonProps{
				Label: intl.T(ctx, "Projects.List.New", "New project"),
				Icon:  icons.PlusCircle(icons.Props{Size: "18"}),
				Attrs: templ.Attributes{"data-action": "create"},
			}, p.BasePath+"/new")
		}
		content := base.Join(base.PageHeader(title, "", create), filterForm(p), List(p))
		b.Component(ctx, layouts.Authenticated(layouts.AuthenticatedProps{BaseProps: layouts.BaseProps{Title: title}}, content))
	})
}

type FormProps struct {
	Project  viewmodels.Project
	Managers []viewmodels.Option
	Errors   map[string]string
	Error    string
	IsNew    bool
	BasePath string
}

func Form(p *FormProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		managers := make([]base.SelectOption, 0, len(p.Managers))
		for _, m := range p.Managers {
			managers = append(managers, base.SelectOption{Value: m.Value, Label: m.Label})
		}
		body := base.Join(
			base.Input(base.InputProps{
				Name: "Name", Label: intl.T(ctx, "Projects.Single.Name", "Name"),
				Value: p.Project.Name, Required: true, Error: p.Errors["Name"],
			}),
			base.Input(base.InputProps{
				Name: "Code", Label: intl.T(ctx, "Projects.Single.Code", "Code"),
				Value: p.Project.Code, Required: true, Error: p.Errors["Code"],
				Attrs: templ.Attributes{"maxlength": "32"},
			}),
			base.Textarea(base.TextareaProps{
				Name: "Description", Label: intl.T(ctx, "Projects.Single.Details", "Description"),
				Value: p.Project.Description, Rows: 3, Error: p.Errors["Description"],
			}),
			base.Select(base.SelectProps{
				Name: "Status", Label: intl.T(ctx, "Projects.Single.Status", "Status"),
				Options: statusOptions(ctx), Selected: p.Project.Status, Required: true, Error: p.Errors["Status"],
			}),
			base.Func(func(ctx context.Context, b *base.Writer) {
				b.Raw(`<div class="grid grid-cols-2 gap-4">`)
				b.Component(ctx, base.Input(base.InputProps{
					Name: "StartDate", Type: "date", Label: intl.T(ctx, "Projects.Single.StartDate", "Start date"),
					Value: p.Project.StartDate, Error: p.Errors["StartDate"],
				}))
				b.Component(ctx, base.Input(base.InputProps{
					Name: "EndDate", Type: "date", Label: intl.T(ctx, "Projects.Single.EndDate", "End date"),
					Value: p.Project.EndDate, Error: p.Errors["EndDate"],
				}))
				b.Raw(`</div>`)
			}),
			base.Select(base.SelectProps{
				Name: "ManagerID", Label: intl.T(ctx, "Projects.Single.ManagerID", "Manager"),
				Options: managers, Selected: p.Project.ManagerID, Error: p.Errors["ManagerID"],
				Placeholder: intl.T(ctx, "Projects.Single.NoManager", "No manager"),
			}),
		)
		props := dialog.FormDialogProps{
			ID:     DialogID,
			Title:  intl.T(ctx, "Projects.New.Title", "New project"),
			Action: p.BasePath,
			Body:   body,
			Error:  p.Error,
		}
		if !p.IsNew {
			props.Title = intl.T(ctx, "Projects.Edit.Title", "Edit project")
			props.Action = p.BasePath + "/" + p.Project.ID
			props.Method = "PUT"
		}
		b.Component(ctx, dialog.FormDialog(props))
	})
}
