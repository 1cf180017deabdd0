package users

import (
	"context"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/components/dialog"
	"github.com/worktrack/worktrack/components/filters"
	"github.com/worktrack/worktrack/components/pagination"
	"github.com/worktrack/worktrack/components/table"
	"github.com/worktrack/worktrack/modules/core/presentation/templates/layouts"
	"github.com/worktrack/worktrack/modules/core/presentation/viewmodels"
	"github.com/worktrack/worktrack/pkg/intl"
)

const (
	TableID     = "users"
	ListID      = "users-list"
	FilterID    = "users-filter"
	DialogID    = "user-dialog"
	ChangeEvent = "usersChanged"
)

type IndexPageProps struct {
	Users     []viewmodels.User
	Roles     []viewmodels.Role
	Search    string
	RoleID    string
	BasePath  string
	Page      pagination.State
	CanCreate bool
	CanUpdate bool
	CanDelete bool
}

func TableProps(ctx context.Context, p *IndexPageProps) table.Props {
	props := table.Props{
		ID: TableID,
		Columns: []table.Column{
			{Key: "name", Label: intl.T(ctx, "Users.List.Name", "Name")},
			{Key: "email", Label: intl.T(ctx, "Users.List.Email", "Email")},
			{Key: "role", Label: intl.T(ctx, "Users.List.Role", "Role")},
			{Key: "status", Label: intl.T(ctx, "Users.List.Status", "Status")},
			{Key: "created", Label: intl.T(ctx, "Users.List.CreatedAt", "Created")},
			{Key: "actions", Label: "", Class: "px-4 py-2 text-right"},
		},
		EmptyText: intl.T(ctx, "Users.List.Empty", "No users match the filters."),
		RowsURL:   p.BasePath,
		RefreshOn: ChangeEvent + " from:body",
		Include:   "#" + FilterID,
	}
	for _, u := range p.Users {
		props.Rows = append(props.Rows, table.Row{
			ID: "user-" + u.ID,
			Cells: []templ.Component{
				nameCell(u),
				table.TextCell(u.Email),
				table.TextCell(u.RoleName),
				statusCell(u.Active),
				table.TextCell(u.CreatedAt),
				actions(p, u),
			},
		})
	}
	return props
}

func nameCell(u viewmodels.User) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<span class="flex items-center gap-2">`).Component(ctx, base.Avatar(u.Name)).Text(u.Name).Raw(`</span>`)
	})
}

func statusCell(active bool) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		if active {
			b.Component(ctx, base.Badge(intl.T(ctx, "Users.Status.Active", "Active"), base.BadgeGreen))
			return
		}
		b.Component(ctx, base.Badge(intl.T(ctx, "Users.Status.Inactive", "Inactive"), base.BadgeGray))
	})
}

func actions(p *IndexPageProps, u viewmodels.User) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div class="flex justify-end gap-1">`)
		if p.CanUpdate {
			b.Component(ctx, dialog.OpenButton(base.ButtonProps{
				Variant: base.ButtonGhost,
				Label:   intl.T(ctx, "Actions.Edit", "Edit"),
				Class:   "px-2 py-1",
				Attrs:   templ.Attributes{"data-action": "edit"},
			}, p.BasePath+"/"+u.ID))
		}
		if p.CanDelete && !u.IsSelf {
			b.Component(ctx, dialog.Confirm(dialog.ConfirmProps{
				ID:           "delete-user-" + u.ID,
				Title:        intl.T(ctx, "Users.Delete.Title", "Delete user"),
				Text:         intl.T(ctx, "Users.Delete.Text", "This user will lose access. Continue?", map[string]interface{}{"Name": u.Name}),
				ConfirmLabel: intl.T(ctx, "Actions.Delete", "Delete"),
				Action:       p.BasePath + "/" + u.ID,
				Swap:         "none",
				Trigger: base.ButtonProps{
					Variant: base.ButtonGhost,
					Label:   intl.T(ctx, "Actions.Delete", "Delete"),
					Class:   "px-2 py-1 text-red-600",
					Attrs:   templ.Attributes{"data-action": "delete"},
				},
			}))
		}
		b.Raw(`</div>`)
	})
}

func filterForm(p *IndexPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		fp := filters.Props{ID: FilterID, URL: p.BasePath, Target: "#" + ListID}
		options := make([]base.SelectOption, 0, len(p.Roles))
		for _, r := range p.Roles {
			options = append(options, base.SelectOption{Value: r.ID, Label: r.Name})
		}
		fp.Fields = []templ.Component{
			filters.Search(fp, "search", p.Search, intl.T(ctx, "Users.List.Search", "Search by name or email")),
			filters.Select("role_id", p.RoleID, intl.T(ctx, "Users.List.AllRoles", "All roles"), options),
		}
		b.Component(ctx, filters.Form(fp))
	})
}

// List is the swappable table plus pagination.
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
		title := intl.T(ctx, "Users.Meta.Title", "Users")
		var create templ.Component
		if p.CanCreate {
			create = dialog.OpenButton(base.ButtonProps{
				Label: intl.T(ctx, "Users.List.New", "New user"),
				Icon:  icons.PlusCircle(icons.Props{Size: "18"}),
				Attrs: templ.Attributes{"data-action": "create"},
			}, p.BasePath+"/new")
		}
		content := base.Join(base.PageHeader(title, "", create), filterForm(p), List(p))
		b.Component(ctx, layouts.Authenticated(layouts.AuthenticatedProps{BaseProps: layouts.BaseProps{Title: title}}, content))
	})
}

type FormProps struct {
	User   viewmodels.User
	Roles  []viewmodels.Role
	Errors map[string]string
	// Error is a form-level message.
	Error    string
	IsNew    bool
	BasePath string
}

func languageOptions() []base.SelectOption {
	out := make([]base.SelectOption, 0, len(intl.SupportedLanguages))
	for _, l := range intl.SupportedLanguages {
		out = append(out, base.SelectOption{Value: l.Code, Label: l.VerboseName})
	}
	return out
}

// Form is the create and edit dialog.
func Form(p *FormProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		roleOptions := make([]base.SelectOption, 0, len(p.Roles))
		for _, r := range p.Roles {
			roleOptions = append(roleOptions, base.SelectOption{Value: r.ID, Label: r.Name})
		}
		fields := []templ.Component{
			base.Input(base.InputProps{
				Name: "Name", Label: intl.T(ctx, "Users.Single.Name", "Name"),
				Value: p.User.Name, Required: true, Error: p.Errors["Name"],
			}),
			base.Input(base.InputProps{
				Name: "Email", Type: "email", Label: intl.T(ctx, "Users.Single.Email", "Email"),
				Value: p.User.Email, Required: true, Error: p.Errors["Email"],
			}),
		}
		if p.IsNew {
			fields = append(fields, base.Input(base.InputProps{
				Name: "Password", Type: "password", Label: intl.T(ctx, "Users.Single.Password", "Password"),
				Required: true, Error: p.Errors["Password"],
				Attrs: templ.Attributes{"autocomplete": "new-password"},
			}))
		}
		fields = append(fields,
			base.Select(base.SelectProps{
				Name: "RoleID", Label: intl.T(ctx, "Users.Single.RoleID", "Role"),
				Options: roleOptions, Selected: p.User.RoleID, Required: true, Error: p.Errors["RoleID"],
				Placeholder: intl.T(ctx, "Users.Single.SelectRole", "Select a role"),
			}),
			base.Select(base.SelectProps{
				Name: "Language", Label: intl.T(ctx, "Users.Single.Language", "Language"),
				Options: languageOptions(), Selected: p.User.Language, Error: p.Errors["Language"],
			}),
			base.Checkbox("Active", intl.T(ctx, "Users.Single.Active", "Active"), p.User.Active),
		)

		props := dialog.FormDialogProps{
			ID:     DialogID,
			Body:   base.Join(fields...),
			Error:  p.Error,
			Action: p.BasePath,
			Title:  intl.T(ctx, "Users.New.Title", "New user"),
		}
		if !p.IsNew {
			props.Action = p.BasePath + "/" + p.User.ID
			props.Method = "PUT"
			props.Title = intl.T(ctx, "Users.Edit.Title", "Edit user")
		}
		b.Component(ctx, dialog.FormDialog(props))
	})
}
