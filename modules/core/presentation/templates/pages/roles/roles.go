package roles

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
	icons "github.com/iota-uz/icons/phosphor"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/components/dialog"
	"github.com/worktrack/worktrack/components/table"
	"github.com/worktrack/worktrack/modules/core/presentation/templates/layouts"
	"github.com/worktrack/worktrack/modules/core/presentation/viewmodels"
	"github.com/worktrack/worktrack/pkg/intl"
)

const (
	TableID     = "roles"
	ListID      = "roles-list"
	DialogID    = "role-dialog"
	MatrixID    = "role-permissions"
	ChangeEvent = "rolesChanged"
)

type IndexPageProps struct {
	Roles     []viewmodels.Role
	BasePath  string
	CanCreate bool
	CanUpdate bool
	CanDelete bool
}

func TableProps(ctx context.Context, p *IndexPageProps) table.Props {
	props := table.Props{
		ID: TableID,
		Columns: []table.Column{
			{Key: "name", Label: intl.T(ctx, "Roles.List.Name", "Name")},
			{Key: "description", Label: intl.T(ctx, "Roles.List.Details", "Description")},
			{Key: "users", Label: intl.T(ctx, "Roles.List.Users", "Users")},
			{Key: "permissions", Label: intl.T(ctx, "Roles.List.Permissions", "Permissions")},
			{Key: "actions", Label: "", Class: "px-4 py-2 text-right"},
		},
		EmptyText: intl.T(ctx, "Roles.List.Empty", "No roles yet."),
		RowsURL:   p.BasePath,
		RefreshOn: ChangeEvent + " from:body",
	}
	for _, r := range p.Roles {
		props.Rows = append(props.Rows, table.Row{
			ID: "role-" + r.ID,
			Cells: []templ.Component{
				nameCell(r),
				table.TextCell(r.Description),
				table.TextCell(strconv.Itoa(r.UsersCount)),
				table.LinkCell(strconv.Itoa(r.PermissionCount), p.BasePath+"/"+r.ID+"/permissions"),
				actions(p, r),
			},
		})
	}
	return props
}

func nameCell(r viewmodels.Role) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Text(r.Name)
		if r.System {
			b.Raw(` `).Component(ctx, base.Badge(intl.T(ctx, "Roles.System", "System"), base.BadgeBlue))
		}
	})
}

func actions(p *IndexPageProps, r viewmodels.Role) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div class="flex justify-end gap-1">`)
		b.Component(ctx, base.Button(base.ButtonProps{
			Variant: base.ButtonGhost,
			Href:    p.BasePath + "/" + r.ID + "/permissions",
			Label:   intl.T(ctx, "Roles.List.EditPermissions", "Permissions"),
			Class:   "px-2 py-1",
		}))
		if p.CanUpdate {
			b.Component(ctx, dialog.OpenButton(base.ButtonProps{
				Variant: base.ButtonGhost,
				Label:   intl.T(ctx, "Actions.Edit", "Edit"),
				Class:   "px-2 py-1",
				Attrs:   templ.Attributes{"data-action": "edit"},
			}, p.BasePath+"/"+r.ID))
		}
		if p.CanDelete && r.CanDelete {
			b.Component(ctx, dialog.Confirm(dialog.ConfirmProps{
				ID:           "delete-role-" + r.ID,
				Title:        intl.T(ctx, "Roles.Delete.Title", "Delete role"),
				Text:         intl.T(ctx, "Roles.Delete.Text", "The role will be removed permanently.", map[string]interface{}{"Name": r.Name}),
				ConfirmLabel: intl.T(ctx, "Actions.Delete", "Delete"),
				Action:       p.BasePath + "/" + r.ID,
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

func List(p *IndexPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<div`).Attr("id", ListID).Raw(`>`).Component(ctx, table.Table(TableProps(ctx, p))).Raw(`</div>`)
	})
}

func Rows(p *IndexPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Component(ctx, table.Rows(TableProps(ctx, p)))
	})
}

func Index(p *IndexPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		title := intl.T(ctx, "Roles.Meta.Title", "Roles")
		var create templ.Component
		if p.CanCreate {
			create = dialog.OpenButton(base.ButtonProps{
				Label: intl.T(ctx, "Roles.List.New", "New role"),
				Icon:  icons.PlusCircle(icons.Props{Size: "18"}),
				Attrs: templ.Attributes{"data-action": "create"},
			}, p.BasePath+"/new")
		}
		content := base.Join(base.PageHeader(title, "", create), List(p))
		b.Component(ctx, layouts.Authenticated(layouts.AuthenticatedProps{BaseProps: layouts.BaseProps{Title: title}}, content))
	})
}

type FormProps struct {
	Role     viewmodels.Role
	Errors   map[string]string
	Error    string
	IsNew    bool
	BasePath string
}

func Form(p *FormProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		body := base.Join(
			base.Input(base.InputProps{
				Name: "Name", Label: intl.T(ctx, "Roles.Single.Name", "Name"),
				Value: p.Role.Name, Required: true, Error: p.Errors["Name"],
			}),
			base.Textarea(base.TextareaProps{
				Name: "Description", Label: intl.T(ctx, "Roles.Single.Details", "Description"),
				Value: p.Role.Description, Rows: 3, Error: p.Errors["Description"],
			}),
		)
		props := dialog.FormDialogProps{
			ID:     DialogID,
			Title:  intl.T(ctx, "Roles.New.Title", "New role"),
			Action: p.BasePath,
			Body:   body,
			Error:  p.Error,
		}
		if !p.IsNew {
			props.Title = intl.T(ctx, "Roles.Edit.Title", "Edit role")
			props.Action = p.BasePath + "/" + p.Role.ID
			props.Method = "PUT"
		}
		b.Component(ctx, dialog.FormDialog(props))
	})
}

type PermissionsPageProps struct {
	Role      viewmodels.Role
	Groups    []viewmodels.PermissionGroup
	BasePath  string
	CanUpdate bool
}

func group(g viewmodels.PermissionGroup, disabled bool) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		b.Raw(`<fieldset class="rounded-lg border border-gray-200 bg-white p-4"`).Attr("data-group", g.Name).Flag("disabled", disabled).Raw(`>`)
		b.Raw(`<legend class="px-1 text-sm font-semibold text-gray-800">`).Text(intl.T(ctx, g.Label, g.Name)).Raw(`</legend>`)
		b.Raw(`<div class="grid grid-cols-1 gap-2 sm:grid-cols-2">`)
		for _, perm := range g.Permissions {
			label := perm.Name
			if label == "" {
				label = perm.Key
			}
			b.Raw(`<div class="flex flex-col"`).Attr("title", perm.Description).Raw(`>`)
			b.Component(ctx, base.CheckboxValue("permission_ids", perm.ID, label, perm.Checked))
			b.Raw(`<span class="pl-6 font-mono text-xs text-gray-400">`).Text(perm.Key).Raw(`</span></div>`)
		}
		b.Raw(`</div></fieldset>`)
	})
}

// Permissions is the grouped permission matrix of one role.
func Permissions(p *PermissionsPageProps) templ.Component {
	return base.Func(func(ctx context.Context, b *base.Writer) {
		title := intl.T(ctx, "Roles.Permissions.Title", "Permissions of "+p.Role.Name, map[string]interface{}{"Name": p.Role.Name})
		back := base.Button(base.ButtonProps{
			Variant: base.ButtonSecondary,
			Href:    p.BasePath,
			Label:   intl.T(ctx, "Roles.Permissions.Back", "Back to roles"),
		})
		content := base.Func(func(ctx context.Context, b *base.Writer) {
			b.Component(ctx, base.PageHeader(title, p.Role.Description, back))
			b.Raw(`<form class="flex flex-col gap-4"`).Attr("id", MatrixID).
				Attr("hx-put", p.BasePath+"/"+p.Role.ID+"/permissions").Attr("hx-swap", "none").Raw(`>`)
			if len(p.Groups) == 0 {
				b.Raw(`<p class="text-sm text-gray-500" data-empty>`).Text(intl.T(ctx, "Roles.Permissions.Empty", "No permissions are defined.")).Raw(`</p>`)
			}
			for _, g := range p.Groups {
				b.Component(ctx, group(g, !p.CanUpdate))
			}
			if p.CanUpdate {
				b.Raw(`<div class="flex justify-end">`).Component(ctx, base.Button(base.ButtonProps{
					Type:  "submit",
					Label: intl.T(ctx, "Roles.Permissions.Save", "Save permissions"),
				})).Raw(`</div>`)
			}
			b.Raw(`</form>`)
		})
		b.Component(ctx, layouts.Authenticated(layouts.AuthenticatedProps{BaseProps: layouts.BaseProps{Title: title}}, content))
	})
}
