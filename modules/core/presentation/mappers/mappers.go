package mappers

import (
	"strconv"

	"github.com/worktrack/worktrack/modules/core/domain/aggregates/role"
	"github.com/worktrack/worktrack/modules/core/domain/aggregates/user"
	"github.com/worktrack/worktrack/modules/core/presentation/viewmodels"
	"github.com/worktrack/worktrack/modules/core/services"
	"github.com/worktrack/worktrack/pkg/constants"
)

func UserToViewModel(u user.User) viewmodels.User {
	vm := viewmodels.User{
		ID:       strconv.FormatInt(u.ID, 10),
		Name:     u.Name,
		Email:    u.Email,
		RoleName: u.RoleName,
		Active:   u.Active,
		Language: string(u.Language),
	}
	if u.RoleID > 0 {
		vm.RoleID = strconv.FormatInt(u.RoleID, 10)
	}
	if !u.CreatedAt.IsZero() {
		vm.CreatedAt = u.CreatedAt.Format(constants.DateFormat)
	}
	return vm
}

func RoleToViewModel(r role.Role) viewmodels.Role {
	return viewmodels.Role{
		ID:              strconv.FormatInt(r.ID, 10),
		Name:            r.Name,
		Description:     r.Description,
		UsersCount:      r.UsersCount,
		PermissionCount: len(r.Permissions),
		System:          r.System,
		CanDelete:       r.CanDelete(),
	}
}

// PermissionGroupsToViewModels marks the permissions r already grants.
func PermissionGroupsToViewModels(groups []services.PermissionGroup, r role.Role) []viewmodels.PermissionGroup {
	out := make([]viewmodels.PermissionGroup, 0, len(groups))
	for _, g := range groups {
		vm := viewmodels.PermissionGroup{Name: g.Name, Label: g.Label}
		for _, p := range g.Permissions {
			vm.Permissions = append(vm.Permissions, viewmodels.PermissionOption{
				ID:          strconv.FormatInt(p.ID, 10),
				Key:         p.Key,
				Name:        p.Name,
				Description: p.Description,
				Checked:     r.HasPermission(p.Key),
			})
		}
		out = append(out, vm)
	}
	return out
}
