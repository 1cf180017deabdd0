package persistence

import (
	"github.com/worktrack/worktrack/modules/core/domain/aggregates/role"
	"github.com/worktrack/worktrack/modules/core/domain/aggregates/user"
	"github.com/worktrack/worktrack/modules/core/domain/entities/permission"
	"github.com/worktrack/worktrack/modules/core/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/pkg/authz"
	"github.com/worktrack/worktrack/pkg/mapping"
	"github.com/worktrack/worktrack/pkg/session"
)

func ToDomainUser(m models.User) user.User {
	u := user.User{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		RoleID:    m.RoleID,
		Active:    m.IsActive,
		Language:  user.UILanguage(m.Language).OrDefault(),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Role != nil {
		u.RoleName = m.Role.Name
		if u.RoleID == 0 {
			u.RoleID = m.Role.ID
		}
	}
	return u
}

func ToDomainPermission(m models.Permission) permission.Permission {
	return permission.Permission{
		ID:          m.ID,
		Key:         authz.NormalizePermission(m.Key),
		Name:        m.Name,
		Description: m.Description,
	}
}

func ToDomainRole(m models.Role) role.Role {
	keys := make([]string, 0, len(m.Permissions))
	for _, p := range m.Permissions {
		keys = append(keys, authz.NormalizePermission(p.Key))
	}
	return role.Role{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Permissions: keys,
		UsersCount:  m.UsersCount,
		System:      m.IsSystem,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// ToSessionUser snapshots the signed-in user for the session store.
func ToSessionUser(m models.User) session.User {
	u := session.User{
		ID:       m.ID,
		Name:     m.Name,
		Email:    m.Email,
		RoleID:   m.RoleID,
		Language: m.Language,
	}
	if m.Role != nil {
		u.Role = m.Role.Name
		if u.RoleID == 0 {
			u.RoleID = m.Role.ID
		}
	}
	return u
}

func ToDomainUsers(items []models.User) []user.User {
	return mapping.MapViewModels(items, ToDomainUser)
}

func ToDomainRoles(items []models.Role) []role.Role {
	return mapping.MapViewModels(items, ToDomainRole)
}
