package services

import (
	"context"
	"sort"

	"github.com/worktrack/worktrack/modules/core/domain/entities/permission"
	"github.com/worktrack/worktrack/modules/core/permissions"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/composables"
)

const (
	OtherGroupName  = "other"
	OtherGroupLabel = "PermissionGroups.Ungrouped"
)

// PermissionGroup is a block of the role permission matrix.
type PermissionGroup struct {
	Name        string
	Label       string
	Permissions []permission.Permission
}

type PermissionService struct {
	repo permission.Repository
}

func NewPermissionService(repo permission.Repository) *PermissionService {
	return &PermissionService{repo: repo}
}

func (s *PermissionService) GetAll(ctx context.Context) ([]permission.Permission, error) {
	if err := composables.RequirePermission(ctx, permissions.RoleView); err != nil {
		return nil, err
	}
	return s.repo.GetAll(ctx)
}

// Grouped arranges the backend's permissions by schema. Schema entries the
// backend does not know are skipped; backend permissions no group claims end
// up in a trailing "other" group.
func (s *PermissionService) Grouped(ctx context.Context, schema *application.PermissionSchema) ([]PermissionGroup, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return GroupPermissions(all, schema), nil
}

func GroupPermissions(all []permission.Permission, schema *application.PermissionSchema) []PermissionGroup {
	byKey := make(map[string]permission.Permission, len(all))
	for _, p := range all {
		byKey[p.Key] = p
	}
	claimed := make(map[string]bool, len(all))

	var groups []PermissionGroup
	if schema != nil {
		for _, g := range schema.Groups {
			group := PermissionGroup{Name: g.Name, Label: g.Label}
			for _, key := range g.Permissions {
				p, ok := byKey[key]
				if !ok || claimed[key] {
					continue
				}
				claimed[key] = true
				group.Permissions = append(group.Permissions, p)
			}
			if len(group.Permissions) > 0 {
				groups = append(groups, group)
			}
		}
	}

	other := PermissionGroup{Name: OtherGroupName, Label: OtherGroupLabel}
	for _, p := range all {
		if !claimed[p.Key] {
			other.Permissions = append(other.Permissions, p)
		}
	}
	if len(other.Permissions) > 0 {
		sort.Slice(other.Permissions, func(i, j int) bool {
			return other.Permissions[i].Key < other.Permissions[j].Key
		})
		groups = append(groups, other)
	}
	return groups
}
