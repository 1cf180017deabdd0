package persistence

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/worktrack/worktrack/modules/core/domain/aggregates/role"
	"github.com/worktrack/worktrack/modules/core/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/pkg/apiclient"
)

const (
	rolesPath           = "/api/roles"
	rolePermissionsPath = "/api/role-permissions"
)

type APIRoleRepository struct {
	api *apiclient.Client
}

func NewRoleRepository(api *apiclient.Client) role.Repository {
	return &APIRoleRepository{api: api}
}

func (g *APIRoleRepository) GetAll(ctx context.Context) ([]role.Role, error) {
	items, err := apiclient.Get[[]models.Role](ctx, g.api, rolesPath, nil)
	if err != nil {
		return nil, errors.Wrap(err, "list roles")
	}
	return ToDomainRoles(items), nil
}

func (g *APIRoleRepository) GetByID(ctx context.Context, id int64) (role.Role, error) {
	m, err := apiclient.Get[models.Role](ctx, g.api, fmt.Sprintf("%s/%d", rolesPath, id), nil)
	if err != nil {
		return role.Role{}, errors.Wrapf(err, "get role %d", id)
	}
	return ToDomainRole(m), nil
}

func (g *APIRoleRepository) Create(ctx context.Context, data role.SaveData) (role.Role, error) {
	m, err := apiclient.Post[models.Role](ctx, g.api, rolesPath, data)
	if err != nil {
		return role.Role{}, errors.Wrap(err, "create role")
	}
	return ToDomainRole(m), nil
}

func (g *APIRoleRepository) Update(ctx context.Context, id int64, data role.SaveData) (role.Role, error) {
	m, err := apiclient.Put[models.Role](ctx, g.api, fmt.Sprintf("%s/%d", rolesPath, id), data)
	if err != nil {
		return role.Role{}, errors.Wrapf(err, "update role %d", id)
	}
	return ToDomainRole(m), nil
}

func (g *APIRoleRepository) Delete(ctx context.Context, id int64) error {
	if err := apiclient.Delete(ctx, g.api, fmt.Sprintf("%s/%d", rolesPath, id)); err != nil {
		return errors.Wrapf(err, "delete role %d", id)
	}
	return nil
}

// SetPermissions replaces the role's permission set.
func (g *APIRoleRepository) SetPermissions(ctx context.Context, id int64, permissionIDs []int64) error {
	if permissionIDs == nil {
		permissionIDs = []int64{}
	}
	body := models.RolePermissions{PermissionIDs: permissionIDs}
	if err := g.api.Do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", rolePermissionsPath, id), nil, body, nil); err != nil {
		return errors.Wrapf(err, "set permissions of role %d", id)
	}
	return nil
}
