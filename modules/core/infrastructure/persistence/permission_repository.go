package persistence

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/worktrack/worktrack/modules/core/domain/entities/permission"
	"github.com/worktrack/worktrack/modules/core/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/pkg/apiclient"
	"github.com/worktrack/worktrack/pkg/mapping"
)

type APIPermissionRepository struct {
	api *apiclient.Client
}

func NewPermissionRepository(api *apiclient.Client) permission.Repository {
	return &APIPermissionRepository{api: api}
}

func (g *APIPermissionRepository) GetAll(ctx context.Context) ([]permission.Permission, error) {
	items, err := apiclient.Get[[]models.Permission](ctx, g.api, "/api/permissions", nil)
	if err != nil {
		return nil, errors.Wrap(err, "list permissions")
	}
	return mapping.MapViewModels(items, ToDomainPermission), nil
}
