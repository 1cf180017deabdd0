package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/maintask"
	"github.com/worktrack/worktrack/modules/projects/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/pkg/apiclient"
	"github.com/worktrack/worktrack/pkg/mapping"
)

const mainTasksPath = "/api/main-tasks"

type APIMainTaskRepository struct {
	api *apiclient.Client
}

func NewMainTaskRepository(api *apiclient.Client) maintask.Repository {
	return &APIMainTaskRepository{api: api}
}

func mainTaskPath(id int64) string {
	return fmt.Sprintf("%s/%d", mainTasksPath, id)
}

func (g *APIMainTaskRepository) ListByProject(ctx context.Context, projectID int64) ([]maintask.MainTask, error) {
	items, err := apiclient.Get[[]models.MainTask](ctx, g.api, projectPath(projectID)+"/main-tasks", nil)
	if err != nil {
		return nil, errors.Wrapf(err, "list main tasks of project %d", projectID)
	}
	return mapping.MapViewModels(items, ToDomainMainTask), nil
}

func (g *APIMainTaskRepository) GetByID(ctx context.Context, id int64) (maintask.MainTask, error) {
	m, err := apiclient.Get[models.MainTask](ctx, g.api, mainTaskPath(id), nil)
	if err != nil {
		return maintask.MainTask{}, errors.Wrapf(err, "get main task %d", id)
	}
	return ToDomainMainTask(m), nil
}

func (g *APIMainTaskRepository) Create(ctx context.Context, projectID int64, data maintask.SaveData) (maintask.MainTask, error) {
	m, err := apiclient.Post[models.MainTask](ctx, g.api, projectPath(projectID)+"/main-tasks", data)
	if err != nil {
		return maintask.MainTask{}, errors.Wrapf(err, "create main task in project %d", projectID)
	}
	return ToDomainMainTask(m), nil
}

func (g *APIMainTaskRepository) Update(ctx context.Context, id int64, data maintask.SaveData) (maintask.MainTask, error) {
	m, err := apiclient.Put[models.MainTask](ctx, g.api, mainTaskPath(id), data)
	if err != nil {
		return maintask.MainTask{}, errors.Wrapf(err, "update main task %d", id)
	}
	return ToDomainMainTask(m), nil
}

func (g *APIMainTaskRepository) Delete(ctx context.Context, id int64) error {
	if err := apiclient.Delete(ctx, g.api, mainTaskPath(id)); err != nil {
		return errors.Wrapf(err, "delete main task %d", id)
	}
	return nil
}
