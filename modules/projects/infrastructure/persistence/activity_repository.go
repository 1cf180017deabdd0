package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/worktrack/worktrack/modules/projects/domain/entities/activity"
	"github.com/worktrack/worktrack/modules/projects/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/pkg/apiclient"
	"github.com/worktrack/worktrack/pkg/mapping"
)

const activityPath = "/api/activity"

type APIActivityRepository struct {
	api *apiclient.Client
}

func NewActivityRepository(api *apiclient.Client) activity.Repository {
	return &APIActivityRepository{api: api}
}

func (g *APIActivityRepository) feed(ctx context.Context, kind string, id int64, limit int) ([]activity.Activity, error) {
	q := apiclient.NewQuery().Page(0, limit)
	items, err := apiclient.Get[[]models.Activity](ctx, g.api, fmt.Sprintf("%s/%s/%d", activityPath, kind, id), q.Values())
	if err != nil {
		return nil, errors.Wrapf(err, "%s %d activity", kind, id)
	}
	return mapping.MapViewModels(items, ToDomainActivity), nil
}

func (g *APIActivityRepository) ForProject(ctx context.Context, projectID int64, limit int) ([]activity.Activity, error) {
	return g.feed(ctx, "project", projectID, limit)
}

func (g *APIActivityRepository) ForTask(ctx context.Context, taskID int64, limit int) ([]activity.Activity, error) {
	return g.feed(ctx, "task", taskID, limit)
}
