package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/worktrack/worktrack/modules/leave/domain/aggregates/leaverequest"
	"github.com/worktrack/worktrack/modules/leave/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/pkg/apiclient"
	"github.com/worktrack/worktrack/pkg/mapping"
)

const leavePath = "/api/leave"

type APILeaveRepository struct {
	api *apiclient.Client
}

func NewLeaveRepository(api *apiclient.Client) leaverequest.Repository {
	return &APILeaveRepository{api: api}
}

func requestPath(id int64) string {
	return fmt.Sprintf("%s/%d", leavePath, id)
}

func (g *APILeaveRepository) GetPaginated(ctx context.Context, params *leaverequest.FindParams) ([]leaverequest.Request, int, error) {
	q := apiclient.NewQuery().
		Page(params.Page, params.Limit).
		Int("user_id", params.UserID).
		String("status", string(params.Status))
	page, err := apiclient.GetPage[models.LeaveRequest](ctx, g.api, leavePath, q.Values())
	if err != nil {
		return nil, 0, errors.Wrap(err, "list leave requests")
	}
	return mapping.MapViewModels(page.Items, ToDomainRequest), page.Total, nil
}

func (g *APILeaveRepository) GetByID(ctx context.Context, id int64) (leaverequest.Request, error) {
	m, err := apiclient.Get[models.LeaveRequest](ctx, g.api, requestPath(id), nil)
	if err != nil {
		return leaverequest.Request{}, errors.Wrapf(err, "get leave request %d", id)
	}
	return ToDomainRequest(m), nil
}

func (g *APILeaveRepository) Create(ctx context.Context, data leaverequest.SaveData) (leaverequest.Request, error) {
	m, err := apiclient.Post[models.LeaveRequest](ctx, g.api, leavePath, data)
	if err != nil {
		return leaverequest.Request{}, errors.Wrap(err, "create leave request")
	}
	return ToDomainRequest(m), nil
}

func (g *APILeaveRepository) Update(ctx context.Context, id int64, data leaverequest.SaveData) (leaverequest.Request, error) {
	m, err := apiclient.Put[models.LeaveRequest](ctx, g.api, requestPath(id), data)
	if err != nil {
		return leaverequest.Request{}, errors.Wrapf(err, "update leave request %d", id)
	}
	return ToDomainRequest(m), nil
}

func (g *APILeaveRepository) Delete(ctx context.Context, id int64) error {
	if err := apiclient.Delete(ctx, g.api, requestPath(id)); err != nil {
		return errors.Wrapf(err, "delete leave request %d", id)
	}
	return nil
}

func (g *APILeaveRepository) SetStatus(ctx context.Context, id int64, d leaverequest.Decision) (leaverequest.Request, error) {
	m, err := apiclient.Patch[models.LeaveRequest](ctx, g.api, requestPath(id)+"/status", d)
	if err != nil {
		return leaverequest.Request{}, errors.Wrapf(err, "set leave request %d status", id)
	}
	return ToDomainRequest(m), nil
}
