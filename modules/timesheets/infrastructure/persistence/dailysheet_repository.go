package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/worktrack/worktrack/modules/timesheets/domain/aggregates/dailysheet"
	"github.com/worktrack/worktrack/modules/timesheets/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/pkg/apiclient"
	"github.com/worktrack/worktrack/pkg/mapping"
)

const dailySheetsPath = "/api/daily-sheet"

type APIDailySheetRepository struct {
	api *apiclient.Client
}

func NewDailySheetRepository(api *apiclient.Client) dailysheet.Repository {
	return &APIDailySheetRepository{api: api}
}

func dailySheetPath(id int64) string {
	return fmt.Sprintf("%s/%d", dailySheetsPath, id)
}

func (g *APIDailySheetRepository) List(ctx context.Context, params *dailysheet.FindParams) ([]dailysheet.DailySheet, int, error) {
	q := apiclient.NewQuery().
		Page(params.Page, params.Limit).
		Int("user_id", params.UserID).
		Int("project_id", params.ProjectID).
		Date("from", params.From).
		Date("to", params.To)
	page, err := apiclient.GetPage[models.DailySheet](ctx, g.api, dailySheetsPath, q.Values())
	if err != nil {
		return nil, 0, errors.Wrap(err, "list daily sheets")
	}
	return mapping.MapViewModels(page.Items, ToDomainDailySheet), page.Total, nil
}

func (g *APIDailySheetRepository) GetByID(ctx context.Context, id int64) (dailysheet.DailySheet, error) {
	m, err := apiclient.Get[models.DailySheet](ctx, g.api, dailySheetPath(id), nil)
	if err != nil {
		return dailysheet.DailySheet{}, errors.Wrapf(err, "get daily sheet %d", id)
	}
	return ToDomainDailySheet(m), nil
}

func (g *APIDailySheetRepository) Create(ctx context.Context, data dailysheet.SaveData) (dailysheet.DailySheet, error) {
	m, err := apiclient.Post[models.DailySheet](ctx, g.api, dailySheetsPath, data)
	if err != nil {
		return dailysheet.DailySheet{}, errors.Wrap(err, "create daily sheet")
	}
	return ToDomainDailySheet(m), nil
}

func (g *APIDailySheetRepository) Update(ctx context.Context, id int64, data dailysheet.SaveData) (dailysheet.DailySheet, error) {
	m, err := apiclient.Put[models.DailySheet](ctx, g.api, dailySheetPath(id), data)
	if err != nil {
		return dailysheet.DailySheet{}, errors.Wrapf(err, "update daily sheet %d", id)
	}
	return ToDomainDailySheet(m), nil
}

func (g *APIDailySheetRepository) Delete(ctx context.Context, id int64) error {
	if err := apiclient.Delete(ctx, g.api, dailySheetPath(id)); err != nil {
		return errors.Wrapf(err, "delete daily sheet %d", id)
	}
	return nil
}
