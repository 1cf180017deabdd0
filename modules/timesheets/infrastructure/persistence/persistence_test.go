package persistence_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/modules/timesheets/domain/aggregates/dailysheet"
	"github.com/worktrack/worktrack/modules/timesheets/infrastructure/persistence"
	"github.com/worktrack/worktrack/modules/timesheets/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/pkg/itf"
)

func TestDailySheetRepository_List(t *testing.T) {
	b := itf.NewBackend(t).Respond("GET /api/daily-sheet", itf.Page([]models.DailySheet{
		{
			ID:      3,
			User:    &models.Ref{ID: 2, Name: "Bo"},
			Date:    "2026-10-20T00:00:00Z",
			Project: &models.Ref{ID: 4, Name: "Apollo"},
			Task:    &models.TaskRef{ID: 5, Title: "Wire login"},
			Hours:   decimal.RequireFromString("7.5"),
		},
	}, 1, 1, 500))
	repo := persistence.NewDailySheetRepository(b.Client())

	items, total, err := repo.List(context.Background(), &dailysheet.FindParams{
		UserID: 2,
		From:   time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC),
		Page:   1,
		Limit:  500,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	s := items[0]
	assert.Equal(t, int64(2), s.UserID)
	assert.Equal(t, "Bo", s.UserName)
	assert.Equal(t, int64(4), s.ProjectID)
	assert.Equal(t, "Wire login", s.TaskTitle)
	assert.Equal(t, "2026-10-20", s.Date.Format(time.DateOnly))
	assert.True(t, s.Hours.Equal(decimal.RequireFromString("7.5")))

	call := b.LastCall(http.MethodGet, "/api/daily-sheet")
	assert.Equal(t, "from=2026-10-19&limit=500&page=1&to=2026-10-25&user_id=2", call.Query)
}

func TestDailySheetRepository_CreateSendsDecimalHours(t *testing.T) {
	b := itf.NewBackend(t).Respond("POST /api/daily-sheet", models.DailySheet{ID: 9, Date: "2026-10-20", Hours: decimal.RequireFromString("1.25")})
	repo := persistence.NewDailySheetRepository(b.Client())

	created, err := repo.Create(context.Background(), dailysheet.SaveData{
		Date:      "2026-10-20",
		ProjectID: 4,
		Hours:     decimal.RequireFromString("1.25"),
		Note:      "review",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)
	assert.JSONEq(t,
		`{"date":"2026-10-20","project_id":4,"hours":"1.25","note":"review"}`,
		string(b.LastCall(http.MethodPost, "/api/daily-sheet").Body))
}

func TestDailySheetRepository_UpdateAndDelete(t *testing.T) {
	b := itf.NewBackend(t).
		Respond("PUT /api/daily-sheet/9", models.DailySheet{ID: 9}).
		Respond("DELETE /api/daily-sheet/9", nil)
	repo := persistence.NewDailySheetRepository(b.Client())
	ctx := context.Background()

	_, err := repo.Update(ctx, 9, dailysheet.SaveData{Date: "2026-10-21", ProjectID: 4, TaskID: 5, Hours: decimal.NewFromInt(2)})
	require.NoError(t, err)
	var body map[string]any
	b.LastCall(http.MethodPut, "/api/daily-sheet/9").Decode(t, &body)
	assert.InDelta(t, 5, body["task_id"], 0)

	require.NoError(t, repo.Delete(ctx, 9))
	assert.Len(t, b.CallsTo(http.MethodDelete, "/api/daily-sheet/9"), 1)
}

func TestDailySheetRepository_GetByIDNotFound(t *testing.T) {
	b := itf.NewBackend(t).RespondError("GET /api/daily-sheet/9", http.StatusNotFound, "entry not found")
	repo := persistence.NewDailySheetRepository(b.Client())

	_, err := repo.GetByID(context.Background(), 9)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry not found")
}
