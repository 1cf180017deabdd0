package persistence_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/modules/leave/domain/aggregates/leaverequest"
	"github.com/worktrack/worktrack/modules/leave/infrastructure/persistence"
	"github.com/worktrack/worktrack/modules/leave/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/pkg/itf"
)

func TestLeaveRepository_List(t *testing.T) {
	decided := time.Date(2026, 10, 2, 9, 0, 0, 0, time.UTC)
	b := itf.NewBackend(t).Respond("GET /api/leave", itf.Page([]models.LeaveRequest{
		{
			ID:        5,
			User:      &models.Ref{ID: 2, Name: "Bo"},
			Type:      "annual",
			StartDate: "2026-10-26T00:00:00Z",
			EndDate:   "2026-10-30",
			Status:    "approved",
			DecidedBy: &models.Ref{ID: 1, Name: "Mia"},
			DecidedAt: &decided,
		},
	}, 1, 1, 25))
	repo := persistence.NewLeaveRepository(b.Client())

	items, total, err := repo.GetPaginated(context.Background(), &leaverequest.FindParams{
		UserID: 2,
		Status: leaverequest.StatusApproved,
		Page:   1,
		Limit:  25,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	r := items[0]
	assert.Equal(t, int64(2), r.UserID)
	assert.Equal(t, "Bo", r.UserName)
	assert.Equal(t, leaverequest.TypeAnnual, r.Type)
	assert.Equal(t, 5, r.Days())
	assert.Equal(t, "Mia", r.DecidedBy)
	assert.Equal(t, decided, r.DecidedAt)

	call := b.LastCall(http.MethodGet, "/api/leave")
	assert.Equal(t, "limit=25&page=1&status=approved&user_id=2", call.Query)
}

func TestLeaveRepository_MissingStatusIsPending(t *testing.T) {
	b := itf.NewBackend(t).Respond("GET /api/leave/5", models.LeaveRequest{ID: 5, Type: "sick"})
	repo := persistence.NewLeaveRepository(b.Client())

	r, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, r.IsPending())
}

func TestLeaveRepository_CreateAndDecide(t *testing.T) {
	b := itf.NewBackend(t).
		Respond("POST /api/leave", models.LeaveRequest{ID: 5, Status: "pending"}).
		Respond("PATCH /api/leave/5/status", models.LeaveRequest{ID: 5, Status: "rejected"})
	repo := persistence.NewLeaveRepository(b.Client())
	ctx := context.Background()

	_, err := repo.Create(ctx, leaverequest.SaveData{
		Type:      leaverequest.TypeSick,
		StartDate: "2026-10-20",
		EndDate:   "2026-10-21",
		Reason:    "flu",
	})
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"sick","start_date":"2026-10-20","end_date":"2026-10-21","reason":"flu"}`,
		string(b.LastCall(http.MethodPost, "/api/leave").Body))

	r, err := repo.SetStatus(ctx, 5, leaverequest.Decision{Status: leaverequest.StatusRejected, Comment: "release week"})
	require.NoError(t, err)
	assert.Equal(t, leaverequest.StatusRejected, r.Status)
	assert.JSONEq(t, `{"status":"rejected","comment":"release week"}`,
		string(b.LastCall(http.MethodPatch, "/api/leave/5/status").Body))
}
