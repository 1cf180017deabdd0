package services_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/modules/leave/domain/aggregates/leaverequest"
	"github.com/worktrack/worktrack/modules/leave/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/modules/leave/permissions"
	"github.com/worktrack/worktrack/pkg/authz"
	"github.com/worktrack/worktrack/pkg/itf"
)

func TestLeaveService_MineFiltersBySignedInUser(t *testing.T) {
	f := newFixture(t)
	f.backend.Respond("GET /api/leave", itf.Page([]models.LeaveRequest{{ID: 5, Status: "pending"}}, 1, 1, 25))

	items, total, err := f.leave.Mine(signedIn(t, bo, permissions.LeaveView), 1, 25)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)

	q, err := url.ParseQuery(f.backend.LastCall(http.MethodGet, "/api/leave").Query)
	require.NoError(t, err)
	assert.Equal(t, "2", q.Get("user_id"))
	assert.Empty(t, q.Get("status"))
}

func TestLeaveService_PendingNeedsApprove(t *testing.T) {
	f := newFixture(t)
	f.backend.Respond("GET /api/leave", itf.Page([]models.LeaveRequest{}, 0, 1, 25))

	_, _, err := f.leave.Pending(signedIn(t, bo, permissions.LeaveView), 1, 25)
	var forbidden *authz.ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, permissions.LeaveApprove, forbidden.Permission)
	assert.Empty(t, f.backend.Calls())

	_, _, err = f.leave.Pending(signedIn(t, bo, permissions.LeaveApprove), 1, 25)
	require.NoError(t, err)
	q, err := url.ParseQuery(f.backend.LastCall(http.MethodGet, "/api/leave").Query)
	require.NoError(t, err)
	assert.Equal(t, "pending", q.Get("status"))
	assert.Empty(t, q.Get("user_id"))
}

func TestLeaveService_CreateRejectsReversedRange(t *testing.T) {
	f := newFixture(t)
	ctx := signedIn(t, bo, permissions.LeaveCreate)

	_, err := f.leave.Create(ctx, leaverequest.SaveData{Type: leaverequest.TypeAnnual, StartDate: "2026-10-30", EndDate: "2026-10-26"})
	require.ErrorIs(t, err, leaverequest.ErrInvalidRange)
	assert.Empty(t, f.backend.Calls())
}

func TestLeaveService_UpdateOnlyWhilePending(t *testing.T) {
	f := newFixture(t)
	f.backend.
		Respond("GET /api/leave/5", models.LeaveRequest{ID: 5, Type: "annual", Status: "approved"}).
		Respond("PUT /api/leave/5", models.LeaveRequest{ID: 5})
	ctx := signedIn(t, bo, permissions.LeaveUpdate)

	_, _, err := f.leave.Update(ctx, 5, leaverequest.SaveData{Type: leaverequest.TypeAnnual, StartDate: "2026-10-26", EndDate: "2026-10-27"})
	require.ErrorIs(t, err, leaverequest.ErrNotPending)
	assert.Empty(t, f.backend.CallsTo(http.MethodPut, "/api/leave/5"))
}

func TestLeaveService_UpdateReportsChangedFields(t *testing.T) {
	f := newFixture(t)
	f.backend.
		Respond("GET /api/leave/5", models.LeaveRequest{ID: 5, Type: "annual", StartDate: "2026-10-26", EndDate: "2026-10-27", Status: "pending"}).
		Respond("PUT /api/leave/5", models.LeaveRequest{ID: 5, Type: "annual", StartDate: "2026-10-26", EndDate: "2026-10-27", Reason: "trip", Status: "pending"})
	ctx := signedIn(t, bo, permissions.LeaveUpdate)

	_, fields, err := f.leave.Update(ctx, 5, leaverequest.SaveData{Type: leaverequest.TypeAnnual, StartDate: "2026-10-26", EndDate: "2026-10-27", Reason: "trip"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Reason"}, fields)
}

func TestLeaveService_CancelOnlyWhilePending(t *testing.T) {
	f := newFixture(t)
	f.backend.
		Respond("GET /api/leave/5", models.LeaveRequest{ID: 5, Status: "rejected"}).
		Respond("GET /api/leave/6", models.LeaveRequest{ID: 6, Status: "pending"}).
		Respond("DELETE /api/leave/6", nil)
	ctx := signedIn(t, bo, permissions.LeaveDelete)

	require.ErrorIs(t, f.leave.Cancel(ctx, 5), leaverequest.ErrNotPending)
	require.NoError(t, f.leave.Cancel(ctx, 6))
	assert.Len(t, f.backend.CallsTo(http.MethodDelete, "/api/leave/6"), 1)
	events := f.events.all()
	require.Len(t, events, 1)
	assert.IsType(t, &leaverequest.CancelledEvent{}, events[0])
}

func TestLeaveService_Decide(t *testing.T) {
	f := newFixture(t)
	f.backend.
		Respond("GET /api/leave/5", models.LeaveRequest{ID: 5, Status: "pending"}).
		Respond("PATCH /api/leave/5/status", models.LeaveRequest{ID: 5, Status: "approved"})
	ctx := signedIn(t, bo, permissions.LeaveApprove)

	_, err := f.leave.Decide(ctx, 5, leaverequest.Decision{Status: leaverequest.StatusPending})
	require.ErrorIs(t, err, leaverequest.ErrInvalidDecision)
	assert.Empty(t, f.backend.Calls())

	decided, err := f.leave.Decide(ctx, 5, leaverequest.Decision{Status: leaverequest.StatusApproved, Comment: "enjoy"})
	require.NoError(t, err)
	assert.Equal(t, leaverequest.StatusApproved, decided.Status)

	events := f.events.all()
	require.Len(t, events, 1)
	ev, ok := events[0].(*leaverequest.DecidedEvent)
	require.True(t, ok)
	assert.Equal(t, "enjoy", ev.Comment)
	assert.Equal(t, bo.ID, ev.Sender.ID)
}

func TestLeaveService_DecideNeedsApprove(t *testing.T) {
	f := newFixture(t)

	_, err := f.leave.Decide(signedIn(t, bo, permissions.LeaveView), 5, leaverequest.Decision{Status: leaverequest.StatusApproved})
	require.ErrorIs(t, err, authz.ErrForbidden)
	assert.Empty(t, f.backend.Calls())
}

func TestLeaveService_CountPending(t *testing.T) {
	f := newFixture(t)
	f.backend.Respond("GET /api/leave", itf.Page([]models.LeaveRequest{{ID: 5}}, 3, 1, 1))

	n, err := f.leave.CountPending(signedIn(t, bo, permissions.LeaveApprove))
	require.NoError(t, err)
	assert.Equal(t, "3", n)
}
