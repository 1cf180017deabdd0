package composables

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/pkg/authz"
	"github.com/worktrack/worktrack/pkg/session"
)

func TestClampPagination(t *testing.T) {
	cases := []struct {
		name        string
		page, limit string
		want        PaginationParams
	}{
		{"defaults", "", "", PaginationParams{Page: 1, Limit: 25}},
		{"negative page", "-4", "10", PaginationParams{Page: 1, Limit: 10}},
		{"zero limit", "2", "0", PaginationParams{Page: 2, Limit: 1}},
		{"limit above max", "3", "1000", PaginationParams{Page: 3, Limit: 100}},
		{"garbage", "x", "y", PaginationParams{Page: 1, Limit: 25}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClampPagination(tc.page, tc.limit, 25, 100))
		})
	}
	assert.Equal(t, 20, PaginationParams{Page: 3, Limit: 10}.Offset())
}

func TestSessionHelpers(t *testing.T) {
	ctx := context.Background()
	_, err := UseSession(ctx)
	require.ErrorIs(t, err, ErrNoSession)
	assert.False(t, CanUser(ctx, "project.view"))

	s := session.New("tok", session.User{ID: 7, Name: "Ada"}, []string{"project.*"}, time.Hour)
	ctx = WithSession(ctx, s)

	u, err := UseUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.True(t, CanUser(ctx, "project.delete"))
	assert.False(t, CanUser(ctx, "leave.approve"))
}

func TestRequirePermission_RecordsMissing(t *testing.T) {
	state := authz.NewViewState("7", []string{"task.view"})
	ctx := WithAuthzViewState(context.Background(), state)

	require.NoError(t, RequirePermission(ctx, "task.view"))
	err := RequirePermission(ctx, "task.delete")
	require.ErrorIs(t, err, authz.ErrForbidden)
	assert.Equal(t, []string{"task.delete"}, state.MissingPermissions)
}

func TestGetLastQueryParam(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/tasks?status=todo&status=done&q=x", nil)
	assert.Equal(t, "done", GetLastQueryParam(r, "status"))
	assert.Equal(t, map[string]string{"status": "done", "q": "x"}, GetLastQueryParams(r, "status", "q", "missing"))
}

func TestUseLogger_FallsBack(t *testing.T) {
	assert.NotNil(t, UseLogger(context.Background()))
}
