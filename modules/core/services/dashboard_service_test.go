package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/modules/core/services"
	"github.com/worktrack/worktrack/pkg/session"
)

func TestDashboardService_Counters(t *testing.T) {
	svc := services.NewDashboardService()
	svc.Register(
		services.Counter{Key: "projects", Permission: "project.view", Fetch: func(context.Context) (string, error) {
			return "12", nil
		}},
		services.Counter{Key: "leave", Permission: "leave.approve", Fetch: func(context.Context) (string, error) {
			t.Fatal("hidden counter must not be fetched")
			return "", nil
		}},
		services.Counter{Key: "hours", Fetch: func(context.Context) (string, error) {
			return "", errors.New("backend down")
		}},
	)

	ctx := signedIn(t, session.User{ID: 1}, "project.view")
	values := svc.Counters(ctx)
	require.Len(t, values, 2)

	assert.Equal(t, "projects", values[0].Key)
	assert.Equal(t, "12", values[0].Value)
	assert.False(t, values[0].Failed)

	assert.Equal(t, "hours", values[1].Key)
	assert.Equal(t, services.Unavailable, values[1].Value)
	assert.True(t, values[1].Failed)
}
