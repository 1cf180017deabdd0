package handlers

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/modules/leave/domain/aggregates/leaverequest"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/eventbus"
	"github.com/worktrack/worktrack/pkg/session"
)

func TestLeaveEventsHandler(t *testing.T) {
	logger, hook := test.NewNullLogger()
	bus := eventbus.NewEventPublisher(logger)
	app := application.New(&application.ApplicationOptions{EventBus: bus})
	RegisterLeaveEventHandlers(app, logger)

	mia := session.User{ID: 1, Name: "Mia"}
	bus.Publish(&leaverequest.DecidedEvent{
		Sender: mia,
		Result: leaverequest.Request{ID: 5, UserID: 2},
		Status: leaverequest.StatusRejected,
	})
	bus.Publish(&leaverequest.CancelledEvent{Sender: mia, ID: 6})

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "leave.decided", entries[0].Data["event"])
	assert.Equal(t, "rejected", entries[0].Data["status"])
	assert.Equal(t, int64(2), entries[0].Data["user_id"])
	assert.Equal(t, int64(6), entries[1].Data["request_id"])
}
