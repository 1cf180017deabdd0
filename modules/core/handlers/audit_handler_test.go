package handlers

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/modules/core/domain/aggregates/role"
	"github.com/worktrack/worktrack/modules/core/domain/aggregates/user"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/eventbus"
	"github.com/worktrack/worktrack/pkg/session"
)

func TestAuditEventsHandler_LogsUserAndRoleEvents(t *testing.T) {
	logger, hook := test.NewNullLogger()
	bus := eventbus.NewEventPublisher(logger)
	app := application.New(&application.ApplicationOptions{EventBus: bus})
	RegisterAuditEventHandlers(app, logger)

	admin := session.User{ID: 1, Name: "Admin"}
	bus.Publish(&user.UpdatedEvent{
		Sender:  admin,
		Result:  user.User{ID: 7},
		Changes: []byte(`[{"op":"replace","path":"/Name","value":"Bo"}]`),
	})
	bus.Publish(&role.PermissionsChangedEvent{Sender: admin, RoleID: 3, PermissionIDs: []int64{1, 2}})

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "user.updated", entries[0].Data["event"])
	assert.Equal(t, []string{"Name"}, entries[0].Data["fields"])
	assert.Equal(t, logrus.InfoLevel, entries[0].Level)
	assert.Equal(t, "role.permissions_changed", entries[1].Data["event"])
	assert.Equal(t, 2, entries[1].Data["permission_count"])
}
