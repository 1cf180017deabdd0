// Package handlers logs the core domain events for auditing.
package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/worktrack/worktrack/modules/core/domain/aggregates/role"
	"github.com/worktrack/worktrack/modules/core/domain/aggregates/user"
	"github.com/worktrack/worktrack/modules/core/domain/entities/authn"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/changes"
	"github.com/worktrack/worktrack/pkg/session"
)

type AuditEventsHandler struct {
	logger *logrus.Logger
}

func RegisterAuditEventHandlers(app application.Application, logger *logrus.Logger) *AuditEventsHandler {
	h := &AuditEventsHandler{logger: logger}
	bus := app.EventPublisher()
	bus.Subscribe(h.onLoggedIn)
	bus.Subscribe(h.onLoggedOut)
	bus.Subscribe(h.onUserCreated)
	bus.Subscribe(h.onUserUpdated)
	bus.Subscribe(h.onUserDeleted)
	bus.Subscribe(h.onRoleCreated)
	bus.Subscribe(h.onRoleUpdated)
	bus.Subscribe(h.onRoleDeleted)
	bus.Subscribe(h.onRolePermissionsChanged)
	return h
}

func (h *AuditEventsHandler) entry(event string, sender session.User) *logrus.Entry {
	return h.logger.WithFields(logrus.Fields{
		"event":     event,
		"sender_id": sender.ID,
	})
}

func (h *AuditEventsHandler) onLoggedIn(e *authn.LoggedInEvent) {
	h.entry("auth.logged_in", e.User).Info("user signed in")
}

func (h *AuditEventsHandler) onLoggedOut(e *authn.LoggedOutEvent) {
	h.entry("auth.logged_out", e.User).Info("user signed out")
}

func (h *AuditEventsHandler) onUserCreated(e *user.CreatedEvent) {
	h.entry("user.created", e.Sender).WithField("user_id", e.Result.ID).Info("user created")
}

func (h *AuditEventsHandler) onUserUpdated(e *user.UpdatedEvent) {
	h.entry("user.updated", e.Sender).
		WithField("user_id", e.Result.ID).
		WithField("fields", changes.Fields(e.Changes)).
		Info("user updated")
}

func (h *AuditEventsHandler) onUserDeleted(e *user.DeletedEvent) {
	h.entry("user.deleted", e.Sender).WithField("user_id", e.ID).Info("user deleted")
}

func (h *AuditEventsHandler) onRoleCreated(e *role.CreatedEvent) {
	h.entry("role.created", e.Sender).WithField("role_id", e.Result.ID).Info("role created")
}

func (h *AuditEventsHandler) onRoleUpdated(e *role.UpdatedEvent) {
	h.entry("role.updated", e.Sender).WithField("role_id", e.Result.ID).Info("role updated")
}

func (h *AuditEventsHandler) onRoleDeleted(e *role.DeletedEvent) {
	h.entry("role.deleted", e.Sender).WithField("role_id", e.ID).Info("role deleted")
}

func (h *AuditEventsHandler) onRolePermissionsChanged(e *role.PermissionsChangedEvent) {
	h.entry("role.permissions_changed", e.Sender).
		WithField("role_id", e.RoleID).
		WithField("permission_count", len(e.PermissionIDs)).
		Info("role permissions replaced")
}
