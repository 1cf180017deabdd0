// Package handlers logs leave request events.
package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/worktrack/worktrack/modules/leave/domain/aggregates/leaverequest"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/changes"
)

type LeaveEventsHandler struct {
	logger *logrus.Logger
}

func RegisterLeaveEventHandlers(app application.Application, logger *logrus.Logger) *LeaveEventsHandler {
	h := &LeaveEventsHandler{logger: logger}
	bus := app.EventPublisher()
	bus.Subscribe(h.onCreated)
	bus.Subscribe(h.onUpdated)
	bus.Subscribe(h.onCancelled)
	bus.Subscribe(h.onDecided)
	return h
}

func (h *LeaveEventsHandler) onCreated(e *leaverequest.CreatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"event":      "leave.created",
		"sender_id":  e.Sender.ID,
		"request_id": e.Result.ID,
		"type":       string(e.Result.Type),
		"days":       e.Result.Days(),
	}).Info("leave requested")
}

func (h *LeaveEventsHandler) onUpdated(e *leaverequest.UpdatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"event":      "leave.updated",
		"sender_id":  e.Sender.ID,
		"request_id": e.Result.ID,
		"fields":     changes.Fields(e.Changes),
	}).Info("leave request updated")
}

func (h *LeaveEventsHandler) onCancelled(e *leaverequest.CancelledEvent) {
	h.logger.WithFields(logrus.Fields{
		"event":      "leave.cancelled",
		"sender_id":  e.Sender.ID,
		"request_id": e.ID,
	}).Info("leave request cancelled")
}

func (h *LeaveEventsHandler) onDecided(e *leaverequest.DecidedEvent) {
	h.logger.WithFields(logrus.Fields{
		"event":      "leave.decided",
		"sender_id":  e.Sender.ID,
		"request_id": e.Result.ID,
		"user_id":    e.Result.UserID,
		"status":     string(e.Status),
	}).Info("leave request decided")
}
