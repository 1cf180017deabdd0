// Package handlers logs daily sheet events.
package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/worktrack/worktrack/modules/timesheets/domain/aggregates/dailysheet"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/changes"
)

type TimesheetEventsHandler struct {
	logger *logrus.Logger
}

func RegisterTimesheetEventHandlers(app application.Application, logger *logrus.Logger) *TimesheetEventsHandler {
	h := &TimesheetEventsHandler{logger: logger}
	bus := app.EventPublisher()
	bus.Subscribe(h.onCreated)
	bus.Subscribe(h.onUpdated)
	bus.Subscribe(h.onDeleted)
	bus.Subscribe(h.onExported)
	return h
}

func (h *TimesheetEventsHandler) onCreated(e *dailysheet.CreatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"event":     "daily_sheet.created",
		"sender_id": e.Sender.ID,
		"sheet_id":  e.Result.ID,
		"hours":     e.Result.Hours.String(),
	}).Info("daily sheet created")
}

func (h *TimesheetEventsHandler) onUpdated(e *dailysheet.UpdatedEvent) {
	h.logger.WithFields(logrus.Fields{
		"event":     "daily_sheet.updated",
		"sender_id": e.Sender.ID,
		"sheet_id":  e.Result.ID,
		"fields":    changes.Fields(e.Changes),
	}).Info("daily sheet updated")
}

func (h *TimesheetEventsHandler) onDeleted(e *dailysheet.DeletedEvent) {
	h.logger.WithFields(logrus.Fields{
		"event":     "daily_sheet.deleted",
		"sender_id": e.Sender.ID,
		"sheet_id":  e.ID,
	}).Info("daily sheet deleted")
}

func (h *TimesheetEventsHandler) onExported(e *dailysheet.ExportedEvent) {
	h.logger.WithFields(logrus.Fields{
		"event":     "daily_sheet.exported",
		"sender_id": e.Sender.ID,
		"user_id":   e.UserID,
		"from":      e.From,
		"to":        e.To,
		"rows":      e.Rows,
	}).Info("timesheet exported")
}
