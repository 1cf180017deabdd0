// Package handlers logs project and task events.
package handlers

import (
	"github.com/sirupsen/logrus"

	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/maintask"
	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/project"
	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/task"
	"github.com/worktrack/worktrack/pkg/application"
	"github.com/worktrack/worktrack/pkg/changes"
	"github.com/worktrack/worktrack/pkg/session"
)

type ProjectEventsHandler struct {
	logger *logrus.Logger
}

func RegisterProjectEventHandlers(app application.Application, logger *logrus.Logger) *ProjectEventsHandler {
	h := &ProjectEventsHandler{logger: logger}
	bus := app.EventPublisher()
	bus.Subscribe(h.onProjectCreated)
	bus.Subscribe(h.onProjectUpdated)
	bus.Subscribe(h.onProjectDeleted)
	bus.Subscribe(h.onMemberAdded)
	bus.Subscribe(h.onMemberRemoved)
	bus.Subscribe(h.onMainTaskCreated)
	bus.Subscribe(h.onMainTaskUpdated)
	bus.Subscribe(h.onMainTaskDeleted)
	bus.Subscribe(h.onTaskCreated)
	bus.Subscribe(h.onTaskUpdated)
	bus.Subscribe(h.onTaskStatusChanged)
	bus.Subscribe(h.onTaskAssigneesChanged)
	bus.Subscribe(h.onTaskDeleted)
	return h
}

func (h *ProjectEventsHandler) entry(event string, sender session.User) *logrus.Entry {
	return h.logger.WithFields(logrus.Fields{
		"event":     event,
		"sender_id": sender.ID,
	})
}

func (h *ProjectEventsHandler) onProjectCreated(e *project.CreatedEvent) {
	h.entry("project.created", e.Sender).WithField("project_id", e.Result.ID).Info("project created")
}

func (h *ProjectEventsHandler) onProjectUpdated(e *project.UpdatedEvent) {
	h.entry("project.updated", e.Sender).
		WithField("project_id", e.Result.ID).
		WithField("fields", changes.Fields(e.Changes)).
		Info("project updated")
}

func (h *ProjectEventsHandler) onProjectDeleted(e *project.DeletedEvent) {
	h.entry("project.deleted", e.Sender).WithField("project_id", e.ID).Info("project deleted")
}

func (h *ProjectEventsHandler) onMemberAdded(e *project.MemberAddedEvent) {
	h.entry("project.member_added", e.Sender).
		WithField("project_id", e.ProjectID).
		WithField("user_id", e.UserID).
		Info("project member added")
}

func (h *ProjectEventsHandler) onMemberRemoved(e *project.MemberRemovedEvent) {
	h.entry("project.member_removed", e.Sender).
		WithField("project_id", e.ProjectID).
		WithField("user_id", e.UserID).
		Info("project member removed")
}

func (h *ProjectEventsHandler) onMainTaskCreated(e *maintask.CreatedEvent) {
	h.entry("main_task.created", e.Sender).
		WithField("project_id", e.Result.ProjectID).
		WithField("main_task_id", e.Result.ID).
		Info("main task created")
}

func (h *ProjectEventsHandler) onMainTaskUpdated(e *maintask.UpdatedEvent) {
	h.entry("main_task.updated", e.Sender).
		WithField("main_task_id", e.Result.ID).
		WithField("fields", changes.Fields(e.Changes)).
		Info("main task updated")
}

func (h *ProjectEventsHandler) onMainTaskDeleted(e *maintask.DeletedEvent) {
	h.entry("main_task.deleted", e.Sender).
		WithField("project_id", e.ProjectID).
		WithField("main_task_id", e.ID).
		Info("main task deleted")
}

func (h *ProjectEventsHandler) onTaskCreated(e *task.CreatedEvent) {
	h.entry("task.created", e.Sender).
		WithField("task_id", e.Result.ID).
		WithField("parent_id", e.Result.ParentID).
		Info("task created")
}

func (h *ProjectEventsHandler) onTaskUpdated(e *task.UpdatedEvent) {
	h.entry("task.updated", e.Sender).
		WithField("task_id", e.Result.ID).
		WithField("fields", changes.Fields(e.Changes)).
		Info("task updated")
}

func (h *ProjectEventsHandler) onTaskStatusChanged(e *task.StatusChangedEvent) {
	h.entry("task.status_changed", e.Sender).
		WithField("task_id", e.Result.ID).
		WithField("from", e.From).
		WithField("to", e.To).
		Info("task status changed")
}

func (h *ProjectEventsHandler) onTaskAssigneesChanged(e *task.AssigneesChangedEvent) {
	h.entry("task.assignees_changed", e.Sender).
		WithField("task_id", e.Result.ID).
		WithField("user_ids", e.UserIDs).
		Info("task assignees replaced")
}

func (h *ProjectEventsHandler) onTaskDeleted(e *task.DeletedEvent) {
	h.entry("task.deleted", e.Sender).WithField("task_id", e.ID).Info("task deleted")
}
