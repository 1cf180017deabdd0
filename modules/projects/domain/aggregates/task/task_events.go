package task

import (
	"context"

	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/session"
)

type CreatedEvent struct {
	Sender session.User
	Result Task
}

type UpdatedEvent struct {
	Sender  session.User
	Result  Task
	Changes []byte
}

type StatusChangedEvent struct {
	Sender session.User
	Result Task
	From   Status
	To     Status
}

type AssigneesChangedEvent struct {
	Sender  session.User
	Result  Task
	UserIDs []int64
}

type DeletedEvent struct {
	Sender session.User
	ID     int64
}

func sender(ctx context.Context) session.User {
	u, _ := composables.UseUser(ctx)
	return u
}

func NewCreatedEvent(ctx context.Context, result Task) *CreatedEvent {
	return &CreatedEvent{Sender: sender(ctx), Result: result}
}

func NewUpdatedEvent(ctx context.Context, result Task, changes []byte) *UpdatedEvent {
	return &UpdatedEvent{Sender: sender(ctx), Result: result, Changes: changes}
}

func NewStatusChangedEvent(ctx context.Context, result Task, from Status) *StatusChangedEvent {
	return &StatusChangedEvent{Sender: sender(ctx), Result: result, From: from, To: result.Status}
}

func NewAssigneesChangedEvent(ctx context.Context, result Task, userIDs []int64) *AssigneesChangedEvent {
	return &AssigneesChangedEvent{Sender: sender(ctx), Result: result, UserIDs: userIDs}
}

func NewDeletedEvent(ctx context.Context, id int64) *DeletedEvent {
	return &DeletedEvent{Sender: sender(ctx), ID: id}
}
