package user

import (
	"context"

	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/session"
)

type CreatedEvent struct {
	Sender session.User
	Result User
}

type UpdatedEvent struct {
	Sender session.User
	Result User
	// Changes is the JSON patch between the previous and the saved record.
	Changes []byte
}

type DeletedEvent struct {
	Sender session.User
	ID     int64
}

func sender(ctx context.Context) session.User {
	u, _ := composables.UseUser(ctx)
	return u
}

func NewCreatedEvent(ctx context.Context, result User) *CreatedEvent {
	return &CreatedEvent{Sender: sender(ctx), Result: result}
}

func NewUpdatedEvent(ctx context.Context, result User, changes []byte) *UpdatedEvent {
	return &UpdatedEvent{Sender: sender(ctx), Result: result, Changes: changes}
}

func NewDeletedEvent(ctx context.Context, id int64) *DeletedEvent {
	return &DeletedEvent{Sender: sender(ctx), ID: id}
}
