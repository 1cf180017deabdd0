package leaverequest

import (
	"context"

	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/session"
)

type CreatedEvent struct {
	Sender session.User
	Result Request
}

type UpdatedEvent struct {
	Sender  session.User
	Result  Request
	Changes []byte
}

type CancelledEvent struct {
	Sender session.User
	ID     int64
}

// DecidedEvent is published when an approver approves or rejects a request.
type DecidedEvent struct {
	Sender  session.User
	Result  Request
	Status  Status
	Comment string
}

func sender(ctx context.Context) session.User {
	u, _ := composables.UseUser(ctx)
	return u
}

func NewCreatedEvent(ctx context.Context, result Request) *CreatedEvent {
	return &CreatedEvent{Sender: sender(ctx), Result: result}
}

func NewUpdatedEvent(ctx context.Context, result Request, changes []byte) *UpdatedEvent {
	return &UpdatedEvent{Sender: sender(ctx), Result: result, Changes: changes}
}

func NewCancelledEvent(ctx context.Context, id int64) *CancelledEvent {
	return &CancelledEvent{Sender: sender(ctx), ID: id}
}

func NewDecidedEvent(ctx context.Context, result Request, d Decision) *DecidedEvent {
	return &DecidedEvent{Sender: sender(ctx), Result: result, Status: d.Status, Comment: d.Comment}
}
