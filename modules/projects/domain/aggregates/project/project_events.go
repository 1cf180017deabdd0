package project

import (
	"context"

	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/session"
)

type CreatedEvent struct {
	Sender session.User
	Result Project
}

type UpdatedEvent struct {
	Sender session.User
	Result Project
	// Changes is the JSON patch between the previous and the saved record.
	Changes []byte
}

type DeletedEvent struct {
	Sender session.User
	ID     int64
}

type MemberAddedEvent struct {
	Sender    session.User
	ProjectID int64
	UserID    int64
}

type MemberRemovedEvent struct {
	Sender    session.User
	ProjectID int64
	UserID    int64
}

func sender(ctx context.Context) session.User {
	u, _ := composables.UseUser(ctx)
	return u
}

func NewCreatedEvent(ctx context.Context, result Project) *CreatedEvent {
	return &CreatedEvent{Sender: sender(ctx), Result: result}
}

func NewUpdatedEvent(ctx context.Context, result Project, changes []byte) *UpdatedEvent {
	return &UpdatedEvent{Sender: sender(ctx), Result: result, Changes: changes}
}

func NewDeletedEvent(ctx context.Context, id int64) *DeletedEvent {
	return &DeletedEvent{Sender: sender(ctx), ID: id}
}

func NewMemberAddedEvent(ctx context.Context, projectID, userID int64) *MemberAddedEvent {
	return &MemberAddedEvent{Sender: sender(ctx), ProjectID: projectID, UserID: userID}
}

func NewMemberRemovedEvent(ctx context.Context, projectID, userID int64) *MemberRemovedEvent {
	return &MemberRemovedEvent{Sender: sender(ctx), ProjectID: projectID, UserID: userID}
}
