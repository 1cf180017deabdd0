package role

import (
	"context"

	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/session"
)

type CreatedEvent struct {
	Sender session.User
	Result Role
}

type UpdatedEvent struct {
	Sender session.User
	Result Role
}

type DeletedEvent struct {
	Sender session.User
	ID     int64
}

// PermissionsChangedEvent fires after the role's permission set was replaced.
type PermissionsChangedEvent struct {
	Sender        session.User
	RoleID        int64
	PermissionIDs []int64
}

func sender(ctx context.Context) session.User {
	u, _ := composables.UseUser(ctx)
	return u
}

func NewCreatedEvent(ctx context.Context, result Role) *CreatedEvent {
	return &CreatedEvent{Sender: sender(ctx), Result: result}
}

func NewUpdatedEvent(ctx context.Context, result Role) *UpdatedEvent {
	return &UpdatedEvent{Sender: sender(ctx), Result: result}
}

func NewDeletedEvent(ctx context.Context, id int64) *DeletedEvent {
	return &DeletedEvent{Sender: sender(ctx), ID: id}
}

func NewPermissionsChangedEvent(ctx context.Context, roleID int64, ids []int64) *PermissionsChangedEvent {
	return &PermissionsChangedEvent{Sender: sender(ctx), RoleID: roleID, PermissionIDs: ids}
}
