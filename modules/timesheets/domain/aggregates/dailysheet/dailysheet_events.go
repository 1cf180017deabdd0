package dailysheet

import (
	"context"

	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/session"
)

type CreatedEvent struct {
	Sender session.User
	Result DailySheet
}

type UpdatedEvent struct {
	Sender session.User
	Result DailySheet
	// Changes is the JSON patch between the previous and the saved entry.
	Changes []byte
}

type DeletedEvent struct {
	Sender session.User
	ID     int64
}

type ExportedEvent struct {
	Sender session.User
	UserID int64
	From   string
	To     string
	Rows   int
}

func sender(ctx context.Context) session.User {
	u, _ := composables.UseUser(ctx)
	return u
}

func NewCreatedEvent(ctx context.Context, result DailySheet) *CreatedEvent {
	return &CreatedEvent{Sender: sender(ctx), Result: result}
}

func NewUpdatedEvent(ctx context.Context, result DailySheet, changes []byte) *UpdatedEvent {
	return &UpdatedEvent{Sender: sender(ctx), Result: result, Changes: changes}
}

func NewDeletedEvent(ctx context.Context, id int64) *DeletedEvent {
	return &DeletedEvent{Sender: sender(ctx), ID: id}
}

func NewExportedEvent(ctx context.Context, userID int64, from, to string, rows int) *ExportedEvent {
	return &ExportedEvent{Sender: sender(ctx), UserID: userID, From: from, To: to, Rows: rows}
}
