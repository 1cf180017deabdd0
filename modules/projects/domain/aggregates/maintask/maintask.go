// Package maintask holds the top-level work packages of a project. Tasks hang
// under a main task.
package maintask

import (
	"context"
	"time"

	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/session"
)

type MainTask struct {
	ID          int64
	ProjectID   int64
	Title       string
	Description string
	DueDate     time.Time
	// Weight is the share of the project this main task accounts for.
	Weight     int
	Progress   int
	TasksCount int
	CreatedAt  time.Time
}

type SaveData struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date,omitempty"`
	Weight      int    `json:"weight"`
}

type Repository interface {
	ListByProject(ctx context.Context, projectID int64) ([]MainTask, error)
	GetByID(ctx context.Context, id int64) (MainTask, error)
	Create(ctx context.Context, projectID int64, data SaveData) (MainTask, error)
	Update(ctx context.Context, id int64, data SaveData) (MainTask, error)
	Delete(ctx context.Context, id int64) error
}

type CreatedEvent struct {
	Sender session.User
	Result MainTask
}

type UpdatedEvent struct {
	Sender  session.User
	Result  MainTask
	Changes []byte
}

type DeletedEvent struct {
	Sender    session.User
	ProjectID int64
	ID        int64
}

func sender(ctx context.Context) session.User {
	u, _ := composables.UseUser(ctx)
	return u
}

func NewCreatedEvent(ctx context.Context, result MainTask) *CreatedEvent {
	return &CreatedEvent{Sender: sender(ctx), Result: result}
}

func NewUpdatedEvent(ctx context.Context, result MainTask, changes []byte) *UpdatedEvent {
	return &UpdatedEvent{Sender: sender(ctx), Result: result, Changes: changes}
}

func NewDeletedEvent(ctx context.Context, projectID, id int64) *DeletedEvent {
	return &DeletedEvent{Sender: sender(ctx), ProjectID: projectID, ID: id}
}
