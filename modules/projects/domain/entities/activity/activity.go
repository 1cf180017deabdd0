// Package activity is the read-only feed of what happened to a project or a
// task. The backend records it.
package activity

import (
	"context"
	"time"
)

type Activity struct {
	ID        int64
	Action    string
	ActorID   int64
	ActorName string
	Subject   string
	Message   string
	CreatedAt time.Time
}

type Repository interface {
	ForProject(ctx context.Context, projectID int64, limit int) ([]Activity, error)
	ForTask(ctx context.Context, taskID int64, limit int) ([]Activity, error)
}
