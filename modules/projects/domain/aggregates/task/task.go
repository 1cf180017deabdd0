package task

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

var Statuses = []Status{StatusTodo, StatusInProgress, StatusReview, StatusDone}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

var (
	ErrInvalidStatus = errors.New("invalid task status")
	// ErrNestedSubTask is returned when a sub-task would get its own sub-task.
	ErrNestedSubTask = errors.New("sub-tasks cannot have sub-tasks")
)

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", errors.Wrapf(ErrInvalidStatus, "%q", s)
	}
	return st, nil
}

func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

func (s Status) IsOpen() bool {
	return s != StatusDone
}

type Assignee struct {
	UserID int64
	Name   string
}

type Task struct {
	ID            int64
	ProjectID     int64
	ProjectName   string
	MainTaskID    int64
	MainTaskTitle string
	// ParentID is set on sub-tasks.
	ParentID      int64
	Title         string
	Description   string
	Priority      Priority
	Status        Status
	DueDate       time.Time
	EstimateHours decimal.Decimal
	Progress      int
	Assignees     []Assignee
	SubTasksCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (t Task) IsSubTask() bool {
	return t.ParentID > 0
}

func (t Task) IsAssigned(userID int64) bool {
	for _, a := range t.Assignees {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

func (t Task) AssigneeIDs() []int64 {
	out := make([]int64, 0, len(t.Assignees))
	for _, a := range t.Assignees {
		out = append(out, a.UserID)
	}
	return out
}

type SaveData struct {
	ProjectID     int64           `json:"project_id"`
	MainTaskID    int64           `json:"main_task_id,omitempty"`
	ParentID      int64           `json:"parent_id,omitempty"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Priority      Priority        `json:"priority"`
	Status        Status          `json:"status"`
	DueDate       string          `json:"due_date,omitempty"`
	EstimateHours decimal.Decimal `json:"estimate_hours"`
}

// StatusPatch is the document the status endpoint merge-patches.
type StatusPatch struct {
	Status   Status `json:"status"`
	Progress int    `json:"progress"`
}

type FindParams struct {
	Page       int
	Limit      int
	Search     string
	ProjectID  int64
	MainTaskID int64
	ParentID   int64
	Status     Status
	AssigneeID int64
	// OpenOnly drops done tasks.
	OpenOnly bool
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Task, int, error)
	GetByID(ctx context.Context, id int64) (Task, error)
	Create(ctx context.Context, data SaveData) (Task, error)
	Update(ctx context.Context, id int64, data SaveData) (Task, error)
	Delete(ctx context.Context, id int64) error
	// PatchStatus sends an RFC 7386 merge patch of StatusPatch.
	PatchStatus(ctx context.Context, id int64, patch []byte) (Task, error)
	SetAssignees(ctx context.Context, id int64, userIDs []int64) (Task, error)
}
