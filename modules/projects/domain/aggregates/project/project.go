package project

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

type Status string

const (
	StatusPlanned   Status = "planned"
	StatusActive    Status = "active"
	StatusOnHold    Status = "on_hold"
	StatusCompleted Status = "completed"
)

var Statuses = []Status{StatusPlanned, StatusActive, StatusOnHold, StatusCompleted}

var ErrInvalidStatus = errors.New("invalid project status")

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", errors.Wrapf(ErrInvalidStatus, "%q", s)
	}
	return st, nil
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPlanned, StatusActive, StatusOnHold, StatusCompleted:
		return true
	}
	return false
}

type Project struct {
	ID           int64
	Name         string
	Code         string
	Description  string
	Status       Status
	StartDate    time.Time
	EndDate      time.Time
	ManagerID    int64
	ManagerName  string
	MembersCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Member is a user assigned to a project.
type Member struct {
	UserID int64
	Name   string
	Email  string
	Role   string
}

type SaveData struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	ManagerID   int64  `json:"manager_id,omitempty"`
}

type FindParams struct {
	Page   int
	Limit  int
	Search string
	Status Status
	// MemberID limits the list to projects the user belongs to.
	MemberID int64
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Project, int, error)
	GetByID(ctx context.Context, id int64) (Project, error)
	Create(ctx context.Context, data SaveData) (Project, error)
	Update(ctx context.Context, id int64, data SaveData) (Project, error)
	Delete(ctx context.Context, id int64) error

	Members(ctx context.Context, id int64) ([]Member, error)
	AddMember(ctx context.Context, id, userID int64) error
	RemoveMember(ctx context.Context, id, userID int64) error
}
