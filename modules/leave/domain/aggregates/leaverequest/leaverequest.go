// Package leaverequest holds leave requests and their approval state.
package leaverequest

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

type Type string

const (
	TypeAnnual Type = "annual"
	TypeSick   Type = "sick"
	TypeUnpaid Type = "unpaid"
	TypeOther  Type = "other"
)

var Types = []Type{TypeAnnual, TypeSick, TypeUnpaid, TypeOther}

func (t Type) IsValid() bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

var Statuses = []Status{StatusPending, StatusApproved, StatusRejected}

func (s Status) IsValid() bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsDecision reports whether s closes a request.
func (s Status) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

var (
	ErrNotPending      = errors.New("leave request is no longer pending")
	ErrInvalidDecision = errors.New("a decision must approve or reject")
	ErrInvalidRange    = errors.New("end date is before start date")
)

type Request struct {
	ID              int64
	UserID          int64
	UserName        string
	Type            Type
	StartDate       time.Time
	EndDate         time.Time
	Reason          string
	Status          Status
	DecidedBy       string
	DecisionComment string
	DecidedAt       time.Time
	CreatedAt       time.Time
}

// Days counts the calendar days covered, both ends included.
func (r Request) Days() int {
	if r.StartDate.IsZero() || r.EndDate.Before(r.StartDate) {
		return 0
	}
	return int(r.EndDate.Sub(r.StartDate).Hours()/24) + 1
}

func (r Request) IsPending() bool {
	return r.Status == StatusPending
}

type SaveData struct {
	Type      Type   `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

// Validate checks the type and that the end date is not before the start.
func (d SaveData) Validate() error {
	if !d.Type.IsValid() {
		return errors.Errorf("unknown leave type %q", d.Type)
	}
	start, err := time.Parse(time.DateOnly, d.StartDate)
	if err != nil {
		return errors.Wrap(ErrInvalidRange, "start date")
	}
	end, err := time.Parse(time.DateOnly, d.EndDate)
	if err != nil {
		return errors.Wrap(ErrInvalidRange, "end date")
	}
	if end.Before(start) {
		return ErrInvalidRange
	}
	return nil
}

type Decision struct {
	Status  Status `json:"status"`
	Comment string `json:"comment"`
}

type FindParams struct {
	UserID int64
	Status Status
	Page   int
	Limit  int
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]Request, int, error)
	GetByID(ctx context.Context, id int64) (Request, error)
	Create(ctx context.Context, data SaveData) (Request, error)
	Update(ctx context.Context, id int64, data SaveData) (Request, error)
	Delete(ctx context.Context, id int64) error
	SetStatus(ctx context.Context, id int64, d Decision) (Request, error)
}
