// Package dailysheet holds the per-user, per-day work hour records.
package dailysheet

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	// MaxHours bounds a single entry and flags overbooked days.
	MaxHours = decimal.NewFromInt(24)

	ErrInvalidHours = errors.New("hours must be greater than 0 and at most 24")
	ErrInvalidRange = errors.New("invalid date range")
)

// ValidateHours accepts 0 < h <= 24.
func ValidateHours(h decimal.Decimal) error {
	if !h.IsPositive() || h.GreaterThan(MaxHours) {
		return errors.Wrapf(ErrInvalidHours, "%s", h.String())
	}
	return nil
}

type DailySheet struct {
	ID          int64
	UserID      int64
	UserName    string
	Date        time.Time
	ProjectID   int64
	ProjectName string
	TaskID      int64
	TaskTitle   string
	Hours       decimal.Decimal
	Note        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type SaveData struct {
	Date      string          `json:"date"`
	ProjectID int64           `json:"project_id"`
	TaskID    int64           `json:"task_id,omitempty"`
	Hours     decimal.Decimal `json:"hours"`
	Note      string          `json:"note"`
}

type FindParams struct {
	UserID    int64
	ProjectID int64
	From      time.Time
	To        time.Time
	Page      int
	Limit     int
}

type Repository interface {
	List(ctx context.Context, params *FindParams) ([]DailySheet, int, error)
	GetByID(ctx context.Context, id int64) (DailySheet, error)
	Create(ctx context.Context, data SaveData) (DailySheet, error)
	Update(ctx context.Context, id int64, data SaveData) (DailySheet, error)
	Delete(ctx context.Context, id int64) error
}
