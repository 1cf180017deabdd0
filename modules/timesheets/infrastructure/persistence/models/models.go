// Package models mirrors the daily sheet records of the backend.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type TaskRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type DailySheet struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	User      *Ref            `json:"user,omitempty"`
	Date      string          `json:"date"`
	ProjectID int64           `json:"project_id"`
	Project   *Ref            `json:"project,omitempty"`
	TaskID    int64           `json:"task_id"`
	Task      *TaskRef        `json:"task,omitempty"`
	Hours     decimal.Decimal `json:"hours"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
