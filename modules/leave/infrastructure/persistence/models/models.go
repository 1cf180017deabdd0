// Package models mirrors the leave records of the backend.
package models

import "time"

type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type LeaveRequest struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	User            *Ref       `json:"user,omitempty"`
	Type            string     `json:"type"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	DecidedBy       *Ref       `json:"decided_by,omitempty"`
	DecisionComment string     `json:"decision_comment"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
