// Package models mirrors the JSON records the backend returns for projects,
// tasks, files and activity.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Project struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	ManagerID    int64     `json:"manager_id"`
	Manager      *Ref      `json:"manager,omitempty"`
	MembersCount int       `json:"members_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Member struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type MemberInput struct {
	UserID int64 `json:"user_id"`
}

type MainTask struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"project_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     string    `json:"due_date"`
	Weight      int       `json:"weight"`
	Progress    int       `json:"progress"`
	TasksCount  int       `json:"tasks_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type TaskRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type Task struct {
	ID            int64           `json:"id"`
	ProjectID     int64           `json:"project_id"`
	Project       *Ref            `json:"project,omitempty"`
	MainTaskID    int64           `json:"main_task_id"`
	MainTask      *TaskRef        `json:"main_task,omitempty"`
	ParentID      int64           `json:"parent_id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	Priority      string          `json:"priority"`
	Status        string          `json:"status"`
	DueDate       string          `json:"due_date"`
	EstimateHours decimal.Decimal `json:"estimate_hours"`
	Progress      int             `json:"progress"`
	Assignees     []Ref           `json:"assignees"`
	SubTasksCount int             `json:"sub_tasks_count"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type Assignees struct {
	UserIDs []int64 `json:"user_ids"`
}

type File struct {
	ID         int64     `json:"id"`
	ProjectID  int64     `json:"project_id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mime_type"`
	UploadedBy *Ref      `json:"uploaded_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type Activity struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Actor     *Ref      `json:"actor,omitempty"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
