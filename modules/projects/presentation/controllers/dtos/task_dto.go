package dtos

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/task"
	"github.com/worktrack/worktrack/pkg/shared"
)

type TaskDTO struct {
	shared.Unparsed `form:"-" validate:"-"`

	ProjectID     int64  `validate:"required,gt=0"`
	MainTaskID    int64  `validate:"gte=0"`
	ParentID      int64  `validate:"gte=0"`
	Title         string `validate:"required,max=255"`
	Description   string `validate:"max=20000"`
	Priority      string `validate:"required,oneof=low medium high urgent"`
	Status        string `validate:"required,oneof=todo in_progress review done"`
	DueDate       shared.DateOnly
	EstimateHours decimal.Decimal
}

func (d *TaskDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	errs, _ := shared.Validate(ctx, "Tasks.Single", d)
	if d.EstimateHours.IsNegative() {
		errs["EstimateHours"] = shared.FieldError(ctx, "Tasks.Single", "EstimateHours", "gte", "0")
	}
	return errs, len(errs) == 0
}

func (d *TaskDTO) ToSaveData() task.SaveData {
	return task.SaveData{
		ProjectID:     d.ProjectID,
		MainTaskID:    d.MainTaskID,
		ParentID:      d.ParentID,
		Title:         d.Title,
		Description:   d.Description,
		Priority:      task.Priority(d.Priority),
		Status:        task.Status(d.Status),
		DueDate:       d.DueDate.String(),
		EstimateHours: d.EstimateHours,
	}
}

type StatusDTO struct {
	Status string `validate:"required,oneof=todo in_progress review done"`
}

func (d *StatusDTO) Ok(ctx context.Context) (map[string]string, bool) {
	return shared.Validate(ctx, "Tasks.Single", d)
}

type AssigneesDTO struct {
	UserIDs []int64 `form:"user_ids"`
}
