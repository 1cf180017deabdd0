package dtos

import (
	"context"
	"strings"

	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/maintask"
	"github.com/worktrack/worktrack/pkg/shared"
)

type MainTaskDTO struct {
	shared.Unparsed `form:"-" validate:"-"`

	Title       string `validate:"required,max=255"`
	Description string `validate:"max=5000"`
	DueDate     shared.DateOnly
	Weight      int `validate:"gte=0,lte=100"`
}

func (d *MainTaskDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	return shared.Validate(ctx, "MainTasks.Single", d)
}

func (d *MainTaskDTO) ToSaveData() maintask.SaveData {
	return maintask.SaveData{
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate.String(),
		Weight:      d.Weight,
	}
}
