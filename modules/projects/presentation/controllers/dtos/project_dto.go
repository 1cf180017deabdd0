package dtos

import (
	"context"
	"strings"

	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/project"
	"github.com/worktrack/worktrack/pkg/shared"
)

type ProjectDTO struct {
	shared.Unparsed `form:"-" validate:"-"`

	Name        string `validate:"required,max=255"`
	Code        string `validate:"required,max=32"`
	Description string `validate:"max=5000"`
	Status      string `validate:"required,oneof=planned active on_hold completed"`
	StartDate   shared.DateOnly
	EndDate     shared.DateOnly
	ManagerID   int64 `validate:"gte=0"`
}

func (d *ProjectDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Name = strings.TrimSpace(d.Name)
	d.Code = strings.ToUpper(strings.TrimSpace(d.Code))
	d.Description = strings.TrimSpace(d.Description)
	errs, _ := shared.Validate(ctx, "Projects.Single", d)
	shared.CheckDateRange(ctx, "Projects.Single", errs, "StartDate", d.StartDate, "EndDate", d.EndDate)
	return errs, len(errs) == 0
}

func (d *ProjectDTO) ToSaveData() project.SaveData {
	return project.SaveData{
		Name:        d.Name,
		Code:        d.Code,
		Description: d.Description,
		Status:      project.Status(d.Status),
		StartDate:   d.StartDate.String(),
		EndDate:     d.EndDate.String(),
		ManagerID:   d.ManagerID,
	}
}

type MemberDTO struct {
	UserID int64 `validate:"required,gt=0"`
}

func (d *MemberDTO) Ok(ctx context.Context) (map[string]string, bool) {
	return shared.Validate(ctx, "Projects.Members", d)
}
