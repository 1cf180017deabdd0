package dtos

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/worktrack/worktrack/modules/timesheets/domain/aggregates/dailysheet"
	"github.com/worktrack/worktrack/pkg/shared"
)

const ns = "Timesheets.Single"

type DailySheetDTO struct {
	shared.Unparsed `form:"-" validate:"-"`

	Date      shared.DateOnly
	ProjectID int64 `validate:"required,gt=0"`
	TaskID    int64 `validate:"gte=0"`
	Hours     decimal.Decimal
	Note      string `validate:"max=1000"`
}

func (d *DailySheetDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Note = strings.TrimSpace(d.Note)
	errs, _ := shared.Validate(ctx, ns, d)
	if _, bad := errs["Date"]; !bad && d.Date.IsZero() {
		errs["Date"] = shared.FieldError(ctx, ns, "Date", "required", "")
	}
	if err := dailysheet.ValidateHours(d.Hours); err != nil {
		if _, ok := errs["Hours"]; !ok {
			errs["Hours"] = shared.FieldError(ctx, ns, "Hours", "hours", dailysheet.MaxHours.String())
		}
	}
	return errs, len(errs) == 0
}

func (d *DailySheetDTO) ToSaveData() dailysheet.SaveData {
	return dailysheet.SaveData{
		Date:      d.Date.String(),
		ProjectID: d.ProjectID,
		TaskID:    d.TaskID,
		Hours:     d.Hours,
		Note:      d.Note,
	}
}

// ExportDTO is the query of the xlsx download.
type ExportDTO struct {
	From   shared.DateOnly `form:"from"`
	To     shared.DateOnly `form:"to"`
	UserID int64           `form:"user_id"`
}
