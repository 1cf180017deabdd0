package dtos

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/worktrack/worktrack/pkg/shared"
)

func TestDailySheetDTO_Ok(t *testing.T) {
	dto := &DailySheetDTO{
		Date:      shared.DateOnly(time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)),
		ProjectID: 4,
		Hours:     decimal.RequireFromString("7.5"),
		Note:      "  standup ",
	}
	errs, ok := dto.Ok(context.Background())
	assert.True(t, ok, errs)
	assert.Equal(t, "standup", dto.Note)

	data := dto.ToSaveData()
	assert.Equal(t, "2026-10-20", data.Date)
	assert.Zero(t, data.TaskID)
}

func TestDailySheetDTO_RequiresDateProjectAndHours(t *testing.T) {
	for _, hours := range []string{"0", "-1", "24.25"} {
		dto := &DailySheetDTO{Hours: decimal.RequireFromString(hours)}
		errs, ok := dto.Ok(context.Background())
		assert.False(t, ok)
		assert.Contains(t, errs, "Date")
		assert.Contains(t, errs, "ProjectID")
		assert.Contains(t, errs, "Hours", hours)
	}
}
