package persistence

import (
	"time"

	"github.com/worktrack/worktrack/modules/timesheets/domain/aggregates/dailysheet"
	"github.com/worktrack/worktrack/modules/timesheets/infrastructure/persistence/models"
)

func parseDate(s string) time.Time {
	if len(s) > len(time.DateOnly) {
		s = s[:len(time.DateOnly)]
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func ToDomainDailySheet(m models.DailySheet) dailysheet.DailySheet {
	d := dailysheet.DailySheet{
		ID:        m.ID,
		UserID:    m.UserID,
		Date:      parseDate(m.Date),
		ProjectID: m.ProjectID,
		TaskID:    m.TaskID,
		Hours:     m.Hours,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.User != nil {
		d.UserName = m.User.Name
		if d.UserID == 0 {
			d.UserID = m.User.ID
		}
	}
	if m.Project != nil {
		d.ProjectName = m.Project.Name
		if d.ProjectID == 0 {
			d.ProjectID = m.Project.ID
		}
	}
	if m.Task != nil {
		d.TaskTitle = m.Task.Title
		if d.TaskID == 0 {
			d.TaskID = m.Task.ID
		}
	}
	return d
}
