package mappers

import (
	"strconv"
	"time"

	"github.com/worktrack/worktrack/modules/timesheets/domain/aggregates/dailysheet"
	"github.com/worktrack/worktrack/modules/timesheets/presentation/viewmodels"
	"github.com/worktrack/worktrack/pkg/constants"
)

func id(v int64) string {
	if v <= 0 {
		return ""
	}
	return strconv.FormatInt(v, 10)
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(constants.DateFormat)
}

func DailySheetToViewModel(s dailysheet.DailySheet) viewmodels.DailySheet {
	return viewmodels.DailySheet{
		ID:          id(s.ID),
		UserID:      id(s.UserID),
		UserName:    s.UserName,
		Date:        date(s.Date),
		ProjectID:   id(s.ProjectID),
		ProjectName: s.ProjectName,
		TaskID:      id(s.TaskID),
		TaskTitle:   s.TaskTitle,
		Hours:       s.Hours.String(),
		Note:        s.Note,
	}
}

// WeekToViewModel lays out the seven days of w with their totals. today
// marks the current day.
func WeekToViewModel(w dailysheet.Week, totals dailysheet.Totals, today time.Time) viewmodels.Week {
	vm := viewmodels.Week{
		Start: date(w.Start),
		End:   date(w.End()),
		Prev:  date(w.Prev().Start),
		Next:  date(w.Next().Start),
		Total: totals.Week.String(),
	}
	todayKey := today.Format(constants.DateFormat)
	for _, d := range w.Days() {
		key := date(d)
		vm.Days = append(vm.Days, viewmodels.Day{
			Date:    key,
			Weekday: d.Weekday().String()[:3],
			Total:   totals.Day(d).String(),
			Over:    totals.Overbooked(d),
			Today:   key == todayKey,
		})
	}
	return vm
}
