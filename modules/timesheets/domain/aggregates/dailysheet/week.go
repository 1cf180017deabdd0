package dailysheet

import (
	"time"

	"github.com/shopspring/decimal"
)

const DaysPerWeek = 7

// Week runs Monday to Sunday. Start is midnight UTC of the Monday.
type Week struct {
	Start time.Time
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekOf returns the week containing t, read in t's own location.
func WeekOf(t time.Time) Week {
	d := day(t)
	offset := (int(d.Weekday()) + 6) % DaysPerWeek
	return Week{Start: d.AddDate(0, 0, -offset)}
}

func (w Week) End() time.Time {
	return w.Start.AddDate(0, 0, DaysPerWeek-1)
}

func (w Week) Days() []time.Time {
	out := make([]time.Time, DaysPerWeek)
	for i := range out {
		out[i] = w.Start.AddDate(0, 0, i)
	}
	return out
}

func (w Week) Prev() Week {
	return Week{Start: w.Start.AddDate(0, 0, -DaysPerWeek)}
}

func (w Week) Next() Week {
	return Week{Start: w.Start.AddDate(0, 0, DaysPerWeek)}
}

func (w Week) Contains(t time.Time) bool {
	d := day(t)
	return !d.Before(w.Start) && !d.After(w.End())
}

// Totals are the summed hours of a week.
type Totals struct {
	days map[string]decimal.Decimal
	Week decimal.Decimal
}

// Totals sums hours per day and for the whole week. Entries outside w are
// skipped.
func (w Week) Totals(sheets []DailySheet) Totals {
	t := Totals{days: make(map[string]decimal.Decimal, DaysPerWeek), Week: decimal.Zero}
	for _, s := range sheets {
		if !w.Contains(s.Date) {
			continue
		}
		key := day(s.Date).Format(time.DateOnly)
		t.days[key] = t.Day(s.Date).Add(s.Hours)
		t.Week = t.Week.Add(s.Hours)
	}
	return t
}

func (t Totals) Day(d time.Time) decimal.Decimal {
	if v, ok := t.days[day(d).Format(time.DateOnly)]; ok {
		return v
	}
	return decimal.Zero
}

// Overbooked reports days logging more than MaxHours in total.
func (t Totals) Overbooked(d time.Time) bool {
	return t.Day(d).GreaterThan(MaxHours)
}
