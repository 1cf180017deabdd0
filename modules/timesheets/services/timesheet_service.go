package services

import (
	"context"
	"slices"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/worktrack/worktrack/modules/timesheets/domain/aggregates/dailysheet"
	"github.com/worktrack/worktrack/modules/timesheets/permissions"
	"github.com/worktrack/worktrack/pkg/changes"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/eventbus"
)

const (
	// WeekLimit caps the entries fetched for one week view.
	WeekLimit = 500
	// ExportLimit caps the rows of a single export.
	ExportLimit = 10000
	// MaxExportDays is the longest range one export may cover.
	MaxExportDays = 366
)

type TimesheetService struct {
	repo      dailysheet.Repository
	publisher eventbus.EventBus
	now       func() time.Time
}

func NewTimesheetService(repo dailysheet.Repository, publisher eventbus.EventBus) *TimesheetService {
	return &TimesheetService{repo: repo, publisher: publisher, now: time.Now}
}

// Today is the current date as the service sees it.
func (s *TimesheetService) Today() time.Time {
	return s.now()
}

// owner resolves whose entries are read. Anyone other than the signed-in
// user needs timesheet.view_all.
func (s *TimesheetService) owner(ctx context.Context, userID int64) (int64, error) {
	me, err := composables.UseUser(ctx)
	if err != nil {
		return 0, err
	}
	if userID <= 0 || userID == me.ID {
		return me.ID, nil
	}
	if err := composables.RequirePermission(ctx, permissions.TimesheetViewAll); err != nil {
		return 0, err
	}
	return userID, nil
}

type WeekView struct {
	Week   dailysheet.Week
	UserID int64
	Sheets []dailysheet.DailySheet
	Totals dailysheet.Totals
}

func byDate(a, b dailysheet.DailySheet) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	return int(a.ID - b.ID)
}

// Week lists one user's entries of week, ordered by date, with the day and
// week totals.
func (s *TimesheetService) Week(ctx context.Context, userID int64, week dailysheet.Week) (*WeekView, error) {
	if err := composables.RequirePermission(ctx, permissions.TimesheetView); err != nil {
		return nil, err
	}
	owner, err := s.owner(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, _, err := s.repo.List(ctx, &dailysheet.FindParams{
		UserID: owner,
		From:   week.Start,
		To:     week.End(),
		Page:   1,
		Limit:  WeekLimit,
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(items, byDate)
	return &WeekView{Week: week, UserID: owner, Sheets: items, Totals: week.Totals(items)}, nil
}

func (s *TimesheetService) GetByID(ctx context.Context, id int64) (dailysheet.DailySheet, error) {
	if err := composables.RequirePermission(ctx, permissions.TimesheetView); err != nil {
		return dailysheet.DailySheet{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *TimesheetService) Create(ctx context.Context, data dailysheet.SaveData) (dailysheet.DailySheet, error) {
	if err := composables.RequirePermission(ctx, permissions.TimesheetCreate); err != nil {
		return dailysheet.DailySheet{}, err
	}
	if err := dailysheet.ValidateHours(data.Hours); err != nil {
		return dailysheet.DailySheet{}, err
	}
	created, err := s.repo.Create(ctx, data)
	if err != nil {
		return dailysheet.DailySheet{}, err
	}
	s.publisher.Publish(dailysheet.NewCreatedEvent(ctx, created))
	return created, nil
}

// Update saves data and reports the fields that changed.
func (s *TimesheetService) Update(ctx context.Context, id int64, data dailysheet.SaveData) (dailysheet.DailySheet, []string, error) {
	if err := composables.RequirePermission(ctx, permissions.TimesheetUpdate); err != nil {
		return dailysheet.DailySheet{}, nil, err
	}
	if err := dailysheet.ValidateHours(data.Hours); err != nil {
		return dailysheet.DailySheet{}, nil, err
	}
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return dailysheet.DailySheet{}, nil, err
	}
	updated, err := s.repo.Update(ctx, id, data)
	if err != nil {
		return dailysheet.DailySheet{}, nil, err
	}
	patch, err := changes.Diff(before, updated)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Warn("failed to diff daily sheet")
	}
	s.publisher.Publish(dailysheet.NewUpdatedEvent(ctx, updated, patch))
	return updated, changes.Fields(patch), nil
}

func (s *TimesheetService) Delete(ctx context.Context, id int64) error {
	if err := composables.RequirePermission(ctx, permissions.TimesheetDelete); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish(dailysheet.NewDeletedEvent(ctx, id))
	return nil
}

type ExportParams struct {
	UserID int64
	From   time.Time
	To     time.Time
	Labels ExportLabels
}

// CheckRange accepts from <= to spanning at most MaxExportDays.
func CheckRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return errors.Wrap(dailysheet.ErrInvalidRange, "from must not be after to")
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days > MaxExportDays {
		return errors.Wrapf(dailysheet.ErrInvalidRange, "%d days exceeds %d", days, MaxExportDays)
	}
	return nil
}

// Export renders the entries of one user between From and To as an xlsx
// workbook.
func (s *TimesheetService) Export(ctx context.Context, params ExportParams) ([]byte, error) {
	if err := composables.RequirePermission(ctx, permissions.TimesheetExport); err != nil {
		return nil, err
	}
	if err := CheckRange(params.From, params.To); err != nil {
		return nil, err
	}
	owner, err := s.owner(ctx, params.UserID)
	if err != nil {
		return nil, err
	}
	items, _, err := s.repo.List(ctx, &dailysheet.FindParams{
		UserID: owner,
		From:   params.From,
		To:     params.To,
		Page:   1,
		Limit:  ExportLimit,
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(items, byDate)
	data, err := WriteWorkbook(items, params.Labels)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(dailysheet.NewExportedEvent(ctx, owner,
		params.From.Format(time.DateOnly), params.To.Format(time.DateOnly), len(items)))
	return data, nil
}

// CountWeekHours is the "this week's hours" dashboard counter.
func (s *TimesheetService) CountWeekHours(ctx context.Context) (string, error) {
	me, err := composables.UseUser(ctx)
	if err != nil {
		return "", err
	}
	week := dailysheet.WeekOf(s.now())
	items, _, err := s.repo.List(ctx, &dailysheet.FindParams{
		UserID: me.ID,
		From:   week.Start,
		To:     week.End(),
		Page:   1,
		Limit:  WeekLimit,
	})
	if err != nil {
		return "", err
	}
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Hours)
	}
	return total.String(), nil
}
