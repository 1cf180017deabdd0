package services

import (
	"context"
	"strconv"

	"github.com/worktrack/worktrack/modules/leave/domain/aggregates/leaverequest"
	"github.com/worktrack/worktrack/modules/leave/permissions"
	"github.com/worktrack/worktrack/pkg/changes"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/eventbus"
)

type LeaveService struct {
	repo      leaverequest.Repository
	publisher eventbus.EventBus
}

func NewLeaveService(repo leaverequest.Repository, publisher eventbus.EventBus) *LeaveService {
	return &LeaveService{repo: repo, publisher: publisher}
}

// Mine lists the signed-in user's requests.
func (s *LeaveService) Mine(ctx context.Context, page, limit int) ([]leaverequest.Request, int, error) {
	if err := composables.RequirePermission(ctx, permissions.LeaveView); err != nil {
		return nil, 0, err
	}
	me, err := composables.UseUser(ctx)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.GetPaginated(ctx, &leaverequest.FindParams{UserID: me.ID, Page: page, Limit: limit})
}

// Pending lists everyone's requests awaiting a decision.
func (s *LeaveService) Pending(ctx context.Context, page, limit int) ([]leaverequest.Request, int, error) {
	if err := composables.RequirePermission(ctx, permissions.LeaveApprove); err != nil {
		return nil, 0, err
	}
	return s.repo.GetPaginated(ctx, &leaverequest.FindParams{Status: leaverequest.StatusPending, Page: page, Limit: limit})
}

func (s *LeaveService) GetByID(ctx context.Context, id int64) (leaverequest.Request, error) {
	if err := composables.RequirePermission(ctx, permissions.LeaveView); err != nil {
		return leaverequest.Request{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *LeaveService) Create(ctx context.Context, data leaverequest.SaveData) (leaverequest.Request, error) {
	if err := composables.RequirePermission(ctx, permissions.LeaveCreate); err != nil {
		return leaverequest.Request{}, err
	}
	if err := data.Validate(); err != nil {
		return leaverequest.Request{}, err
	}
	created, err := s.repo.Create(ctx, data)
	if err != nil {
		return leaverequest.Request{}, err
	}
	s.publisher.Publish(leaverequest.NewCreatedEvent(ctx, created))
	return created, nil
}

// pending loads id and refuses requests that were already decided.
func (s *LeaveService) pending(ctx context.Context, id int64) (leaverequest.Request, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return leaverequest.Request{}, err
	}
	if !r.IsPending() {
		return leaverequest.Request{}, leaverequest.ErrNotPending
	}
	return r, nil
}

// Update edits a pending request and reports the fields that changed.
func (s *LeaveService) Update(ctx context.Context, id int64, data leaverequest.SaveData) (leaverequest.Request, []string, error) {
	if err := composables.RequirePermission(ctx, permissions.LeaveUpdate); err != nil {
		return leaverequest.Request{}, nil, err
	}
	if err := data.Validate(); err != nil {
		return leaverequest.Request{}, nil, err
	}
	before, err := s.pending(ctx, id)
	if err != nil {
		return leaverequest.Request{}, nil, err
	}
	updated, err := s.repo.Update(ctx, id, data)
	if err != nil {
		return leaverequest.Request{}, nil, err
	}
	patch, err := changes.Diff(before, updated)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Warn("failed to diff leave request")
	}
	s.publisher.Publish(leaverequest.NewUpdatedEvent(ctx, updated, patch))
	return updated, changes.Fields(patch), nil
}

// Cancel deletes a request that is still pending.
func (s *LeaveService) Cancel(ctx context.Context, id int64) error {
	if err := composables.RequirePermission(ctx, permissions.LeaveDelete); err != nil {
		return err
	}
	if _, err := s.pending(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish(leaverequest.NewCancelledEvent(ctx, id))
	return nil
}

// Decide approves or rejects a pending request.
func (s *LeaveService) Decide(ctx context.Context, id int64, d leaverequest.Decision) (leaverequest.Request, error) {
	if err := composables.RequirePermission(ctx, permissions.LeaveApprove); err != nil {
		return leaverequest.Request{}, err
	}
	if !d.Status.IsDecision() {
		return leaverequest.Request{}, leaverequest.ErrInvalidDecision
	}
	if _, err := s.pending(ctx, id); err != nil {
		return leaverequest.Request{}, err
	}
	decided, err := s.repo.SetStatus(ctx, id, d)
	if err != nil {
		return leaverequest.Request{}, err
	}
	s.publisher.Publish(leaverequest.NewDecidedEvent(ctx, decided, d))
	return decided, nil
}

// CountPending is the "pending approvals" dashboard counter.
func (s *LeaveService) CountPending(ctx context.Context) (string, error) {
	_, total, err := s.repo.GetPaginated(ctx, &leaverequest.FindParams{Status: leaverequest.StatusPending, Page: 1, Limit: 1})
	if err != nil {
		return "", err
	}
	return strconv.Itoa(total), nil
}
