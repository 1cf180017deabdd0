package services

import (
	"context"

	"github.com/worktrack/worktrack/modules/core/domain/aggregates/user"
	"github.com/worktrack/worktrack/modules/core/permissions"
	"github.com/worktrack/worktrack/pkg/changes"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/eventbus"
)

type UserService struct {
	repo      user.Repository
	publisher eventbus.EventBus
}

func NewUserService(repo user.Repository, publisher eventbus.EventBus) *UserService {
	return &UserService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *UserService) GetByID(ctx context.Context, id int64) (user.User, error) {
	if err := composables.RequirePermission(ctx, permissions.UserView); err != nil {
		return user.User{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetPaginated(ctx context.Context, params *user.FindParams) ([]user.User, int, error) {
	if err := composables.RequirePermission(ctx, permissions.UserView); err != nil {
		return nil, 0, err
	}
	return s.repo.GetPaginated(ctx, params)
}

// OptionsLimit caps the user pickers on project, task and timesheet pages.
const OptionsLimit = 500

// Options lists users for pickers on other pages, without the user.view check.
func (s *UserService) Options(ctx context.Context) ([]user.User, error) {
	users, _, err := s.repo.GetPaginated(ctx, &user.FindParams{Page: 1, Limit: OptionsLimit})
	return users, err
}

func (s *UserService) Create(ctx context.Context, data user.CreateData) (user.User, error) {
	if err := composables.RequirePermission(ctx, permissions.UserCreate); err != nil {
		return user.User{}, err
	}
	created, err := s.repo.Create(ctx, data)
	if err != nil {
		return user.User{}, err
	}
	s.publisher.Publish(user.NewCreatedEvent(ctx, created))
	return created, nil
}

// Update saves data and reports the fields that changed.
func (s *UserService) Update(ctx context.Context, id int64, data user.UpdateData) (user.User, []string, error) {
	if err := composables.RequirePermission(ctx, permissions.UserUpdate); err != nil {
		return user.User{}, nil, err
	}
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return user.User{}, nil, err
	}
	updated, err := s.repo.Update(ctx, id, data)
	if err != nil {
		return user.User{}, nil, err
	}
	patch, err := changes.Diff(before, updated)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Warn("failed to diff user")
	}
	s.publisher.Publish(user.NewUpdatedEvent(ctx, updated, patch))
	return updated, changes.Fields(patch), nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := composables.RequirePermission(ctx, permissions.UserDelete); err != nil {
		return err
	}
	if me, err := composables.UseUser(ctx); err == nil && me.ID == id {
		return user.ErrCannotDeleteSelf
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish(user.NewDeletedEvent(ctx, id))
	return nil
}
