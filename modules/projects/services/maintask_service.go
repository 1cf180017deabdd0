package services

import (
	"context"

	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/maintask"
	"github.com/worktrack/worktrack/modules/projects/permissions"
	"github.com/worktrack/worktrack/pkg/changes"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/eventbus"
)

type MainTaskService struct {
	repo      maintask.Repository
	publisher eventbus.EventBus
}

func NewMainTaskService(repo maintask.Repository, publisher eventbus.EventBus) *MainTaskService {
	return &MainTaskService{repo: repo, publisher: publisher}
}

func (s *MainTaskService) ListByProject(ctx context.Context, projectID int64) ([]maintask.MainTask, error) {
	if err := composables.RequirePermission(ctx, permissions.ProjectView); err != nil {
		return nil, err
	}
	return s.repo.ListByProject(ctx, projectID)
}

func (s *MainTaskService) GetByID(ctx context.Context, id int64) (maintask.MainTask, error) {
	if err := composables.RequirePermission(ctx, permissions.ProjectView); err != nil {
		return maintask.MainTask{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *MainTaskService) Create(ctx context.Context, projectID int64, data maintask.SaveData) (maintask.MainTask, error) {
	if err := composables.RequirePermission(ctx, permissions.TaskCreate); err != nil {
		return maintask.MainTask{}, err
	}
	created, err := s.repo.Create(ctx, projectID, data)
	if err != nil {
		return maintask.MainTask{}, err
	}
	s.publisher.Publish(maintask.NewCreatedEvent(ctx, created))
	return created, nil
}

func (s *MainTaskService) Update(ctx context.Context, id int64, data maintask.SaveData) (maintask.MainTask, error) {
	if err := composables.RequirePermission(ctx, permissions.TaskUpdate); err != nil {
		return maintask.MainTask{}, err
	}
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return maintask.MainTask{}, err
	}
	updated, err := s.repo.Update(ctx, id, data)
	if err != nil {
		return maintask.MainTask{}, err
	}
	patch, err := changes.Diff(before, updated)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Warn("failed to diff main task")
	}
	s.publisher.Publish(maintask.NewUpdatedEvent(ctx, updated, patch))
	return updated, nil
}

func (s *MainTaskService) Delete(ctx context.Context, projectID, id int64) error {
	if err := composables.RequirePermission(ctx, permissions.TaskDelete); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish(maintask.NewDeletedEvent(ctx, projectID, id))
	return nil
}
