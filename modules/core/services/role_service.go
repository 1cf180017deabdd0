package services

import (
	"context"

	"github.com/worktrack/worktrack/modules/core/domain/aggregates/role"
	"github.com/worktrack/worktrack/modules/core/permissions"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/eventbus"
)

type RoleService struct {
	repo      role.Repository
	publisher eventbus.EventBus
}

func NewRoleService(repo role.Repository, publisher eventbus.EventBus) *RoleService {
	return &RoleService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *RoleService) GetAll(ctx context.Context) ([]role.Role, error) {
	if err := composables.RequirePermission(ctx, permissions.RoleView); err != nil {
		return nil, err
	}
	return s.repo.GetAll(ctx)
}

// Options lists roles for pickers on other pages, without the role.view check.
func (s *RoleService) Options(ctx context.Context) ([]role.Role, error) {
	return s.repo.GetAll(ctx)
}

func (s *RoleService) GetByID(ctx context.Context, id int64) (role.Role, error) {
	if err := composables.RequirePermission(ctx, permissions.RoleView); err != nil {
		return role.Role{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *RoleService) Create(ctx context.Context, data role.SaveData) (role.Role, error) {
	if err := composables.RequirePermission(ctx, permissions.RoleCreate); err != nil {
		return role.Role{}, err
	}
	created, err := s.repo.Create(ctx, data)
	if err != nil {
		return role.Role{}, err
	}
	s.publisher.Publish(role.NewCreatedEvent(ctx, created))
	return created, nil
}

func (s *RoleService) Update(ctx context.Context, id int64, data role.SaveData) (role.Role, error) {
	if err := composables.RequirePermission(ctx, permissions.RoleUpdate); err != nil {
		return role.Role{}, err
	}
	updated, err := s.repo.Update(ctx, id, data)
	if err != nil {
		return role.Role{}, err
	}
	s.publisher.Publish(role.NewUpdatedEvent(ctx, updated))
	return updated, nil
}

func (s *RoleService) Delete(ctx context.Context, id int64) error {
	if err := composables.RequirePermission(ctx, permissions.RoleDelete); err != nil {
		return err
	}
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !entity.CanDelete() {
		return role.ErrNotDeletable
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish(role.NewDeletedEvent(ctx, id))
	return nil
}

// SetPermissions replaces the role's permission set.
func (s *RoleService) SetPermissions(ctx context.Context, id int64, permissionIDs []int64) error {
	if err := composables.RequirePermission(ctx, permissions.RoleUpdate); err != nil {
		return err
	}
	if err := s.repo.SetPermissions(ctx, id, permissionIDs); err != nil {
		return err
	}
	s.publisher.Publish(role.NewPermissionsChangedEvent(ctx, id, permissionIDs))
	return nil
}
