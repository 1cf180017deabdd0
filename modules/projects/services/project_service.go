package services

import (
	"context"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/maintask"
	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/project"
	"github.com/worktrack/worktrack/modules/projects/domain/entities/activity"
	"github.com/worktrack/worktrack/modules/projects/domain/entities/file"
	"github.com/worktrack/worktrack/modules/projects/permissions"
	"github.com/worktrack/worktrack/pkg/changes"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/eventbus"
)

const (
	// ActivityLimit is how many feed entries detail pages show.
	ActivityLimit = 20
	// OptionsLimit caps the project pickers on task and timesheet pages.
	OptionsLimit = 500
)

type ProjectService struct {
	repo      project.Repository
	mainTasks maintask.Repository
	files     file.Repository
	activity  activity.Repository
	publisher eventbus.EventBus
}

func NewProjectService(
	repo project.Repository,
	mainTasks maintask.Repository,
	files file.Repository,
	activity activity.Repository,
	publisher eventbus.EventBus,
) *ProjectService {
	return &ProjectService{
		repo:      repo,
		mainTasks: mainTasks,
		files:     files,
		activity:  activity,
		publisher: publisher,
	}
}

func (s *ProjectService) GetPaginated(ctx context.Context, params *project.FindParams) ([]project.Project, int, error) {
	if err := composables.RequirePermission(ctx, permissions.ProjectView); err != nil {
		return nil, 0, err
	}
	return s.repo.GetPaginated(ctx, params)
}

// Options lists projects for pickers on task and timesheet pages.
func (s *ProjectService) Options(ctx context.Context) ([]project.Project, error) {
	items, _, err := s.repo.GetPaginated(ctx, &project.FindParams{Page: 1, Limit: OptionsLimit})
	return items, err
}

func (s *ProjectService) GetByID(ctx context.Context, id int64) (project.Project, error) {
	if err := composables.RequirePermission(ctx, permissions.ProjectView); err != nil {
		return project.Project{}, err
	}
	return s.repo.GetByID(ctx, id)
}

// Detail is everything the project page shows.
type Detail struct {
	Project   project.Project
	Members   []project.Member
	MainTasks []maintask.MainTask
	Files     []file.File
	Activity  []activity.Activity
	// Partial holds the first failure among the secondary fetches. The page
	// still renders with that section empty.
	Partial error
}

// Detail fetches the project and its sections concurrently. Only a failure
// to load the project itself fails the call.
func (s *ProjectService) Detail(ctx context.Context, id int64) (*Detail, error) {
	if err := composables.RequirePermission(ctx, permissions.ProjectView); err != nil {
		return nil, err
	}
	d := &Detail{}
	var partial [4]error
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.repo.GetByID(gctx, id)
		d.Project = p
		return err
	})
	g.Go(func() error {
		d.Members, partial[0] = s.repo.Members(gctx, id)
		return nil
	})
	g.Go(func() error {
		d.MainTasks, partial[1] = s.mainTasks.ListByProject(gctx, id)
		return nil
	})
	g.Go(func() error {
		d.Files, partial[2] = s.files.List(gctx, id)
		return nil
	})
	g.Go(func() error {
		d.Activity, partial[3] = s.activity.ForProject(gctx, id, ActivityLimit)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, err := range partial {
		if err != nil {
			composables.UseLogger(ctx).WithError(err).WithField("project_id", id).Warn("project section failed to load")
			if d.Partial == nil {
				d.Partial = err
			}
		}
	}
	return d, nil
}

func (s *ProjectService) Activity(ctx context.Context, id int64) ([]activity.Activity, error) {
	if err := composables.RequirePermission(ctx, permissions.ProjectView); err != nil {
		return nil, err
	}
	return s.activity.ForProject(ctx, id, ActivityLimit)
}

func (s *ProjectService) Create(ctx context.Context, data project.SaveData) (project.Project, error) {
	if err := composables.RequirePermission(ctx, permissions.ProjectCreate); err != nil {
		return project.Project{}, err
	}
	created, err := s.repo.Create(ctx, data)
	if err != nil {
		return project.Project{}, err
	}
	s.publisher.Publish(project.NewCreatedEvent(ctx, created))
	return created, nil
}

// Update saves data and reports the fields that changed.
func (s *ProjectService) Update(ctx context.Context, id int64, data project.SaveData) (project.Project, []string, error) {
	if err := composables.RequirePermission(ctx, permissions.ProjectUpdate); err != nil {
		return project.Project{}, nil, err
	}
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return project.Project{}, nil, err
	}
	updated, err := s.repo.Update(ctx, id, data)
	if err != nil {
		return project.Project{}, nil, err
	}
	patch, err := changes.Diff(before, updated)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Warn("failed to diff project")
	}
	s.publisher.Publish(project.NewUpdatedEvent(ctx, updated, patch))
	return updated, changes.Fields(patch), nil
}

func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	if err := composables.RequirePermission(ctx, permissions.ProjectDelete); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish(project.NewDeletedEvent(ctx, id))
	return nil
}

func (s *ProjectService) Members(ctx context.Context, id int64) ([]project.Member, error) {
	if err := composables.RequirePermission(ctx, permissions.ProjectView); err != nil {
		return nil, err
	}
	return s.repo.Members(ctx, id)
}

func (s *ProjectService) AddMember(ctx context.Context, id, userID int64) error {
	if err := composables.RequirePermission(ctx, permissions.ProjectMembers); err != nil {
		return err
	}
	if err := s.repo.AddMember(ctx, id, userID); err != nil {
		return err
	}
	s.publisher.Publish(project.NewMemberAddedEvent(ctx, id, userID))
	return nil
}

func (s *ProjectService) RemoveMember(ctx context.Context, id, userID int64) error {
	if err := composables.RequirePermission(ctx, permissions.ProjectMembers); err != nil {
		return err
	}
	if err := s.repo.RemoveMember(ctx, id, userID); err != nil {
		return err
	}
	s.publisher.Publish(project.NewMemberRemovedEvent(ctx, id, userID))
	return nil
}

// CountActive is the "active projects" dashboard counter.
func (s *ProjectService) CountActive(ctx context.Context) (string, error) {
	_, total, err := s.repo.GetPaginated(ctx, &project.FindParams{Page: 1, Limit: 1, Status: project.StatusActive})
	if err != nil {
		return "", err
	}
	return strconv.Itoa(total), nil
}
