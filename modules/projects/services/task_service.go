package services

import (
	"context"
	"strconv"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/task"
	"github.com/worktrack/worktrack/modules/projects/domain/entities/activity"
	"github.com/worktrack/worktrack/modules/projects/permissions"
	"github.com/worktrack/worktrack/pkg/changes"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/eventbus"
)

// SubTasksLimit caps the sub-tasks listed under a task.
const SubTasksLimit = 100

type TaskService struct {
	repo      task.Repository
	activity  activity.Repository
	publisher eventbus.EventBus
}

func NewTaskService(repo task.Repository, activity activity.Repository, publisher eventbus.EventBus) *TaskService {
	return &TaskService{repo: repo, activity: activity, publisher: publisher}
}

func (s *TaskService) GetPaginated(ctx context.Context, params *task.FindParams) ([]task.Task, int, error) {
	if err := composables.RequirePermission(ctx, permissions.TaskView); err != nil {
		return nil, 0, err
	}
	return s.repo.GetPaginated(ctx, params)
}

func (s *TaskService) GetByID(ctx context.Context, id int64) (task.Task, error) {
	if err := composables.RequirePermission(ctx, permissions.TaskView); err != nil {
		return task.Task{}, err
	}
	return s.repo.GetByID(ctx, id)
}

// Options lists the tasks of a project for the timesheet picker.
func (s *TaskService) Options(ctx context.Context, projectID int64) ([]task.Task, error) {
	if projectID <= 0 {
		return nil, nil
	}
	items, _, err := s.repo.GetPaginated(ctx, &task.FindParams{Page: 1, Limit: OptionsLimit, ProjectID: projectID})
	return items, err
}

type TaskDetail struct {
	Task     task.Task
	SubTasks []task.Task
	Activity []activity.Activity
	Partial  error
}

// Detail fetches the task, its sub-tasks and its activity concurrently.
func (s *TaskService) Detail(ctx context.Context, id int64) (*TaskDetail, error) {
	if err := composables.RequirePermission(ctx, permissions.TaskView); err != nil {
		return nil, err
	}
	d := &TaskDetail{}
	var partial [2]error
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.repo.GetByID(gctx, id)
		d.Task = t
		return err
	})
	g.Go(func() error {
		d.SubTasks, _, partial[0] = s.repo.GetPaginated(gctx, &task.FindParams{Page: 1, Limit: SubTasksLimit, ParentID: id})
		return nil
	})
	g.Go(func() error {
		d.Activity, partial[1] = s.activity.ForTask(gctx, id, ActivityLimit)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, err := range partial {
		if err != nil {
			composables.UseLogger(ctx).WithError(err).WithField("task_id", id).Warn("task section failed to load")
			if d.Partial == nil {
				d.Partial = err
			}
		}
	}
	return d, nil
}

func (s *TaskService) SubTasks(ctx context.Context, id int64) ([]task.Task, error) {
	if err := composables.RequirePermission(ctx, permissions.TaskView); err != nil {
		return nil, err
	}
	items, _, err := s.repo.GetPaginated(ctx, &task.FindParams{Page: 1, Limit: SubTasksLimit, ParentID: id})
	return items, err
}

func (s *TaskService) Activity(ctx context.Context, id int64) ([]activity.Activity, error) {
	if err := composables.RequirePermission(ctx, permissions.TaskView); err != nil {
		return nil, err
	}
	return s.activity.ForTask(ctx, id, ActivityLimit)
}

// Create saves a task. A sub-task inherits the project and main task of its
// parent, and only one level of nesting is allowed.
func (s *TaskService) Create(ctx context.Context, data task.SaveData) (task.Task, error) {
	if err := composables.RequirePermission(ctx, permissions.TaskCreate); err != nil {
		return task.Task{}, err
	}
	if data.ParentID > 0 {
		parent, err := s.repo.GetByID(ctx, data.ParentID)
		if err != nil {
			return task.Task{}, errors.Wrap(err, "load parent task")
		}
		if parent.IsSubTask() {
			return task.Task{}, task.ErrNestedSubTask
		}
		data.ProjectID = parent.ProjectID
		data.MainTaskID = parent.MainTaskID
	}
	created, err := s.repo.Create(ctx, data)
	if err != nil {
		return task.Task{}, err
	}
	s.publisher.Publish(task.NewCreatedEvent(ctx, created))
	return created, nil
}

// Update saves data and reports the fields that changed.
func (s *TaskService) Update(ctx context.Context, id int64, data task.SaveData) (task.Task, []string, error) {
	if err := composables.RequirePermission(ctx, permissions.TaskUpdate); err != nil {
		return task.Task{}, nil, err
	}
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return task.Task{}, nil, err
	}
	data.ParentID = before.ParentID
	updated, err := s.repo.Update(ctx, id, data)
	if err != nil {
		return task.Task{}, nil, err
	}
	patch, err := changes.Diff(before, updated)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Warn("failed to diff task")
	}
	s.publisher.Publish(task.NewUpdatedEvent(ctx, updated, patch))
	return updated, changes.Fields(patch), nil
}

// ChangeStatus moves the task to status through a merge patch of the status
// document. Marking a task done also completes its progress.
func (s *TaskService) ChangeStatus(ctx context.Context, id int64, status task.Status) (task.Task, error) {
	if err := composables.RequirePermission(ctx, permissions.TaskUpdate); err != nil {
		return task.Task{}, err
	}
	if !status.IsValid() {
		return task.Task{}, errors.Wrapf(task.ErrInvalidStatus, "%q", status)
	}
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return task.Task{}, err
	}
	if before.Status == status {
		return before, nil
	}
	current := task.StatusPatch{Status: before.Status, Progress: before.Progress}
	next := current
	next.Status = status
	if status == task.StatusDone {
		next.Progress = 100
	}
	patch, err := changes.MergePatch(current, next)
	if err != nil {
		return task.Task{}, err
	}
	updated, err := s.repo.PatchStatus(ctx, id, patch)
	if err != nil {
		return task.Task{}, err
	}
	s.publisher.Publish(task.NewStatusChangedEvent(ctx, updated, before.Status))
	return updated, nil
}

func (s *TaskService) SetAssignees(ctx context.Context, id int64, userIDs []int64) (task.Task, error) {
	if err := composables.RequirePermission(ctx, permissions.TaskAssign); err != nil {
		return task.Task{}, err
	}
	updated, err := s.repo.SetAssignees(ctx, id, userIDs)
	if err != nil {
		return task.Task{}, err
	}
	s.publisher.Publish(task.NewAssigneesChangedEvent(ctx, updated, userIDs))
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if err := composables.RequirePermission(ctx, permissions.TaskDelete); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish(task.NewDeletedEvent(ctx, id))
	return nil
}

// CountMyOpen is the "my open tasks" dashboard counter.
func (s *TaskService) CountMyOpen(ctx context.Context) (string, error) {
	me, err := composables.UseUser(ctx)
	if err != nil {
		return "", err
	}
	_, total, err := s.repo.GetPaginated(ctx, &task.FindParams{Page: 1, Limit: 1, AssigneeID: me.ID, OpenOnly: true})
	if err != nil {
		return "", err
	}
	return strconv.Itoa(total), nil
}
