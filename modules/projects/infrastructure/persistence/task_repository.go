package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/task"
	"github.com/worktrack/worktrack/modules/projects/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/pkg/apiclient"
)

const (
	tasksPath = "/api/tasks"

	MergePatchContentType = "application/merge-patch+json"
)

type APITaskRepository struct {
	api *apiclient.Client
}

func NewTaskRepository(api *apiclient.Client) task.Repository {
	return &APITaskRepository{api: api}
}

func taskPath(id int64) string {
	return fmt.Sprintf("%s/%d", tasksPath, id)
}

func (g *APITaskRepository) GetPaginated(ctx context.Context, params *task.FindParams) ([]task.Task, int, error) {
	q := apiclient.NewQuery().
		Page(params.Page, params.Limit).
		String("search", params.Search).
		Int("project_id", params.ProjectID).
		Int("main_task_id", params.MainTaskID).
		Int("parent_id", params.ParentID).
		String("status", string(params.Status)).
		Int("assignee_id", params.AssigneeID)
	if params.OpenOnly {
		q.String("open", "true")
	}
	page, err := apiclient.GetPage[models.Task](ctx, g.api, tasksPath, q.Values())
	if err != nil {
		return nil, 0, errors.Wrap(err, "list tasks")
	}
	return ToDomainTasks(page.Items), page.Total, nil
}

func (g *APITaskRepository) GetByID(ctx context.Context, id int64) (task.Task, error) {
	m, err := apiclient.Get[models.Task](ctx, g.api, taskPath(id), nil)
	if err != nil {
		return task.Task{}, errors.Wrapf(err, "get task %d", id)
	}
	return ToDomainTask(m), nil
}

func (g *APITaskRepository) Create(ctx context.Context, data task.SaveData) (task.Task, error) {
	m, err := apiclient.Post[models.Task](ctx, g.api, tasksPath, data)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "create task")
	}
	return ToDomainTask(m), nil
}

func (g *APITaskRepository) Update(ctx context.Context, id int64, data task.SaveData) (task.Task, error) {
	m, err := apiclient.Put[models.Task](ctx, g.api, taskPath(id), data)
	if err != nil {
		return task.Task{}, errors.Wrapf(err, "update task %d", id)
	}
	return ToDomainTask(m), nil
}

func (g *APITaskRepository) Delete(ctx context.Context, id int64) error {
	if err := apiclient.Delete(ctx, g.api, taskPath(id)); err != nil {
		return errors.Wrapf(err, "delete task %d", id)
	}
	return nil
}

func (g *APITaskRepository) PatchStatus(ctx context.Context, id int64, patch []byte) (task.Task, error) {
	body := apiclient.RawBody{ContentType: MergePatchContentType, Data: patch}
	m, err := apiclient.Patch[models.Task](ctx, g.api, taskPath(id)+"/status", body)
	if err != nil {
		return task.Task{}, errors.Wrapf(err, "patch status of task %d", id)
	}
	return ToDomainTask(m), nil
}

func (g *APITaskRepository) SetAssignees(ctx context.Context, id int64, userIDs []int64) (task.Task, error) {
	if userIDs == nil {
		userIDs = []int64{}
	}
	m, err := apiclient.Put[models.Task](ctx, g.api, taskPath(id)+"/assignees", models.Assignees{UserIDs: userIDs})
	if err != nil {
		return task.Task{}, errors.Wrapf(err, "set assignees of task %d", id)
	}
	return ToDomainTask(m), nil
}
