package services_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/task"
	"github.com/worktrack/worktrack/modules/projects/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/modules/projects/permissions"
	"github.com/worktrack/worktrack/pkg/authz"
	"github.com/worktrack/worktrack/pkg/itf"
)

func TestTaskService_ChangeStatusSendsMergePatch(t *testing.T) {
	f := newFixture(t)
	f.backend.
		Respond("GET /api/tasks/5", models.Task{ID: 5, ProjectID: 1, Title: "Draft", Status: "review", Progress: 60}).
		Respond("PATCH /api/tasks/5/status", models.Task{ID: 5, ProjectID: 1, Title: "Draft", Status: "done", Progress: 100})
	ctx := signedIn(t, member, permissions.TaskUpdate)

	updated, err := f.tasks.ChangeStatus(ctx, 5, task.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, task.StatusDone, updated.Status)

	call := f.backend.LastCall(http.MethodPatch, "/api/tasks/5/status")
	assert.JSONEq(t, `{"status":"done","progress":100}`, string(call.Body))

	events := f.events.all()
	require.Len(t, events, 1)
	ev, ok := events[0].(*task.StatusChangedEvent)
	require.True(t, ok)
	assert.Equal(t, task.StatusReview, ev.From)
	assert.Equal(t, task.StatusDone, ev.To)
	assert.Equal(t, member.ID, ev.Sender.ID)
}

func TestTaskService_ChangeStatusOnlySendsTheStatus(t *testing.T) {
	f := newFixture(t)
	f.backend.
		Respond("GET /api/tasks/5", models.Task{ID: 5, Status: "todo", Progress: 10}).
		Respond("PATCH /api/tasks/5/status", models.Task{ID: 5, Status: "in_progress", Progress: 10})
	ctx := signedIn(t, member, permissions.TaskUpdate)

	_, err := f.tasks.ChangeStatus(ctx, 5, task.StatusInProgress)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"in_progress"}`, string(f.backend.LastCall(http.MethodPatch, "/api/tasks/5/status").Body))
}

func TestTaskService_ChangeStatusUnchangedIsNoop(t *testing.T) {
	f := newFixture(t)
	f.backend.Respond("GET /api/tasks/5", models.Task{ID: 5, Status: "todo"})
	ctx := signedIn(t, member, permissions.TaskUpdate)

	_, err := f.tasks.ChangeStatus(ctx, 5, task.StatusTodo)
	require.NoError(t, err)
	assert.Empty(t, f.backend.CallsTo(http.MethodPatch, "/api/tasks/5/status"))
	assert.Empty(t, f.events.all())
}

func TestTaskService_ChangeStatusRejectsUnknown(t *testing.T) {
	f := newFixture(t)
	ctx := signedIn(t, member, permissions.TaskUpdate)

	_, err := f.tasks.ChangeStatus(ctx, 5, task.Status("archived"))
	require.ErrorIs(t, err, task.ErrInvalidStatus)
	assert.Empty(t, f.backend.Calls())
}

func TestTaskService_CreateSubTaskInheritsParent(t *testing.T) {
	f := newFixture(t)
	f.backend.
		Respond("GET /api/tasks/5", models.Task{ID: 5, ProjectID: 3, MainTaskID: 8, Title: "Parent"}).
		Respond("POST /api/tasks", models.Task{ID: 6, ProjectID: 3, MainTaskID: 8, ParentID: 5, Title: "Child"})
	ctx := signedIn(t, member, permissions.TaskCreate)

	created, err := f.tasks.Create(ctx, task.SaveData{ProjectID: 99, ParentID: 5, Title: "Child", Priority: task.PriorityLow, Status: task.StatusTodo})
	require.NoError(t, err)
	assert.True(t, created.IsSubTask())

	var sent map[string]any
	f.backend.LastCall(http.MethodPost, "/api/tasks").Decode(t, &sent)
	assert.InDelta(t, 3, sent["project_id"], 0)
	assert.InDelta(t, 8, sent["main_task_id"], 0)
	assert.InDelta(t, 5, sent["parent_id"], 0)

	require.Len(t, f.events.all(), 1)
	assert.IsType(t, &task.CreatedEvent{}, f.events.all()[0])
}

func TestTaskService_CreateRejectsNestedSubTask(t *testing.T) {
	f := newFixture(t)
	f.backend.Respond("GET /api/tasks/6", models.Task{ID: 6, ProjectID: 3, ParentID: 5})
	ctx := signedIn(t, member, permissions.TaskCreate)

	_, err := f.tasks.Create(ctx, task.SaveData{ParentID: 6, Title: "Grandchild"})
	require.ErrorIs(t, err, task.ErrNestedSubTask)
	assert.Empty(t, f.backend.CallsTo(http.MethodPost, "/api/tasks"))
}

func TestTaskService_UpdateReportsChangedFields(t *testing.T) {
	f := newFixture(t)
	f.backend.
		Respond("GET /api/tasks/5", models.Task{ID: 5, ProjectID: 3, Title: "Old", Priority: "low", Status: "todo"}).
		Respond("PUT /api/tasks/5", models.Task{ID: 5, ProjectID: 3, Title: "New", Priority: "high", Status: "todo"})
	ctx := signedIn(t, member, permissions.TaskUpdate)

	_, fields, err := f.tasks.Update(ctx, 5, task.SaveData{ProjectID: 3, Title: "New", Priority: task.PriorityHigh, Status: task.StatusTodo})
	require.NoError(t, err)
	assert.Equal(t, []string{"Priority", "Title"}, fields)
}

func TestTaskService_PermissionsAreChecked(t *testing.T) {
	f := newFixture(t)
	ctx := signedIn(t, member, permissions.TaskView)

	err := f.tasks.Delete(ctx, 5)
	require.ErrorIs(t, err, authz.ErrForbidden)
	var forbidden *authz.ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, permissions.TaskDelete, forbidden.Permission)

	_, err = f.tasks.SetAssignees(ctx, 5, []int64{2})
	require.ErrorIs(t, err, authz.ErrForbidden)
	assert.Empty(t, f.backend.Calls())
}

func TestTaskService_CountMyOpen(t *testing.T) {
	f := newFixture(t)
	f.backend.Respond("GET /api/tasks", itf.Page([]models.Task{}, 7, 1, 1))
	ctx := signedIn(t, member, permissions.TaskView)

	n, err := f.tasks.CountMyOpen(ctx)
	require.NoError(t, err)
	assert.Equal(t, "7", n)
	assert.Equal(t, "assignee_id=2&limit=1&open=true&page=1", f.backend.LastCall(http.MethodGet, "/api/tasks").Query)
}

func TestTaskService_DetailToleratesSectionFailures(t *testing.T) {
	f := newFixture(t)
	f.backend.
		Respond("GET /api/tasks/5", models.Task{ID: 5, Title: "Parent"}).
		Respond("GET /api/tasks", itf.Page([]models.Task{{ID: 6, ParentID: 5}}, 1, 1, 100)).
		RespondError("GET /api/activity/task/5", http.StatusInternalServerError, "feed down")
	ctx := signedIn(t, member, permissions.TaskView)

	d, err := f.tasks.Detail(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Parent", d.Task.Title)
	assert.Len(t, d.SubTasks, 1)
	assert.Empty(t, d.Activity)
	require.Error(t, d.Partial)
}
