package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/modules/projects/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/modules/projects/permissions"
	"github.com/worktrack/worktrack/modules/projects/presentation/templates/pages/tasks"
	"github.com/worktrack/worktrack/pkg/itf"
)

func TestTasksController_RowsForTableBody(t *testing.T) {
	s := suite(t, permissions.TaskView)
	s.Backend.Respond("GET /api/tasks", itf.Page([]models.Task{
		{ID: 5, ProjectID: 4, Title: "Wire login", Status: "todo", Priority: "high"},
	}, 1, 1, 25))

	res := s.GET("/tasks?project_id=4&status=todo&assignee_id=2").Target(tasks.TableID + "-body").Do()
	require.Equal(t, http.StatusOK, res.Status())
	assert.Contains(t, res.Body(), `id="task-5"`)
	assert.NotContains(t, res.Body(), "<html")
	assert.Empty(t, s.Backend.CallsTo(http.MethodGet, "/api/project"), "pickers are not needed for rows")

	q, err := url.ParseQuery(s.Backend.LastCall(http.MethodGet, "/api/tasks").Query)
	require.NoError(t, err)
	assert.Equal(t, "4", q.Get("project_id"))
	assert.Equal(t, "todo", q.Get("status"))
	assert.Equal(t, "2", q.Get("assignee_id"))
}

func TestTasksController_IndexLoadsPickers(t *testing.T) {
	s := suite(t, permissions.TaskView, permissions.TaskCreate)
	s.Backend.
		Respond("GET /api/tasks", itf.Page([]models.Task{}, 0, 1, 25)).
		Respond("GET /api/project", itf.Page([]models.Project{{ID: 4, Name: "Apollo"}}, 1, 1, 500))

	res := s.GET("/tasks").Do()
	require.Equal(t, http.StatusOK, res.Status())
	doc := res.HTML()
	assert.True(t, doc.Exists(`//form[@id="`+tasks.FilterID+`"]//option[@value="4"]`))
	assert.True(t, doc.Exists(`//*[@data-action="create"]`))
}

func TestTasksController_ChangeStatus(t *testing.T) {
	s := suite(t, permissions.TaskView, permissions.TaskUpdate)
	s.Backend.
		Respond("GET /api/tasks/5", models.Task{ID: 5, ProjectID: 4, Title: "Wire login", Status: "review", Progress: 80}).
		Respond("PATCH /api/tasks/5/status", models.Task{ID: 5, ProjectID: 4, Title: "Wire login", Status: "done", Progress: 100})

	res := s.PATCH("/tasks/5/status").HTMX().Form(url.Values{"Status": {"done"}}).Do()
	require.Equal(t, http.StatusOK, res.Status())
	assert.Contains(t, res.Trigger(), tasks.StatusEvent)

	call := s.Backend.LastCall(http.MethodPatch, "/api/tasks/5/status")
	assert.Equal(t, "application/merge-patch+json", call.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"status":"done","progress":100}`, string(call.Body))
}

func TestTasksController_ChangeStatusRejectsUnknownStatus(t *testing.T) {
	s := suite(t, permissions.TaskView, permissions.TaskUpdate)

	res := s.PATCH("/tasks/5/status").HTMX().Form(url.Values{"Status": {"archived"}}).Do()
	assert.Equal(t, http.StatusUnprocessableEntity, res.Status())
	assert.Empty(t, s.Backend.CallsTo(http.MethodPatch, "/api/tasks/5/status"))
}

func TestTasksController_ChangeStatusWithoutPermission(t *testing.T) {
	s := suite(t, permissions.TaskView)

	res := s.PATCH("/tasks/5/status").HTMX().Form(url.Values{"Status": {"done"}}).Do()
	assert.Equal(t, http.StatusForbidden, res.Status())
	assert.Empty(t, s.Backend.CallsTo(http.MethodPatch, "/api/tasks/5/status"))
}

func TestTasksController_AssigneePickerPrefersMembers(t *testing.T) {
	s := suite(t, permissions.TaskView, permissions.TaskAssign)
	s.Backend.
		Respond("GET /api/tasks/5", models.Task{ID: 5, ProjectID: 4, Title: "Wire login", Status: "todo", Assignees: []models.Ref{{ID: 2, Name: "Bo Member"}}}).
		Respond("GET /api/project/4/members", []models.Member{{UserID: 2, Name: "Bo Member"}, {UserID: 3, Name: "Cy Newcomer"}})

	res := s.GET("/tasks/5/assignees").HTMX().Do()
	require.Equal(t, http.StatusOK, res.Status())
	doc := res.HTML()
	assert.True(t, doc.Exists(`//input[@name="user_ids" and @value="2" and @checked]`))
	assert.True(t, doc.Exists(`//input[@name="user_ids" and @value="3" and not(@checked)]`))
	assert.False(t, doc.Exists(`//input[@name="user_ids" and @value="1"]`), "non-members are not offered")
}

func TestTasksController_AssigneeListFragment(t *testing.T) {
	s := suite(t, permissions.TaskView)
	s.Backend.Respond("GET /api/tasks/5", models.Task{ID: 5, ProjectID: 4, Assignees: []models.Ref{{ID: 2, Name: "Bo Member"}}})

	res := s.GET("/tasks/5/assignees?fragment=list").HTMX().Do()
	require.Equal(t, http.StatusOK, res.Status())
	assert.Contains(t, res.Body(), `id="`+tasks.AssigneesID+`"`)
	assert.Contains(t, res.Body(), "Bo Member")
	assert.NotContains(t, res.Body(), `data-action="assign"`)
}

func TestTasksController_SetAssignees(t *testing.T) {
	s := suite(t, permissions.TaskView, permissions.TaskAssign)
	s.Backend.Respond("PUT /api/tasks/5/assignees", models.Task{ID: 5})

	res := s.PUT("/tasks/5/assignees").HTMX().Form(url.Values{"user_ids": {"2", "3"}}).Do()
	require.Equal(t, http.StatusOK, res.Status())
	assert.Contains(t, res.Trigger(), tasks.AssigneesEvent)
	assert.JSONEq(t, `{"user_ids":[2,3]}`, string(s.Backend.LastCall(http.MethodPut, "/api/tasks/5/assignees").Body))
}

func TestTasksController_SetAssigneesClearsAll(t *testing.T) {
	s := suite(t, permissions.TaskView, permissions.TaskAssign)
	s.Backend.Respond("PUT /api/tasks/5/assignees", models.Task{ID: 5})

	res := s.PUT("/tasks/5/assignees").HTMX().Form(url.Values{}).Do()
	require.Equal(t, http.StatusOK, res.Status())
	assert.JSONEq(t, `{"user_ids":[]}`, string(s.Backend.LastCall(http.MethodPut, "/api/tasks/5/assignees").Body))
}

func TestTasksController_NewSubTaskForm(t *testing.T) {
	s := suite(t, permissions.TaskView, permissions.TaskCreate)
	s.Backend.Respond("GET /api/tasks/5", models.Task{ID: 5, ProjectID: 4, MainTaskID: 7, Title: "Wire login"})

	res := s.GET("/tasks/new?parent_id=5").HTMX().Do()
	require.Equal(t, http.StatusOK, res.Status())
	doc := res.HTML()
	assert.Equal(t, "5", doc.Attr(`//input[@type="hidden" and @name="ParentID"]`, "value"))
	assert.Equal(t, "4", doc.Attr(`//input[@type="hidden" and @name="ProjectID"]`, "value"))
	assert.False(t, doc.Exists(`//select[@name="ProjectID"]`))
}

func TestTasksController_NestedSubTaskIsRefused(t *testing.T) {
	s := suite(t, permissions.TaskView, permissions.TaskCreate)
	s.Backend.Respond("GET /api/tasks/6", models.Task{ID: 6, ProjectID: 4, ParentID: 5, Title: "Child"})

	res := s.GET("/tasks/new?parent_id=6").HTMX().Do()
	assert.Equal(t, http.StatusUnprocessableEntity, res.Status())
	assert.Contains(t, res.Header().Get("HX-Trigger"), "Sub-tasks cannot have their own sub-tasks.")
}

func TestTasksController_CreateValidatesBeforeCallingBackend(t *testing.T) {
	s := suite(t, permissions.TaskView, permissions.TaskCreate)

	res := s.POST("/tasks").HTMX().Form(url.Values{
		"Title":         {"Draft"},
		"Priority":      {"medium"},
		"Status":        {"todo"},
		"EstimateHours": {"-2"},
	}).Do()
	require.Equal(t, http.StatusOK, res.Status())
	assert.Contains(t, res.Body(), `id="`+tasks.DialogID+`"`)
	assert.Contains(t, res.Body(), "Project is required")
	assert.Empty(t, s.Backend.CallsTo(http.MethodPost, "/api/tasks"))
}

func TestTasksController_CreateRejectsNonNumericEstimate(t *testing.T) {
	s := suite(t, permissions.TaskView, permissions.TaskCreate)

	res := s.POST("/tasks").HTMX().Form(url.Values{
		"ProjectID":     {"4"},
		"Title":         {"Draft"},
		"Priority":      {"medium"},
		"Status":        {"todo"},
		"EstimateHours": {"two days"},
	}).Do()
	require.Equal(t, http.StatusOK, res.Status())
	assert.Contains(t, res.Body(), `id="`+tasks.DialogID+`"`)
	assert.Contains(t, res.Body(), "Estimate (hours) is not a valid value")
	assert.Empty(t, s.Backend.CallsTo(http.MethodPost, "/api/tasks"))
}

func TestTasksController_Create(t *testing.T) {
	s := suite(t, permissions.TaskView, permissions.TaskCreate)
	s.Backend.Respond("POST /api/tasks", models.Task{ID: 12, ProjectID: 4, Title: "Draft"})

	res := s.POST("/tasks").HTMX().Form(url.Values{
		"ProjectID":     {"4"},
		"Title":         {" Draft "},
		"Priority":      {"medium"},
		"Status":        {"todo"},
		"DueDate":       {"2026-11-02"},
		"EstimateHours": {"1.5"},
	}).Do()
	require.Equal(t, http.StatusOK, res.Status())
	assert.Contains(t, res.Trigger(), tasks.ChangeEvent)

	var body map[string]any
	s.Backend.LastCall(http.MethodPost, "/api/tasks").Decode(t, &body)
	assert.Equal(t, "Draft", body["title"])
	assert.Equal(t, "2026-11-02", body["due_date"])
	assert.Equal(t, "1.5", body["estimate_hours"])
	assert.NotContains(t, body, "parent_id")
}

func TestTasksController_Detail(t *testing.T) {
	s := suite(t, permissions.TaskView, permissions.TaskUpdate, permissions.TaskCreate)
	s.Backend.
		Respond("GET /api/tasks/5", models.Task{ID: 5, ProjectID: 4, Project: &models.Ref{ID: 4, Name: "Apollo"}, Title: "Wire login", Status: "in_progress", Priority: "high"}).
		Respond("GET /api/tasks", itf.Page([]models.Task{{ID: 6, ProjectID: 4, ParentID: 5, Title: "Write tests", Status: "todo"}}, 1, 1, 100)).
		Respond("GET /api/activity/task/5", []models.Activity{})

	res := s.GET("/tasks/5").Do()
	require.Equal(t, http.StatusOK, res.Status())
	doc := res.HTML()
	assert.True(t, doc.Exists(`//*[@id="`+tasks.StatusID+`"]//select[@name="Status"]/option[@value="in_progress" and @selected]`))
	assert.True(t, doc.Exists(`//*[@id="`+tasks.SubTasksID+`"]//tr[@id="subtask-6"]`))
	assert.True(t, doc.Exists(`//*[@data-action="create-subtask"]`))

	q, err := url.ParseQuery(s.Backend.LastCall(http.MethodGet, "/api/tasks").Query)
	require.NoError(t, err)
	assert.Equal(t, "5", q.Get("parent_id"))
}

func TestTasksController_SubTaskDetailHasNoSubTaskButton(t *testing.T) {
	s := suite(t, permissions.TaskView, permissions.TaskCreate)
	s.Backend.
		Respond("GET /api/tasks/6", models.Task{ID: 6, ProjectID: 4, ParentID: 5, Title: "Write tests", Status: "todo"}).
		Respond("GET /api/tasks", itf.Page([]models.Task{}, 0, 1, 100)).
		Respond("GET /api/activity/task/6", []models.Activity{})

	res := s.GET("/tasks/6").Do()
	require.Equal(t, http.StatusOK, res.Status())
	assert.False(t, res.HTML().Exists(`//*[@data-action="create-subtask"]`))
}
