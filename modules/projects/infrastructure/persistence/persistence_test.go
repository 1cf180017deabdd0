package persistence_test

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/project"
	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/task"
	"github.com/worktrack/worktrack/modules/projects/domain/entities/file"
	"github.com/worktrack/worktrack/modules/projects/infrastructure/persistence"
	"github.com/worktrack/worktrack/modules/projects/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/pkg/itf"
)

func TestProjectRepository_GetPaginated(t *testing.T) {
	b := itf.NewBackend(t).Respond("GET /api/project", itf.Page([]models.Project{
		{ID: 4, Name: "Apollo", Code: "APL", Status: "active", StartDate: "2026-01-05", EndDate: "2026-06-30T00:00:00Z", Manager: &models.Ref{ID: 7, Name: "Mia"}},
	}, 31, 1, 10))
	repo := persistence.NewProjectRepository(b.Client())

	items, total, err := repo.GetPaginated(context.Background(), &project.FindParams{Page: 1, Limit: 10, Search: "apo", Status: project.StatusActive})
	require.NoError(t, err)
	assert.Equal(t, 31, total)
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].ManagerID)
	assert.Equal(t, "Mia", items[0].ManagerName)
	assert.Equal(t, "2026-06-30", items[0].EndDate.Format("2006-01-02"))

	call := b.LastCall(http.MethodGet, "/api/project")
	assert.Equal(t, "limit=10&page=1&search=apo&status=active", call.Query)
}

func TestProjectRepository_Members(t *testing.T) {
	b := itf.NewBackend(t).
		Respond("GET /api/project/4/members", []models.Member{{UserID: 2, Name: "Bo", Email: "bo@example.com"}}).
		Respond("POST /api/project/4/members", models.Member{UserID: 3}).
		Respond("DELETE /api/project/4/members/2", nil)
	repo := persistence.NewProjectRepository(b.Client())
	ctx := context.Background()

	members, err := repo.Members(ctx, 4)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Bo", members[0].Name)

	require.NoError(t, repo.AddMember(ctx, 4, 3))
	var sent models.MemberInput
	b.LastCall(http.MethodPost, "/api/project/4/members").Decode(t, &sent)
	assert.Equal(t, int64(3), sent.UserID)

	require.NoError(t, repo.RemoveMember(ctx, 4, 2))
	assert.Len(t, b.CallsTo(http.MethodDelete, "/api/project/4/members/2"), 1)
}

func TestTaskRepository_GetPaginatedQuery(t *testing.T) {
	b := itf.NewBackend(t).Respond("GET /api/tasks", itf.Page([]models.Task{
		{
			ID: 9, ProjectID: 4, Project: &models.Ref{ID: 4, Name: "Apollo"}, ParentID: 8,
			Title: "Wire login", Status: "in_progress", Priority: "high",
			EstimateHours: decimal.RequireFromString("2.5"),
			Assignees:     []models.Ref{{ID: 2, Name: "Bo"}},
		},
	}, 1, 1, 25))
	repo := persistence.NewTaskRepository(b.Client())

	items, _, err := repo.GetPaginated(context.Background(), &task.FindParams{Page: 1, Limit: 25, ProjectID: 4, AssigneeID: 2, OpenOnly: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsSubTask())
	assert.Equal(t, "Apollo", items[0].ProjectName)
	assert.True(t, items[0].IsAssigned(2))
	assert.True(t, decimal.RequireFromString("2.5").Equal(items[0].EstimateHours))

	call := b.LastCall(http.MethodGet, "/api/tasks")
	assert.Equal(t, "assignee_id=2&limit=25&open=true&page=1&project_id=4", call.Query)
}

func TestTaskRepository_PatchStatusSendsMergePatch(t *testing.T) {
	b := itf.NewBackend(t).Respond("PATCH /api/tasks/9/status", models.Task{ID: 9, Status: "done", Progress: 100})
	repo := persistence.NewTaskRepository(b.Client())

	updated, err := repo.PatchStatus(context.Background(), 9, []byte(`{"progress":100,"status":"done"}`))
	require.NoError(t, err)
	assert.Equal(t, task.StatusDone, updated.Status)

	call := b.LastCall(http.MethodPatch, "/api/tasks/9/status")
	assert.Equal(t, persistence.MergePatchContentType, call.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"progress":100,"status":"done"}`, string(call.Body))
}

func TestTaskRepository_SetAssigneesSendsEmptyList(t *testing.T) {
	b := itf.NewBackend(t).Respond("PUT /api/tasks/9/assignees", models.Task{ID: 9})
	repo := persistence.NewTaskRepository(b.Client())

	_, err := repo.SetAssignees(context.Background(), 9, nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_ids":[]}`, string(b.LastCall(http.MethodPut, "/api/tasks/9/assignees").Body))
}

func TestFileRepository_UploadIsMultipart(t *testing.T) {
	b := itf.NewBackend(t).Respond("POST /api/project/4/files", models.File{ID: 1, ProjectID: 4, Name: "plan.txt", Size: 11})
	repo := persistence.NewFileRepository(b.Client())

	f, err := repo.Upload(context.Background(), 4, file.Upload{Name: "plan.txt", Content: []byte("hello world")})
	require.NoError(t, err)
	assert.Equal(t, int64(11), f.Size)

	call := b.LastCall(http.MethodPost, "/api/project/4/files")
	mediaType, params, err := mime.ParseMediaType(call.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)

	part, err := multipart.NewReader(strings.NewReader(string(call.Body)), params["boundary"]).NextPart()
	require.NoError(t, err)
	assert.Equal(t, "file", part.FormName())
	assert.Equal(t, "plan.txt", part.FileName())
	content, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(content))
}

func TestFileRepository_NotFound(t *testing.T) {
	b := itf.NewBackend(t).RespondError("GET /api/project/4/files", http.StatusNotFound, "project not found")
	repo := persistence.NewFileRepository(b.Client())

	_, err := repo.List(context.Background(), 4)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list files of project 4")
}
