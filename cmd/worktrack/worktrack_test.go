package main

import (
	"bytes"
	"net/http"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	projectmodels "github.com/worktrack/worktrack/modules/projects/infrastructure/persistence/models"
	sheetmodels "github.com/worktrack/worktrack/modules/timesheets/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/pkg/itf"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func execute(b *itf.Backend, args ...string) result {
	var stdout, stderr bytes.Buffer
	full := append([]string{}, args...)
	if b != nil {
		full = append(full, "--api-url", b.URL(), "--token", "cli-token")
	}
	code := run(full, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestProjectsList(t *testing.T) {
	b := itf.NewBackend(t).Respond("GET /api/project", itf.Page([]projectmodels.Project{
		{ID: 4, Name: "Apollo", Code: "APL", Status: "active", Manager: &projectmodels.Ref{ID: 1, Name: "Mia Manager"}},
	}, 1, 2, 10))

	res := execute(b, "projects", "list", "--search", "apo", "--status", "active", "--page", "2", "--limit", "10")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Apollo")
	assert.Contains(t, res.stdout, "Mia Manager")
	assert.Contains(t, res.stdout, "1 of 1, page 2")

	call := b.LastCall(http.MethodGet, "/api/project")
	assert.Equal(t, "Bearer cli-token", call.Header.Get("Authorization"))
	q, err := url.ParseQuery(call.Query)
	require.NoError(t, err)
	assert.Equal(t, "apo", q.Get("search"))
	assert.Equal(t, "active", q.Get("status"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "10", q.Get("limit"))
}

func TestProjectsListRejectsUnknownStatus(t *testing.T) {
	b := itf.NewBackend(t)

	res := execute(b, "projects", "list", "--status", "archived")
	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, "archived")
	assert.Empty(t, b.Calls())
}

func TestTasksListRequiresProject(t *testing.T) {
	b := itf.NewBackend(t)

	res := execute(b, "tasks", "list")
	assert.Equal(t, exitUsage, res.code)
	assert.Contains(t, res.stderr, "--project")
	assert.Empty(t, b.Calls())
}

func TestTasksList(t *testing.T) {
	b := itf.NewBackend(t).Respond("GET /api/tasks", itf.Page([]projectmodels.Task{
		{ID: 12, ProjectID: 4, Title: "Wire login", Status: "todo", Priority: "high", Progress: 40,
			Assignees: []projectmodels.Ref{{ID: 3, Name: "Cy Newcomer"}}},
	}, 1, 1, 25))

	res := execute(b, "tasks", "list", "--project", "4")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Wire login")
	assert.Contains(t, res.stdout, "Cy Newcomer")
	assert.Contains(t, res.stdout, "40%")

	q, err := url.ParseQuery(b.LastCall(http.MethodGet, "/api/tasks").Query)
	require.NoError(t, err)
	assert.Equal(t, "4", q.Get("project_id"))
}

func TestTasksShowRendersDescription(t *testing.T) {
	b := itf.NewBackend(t).Respond("GET /api/tasks/12", projectmodels.Task{
		ID: 12, Title: "Wire login", Status: "in_progress", Priority: "high",
		Description: "# Scope\n\nUse the **session** store.",
	})

	res := execute(b, "tasks", "show", "12")
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "#12 Wire login")
	assert.Contains(t, res.stdout, "Scope")
	assert.Contains(t, res.stdout, "session")
}

func TestTasksShowValidatesID(t *testing.T) {
	assert.Equal(t, exitUsage, execute(nil, "tasks", "show", "abc").code)
	assert.Equal(t, exitUsage, execute(nil, "tasks", "show").code)
}

func TestTimesheetsExport(t *testing.T) {
	b := itf.NewBackend(t).Respond("GET /api/daily-sheet", itf.Page([]sheetmodels.DailySheet{
		{ID: 8, Date: "2026-10-22", Project: &sheetmodels.Ref{ID: 4, Name: "Apollo"}, Hours: decimal.NewFromInt(2)},
		{ID: 7, Date: "2026-10-21", Project: &sheetmodels.Ref{ID: 4, Name: "Apollo"}, Hours: decimal.RequireFromString("6.5")},
	}, 2, 1, 10000))
	out := filepath.Join(t.TempDir(), "week.xlsx")

	res := execute(b, "timesheets", "export", "--from", "2026-10-19", "--to", "2026-10-25", "--out", out)
	require.Equal(t, exitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "2 entries written to "+out)

	wb, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer func() { _ = wb.Close() }()
	rows, err := wb.GetRows("Timesheet")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Apollo", rows[1][2])
	assert.Equal(t, "6.5", rows[1][4], "entries are sorted by date")
	assert.Equal(t, "8.5", rows[3][4])

	q, err := url.ParseQuery(b.LastCall(http.MethodGet, "/api/daily-sheet").Query)
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", q.Get("from"))
	assert.Equal(t, "2026-10-25", q.Get("to"))
}

func TestTimesheetsExportUsageErrors(t *testing.T) {
	b := itf.NewBackend(t)

	cases := map[string][]string{
		"reversed range": {"timesheets", "export", "--from", "2026-10-25", "--to", "2026-10-19"},
		"bad date":       {"timesheets", "export", "--from", "19.10.2026", "--to", "2026-10-25"},
		"missing flag":   {"timesheets", "export", "--from", "2026-10-19"},
		"unknown flag":   {"timesheets", "export", "--since", "2026-10-19"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			res := execute(b, args...)
			assert.Equal(t, exitUsage, res.code, res.stderr)
			assert.NotEmpty(t, res.stderr)
		})
	}
	assert.Empty(t, b.Calls())
}

func TestUnknownCommandIsUsageError(t *testing.T) {
	assert.Equal(t, exitUsage, execute(nil, "invoices").code)
}

func TestAPIFailureExitsOne(t *testing.T) {
	b := itf.NewBackend(t).RespondError("GET /api/project", http.StatusInternalServerError, "database is down")

	res := execute(b, "projects", "list")
	assert.Equal(t, exitAPI, res.code)
	assert.Contains(t, res.stderr, "database is down")
}
