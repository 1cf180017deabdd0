package spotlight

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/session"
)

func withPermissions(perms ...string) context.Context {
	s := session.New("tok", session.User{ID: 1}, perms, time.Hour)
	return composables.WithSession(context.Background(), s)
}

func newLinks() *QuickLinks {
	links := &QuickLinks{}
	links.Add(
		NewQuickLink(nil, "Projects", "/projects").RequirePermission("project.view"),
		NewQuickLink(nil, "Tasks", "/tasks").RequirePermission("task.view"),
		NewQuickLink(nil, "Timesheets", "/timesheets"),
		NewQuickLink(nil, "Roles", "/roles").RequirePermission("role.view"),
	)
	return links
}

func TestQuickLinks_FiltersByPermission(t *testing.T) {
	found := newLinks().Find(withPermissions("project.view"), "")
	hrefs := make([]string, 0, len(found))
	for _, l := range found {
		hrefs = append(hrefs, l.Href())
	}
	assert.Equal(t, []string{"/projects", "/timesheets"}, hrefs)
}

func TestQuickLinks_FuzzyMatch(t *testing.T) {
	found := newLinks().Find(withPermissions("*"), "tsk")
	require.Len(t, found, 1)
	assert.Equal(t, "/tasks", found[0].Href())
}

func TestQuickLinks_DeniedWithoutSession(t *testing.T) {
	found := newLinks().Find(context.Background(), "")
	require.Len(t, found, 1)
	assert.Equal(t, "/timesheets", found[0].Href())
}

func TestQuickLink_RenderEscapes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewQuickLink(nil, "<b>x</b>", "/a?b=1&c=2").Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "&lt;b&gt;x&lt;/b&gt;")
	assert.Contains(t, buf.String(), `href="/a?b=1&amp;c=2"`)
}
