package table

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	// goquery drops bare <tr> outside a table, so wrap fragments.
	html := sb.String()
	if strings.HasPrefix(html, "<tr") {
		html = "<table><tbody>" + html + "</tbody></table>"
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

var columns = []Column{{Key: "name", Label: "Name"}, {Key: "status", Label: "Status"}}

func TestTable_RendersRowsAndRefresh(t *testing.T) {
	doc := render(t, Table(Props{
		ID:        "projects",
		Columns:   columns,
		RowsURL:   "/projects?rows=1",
		RefreshOn: "projectsChanged from:body",
		Rows: []Row{
			{ID: "project-1", Cells: []templ.Component{LinkCell("Apollo", "/projects/1"), TextCell("active")}},
			{ID: "project-2", Cells: []templ.Component{TextCell("<Gemini>"), TextCell("planned")}},
		},
	}))

	assert.Equal(t, 2, doc.Find("thead th").Length())
	body := doc.Find("tbody#projects-body")
	require.Equal(t, 1, body.Length())
	assert.Equal(t, "/projects?rows=1", body.AttrOr("hx-get", ""))
	assert.Equal(t, "projectsChanged from:body", body.AttrOr("hx-trigger", ""))
	assert.Equal(t, "#projects-loading", body.AttrOr("hx-indicator", ""))
	assert.Equal(t, 2, body.Find("tr").Length())
	assert.Equal(t, "/projects/1", doc.Find("#project-1 a").AttrOr("href", ""))
	assert.Equal(t, "<Gemini>", doc.Find("#project-2 td").First().Text())
	assert.Equal(t, 1, doc.Find("#projects-loading.htmx-indicator").Length())
}

func TestRows_EmptyState(t *testing.T) {
	doc := render(t, Rows(Props{ID: "tasks", Columns: columns}))
	empty := doc.Find("tr[data-empty] td")
	require.Equal(t, 1, empty.Length())
	assert.Equal(t, "2", empty.AttrOr("colspan", ""))
	assert.Equal(t, "Nothing here yet.", empty.Text())

	doc = render(t, Rows(Props{Columns: columns, EmptyText: "No tasks match"}))
	assert.Equal(t, "No tasks match", doc.Find("tr[data-empty] td").Text())
}
