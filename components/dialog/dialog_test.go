package dialog

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/components/base"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, c.Render(context.Background(), &sb))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
	require.NoError(t, err)
	return doc
}

func TestConfirm(t *testing.T) {
	doc := render(t, Confirm(ConfirmProps{
		ID:      "delete-project-1",
		Title:   "Delete project?",
		Text:    "This cannot be undone.",
		Action:  "/projects/1",
		Target:  "#project-1",
		Swap:    "outerHTML",
		Trigger: base.ButtonProps{Variant: base.ButtonGhost, Label: "Delete"},
	}))

	trigger := doc.Find("button").First()
	assert.Contains(t, trigger.AttrOr("onclick", ""), "delete-project-1")

	dlg := doc.Find("dialog#delete-project-1")
	require.Equal(t, 1, dlg.Length())
	assert.Equal(t, "Delete project?", dlg.Find("h3").Text())

	cancel := dlg.Find("form[method=dialog] button")
	require.Equal(t, 1, cancel.Length())
	_, hasAction := cancel.Attr("hx-delete")
	assert.False(t, hasAction)

	confirm := dlg.Find("button[hx-delete]")
	require.Equal(t, 1, confirm.Length())
	assert.Equal(t, "/projects/1", confirm.AttrOr("hx-delete", ""))
	assert.Equal(t, "#project-1", confirm.AttrOr("hx-target", ""))
	assert.Equal(t, "Confirm", strings.TrimSpace(confirm.Text()))
}

func TestConfirm_MethodOverride(t *testing.T) {
	doc := render(t, Confirm(ConfirmProps{ID: "approve", Action: "/leave/3/approve", Method: "patch"}))
	assert.Equal(t, 1, doc.Find("button[hx-patch]").Length())
	assert.Equal(t, 0, doc.Find("button[onclick*=showModal]").Length())
}

func TestFormDialog(t *testing.T) {
	doc := render(t, FormDialog(FormDialogProps{
		ID:        "project-form",
		Title:     "New project",
		Action:    "/projects",
		Multipart: true,
		Error:     "Please fix the errors below",
		Body:      base.Input(base.InputProps{Name: "Name"}),
	}))
	form := doc.Find("dialog[data-autoopen]#project-form form")
	require.Equal(t, 1, form.Length())
	assert.Equal(t, "/projects", form.AttrOr("hx-post", ""))
	assert.Equal(t, "closest dialog", form.AttrOr("hx-target", ""))
	assert.Equal(t, "multipart/form-data", form.AttrOr("hx-encoding", ""))
	assert.Equal(t, 1, form.Find("input[name=Name]").Length())
	assert.Equal(t, "Please fix the errors below", form.Find("[role=alert]").Text())
	assert.Equal(t, 1, form.Find("button[type=submit]").Length())
}

func TestOpenButton(t *testing.T) {
	doc := render(t, OpenButton(base.ButtonProps{Label: "New"}, "/projects/new"))
	btn := doc.Find("button")
	assert.Equal(t, "/projects/new", btn.AttrOr("hx-get", ""))
	assert.Equal(t, "#"+RootID, btn.AttrOr("hx-target", ""))
}
