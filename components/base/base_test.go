package base

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
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
	require.NoError(t, err)
	return doc
}

func TestButton_VariantAndOverride(t *testing.T) {
	doc := render(t, Button(ButtonProps{
		Variant: ButtonDanger,
		Label:   "Delete",
		Class:   "px-2",
		Attrs:   templ.Attributes{"hx-delete": "/projects/1", "data-confirm": true, "data-skip": false},
	}))
	btn := doc.Find("button")
	require.Equal(t, 1, btn.Length())
	class, _ := btn.Attr("class")
	assert.Contains(t, class, "bg-red-600")
	assert.Contains(t, class, "px-2")
	assert.NotContains(t, class, "px-4")
	assert.Equal(t, "button", btn.AttrOr("type", ""))
	assert.Equal(t, "/projects/1", btn.AttrOr("hx-delete", ""))
	_, hasConfirm := btn.Attr("data-confirm")
	_, hasSkip := btn.Attr("data-skip")
	assert.True(t, hasConfirm)
	assert.False(t, hasSkip)
	assert.Equal(t, "Delete", strings.TrimSpace(btn.Text()))
}

func TestButton_Link(t *testing.T) {
	doc := render(t, Button(ButtonProps{Href: "/tasks?x=1&y=2", Label: "Tasks"}))
	assert.Equal(t, "/tasks?x=1&y=2", doc.Find("a").AttrOr("href", ""))
}

func TestInput_EscapesAndShowsError(t *testing.T) {
	doc := render(t, Input(InputProps{Name: "Name", Label: "Name", Value: `"><script>`, Required: true, Error: "Required"}))
	input := doc.Find("input#field-Name")
	require.Equal(t, 1, input.Length())
	assert.Equal(t, `"><script>`, input.AttrOr("value", ""))
	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Equal(t, "Required", doc.Find("p[role=alert]").Text())
	assert.Contains(t, doc.Find("label").Text(), "*")
}

func TestInput_PasswordNeverEchoed(t *testing.T) {
	doc := render(t, Input(InputProps{Name: "Password", Type: "password", Value: "secret"}))
	_, has := doc.Find("input").Attr("value")
	assert.False(t, has)
}

func TestSelect_MarksSelected(t *testing.T) {
	doc := render(t, Select(SelectProps{
		Name:        "Status",
		Placeholder: "Any",
		Selected:    "active",
		Options:     []SelectOption{{"planned", "Planned"}, {"active", "Active"}},
	}))
	assert.Equal(t, 3, doc.Find("option").Length())
	assert.Equal(t, "active", doc.Find("option[selected]").AttrOr("value", ""))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AL", Initials("ada  lovelace byron"))
	assert.Equal(t, "?", Initials(" "))
	assert.Equal(t, "张", Initials("张"))
}

func TestCardAndHeader(t *testing.T) {
	doc := render(t, Join(
		PageHeader("Projects", "All projects", Text("x")),
		Card("Members", Badge("active", BadgeGreen)),
	))
	assert.Equal(t, "Projects", doc.Find("h1").Text())
	assert.Equal(t, "Members", doc.Find("section h2").Text())
	assert.Equal(t, "active", doc.Find("section span").Text())
}
