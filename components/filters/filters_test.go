package filters

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/components/base"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/configuration"
)

func TestForm_DebouncedSearch(t *testing.T) {
	ctx := composables.WithConfig(context.Background(), &configuration.Configuration{SearchDebounce: 250_000_000})
	p := Props{ID: "users-filter", URL: "/users", Target: "#users-list"}
	p.Fields = []templ.Component{
		Search(p, "search", "ana", "Search"),
		Select("role_id", "2", "All roles", []base.SelectOption{{Value: "1", Label: "Admin"}, {Value: "2", Label: "Staff"}}),
	}

	buf := &bytes.Buffer{}
	require.NoError(t, Form(p).Render(ctx, buf))
	doc, err := goquery.NewDocumentFromReader(buf)
	require.NoError(t, err)

	form := doc.Find("form#users-filter")
	assert.Equal(t, "/users", form.AttrOr("hx-get", ""))
	input := form.Find(`input[name="search"]`)
	assert.Equal(t, "ana", input.AttrOr("value", ""))
	assert.Equal(t, "input changed delay:250ms, search", input.AttrOr("hx-trigger", ""))
	assert.Equal(t, "#users-filter", input.AttrOr("hx-include", ""))
	assert.Equal(t, "2", form.Find("select option[selected]").AttrOr("value", ""))
}
