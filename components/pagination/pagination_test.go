package pagination

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_Pages(t *testing.T) {
	s := State{Page: 6, PageSize: 10, Total: 200}
	assert.Equal(t, 20, s.TotalPages())
	assert.Equal(t, []int{1, 0, 4, 5, 6, 7, 8, 0, 20}, s.Pages())
	assert.Equal(t, []int{1}, State{Page: 1, PageSize: 10}.Pages())
}

func TestState_URLKeepsQuery(t *testing.T) {
	s := State{BaseURL: "/projects?search=apollo&page=3&status=active"}
	assert.Equal(t, "/projects?page=4&search=apollo&status=active", s.URL(4))
}

func TestPagination_Render(t *testing.T) {
	var sb strings.Builder
	s := State{Page: 2, PageSize: 10, Total: 35, BaseURL: "/tasks?status=todo", Target: "#tasks-body"}
	require.NoError(t, Pagination(s).Render(context.Background(), &sb))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
	require.NoError(t, err)
	links := doc.Find("nav a")
	// prev, 1..4, next
	assert.Equal(t, 6, links.Length())
	current := doc.Find(`a[aria-current="page"]`)
	assert.Equal(t, "2", current.Text())
	assert.Equal(t, "#tasks-body", current.AttrOr("hx-target", ""))
	assert.Equal(t, "/tasks?page=3&status=todo", links.Last().AttrOr("href", ""))
}

func TestPagination_SinglePageRendersNothing(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Pagination(State{Page: 1, PageSize: 25, Total: 3}).Render(context.Background(), &sb))
	assert.Empty(t, sb.String())
}
