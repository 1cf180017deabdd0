package authorization

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/pkg/authz"
)

func TestForbiddenProps_MissingPermissions(t *testing.T) {
	state := authz.NewViewState("user:1", nil)
	state.AddMissingPermission("Users.Read")
	state.AddMissingPermission("projects.delete")

	p := ForbiddenProps{Permission: " users.read ", State: state}
	assert.Equal(t, []string{"projects.delete", "users.read"}, p.MissingPermissions())
	assert.Empty(t, ForbiddenProps{}.MissingPermissions())
}

func TestForbidden_Render(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, Forbidden(ForbiddenProps{
		Permission: "roles.update",
		RequestURL: "/roles/3",
	}).Render(context.Background(), &sb))

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sb.String()))
	require.NoError(t, err)
	section := doc.Find("section[data-forbidden]")
	require.Equal(t, 1, section.Length())
	assert.Equal(t, "Access denied", section.Find("h1").Text())
	assert.Equal(t, "roles.update", section.Find("li[data-permission]").AttrOr("data-permission", ""))
	assert.Contains(t, section.Text(), "/roles/3")
	assert.Equal(t, "/", section.Find("a").AttrOr("href", ""))
}
