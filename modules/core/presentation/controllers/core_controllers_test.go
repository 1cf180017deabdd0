package controllers_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/modules/core"
	"github.com/worktrack/worktrack/modules/core/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/modules/core/permissions"
	"github.com/worktrack/worktrack/modules/core/services"
	"github.com/worktrack/worktrack/pkg/itf"
	"github.com/worktrack/worktrack/pkg/middleware"
)

func TestHealthController(t *testing.T) {
	s := anonymousSuite(t)

	res := s.GET("/health").Do()
	require.Equal(t, http.StatusOK, res.Status())
	var body map[string]any
	res.JSON(&body)
	assert.Equal(t, "ok", body["status"])
}

func TestErrors_NotFoundPage(t *testing.T) {
	s := itf.Setup(t, itf.WithModules(core.NewModule(nil)), itf.WithUser(admin))

	res := s.GET("/definitely-missing").Do()
	assert.Equal(t, http.StatusNotFound, res.Status())
	assert.Contains(t, res.Body(), "Page not found")
	assert.True(t, res.HTML().Exists(`//aside//nav`), "signed-in users keep the navigation")
}

func TestErrors_APIPathsGetJSON(t *testing.T) {
	s := anonymousSuite(t)

	res := s.GET("/api/nothing").Do()
	assert.Equal(t, http.StatusNotFound, res.Status())
	assert.Contains(t, res.Header().Get("Content-Type"), "application/json")

	res = s.DELETE("/health").Header("Accept", "application/json").Do()
	assert.Equal(t, http.StatusMethodNotAllowed, res.Status())
}

func TestDashboardController_Counters(t *testing.T) {
	s := itf.Setup(t, itf.WithModules(core.NewModule(nil)), itf.WithUser(admin, permissions.UserView))
	dashboard := s.App.Service(services.DashboardService{}).(*services.DashboardService)
	dashboard.Register(
		services.Counter{
			Key: "users", Label: "NavigationLinks.Users", Permission: permissions.UserView, Href: "/users",
			Fetch: func(context.Context) (string, error) { return "12", nil },
		},
		services.Counter{
			Key: "roles", Label: "NavigationLinks.Roles", Permission: permissions.RoleView,
			Fetch: func(context.Context) (string, error) { return "3", nil },
		},
		services.Counter{
			Key: "broken", Label: "Broken",
			Fetch: func(context.Context) (string, error) { return "", errors.New("backend down") },
		},
	)

	res := s.GET("/").Do()
	require.Equal(t, http.StatusOK, res.Status())
	doc := res.HTML()
	assert.Equal(t, "12", doc.Text(`//*[@data-counter="users"]//p[@data-value]`))
	assert.False(t, doc.Exists(`//*[@data-counter="roles"]`))
	assert.Equal(t, services.Unavailable, doc.Text(`//*[@data-counter="broken"]//p[@data-value]`))
	assert.Contains(t, doc.Text(`//h1`), "Dashboard")
}

func TestDashboardController_NavHidesForbiddenItems(t *testing.T) {
	s := itf.Setup(t, itf.WithModules(core.NewModule(nil)), itf.WithUser(admin, permissions.UserView))

	doc := s.GET("/").Do().HTML()
	assert.True(t, doc.Exists(`//nav//a[@href="/users"]`))
	assert.False(t, doc.Exists(`//nav//a[@href="/roles"]`))
}

func TestAccountController_Refresh(t *testing.T) {
	s := itf.Setup(t, itf.WithModules(core.NewModule(nil)), itf.WithUser(admin, permissions.UserView))
	s.Backend.Respond("GET /api/auth/me", models.Me{
		User:        models.User{ID: 1, Name: "Ada Admin", Email: "ada@example.com"},
		Permissions: []string{"user.view", "role.view"},
	})

	res := s.POST("/account/refresh").HTMX().Do()
	require.Equal(t, http.StatusOK, res.Status())
	assert.Len(t, res.HTML().Find(`//li[@data-permission]`), 2)

	sess, err := s.Sessions.Get(t.Context(), s.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"user.view", "role.view"}, sess.Permissions)
}

func TestAccountController_SetLanguage(t *testing.T) {
	s := itf.Setup(t, itf.WithModules(core.NewModule(nil)), itf.WithUser(admin))

	res := s.POST("/account/language").
		Header("Referer", "http://localhost:3200/users?page=2").
		Form(url.Values{"language": {"zh"}}).Do()
	assert.Equal(t, http.StatusFound, res.Status())
	assert.Equal(t, "/users?page=2", res.Header().Get("Location"))
	require.NotNil(t, res.Cookie(middleware.LocaleCookie))
	assert.Equal(t, "zh", res.Cookie(middleware.LocaleCookie).Value)

	sess, err := s.Sessions.Get(t.Context(), s.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, "zh", sess.User.Language)

	doc := s.GET("/").Do().HTML()
	assert.Equal(t, "zh", doc.Attr(`//html`, "lang"))
}

func TestAccountController_SetLanguageRejectsUnknown(t *testing.T) {
	s := anonymousSuite(t)

	res := s.POST("/account/language").Form(url.Values{"language": {"fr"}}).Do()
	assert.Nil(t, res.Cookie(middleware.LocaleCookie))
}

func TestSpotlightController(t *testing.T) {
	s := itf.Setup(t, itf.WithModules(core.NewModule(nil)), itf.WithUser(admin, permissions.UserView))

	res := s.GET("/spotlight/search?q=user").Header("Accept", "application/json").Do()
	require.Equal(t, http.StatusOK, res.Status())
	var body struct {
		Data []struct {
			Label string `json:"label"`
			Href  string `json:"href"`
		} `json:"data"`
	}
	res.JSON(&body)
	hrefs := make([]string, 0, len(body.Data))
	for _, hit := range body.Data {
		hrefs = append(hrefs, hit.Href)
	}
	assert.Contains(t, hrefs, "/users")
	assert.NotContains(t, hrefs, "/users/new", "user.create is not granted")
	assert.NotContains(t, hrefs, "/roles")

	res = s.GET("/spotlight/search?q=user").HTMX().Do()
	assert.Contains(t, res.Body(), `href="/users"`)
}
