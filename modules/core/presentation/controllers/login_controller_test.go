package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/modules/core"
	"github.com/worktrack/worktrack/modules/core/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/modules/core/permissions"
	"github.com/worktrack/worktrack/modules/core/presentation/controllers"
	"github.com/worktrack/worktrack/pkg/itf"
)

func anonymousSuite(t *testing.T) *itf.Suite {
	t.Helper()
	return itf.Setup(t, itf.WithModules(core.NewModule(nil)))
}

func TestLoginController_Page(t *testing.T) {
	s := anonymousSuite(t)

	res := s.GET("/login?next=/projects").Do()
	require.Equal(t, http.StatusOK, res.Status())
	doc := res.HTML()
	assert.True(t, doc.Exists(`//form[@data-login-form]`))
	assert.Equal(t, "/projects", doc.Attr(`//input[@name="Next"]`, "value"))
}

func TestLoginController_SignedInUserSkipsLogin(t *testing.T) {
	s := itf.Setup(t, itf.WithModules(core.NewModule(nil)), itf.WithUser(admin))

	res := s.GET("/login?next=//evil.example.com").Do()
	assert.Equal(t, http.StatusFound, res.Status())
	assert.Equal(t, "/", res.Header().Get("Location"))
}

func TestLoginController_Success(t *testing.T) {
	s := anonymousSuite(t)
	s.Backend.Respond("POST /api/auth/login", models.LoginResult{
		Token:       "tok-123",
		User:        models.User{ID: 5, Name: "Eve", Email: "eve@example.com"},
		Permissions: []string{"project.view"},
	})
	s.Backend.Respond("GET /api/auth/me", models.Me{
		User:        models.User{ID: 5, Name: "Eve", Email: "eve@example.com"},
		Permissions: []string{"project.view", "task.view"},
	})

	res := s.POST("/login").Form(url.Values{
		"Email":    {"eve@example.com"},
		"Password": {"secret"},
		"Next":     {"/projects?page=2"},
	}).Do()
	require.Equal(t, http.StatusFound, res.Status())
	assert.Equal(t, "/projects?page=2", res.Header().Get("Location"))

	cookie := res.Cookie(s.Config.Session.CookieKey)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	sess, err := s.Sessions.Get(t.Context(), cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", sess.Token)
	assert.Equal(t, []string{"project.view", "task.view"}, sess.Permissions)

	me := s.Backend.LastCall(http.MethodGet, "/api/auth/me")
	assert.Equal(t, "Bearer tok-123", me.Header.Get("Authorization"))
}

func TestLoginController_InvalidCredentials(t *testing.T) {
	s := anonymousSuite(t)
	s.Backend.RespondError("POST /api/auth/login", http.StatusUnauthorized, "bad credentials")

	res := s.POST("/login").Form(url.Values{
		"Email":    {"eve@example.com"},
		"Password": {"wrong"},
	}).Do()
	assert.Equal(t, http.StatusUnprocessableEntity, res.Status())
	assert.Equal(t, "Email or password is incorrect.", res.HTML().Text(`//form//div[@role="alert"]`))
	assert.Nil(t, res.Cookie(s.Config.Session.CookieKey))
	assert.Equal(t, 0, s.Sessions.Len())
}

func TestLoginController_ValidationSkipsProvider(t *testing.T) {
	s := anonymousSuite(t)

	res := s.POST("/login").Form(url.Values{"Email": {"nope"}}).Do()
	assert.Equal(t, http.StatusUnprocessableEntity, res.Status())
	assert.Empty(t, s.Backend.CallsTo(http.MethodPost, "/api/auth/login"))
}

func TestLoginController_RateLimited(t *testing.T) {
	s := anonymousSuite(t)

	for i := 0; i < controllers.LoginAttemptsPerMinute; i++ {
		res := s.POST("/login").Form(url.Values{}).Do()
		require.Equal(t, http.StatusUnprocessableEntity, res.Status())
	}
	res := s.POST("/login").Form(url.Values{}).Do()
	assert.Equal(t, http.StatusTooManyRequests, res.Status())
}

func TestLoginController_Logout(t *testing.T) {
	s := itf.Setup(t, itf.WithModules(core.NewModule(nil)), itf.WithUser(admin))
	s.Backend.Respond("POST /api/auth/logout", nil)

	res := s.POST("/logout").Do()
	assert.Equal(t, http.StatusFound, res.Status())
	assert.Equal(t, "/login", res.Header().Get("Location"))
	assert.Equal(t, 0, s.Sessions.Len())
	require.NotNil(t, res.Cookie(s.Config.Session.CookieKey))
	assert.Equal(t, -1, res.Cookie(s.Config.Session.CookieKey).MaxAge)
	assert.Equal(t, "Bearer test-token", s.Backend.LastCall(http.MethodPost, "/api/auth/logout").Header.Get("Authorization"))
}

func TestExpiredTokenReturnsToPageAfterLogin(t *testing.T) {
	s := usersSuite(t, permissions.UserView)
	s.Backend.RespondError("GET /api/users", http.StatusUnauthorized, "token expired")
	s.Backend.RespondError("POST /api/auth/logout", http.StatusUnauthorized, "token expired")

	res := s.GET("/users?page=2").Do()
	require.Equal(t, http.StatusFound, res.Status())
	logout := res.Header().Get("Location")
	assert.Equal(t, "/logout?next=%2Fusers%3Fpage%3D2", logout)

	res = s.GET(logout).Do()
	require.Equal(t, http.StatusFound, res.Status())
	assert.Equal(t, "/login?next=%2Fusers%3Fpage%3D2", res.Header().Get("Location"))
	assert.Equal(t, 0, s.Sessions.Len())

	res = s.GET("/logout?next=https://evil.test").Do()
	assert.Equal(t, "/login", res.Header().Get("Location"))
}
