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
	"github.com/worktrack/worktrack/modules/core/presentation/templates/pages/roles"
	"github.com/worktrack/worktrack/pkg/itf"
)

func rolesSuite(t *testing.T, perms ...string) *itf.Suite {
	t.Helper()
	s := itf.Setup(t, itf.WithModules(core.NewModule(nil)), itf.WithUser(admin, perms...))
	s.Backend.Respond("GET /api/roles", []models.Role{
		{ID: 1, Name: "Admin", IsSystem: true, UsersCount: 1},
		{ID: 2, Name: "Member", UsersCount: 0, Permissions: []models.Permission{{ID: 1, Key: "user.view"}}},
	})
	s.Backend.Respond("GET /api/roles/2", models.Role{
		ID: 2, Name: "Member", Permissions: []models.Permission{{ID: 1, Key: "user.view"}},
	})
	s.Backend.Respond("GET /api/permissions", []models.Permission{
		{ID: 1, Key: "user.view", Name: "View users"},
		{ID: 2, Key: "user.create", Name: "Create users"},
		{ID: 9, Key: "report.view", Name: "View reports"},
	})
	return s
}

func TestRolesController_List(t *testing.T) {
	s := rolesSuite(t, permissions.RoleView, permissions.RoleDelete)

	res := s.GET("/roles").Do()
	require.Equal(t, http.StatusOK, res.Status())
	doc := res.HTML()
	assert.True(t, doc.Exists(`//tr[@id="role-1"]`))
	assert.False(t, doc.Exists(`//*[@id="delete-role-1"]`), "system roles cannot be deleted")
	assert.True(t, doc.Exists(`//*[@id="delete-role-2"]`))
}

func TestRolesController_CreateRequiresName(t *testing.T) {
	s := rolesSuite(t, permissions.RoleView, permissions.RoleCreate)

	res := s.POST("/roles").HTMX().Form(url.Values{"Name": {"  "}}).Do()
	require.Equal(t, http.StatusOK, res.Status())
	assert.Contains(t, res.Body(), "Name is required")
	assert.Empty(t, s.Backend.CallsTo(http.MethodPost, "/api/roles"))
}

func TestRolesController_DeleteSystemRoleIsRefused(t *testing.T) {
	s := rolesSuite(t, permissions.RoleView, permissions.RoleDelete)
	s.Backend.Respond("GET /api/roles/1", models.Role{ID: 1, Name: "Admin", IsSystem: true})

	res := s.DELETE("/roles/1").HTMX().Do()
	assert.Equal(t, http.StatusConflict, res.Status())
	assert.Empty(t, s.Backend.CallsTo(http.MethodDelete, "/api/roles/1"))
}

func TestRolesController_PermissionMatrix(t *testing.T) {
	s := rolesSuite(t, permissions.RoleView, permissions.RoleUpdate)

	res := s.GET("/roles/2/permissions").Do()
	require.Equal(t, http.StatusOK, res.Status())
	doc := res.HTML()
	assert.True(t, doc.Exists(`//fieldset[@data-group="users"]//input[@value="1" and @checked]`))
	assert.True(t, doc.Exists(`//fieldset[@data-group="users"]//input[@value="2" and not(@checked)]`))
	assert.True(t, doc.Exists(`//fieldset[@data-group="other"]//input[@value="9"]`), "unknown permissions land in the other group")
	assert.Equal(t, "/roles/2/permissions", doc.Attr(`//form[@id="`+roles.MatrixID+`"]`, "hx-put"))
}

func TestRolesController_SetPermissions(t *testing.T) {
	s := rolesSuite(t, permissions.RoleView, permissions.RoleUpdate)
	s.Backend.Respond("PUT /api/role-permissions/2", nil)

	res := s.PUT("/roles/2/permissions").HTMX().Form(url.Values{"permission_ids": {"1", "2"}}).Do()
	require.Equal(t, http.StatusOK, res.Status())
	assert.Contains(t, res.Trigger(), roles.ChangeEvent)

	var body models.RolePermissions
	s.Backend.LastCall(http.MethodPut, "/api/role-permissions/2").Decode(t, &body)
	assert.Equal(t, []int64{1, 2}, body.PermissionIDs)
}

func TestRolesController_SetPermissionsNeedsUpdate(t *testing.T) {
	s := rolesSuite(t, permissions.RoleView)

	res := s.PUT("/roles/2/permissions").HTMX().Form(url.Values{"permission_ids": {"1"}}).Do()
	assert.Equal(t, http.StatusForbidden, res.Status())
	assert.Empty(t, s.Backend.CallsTo(http.MethodPut, "/api/role-permissions/2"))
}
