package persistence_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/modules/core/domain/aggregates/role"
	"github.com/worktrack/worktrack/modules/core/domain/aggregates/user"
	"github.com/worktrack/worktrack/modules/core/domain/entities/authn"
	"github.com/worktrack/worktrack/modules/core/infrastructure/persistence"
	"github.com/worktrack/worktrack/modules/core/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/pkg/apiclient"
	"github.com/worktrack/worktrack/pkg/itf"
)

func TestUserRepository_GetPaginated(t *testing.T) {
	b := itf.NewBackend(t).Respond("GET /api/users", itf.Page([]models.User{
		{ID: 1, Name: "Ann", Email: "ann@example.com", Role: &models.RoleRef{ID: 2, Name: "Admin"}, IsActive: true, Language: "zh"},
		{ID: 2, Name: "Bob", Email: "bob@example.com", RoleID: 3, Language: "fr"},
	}, 12, 2, 2))
	repo := persistence.NewUserRepository(b.Client())

	users, total, err := repo.GetPaginated(context.Background(), &user.FindParams{Page: 2, Limit: 2, Search: " an ", RoleID: 2})
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, users, 2)
	assert.Equal(t, int64(2), users[0].RoleID)
	assert.Equal(t, "Admin", users[0].RoleName)
	assert.Equal(t, user.UILanguageZH, users[0].Language)
	assert.Equal(t, user.UILanguageEN, users[1].Language)

	call := b.LastCall(http.MethodGet, "/api/users")
	assert.Equal(t, "limit=2&page=2&role_id=2&search=an", call.Query)
}

func TestUserRepository_CreateUpdateDelete(t *testing.T) {
	b := itf.NewBackend(t).
		Respond("POST /api/users", models.User{ID: 9, Name: "Cy", Email: "cy@example.com"}).
		Respond("PUT /api/users/9", models.User{ID: 9, Name: "Cyd", Email: "cy@example.com"}).
		Respond("DELETE /api/users/9", nil)
	repo := persistence.NewUserRepository(b.Client())
	ctx := context.Background()

	created, err := repo.Create(ctx, user.CreateData{Name: "Cy", Email: "cy@example.com", Password: "secret", RoleID: 1, Active: true})
	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)

	var sent map[string]any
	b.LastCall(http.MethodPost, "/api/users").Decode(t, &sent)
	assert.Equal(t, "secret", sent["password"])
	assert.Equal(t, true, sent["is_active"])

	updated, err := repo.Update(ctx, 9, user.UpdateData{Name: "Cyd"})
	require.NoError(t, err)
	assert.Equal(t, "Cyd", updated.Name)

	require.NoError(t, repo.Delete(ctx, 9))
}

func TestUserRepository_NotFoundIsMatchable(t *testing.T) {
	b := itf.NewBackend(t).RespondError("GET /api/users/4", http.StatusNotFound, "no such user")
	_, err := persistence.NewUserRepository(b.Client()).GetByID(context.Background(), 4)
	require.ErrorIs(t, err, apiclient.ErrNotFound)
	assert.Equal(t, "no such user", apiclient.Message(err, ""))
}

func TestRoleRepository(t *testing.T) {
	b := itf.NewBackend(t).
		Respond("GET /api/roles", []models.Role{{
			ID:          1,
			Name:        "Manager",
			UsersCount:  3,
			Permissions: []models.Permission{{ID: 5, Key: "Project.View"}},
		}}).
		Respond("PUT /api/role-permissions/1", nil)
	repo := persistence.NewRoleRepository(b.Client())
	ctx := context.Background()

	roles, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, []string{"project.view"}, roles[0].Permissions)
	assert.True(t, roles[0].HasPermission("project.view"))
	assert.False(t, roles[0].CanDelete())

	require.NoError(t, repo.SetPermissions(ctx, 1, nil))
	var body models.RolePermissions
	b.LastCall(http.MethodPut, "/api/role-permissions/1").Decode(t, &body)
	assert.NotNil(t, body.PermissionIDs)
	assert.Empty(t, body.PermissionIDs)
}

func TestRole_CanDelete(t *testing.T) {
	assert.True(t, role.Role{}.CanDelete())
	assert.False(t, role.Role{System: true}.CanDelete())
}

func TestAuthRepository_Login(t *testing.T) {
	b := itf.NewBackend(t).
		Respond("POST /api/auth/login", models.LoginResult{
			Token:       "tok",
			User:        models.User{ID: 3, Name: "Ann", Role: &models.RoleRef{ID: 2, Name: "Admin"}},
			Permissions: []string{"*"},
		})
	res, err := persistence.NewAuthRepository(b.Client()).Login(context.Background(), authn.Credentials{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, "Admin", res.User.Role)
	assert.Equal(t, int64(2), res.User.RoleID)
	assert.Equal(t, []string{"*"}, res.Permissions)

	var sent map[string]string
	b.LastCall(http.MethodPost, "/api/auth/login").Decode(t, &sent)
	assert.Equal(t, map[string]string{"email": "a@b.c", "password": "pw"}, sent)
}

func TestAuthRepository_Me(t *testing.T) {
	b := itf.NewBackend(t).Respond("GET /api/auth/me", models.Me{
		User:        models.User{ID: 3, Name: "Ann"},
		Permissions: []string{"Task.View"},
	})
	ctx := apiclient.WithToken(context.Background(), "tok")
	me, err := persistence.NewAuthRepository(b.Client()).Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"task.view"}, me.Permissions)
	assert.Equal(t, "Bearer tok", b.LastCall(http.MethodGet, "/api/auth/me").Header.Get("Authorization"))
}

func TestAuthRepository_LoginRejectsEmptyToken(t *testing.T) {
	b := itf.NewBackend(t).Respond("POST /api/auth/login", models.LoginResult{})
	_, err := persistence.NewAuthRepository(b.Client()).Login(context.Background(), authn.Credentials{})
	require.Error(t, err)
}
