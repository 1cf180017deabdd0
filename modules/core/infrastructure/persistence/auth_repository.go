package persistence

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/worktrack/worktrack/modules/core/domain/entities/authn"
	"github.com/worktrack/worktrack/modules/core/infrastructure/persistence/models"
	"github.com/worktrack/worktrack/pkg/apiclient"
	"github.com/worktrack/worktrack/pkg/authz"
)

// AuthRepository talks to the external auth provider.
type AuthRepository struct {
	api *apiclient.Client
}

func NewAuthRepository(api *apiclient.Client) authn.Provider {
	return &AuthRepository{api: api}
}

func toIdentity(token string, u models.User, permissions []string) authn.Identity {
	normalized := make([]string, 0, len(permissions))
	for _, p := range permissions {
		normalized = append(normalized, authz.NormalizePermission(p))
	}
	return authn.Identity{Token: token, User: ToSessionUser(u), Permissions: normalized}
}

func (g *AuthRepository) Login(ctx context.Context, creds authn.Credentials) (authn.Identity, error) {
	res, err := apiclient.Post[models.LoginResult](ctx, g.api, "/api/auth/login", creds)
	if err != nil {
		return authn.Identity{}, errors.Wrap(err, "login")
	}
	if res.Token == "" {
		return authn.Identity{}, errors.New("login: empty token")
	}
	return toIdentity(res.Token, res.User, res.Permissions), nil
}

func (g *AuthRepository) Logout(ctx context.Context) error {
	return g.api.Do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
}

func (g *AuthRepository) Me(ctx context.Context) (authn.Identity, error) {
	me, err := apiclient.Get[models.Me](ctx, g.api, "/api/auth/me", nil)
	if err != nil {
		return authn.Identity{}, errors.Wrap(err, "me")
	}
	return toIdentity("", me.User, me.Permissions), nil
}
