// Package authn describes the external authentication provider.
package authn

import (
	"context"

	"github.com/worktrack/worktrack/pkg/session"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Identity is who the provider says the bearer of Token is.
type Identity struct {
	Token       string
	User        session.User
	Permissions []string
}

type Provider interface {
	Login(ctx context.Context, creds Credentials) (Identity, error)
	// Logout revokes the token bound to ctx.
	Logout(ctx context.Context) error
	// Me resolves the token bound to ctx. The returned Token is empty.
	Me(ctx context.Context) (Identity, error)
}

type LoggedInEvent struct {
	User session.User
}

type LoggedOutEvent struct {
	User session.User
}
