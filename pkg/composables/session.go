package composables

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/worktrack/worktrack/pkg/authz"
	"github.com/worktrack/worktrack/pkg/constants"
	"github.com/worktrack/worktrack/pkg/session"
)

var ErrNoSession = errors.New("no session found")

func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, constants.SessionKey, s)
}

func UseSession(ctx context.Context) (*session.Session, error) {
	s, ok := ctx.Value(constants.SessionKey).(*session.Session)
	if !ok || s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}

// UseUser returns the signed-in user snapshot taken at login.
func UseUser(ctx context.Context) (session.User, error) {
	s, err := UseSession(ctx)
	if err != nil {
		return session.User{}, err
	}
	return s.User, nil
}

func UsePermissions(ctx context.Context) []string {
	s, err := UseSession(ctx)
	if err != nil {
		return nil
	}
	return s.Permissions
}

// CanUser reports whether the signed-in user holds permission. The result is
// cached on the request's view state when one is present.
func CanUser(ctx context.Context, permission string) bool {
	if state := authz.ViewStateFromContext(ctx); state != nil {
		return state.Can(permission)
	}
	return authz.HasPermission(UsePermissions(ctx), permission)
}

// RequirePermission returns an *authz.ForbiddenError when permission is missing
// and records it on the view state for the forbidden page.
func RequirePermission(ctx context.Context, permission string) error {
	if CanUser(ctx, permission) {
		return nil
	}
	if state := authz.ViewStateFromContext(ctx); state != nil {
		state.AddMissingPermission(permission)
	}
	return &authz.ForbiddenError{Permission: authz.NormalizePermission(permission)}
}
