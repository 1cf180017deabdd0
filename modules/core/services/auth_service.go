package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"

	"github.com/worktrack/worktrack/modules/core/domain/entities/authn"
	"github.com/worktrack/worktrack/pkg/apiclient"
	"github.com/worktrack/worktrack/pkg/composables"
	"github.com/worktrack/worktrack/pkg/eventbus"
	"github.com/worktrack/worktrack/pkg/session"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	provider  authn.Provider
	sessions  session.Store
	publisher eventbus.EventBus
}

func NewAuthService(provider authn.Provider, sessions session.Store, publisher eventbus.EventBus) *AuthService {
	return &AuthService{
		provider:  provider,
		sessions:  sessions,
		publisher: publisher,
	}
}

// Authenticate checks the credentials with the auth provider and opens a
// session bound to the returned token.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*session.Session, error) {
	identity, err := s.provider.Login(ctx, authn.Credentials{
		Email:    strings.TrimSpace(email),
		Password: password,
	})
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) || errors.Is(err, apiclient.ErrValidation) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
		}
		return nil, err
	}

	if me, err := s.provider.Me(apiclient.WithToken(ctx, identity.Token)); err == nil {
		identity.User = me.User
		identity.Permissions = me.Permissions
	} else {
		composables.UseLogger(ctx).WithError(err).Warn("failed to refresh identity after login")
	}

	ttl := composables.UseConfig(ctx).Session.Duration
	sess := session.New(identity.Token, identity.User, identity.Permissions, ttl)
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, errors.Wrap(err, "save session")
	}
	s.publisher.Publish(&authn.LoggedInEvent{User: sess.User})
	return sess, nil
}

// Logout revokes the token with the provider when it can and always drops
// the local session.
func (s *AuthService) Logout(ctx context.Context, sess *session.Session) error {
	if err := s.provider.Logout(apiclient.WithToken(ctx, sess.Token)); err != nil {
		composables.UseLogger(ctx).WithError(err).Warn("backend logout failed")
	}
	if err := s.sessions.Delete(ctx, sess.ID); err != nil {
		return errors.Wrap(err, "delete session")
	}
	s.publisher.Publish(&authn.LoggedOutEvent{User: sess.User})
	return nil
}

// Refresh reloads the user and permissions bound to the session's token.
func (s *AuthService) Refresh(ctx context.Context, sess *session.Session) (*session.Session, error) {
	me, err := s.provider.Me(apiclient.WithToken(ctx, sess.Token))
	if err != nil {
		return nil, err
	}
	updated := *sess
	updated.User = me.User
	updated.Permissions = me.Permissions
	if err := s.sessions.Save(ctx, &updated); err != nil {
		return nil, errors.Wrap(err, "save session")
	}
	return &updated, nil
}
