package services_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/worktrack/modules/core/domain/entities/authn"
	"github.com/worktrack/worktrack/modules/core/services"
	"github.com/worktrack/worktrack/pkg/apiclient"
	"github.com/worktrack/worktrack/pkg/session"
)

type providerMock struct {
	mock.Mock
}

func (m *providerMock) Login(ctx context.Context, creds authn.Credentials) (authn.Identity, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(authn.Identity), args.Error(1)
}

func (m *providerMock) Logout(ctx context.Context) error {
	return m.Called(apiclient.TokenFrom(ctx)).Error(0)
}

func (m *providerMock) Me(ctx context.Context) (authn.Identity, error) {
	args := m.Called(apiclient.TokenFrom(ctx))
	return args.Get(0).(authn.Identity), args.Error(1)
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := signedIn(t, session.User{})
	provider := &providerMock{}
	provider.On("Login", mock.Anything, authn.Credentials{Email: "ann@example.com", Password: "pw"}).
		Return(authn.Identity{Token: "tok-1", User: session.User{ID: 1, Name: "Ann"}, Permissions: []string{"user.view"}}, nil)
	provider.On("Me", "tok-1").
		Return(authn.Identity{User: session.User{ID: 1, Name: "Ann Lee"}, Permissions: []string{"user.view", "role.view"}}, nil)

	store := session.NewMemoryStore()
	bus, rec := newBus(t)
	svc := services.NewAuthService(provider, store, bus)

	sess, err := svc.Authenticate(ctx, "  ann@example.com ", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", sess.Token)
	assert.Equal(t, "Ann Lee", sess.User.Name)
	assert.Equal(t, []string{"user.view", "role.view"}, sess.Permissions)

	stored, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.Token, stored.Token)
	require.Len(t, rec.all(), 1)
	assert.IsType(t, &authn.LoggedInEvent{}, rec.all()[0])
	provider.AssertExpectations(t)
}

func TestAuthService_AuthenticateKeepsLoginIdentityWhenMeFails(t *testing.T) {
	ctx := signedIn(t, session.User{})
	provider := &providerMock{}
	provider.On("Login", mock.Anything, mock.Anything).
		Return(authn.Identity{Token: "tok-1", User: session.User{ID: 1, Name: "Ann"}, Permissions: []string{"user.view"}}, nil)
	provider.On("Me", "tok-1").Return(authn.Identity{}, &apiclient.Error{Status: http.StatusBadGateway})

	bus, _ := newBus(t)
	sess, err := services.NewAuthService(provider, session.NewMemoryStore(), bus).Authenticate(ctx, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "Ann", sess.User.Name)
	assert.Equal(t, []string{"user.view"}, sess.Permissions)
}

func TestAuthService_AuthenticateRejectsBadCredentials(t *testing.T) {
	ctx := signedIn(t, session.User{})
	provider := &providerMock{}
	provider.On("Login", mock.Anything, mock.Anything).
		Return(authn.Identity{}, &apiclient.Error{Status: http.StatusUnauthorized, Message: "wrong password"})

	store := session.NewMemoryStore()
	bus, _ := newBus(t)
	_, err := services.NewAuthService(provider, store, bus).Authenticate(ctx, "a", "b")
	require.ErrorIs(t, err, services.ErrInvalidCredentials)
	assert.Equal(t, "wrong password", apiclient.Message(err, ""))
	assert.Equal(t, 0, store.Len())
}

func TestAuthService_LogoutIsBestEffort(t *testing.T) {
	ctx := signedIn(t, session.User{})
	provider := &providerMock{}
	provider.On("Logout", "tok").Return(&apiclient.Error{Status: http.StatusBadGateway})

	store := session.NewMemoryStore()
	sess := session.New("tok", session.User{ID: 1}, nil, time.Hour)
	require.NoError(t, store.Save(ctx, sess))

	bus, _ := newBus(t)
	require.NoError(t, services.NewAuthService(provider, store, bus).Logout(ctx, sess))
	_, err := store.Get(ctx, sess.ID)
	require.ErrorIs(t, err, session.ErrNotFound)
	provider.AssertExpectations(t)
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := signedIn(t, session.User{})
	provider := &providerMock{}
	provider.On("Me", "tok").Return(authn.Identity{User: session.User{ID: 1, Language: "zh"}, Permissions: []string{"*"}}, nil)

	store := session.NewMemoryStore()
	sess := session.New("tok", session.User{ID: 1}, nil, time.Hour)
	require.NoError(t, store.Save(ctx, sess))

	bus, _ := newBus(t)
	refreshed, err := services.NewAuthService(provider, store, bus).Refresh(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, []string{"*"}, refreshed.Permissions)
	assert.Equal(t, sess.ID, refreshed.ID)

	stored, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "zh", stored.User.Language)
}
