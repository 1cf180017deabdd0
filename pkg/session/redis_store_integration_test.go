//go:build integration
// +build integration

package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) string {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)
	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewRedisStoreFromURL(setupRedis(t))
	require.NoError(t, err)
	require.NoError(t, store.Ping(ctx))

	s := New("tok", User{ID: 9, Name: "Lee", Role: "manager"}, []string{"leave.approve"}, time.Minute)
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Token, got.Token)
	assert.Equal(t, s.User, got.User)
	assert.Equal(t, s.Permissions, got.Permissions)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_SaveExpiredDeletes(t *testing.T) {
	ctx := context.Background()
	store, err := NewRedisStoreFromURL(setupRedis(t))
	require.NoError(t, err)

	s := New("tok", User{ID: 1}, nil, time.Minute)
	require.NoError(t, store.Save(ctx, s))
	s.ExpiresAt = time.Now().Add(-time.Second)
	require.NoError(t, store.Save(ctx, s))

	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
