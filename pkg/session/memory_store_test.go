package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := New("tok", User{ID: 3, Name: "Ann"}, []string{"project.view"}, time.Hour)
	require.NotEmpty(t, s.ID)
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, "Ann", got.User.Name)
	assert.Equal(t, []string{"project.view"}, got.Permissions)

	got.Permissions[0] = "mutated"
	again, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "project.view", again.Permissions[0])

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryStore_ExpiredSessionIsNotReturned(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := New("tok", User{ID: 1}, nil, time.Hour)
	s.ExpiresAt = time.Now().Add(-time.Second)
	require.NoError(t, store.Save(ctx, s))

	_, err := store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_SweepsExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.sweepEach = 0

	stale := New("a", User{ID: 1}, nil, time.Hour)
	stale.ExpiresAt = time.Now().Add(-time.Minute)
	fresh := New("b", User{ID: 2}, nil, time.Hour)
	require.NoError(t, store.Save(ctx, stale))
	require.NoError(t, store.Save(ctx, fresh))

	_, err := store.Get(ctx, fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := New("tok", User{ID: int64(i)}, nil, time.Minute)
			_ = store.Save(ctx, s)
			_, _ = store.Get(ctx, s.ID)
			_ = store.Delete(ctx, s.ID)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 0, store.Len())
}

func TestSession_TTL(t *testing.T) {
	s := New("tok", User{}, nil, time.Hour)
	assert.False(t, s.IsExpired())
	assert.InDelta(t, time.Hour.Seconds(), s.TTL().Seconds(), 2)

	s.ExpiresAt = time.Now().Add(-time.Hour)
	assert.True(t, s.IsExpired())
	assert.Equal(t, time.Duration(0), s.TTL())
}
