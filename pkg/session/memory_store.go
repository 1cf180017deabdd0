package session

import (
	"context"
	"sync"
	"time"
)

type MemoryStore struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	lastSweep time.Time
	sweepEach time.Duration
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions:  make(map[string]*Session),
		sweepEach: time.Minute,
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()

	s, ok := m.sessions[id]
	if !ok || s.IsExpired() {
		delete(m.sessions, id)
		return nil, ErrNotFound
	}
	cp := *s
	cp.Permissions = append([]string(nil), s.Permissions...)
	return &cp, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	cp.Permissions = append([]string(nil), s.Permissions...)
	m.sessions[s.ID] = &cp
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *MemoryStore) sweepLocked() {
	now := time.Now()
	if now.Sub(m.lastSweep) < m.sweepEach {
		return
	}
	m.lastSweep = now
	for id, s := range m.sessions {
		if !s.ExpiresAt.After(now) {
			delete(m.sessions, id)
		}
	}
}
