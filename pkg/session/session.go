package session

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// User is the snapshot of the signed-in user returned by the auth provider.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	RoleID   int64  `json:"role_id"`
	Language string `json:"language,omitempty"`
}

// Session binds a browser cookie to a backend bearer token.
type Session struct {
	ID          string    `json:"id"`
	Token       string    `json:"token"`
	User        User      `json:"user"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func New(token string, user User, permissions []string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:          uuid.NewString(),
		Token:       token,
		User:        user,
		Permissions: permissions,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

func (s *Session) IsExpired() bool {
	return !s.ExpiresAt.After(time.Now())
}

// TTL returns the time left before expiry, never negative.
func (s *Session) TTL() time.Duration {
	d := time.Until(s.ExpiresAt)
	if d < 0 {
		return 0
	}
	return d
}

type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
