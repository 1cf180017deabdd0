package role

import (
	"context"
	"errors"
	"time"
)

// ErrNotDeletable is returned for system roles and roles still assigned to users.
var ErrNotDeletable = errors.New("role cannot be deleted")

type Role struct {
	ID          int64
	Name        string
	Description string
	// Permissions holds the granted permission keys.
	Permissions []string
	UsersCount  int
	// System roles ship with the backend and cannot be deleted.
	System    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r Role) CanDelete() bool {
	return !r.System && r.UsersCount == 0
}

func (r Role) HasPermission(key string) bool {
	for _, p := range r.Permissions {
		if p == key {
			return true
		}
	}
	return false
}

type SaveData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Repository interface {
	GetAll(ctx context.Context) ([]Role, error)
	GetByID(ctx context.Context, id int64) (Role, error)
	Create(ctx context.Context, data SaveData) (Role, error)
	Update(ctx context.Context, id int64, data SaveData) (Role, error)
	Delete(ctx context.Context, id int64) error
	SetPermissions(ctx context.Context, id int64, permissionIDs []int64) error
}
