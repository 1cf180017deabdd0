package user

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

var ErrCannotDeleteSelf = errors.New("users cannot delete their own account")

type User struct {
	ID        int64
	Name      string
	Email     string
	RoleID    int64
	RoleName  string
	Active    bool
	Language  UILanguage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateData is what the create dialog submits. Password is only sent on create.
type CreateData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   int64  `json:"role_id"`
	Active   bool   `json:"is_active"`
	Language string `json:"language,omitempty"`
}

type UpdateData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	RoleID   int64  `json:"role_id"`
	Active   bool   `json:"is_active"`
	Language string `json:"language,omitempty"`
}

type FindParams struct {
	Page   int
	Limit  int
	Search string
	RoleID int64
}

type Repository interface {
	GetPaginated(ctx context.Context, params *FindParams) ([]User, int, error)
	GetByID(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, data CreateData) (User, error)
	Update(ctx context.Context, id int64, data UpdateData) (User, error)
	Delete(ctx context.Context, id int64) error
}
