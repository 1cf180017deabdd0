package permission

import "context"

// Permission is a permission known to the backend. Key is the dotted
// "<resource>.<action>" form checked by the UI.
type Permission struct {
	ID          int64
	Key         string
	Name        string
	Description string
}

type Repository interface {
	GetAll(ctx context.Context) ([]Permission, error)
}
