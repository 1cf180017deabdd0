package authz

import (
	"fmt"

	"github.com/go-faster/errors"
)

var ErrForbidden = errors.New("permission denied")

// ForbiddenError names the permission a request was missing.
type ForbiddenError struct {
	Permission string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("permission denied: %s", e.Permission)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// Require returns a *ForbiddenError when required is not granted.
func Require(granted []string, required string) error {
	if HasPermission(granted, required) {
		return nil
	}
	return &ForbiddenError{Permission: NormalizePermission(required)}
}
