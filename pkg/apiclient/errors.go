package apiclient

import (
	"fmt"
	"net/http"

	"github.com/go-faster/errors"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("backend unavailable")
)

// Error is returned for every response the backend did not mark as successful.
// Message carries the backend's own text when it sent one.
type Error struct {
	Status  int
	Message string
	Method  string
	Path    string
	// Cause is set when the request never produced a response.
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Cause)
	}
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is lets callers match the sentinel errors with errors.Is.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrConflict:
		return e.Status == http.StatusConflict
	case ErrValidation:
		return e.Status == http.StatusBadRequest ||
			e.Status == http.StatusUnprocessableEntity ||
			(e.Status > 0 && e.Status < http.StatusBadRequest)
	case ErrUnavailable:
		return e.Status >= http.StatusInternalServerError || e.Status == 0
	}
	return false
}

// Message extracts a user-facing message from err, or returns fallback.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
