package main

import "github.com/go-faster/errors"

type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string {
	return e.err.Error()
}

func (e *cliError) Unwrap() error {
	return e.err
}

const (
	exitOK    = 0
	exitAPI   = 1
	exitUsage = 2
)

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

func usageError(format string, args ...any) error {
	return withCode(exitUsage, errors.Errorf(format, args...))
}

// exitCode treats anything not marked as a usage error as an API failure.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return exitAPI
}
