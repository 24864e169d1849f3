package services

import (
	"errors"
	"fmt"

	"github.com/c0sm0thecoder/scorecard-api/internal/repositories"
)

// Error kinds returned by the services. Every service error wraps exactly one
// of these with a human-readable reason; anything else is internal.
var (
	ErrInvalid  = errors.New("invalid")
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

type kindError struct {
	kind   error
	reason string
}

func (e *kindError) Error() string { return e.reason }

func (e *kindError) Unwrap() error { return e.kind }

func invalid(format string, args ...any) error {
	return &kindError{kind: ErrInvalid, reason: fmt.Sprintf(format, args...)}
}

func notFound(reason string) error {
	return &kindError{kind: ErrNotFound, reason: reason}
}

func conflict(reason string) error {
	return &kindError{kind: ErrConflict, reason: reason}
}

// classify turns repository sentinels into service kinds. Errors that
// already carry a kind and unknown errors pass through unchanged.
func classify(err error, notFoundReason, conflictReason string) error {
	var ke *kindError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ke):
		return err
	case errors.Is(err, repositories.ErrNotFound):
		return notFound(notFoundReason)
	case errors.Is(err, repositories.ErrConflict):
		return conflict(conflictReason)
	default:
		return err
	}
}
