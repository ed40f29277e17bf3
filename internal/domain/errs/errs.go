// Package errs defines the error kinds shared by every domain package.
// Domain errors wrap one of the kinds so callers can branch on the kind
// with errors.Is without knowing every individual sentinel.
package errs

import (
	"errors"
	"fmt"
)

// Error kinds
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("state conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// NotFound returns a new error of kind ErrNotFound.
func NotFound(msg string) error {
	return &kindError{kind: ErrNotFound, msg: msg}
}

// Conflict returns a new error of kind ErrConflict.
func Conflict(msg string) error {
	return &kindError{kind: ErrConflict, msg: msg}
}

// Forbidden returns a new error of kind ErrForbidden.
func Forbidden(msg string) error {
	return &kindError{kind: ErrForbidden, msg: msg}
}

// Storage wraps a persistence failure so that it matches ErrStorageUnavailable
// while keeping the driver error in the chain.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}
