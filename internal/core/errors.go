package core

import (
	"errors"
	"fmt"
)

var (
	ErrRepository   = errors.New("repository unavailable")
	ErrAuth         = errors.New("authentication failed")
	ErrRendering    = errors.New("rendering failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnverified   = errors.New("email not verified")
)

// RepositoryError wraps a storage failure. It matches ErrRepository as well
// as the underlying driver error.
type RepositoryError struct {
	Op  string
	Err error
}

func NewRepositoryError(op string, err error) error {
	return &RepositoryError{Op: op, Err: err}
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() []error {
	return []error{ErrRepository, e.Err}
}

// RenderingError reports a record that cannot be turned into an answer.
type RenderingError struct {
	Reason string
}

func (e *RenderingError) Error() string {
	return "rendering failed: " + e.Reason
}

func (e *RenderingError) Is(target error) bool {
	return target == ErrRendering
}
