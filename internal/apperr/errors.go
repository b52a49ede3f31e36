// Package apperr defines sentinel errors shared across layers.
package apperr

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrAlreadyExists   = errors.New("already exists")
	ErrUnauthenticated = errors.New("not authenticated")
)
