package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrForbidden is an authenticated caller acting outside their leagues. It matches ErrUnauthorized too.
	ErrForbidden = fmt.Errorf("%w: forbidden", ErrUnauthorized)
)
