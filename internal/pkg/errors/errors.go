package errors

import "errors"

var (
	// ErrNotFound covers both true absence and rows hidden by tenant
	// scoping; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is a generic sentinel for role/ownership failures.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict signals a stale status precondition (e.g. submitting an
	// inspection that is no longer open or in progress).
	ErrConflict = errors.New("conflict")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
)
