package store

import "errors"

var (
	// ErrNotFound covers both a missing record and a record owned by
	// someone else; callers cannot tell the two apart.
	ErrNotFound = errors.New("record not found")

	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already taken")

	ErrInvalidInput = errors.New("invalid input")
)
