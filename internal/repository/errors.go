package repository

import "errors"

// Errors shared across repository implementations.
var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry means an insert or update violated a unique constraint.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)

// Per-resource aliases, kept so callers can name what was missing.
var (
	ErrUserNotFound = ErrNotFound
	ErrItemNotFound = ErrNotFound
	ErrRoomNotFound = ErrNotFound
)
