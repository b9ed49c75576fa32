package store

import "errors"

var (
	// ErrNotFound indicates no record matched the given key.
	ErrNotFound = errors.New("store: record not found")

	// ErrEmailTaken indicates a user insert hit the unique email constraint.
	ErrEmailTaken = errors.New("store: email already registered")
)
