package model

import "errors"

// Domain failures the store layer reports distinctly so handlers can pick
// the right status code. Anything else from the store is a storage error.
var (
	// ErrDuplicateEmail is returned when a create or update would violate
	// the unique email constraint.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrOwnerNotFound is returned when an item references a user that
	// does not exist.
	ErrOwnerNotFound = errors.New("owner user not found")
)
