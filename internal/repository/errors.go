package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when a vendor with the same email already exists
	ErrDuplicateEmail = errors.New("vendor with this email already exists")
)
