package dao

import "errors"

// Sentinel errors shared by stores; match them with errors.Is.

var (
	// ErrNotFound is returned when no entity is stored under the key.
	ErrNotFound = errors.New("dao: not found")

	// ErrInvalidID indicates that the supplied key is empty.
	ErrInvalidID = errors.New("dao: invalid id")

	// ErrNilEntity is returned when the caller attempts to store a nil pointer.
	ErrNilEntity = errors.New("dao: nil entity")
)
