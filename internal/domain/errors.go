package domain

import "errors"

var (
	// ErrNotFound reports that a snapshot document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrMalformed reports that a snapshot document does not have the expected shape.
	ErrMalformed = errors.New("malformed document")
)
