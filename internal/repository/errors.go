package repository

import "errors"

// Common repository errors
var (
	// ErrUnauthorized is returned when an operation is attempted without a
	// resolved caller identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDeckNotFound deliberately does not distinguish a missing deck from a
	// deck owned by someone else, so existence never leaks to non-owners.
	ErrDeckNotFound = errors.New("deck not found or unauthorized")

	// ErrCardNotFound follows the same convention for cards.
	ErrCardNotFound = errors.New("card not found or unauthorized")
)
