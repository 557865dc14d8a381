package domain

import "errors"

var (
	// ErrUnauthorized is returned when the caller lacks the capability required by an operation
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidRecipient is returned when a recipient identity is empty, the zero address or equal to the sender
	ErrInvalidRecipient = errors.New("invalid recipient")

	// ErrTokenNotFound is returned when a token is not found
	ErrTokenNotFound = errors.New("token not found")

	// ErrOwnerMismatch is returned when the claimed sender is not the current owner of the token
	ErrOwnerMismatch = errors.New("owner mismatch")
)
