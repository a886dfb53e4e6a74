package session

import "errors"

var (
	// ErrInvalidToken is returned when token can't be decoded or is expired.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrValidation is returned when form values are invalid.
	ErrValidation = errors.New("invalid form values")
)
