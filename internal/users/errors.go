package users

import "errors"

var (
	// ErrUserNotFound is returned when user isn't on the list.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidRole is returned for roles unknown to the CRM.
	ErrInvalidRole = errors.New("invalid role")
)
