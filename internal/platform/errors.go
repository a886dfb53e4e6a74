package platform

import (
	"errors"
)

var (
	// ErrAlreadySubscribed is an error returned when event already has a subscriber.
	ErrAlreadySubscribed = errors.New("event already has a subscriber")
	// ErrChannelClosed is an error returned when push channel is not consuming anymore.
	ErrChannelClosed = errors.New("push channel closed")
)
