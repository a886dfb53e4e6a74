package events

import "errors"

// ErrInvalidPayload is an error returned when event payload is not valid JSON.
var ErrInvalidPayload = errors.New("event payload is not valid json")
