package api

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport is returned when there was no response from the API.
	ErrTransport = errors.New("api unreachable")
	// ErrUnauthorized is returned when the API rejected credentials.
	ErrUnauthorized = errors.New("api rejected credentials")
	// ErrServer is returned when the API responded with unexpected status.
	ErrServer = errors.New("api responded with error status")
	// ErrDecode is returned when the API response can't be decoded.
	ErrDecode = errors.New("can't decode api response")
)

// Error is error returned by Client. Kind is one of ErrTransport, ErrUnauthorized, ErrServer or ErrDecode.
type Error struct {
	Kind     error
	Endpoint string
	Status   int
	// Message is message sent by the API, if any.
	Message string
	Err     error
}

// Error returns error description.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Endpoint, e.Kind)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err)
	}
	return msg
}

// Unwrap returns error kind and underlying error.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Message returns message sent by the API with err or fallback when there is none.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Status returns response status carried by err or 0.
func Status(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
