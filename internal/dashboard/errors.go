package dashboard

import "errors"

var (
	// ErrUnrecognizedShape is returned when chart payload has none of known shapes.
	ErrUnrecognizedShape = errors.New("unrecognized chart payload shape")
	// ErrInvalidStats is returned when stats response has unknown structure.
	ErrInvalidStats = errors.New("invalid stats data structure")
	// ErrHistoryDisabled is returned when stats history storage isn't configured.
	ErrHistoryDisabled = errors.New("stats history is disabled")
)
