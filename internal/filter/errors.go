package filter

import "errors"

// ErrInvalidFilter is returned when filter has values which can't be searched for.
var ErrInvalidFilter = errors.New("invalid filter")
