package http

import "errors"

// errBadRequest is returned when request can't be bound.
var errBadRequest = errors.New("bad request")
