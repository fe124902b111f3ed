package application

import "errors"

// Error kinds raised by the services. Handlers map these to HTTP status
// codes with errors.Is; detail is attached by wrapping, e.g.
// fmt.Errorf("%w: user already has 5 pets", ErrInvalidRequest).
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrTooManyRequests = errors.New("too many requests")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("not found")
	ErrInvalidRequest  = errors.New("invalid request")
)
