package api

import (
	"errors"
	"fmt"
)

// Sentinel failure kinds. Match with errors.Is; the session store and
// services branch only on these, never on messages.
var (
	ErrUnavailable  = errors.New("server unreachable")
	ErrTimeout      = errors.New("request timed out")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("request rejected")
	ErrServer       = errors.New("server error")
	ErrUnknown      = errors.New("unknown error")
)

// Error is the normalized failure shape for every remote call.
// Status is the HTTP status code, or 0 for transport-level failures.
// Message is human-readable and safe to display as-is.
type Error struct {
	Kind    error
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (status %d): %s", e.Kind.Error(), e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Message)
}

func (e *Error) Unwrap() error { return e.Kind }
