package entities

import (
	"errors"
	"fmt"
)

// ErrNotFound signals a lookup, update or delete on an unknown id. Callers
// should treat it as an empty display state, not a crash.
var ErrNotFound = errors.New("not found")

// ErrInvalidEdge signals an attempt to relate a person to themselves.
var ErrInvalidEdge = errors.New("invalid edge: a relationship needs two distinct people")

// ValidationError reports a rejected input before any store mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
