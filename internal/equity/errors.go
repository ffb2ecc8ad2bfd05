package equity

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig matches every *ValidationError under errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidationError names the first field that failed validation and the value it held.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
	Err    error // underlying cause, e.g. a card parse error

	absent bool // Value is meaningless: the field was missing
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%q %s.", e.Field, e.Reason)
	if !e.absent {
		msg += fmt.Sprintf(" Invalid: %v", e.Value)
	}
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidConfig }

func invalid(field string, value any, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

func invalidCause(field string, value any, reason string, cause error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason, Err: cause}
}
