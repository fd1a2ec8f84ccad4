package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a ledger entry or profile does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed input: an out-of-enum categorical value,
// a non-finite number or a missing required field.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}

func newValidationError(field, value, msg string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: msg}
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
