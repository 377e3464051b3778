package analyzer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is the only error Analyze reports to callers.
var ErrInvalidArgument = errors.New("invalid argument")

// ValidationError describes a rejected argument.
// It wraps ErrInvalidArgument so callers can test with errors.Is.
type ValidationError struct {
	Field   string // Name of the rejected argument
	Message string // Human-readable explanation
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s: %s", ErrInvalidArgument, e.Field))
	if e.Message != "" {
		sb.WriteString(fmt.Sprintf(": %s", e.Message))
	}
	return sb.String()
}

// Unwrap returns ErrInvalidArgument.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidArgument
}

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
