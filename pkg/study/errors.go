package study

import (
	"errors"
	"fmt"
)

// Error kinds the submission pipeline can produce. Handlers map these onto
// HTTP statuses: ValidationError -> 400, ErrStudyNotFound -> 404,
// ErrAlreadyParticipated -> 409, anything else -> 500.
var (
	ErrStudyNotFound       = errors.New("study not found")
	ErrAlreadyParticipated = errors.New("participant has already submitted responses for this study")
)

// ValidationError names the offending field or question so clients get an
// actionable message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
