package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing field, unknown event kind, bad timestamp).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ValidationError carries the human-readable detail of a validation failure.
// It satisfies errors.Is(err, ErrValidation), so callers keep branching on
// the sentinel; handlers use errors.As to extract Detail for the response
// body without parsing error strings.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return "validation error: " + e.Detail }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Validationf builds a ValidationError with a formatted detail message.
func Validationf(format string, args ...any) error {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

// ErrNoData is returned when a day has no events left after denoising.
// It is an expected outcome, not a failure: handlers should map it to an
// explicit "no data" response, never to a 5xx.
var ErrNoData = errors.New("no data")
