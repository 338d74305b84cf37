package engine

import (
	"errors"
	"fmt"
)

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission attempt is still running. The engine state is not changed.
//
// Applications can safely ignore this error as it's expected behavior
// for de-duplicating rapid submit clicks.
var ErrSubmitInFlight = errors.New("formflow: submit already in flight")

// ErrValidation is the sentinel wrapped by ValidationError. Use
// errors.Is(err, ErrValidation) to detect submit-time validation
// failures without inspecting the concrete type.
var ErrValidation = errors.New("formflow: validation failed")

// generalErrorKey is the errors-map key for submission failures that
// are not tied to a single field.
const generalErrorKey = "general"

// generalErrorMessage is stored under generalErrorKey when the submit
// callback fails.
const generalErrorMessage = "Submission failed. Please try again."

// ValidationError is returned by Submit when form validation fails.
// Fields holds the same messages the engine stored in its errors map,
// keyed by field name or section key.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("formflow: validation failed for %d field(s)", len(e.Fields))
}

// Unwrap returns ErrValidation for errors.Is support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
