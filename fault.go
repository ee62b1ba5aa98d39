package dispatch

import (
	"fmt"
	"strings"
)

// FaultCode categorizes a dispatch failure. Codes are stable machine-readable
// identifiers; the human-readable details live in the fault message.
type FaultCode string

const (
	// FaultValidation marks a dispatch rejected by the validation stage.
	FaultValidation FaultCode = "VALIDATION_FAILED"

	// FaultNotFound marks a dispatch that targeted a missing entity.
	FaultNotFound FaultCode = "NOT_FOUND"

	// FaultHandler marks an unexpected handler failure (returned error or panic).
	FaultHandler FaultCode = "HANDLER_FAILED"

	// FaultCancelled marks a dispatch aborted by context cancellation or deadline.
	FaultCancelled FaultCode = "CANCELLED"
)

// Fault describes why a dispatch failed. It is carried inside a Result and is
// never raised out of Dispatch. The underlying cause is preserved for
// diagnostics and can be inspected with errors.Is and errors.As through Unwrap.
type Fault struct {
	Code       FaultCode
	Message    string
	Violations []Violation // populated only for FaultValidation
	cause      error
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return f.Message
}

// Unwrap exposes the original cause for errors.Is and errors.As inspection.
func (f *Fault) Unwrap() error {
	return f.cause
}

// Violation is a single validation rule failure. Field may be empty for
// violations that concern the command as a whole.
type Violation struct {
	Field   string
	Message string
}

// ValidationError aggregates rule violations into an error value. The
// validation stage produces it internally; handlers may also return it to
// have their own deep checks surface as a validation fault.
type ValidationError struct {
	Violations []Violation
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}

	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		if v.Field == "" {
			parts[i] = v.Message
			continue
		}
		parts[i] = v.Field + ": " + v.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NotFoundError reports a missing entity. The message deterministically embeds
// the entity name and the string form of the identifier, so callers can build
// it from any key type they hold.
type NotFoundError struct {
	Entity string
	ID     any
}

// Error implements the error interface.
func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %v was not found", e.Entity, e.ID)
}
