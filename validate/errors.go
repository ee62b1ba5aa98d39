package validate

import (
	"errors"
	"strings"
)

// Rule pairs a check with the error reported when the check fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// ValidationError describes a single failed rule on a single field.
// Field is the dot-separated path from the root struct.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every failed rule from a single validation
// pass. Validation never stops at the first failure, so the slice holds
// the complete set of problems found.
type ValidationErrors []ValidationError

// Add appends a validation error.
func (e *ValidationErrors) Add(err ValidationError) {
	*e = append(*e, err)
}

// IsEmpty reports whether no rules failed.
func (e ValidationErrors) IsEmpty() bool {
	return len(e) == 0
}

// Has reports whether any error was recorded for the given field path.
func (e ValidationErrors) Has(field string) bool {
	for _, err := range e {
		if err.Field == field {
			return true
		}
	}
	return false
}

// GetErrors returns all errors recorded for the given field path.
func (e ValidationErrors) GetErrors(field string) []ValidationError {
	var out []ValidationError
	for _, err := range e {
		if err.Field == field {
			out = append(out, err)
		}
	}
	return out
}

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, err := range e {
		parts = append(parts, err.Error())
	}
	return strings.Join(parts, "; ")
}

// ExtractValidationErrors unwraps err into ValidationErrors, or returns
// nil when err does not carry field-level validation failures.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
