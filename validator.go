package dispatch

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/dispatch/validate"
)

// Validator checks a command before its handler runs. Validators are
// resolved by command name and every registered validator runs on each
// dispatch, so a command's full set of violations is reported at once.
type Validator interface {
	// CommandName returns the name of the command this validator checks.
	CommandName() string

	// Validate inspects the command and returns all violations found.
	// A nil or empty slice means the command passed.
	Validate(ctx context.Context, cmd any) []Violation
}

// Validatable is implemented by commands that carry their own validation
// rules. Dispatch runs the command's Validate method before any registered
// validators.
//
// Implement Validate on the value receiver. A pointer-receiver method is
// only seen when the command is dispatched as a pointer; value dispatches
// skip it.
type Validatable interface {
	Validate(ctx context.Context) []Violation
}

// ValidatorFunc adapts a typed function to the Validator interface.
type ValidatorFunc[T any] struct {
	name string
	fn   func(ctx context.Context, cmd T) []Violation
}

// NewValidatorFunc creates a Validator from a function that checks commands
// of type T. The command name is derived from T via reflection.
//
// Example:
//
//	validator := dispatch.NewValidatorFunc(func(ctx context.Context, cmd CreateUser) []dispatch.Violation {
//		if taken, _ := users.EmailTaken(ctx, cmd.Email); taken {
//			return []dispatch.Violation{{Field: "email", Message: "email is already in use"}}
//		}
//		return nil
//	})
func NewValidatorFunc[T any](fn func(ctx context.Context, cmd T) []Violation) Validator {
	var zero T
	return ValidatorFunc[T]{
		name: commandName(zero),
		fn:   fn,
	}
}

// NewStructValidator creates a Validator that checks commands of type T
// against the validation tags on its struct fields. T must be a struct
// type; see the validate package for the supported rules.
//
// Example:
//
//	type CreateUser struct {
//		Email string `validate:"required;email"`
//		Name  string `validate:"required;min:2"`
//	}
//
//	bus.RegisterValidator(dispatch.NewStructValidator[CreateUser]())
func NewStructValidator[T any]() Validator {
	var zero T
	return ValidatorFunc[T]{
		name: commandName(zero),
		fn: func(_ context.Context, cmd T) []Violation {
			err := validate.ValidateStruct(&cmd)
			if err == nil {
				return nil
			}
			errs := validate.ExtractValidationErrors(err)
			if len(errs) == 0 {
				return []Violation{{Message: err.Error()}}
			}
			violations := make([]Violation, 0, len(errs))
			for _, e := range errs {
				violations = append(violations, Violation{Field: e.Field, Message: e.Message})
			}
			return violations
		},
	}
}

// CommandName returns the command name derived from the type parameter T.
func (v ValidatorFunc[T]) CommandName() string {
	return v.name
}

// Validate asserts the command to type T and invokes the wrapped function.
// A command of any other type, or a nil *T, yields a single violation
// describing the mismatch.
func (v ValidatorFunc[T]) Validate(ctx context.Context, cmd any) []Violation {
	typed, ok := cmd.(T)
	if !ok {
		ptr, isPtr := cmd.(*T)
		if !isPtr || ptr == nil {
			return []Violation{{Message: fmt.Sprintf("expected command %s, got %T", v.name, cmd)}}
		}
		typed = *ptr
	}
	return v.fn(ctx, typed)
}
