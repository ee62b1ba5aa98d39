package dispatch

import (
	"context"
	"errors"
	"slices"

	"github.com/google/uuid"
)

// fallbackErrorMessage is reported by ErrorMessage when a result carries no fault.
const fallbackErrorMessage = "An unknown error occurred."

// Result is the uniform outcome envelope of a dispatch. It is an immutable
// value constructed only through the factory functions below; every per-call
// outcome of Dispatch, expected or not, arrives in this shape.
//
// Example:
//
//	res, err := dispatcher.Dispatch(ctx, CreateUser{Email: "user@example.com"})
//	if err != nil {
//	    return err // wiring defect, e.g. ErrHandlerNotFound
//	}
//	if !res.Successful() {
//	    return fmt.Errorf("create user: %s", res.ErrorMessage())
//	}
//	userID := res.ObjectID()
type Result struct {
	successful bool
	objectID   uuid.UUID
	fault      *Fault
}

// Success returns a successful result without an object identifier.
func Success() Result {
	return Result{successful: true}
}

// SuccessWithID returns a successful result carrying the identifier of the
// entity the command affected.
func SuccessWithID(id uuid.UUID) Result {
	return Result{successful: true, objectID: id}
}

// Error returns a failed result with a fault built from cause. Passing a nil
// cause is a programming error and panics immediately.
//
// The cause decides the fault code: a ValidationError yields FaultValidation
// with its violations attached, a NotFoundError yields FaultNotFound, a
// context cancellation or deadline error yields FaultCancelled, and anything
// else yields FaultHandler. Matching uses errors.As and errors.Is, so wrapped
// causes classify the same as bare ones.
func Error(cause error) Result {
	if cause == nil {
		panic("dispatch: nil cause passed to Error")
	}

	fault := &Fault{
		Code:    FaultHandler,
		Message: cause.Error(),
		cause:   cause,
	}

	var validationErr ValidationError
	var notFoundErr NotFoundError
	switch {
	case errors.As(cause, &validationErr):
		fault.Code = FaultValidation
		fault.Violations = validationErr.Violations
	case errors.As(cause, &notFoundErr):
		fault.Code = FaultNotFound
	case errors.Is(cause, context.Canceled), errors.Is(cause, context.DeadlineExceeded):
		fault.Code = FaultCancelled
	}

	return Result{fault: fault}
}

// NotFound returns a failed result reporting that the named entity with the
// given identifier does not exist. The fault message embeds both values.
//
// Example:
//
//	return dispatch.NotFound("User", cmd.UserID), nil
func NotFound(entity string, id any) Result {
	return Error(NotFoundError{Entity: entity, ID: id})
}

// Invalid returns a failed result carrying the given rule violations. The
// validation stage uses it for short-circuited dispatches; handlers may use
// it for checks that only they can perform.
func Invalid(violations ...Violation) Result {
	return Error(ValidationError{Violations: violations})
}

// Successful reports whether the command completed successfully.
func (r Result) Successful() bool {
	return r.successful
}

// ObjectID returns the identifier of the affected entity, or uuid.Nil when
// the result does not carry one.
func (r Result) ObjectID() uuid.UUID {
	return r.objectID
}

// Fault returns a copy of the failure details, or nil for successful
// results. Mutating the returned fault does not alter the result.
func (r Result) Fault() *Fault {
	if r.fault == nil {
		return nil
	}
	f := *r.fault
	f.Violations = slices.Clone(f.Violations)
	return &f
}

// ErrorMessage returns the fault message, or a fixed fallback string when
// the result carries no fault or the fault has no message. It is safe on
// the zero Result.
func (r Result) ErrorMessage() string {
	if r.fault == nil || r.fault.Message == "" {
		return fallbackErrorMessage
	}
	return r.fault.Message
}
