package dispatch

import (
	"context"
	"fmt"
)

// Handler processes a single command type and reports the outcome as a
// Result. Implementations are resolved by command name, so CommandName must
// return the same value that Dispatch derives from the command's type.
type Handler interface {
	// CommandName returns the name of the command this handler processes.
	CommandName() string

	// Handle executes the command. Infrastructure failures are returned as
	// errors; domain outcomes (including failures) belong in the Result.
	Handle(ctx context.Context, cmd any) (Result, error)
}

// HandlerFunc adapts a typed function to the Handler interface. The command
// name is derived from the type parameter, so handlers built with
// NewHandlerFunc never need to spell out the name by hand.
type HandlerFunc[T any] struct {
	name string
	fn   func(ctx context.Context, cmd T) (Result, error)
}

// NewHandlerFunc creates a Handler from a function that processes commands
// of type T. The command name is derived from T via reflection.
//
// Example:
//
//	type CreateUser struct {
//		Email string
//	}
//
//	handler := dispatch.NewHandlerFunc(func(ctx context.Context, cmd CreateUser) (dispatch.Result, error) {
//		id, err := users.Create(ctx, cmd.Email)
//		if err != nil {
//			return dispatch.Error(err), nil
//		}
//		return dispatch.SuccessWithID(id), nil
//	})
func NewHandlerFunc[T any](fn func(ctx context.Context, cmd T) (Result, error)) Handler {
	var zero T
	return HandlerFunc[T]{
		name: commandName(zero),
		fn:   fn,
	}
}

// CommandName returns the command name derived from the type parameter T.
func (h HandlerFunc[T]) CommandName() string {
	return h.name
}

// Handle asserts the command to type T and invokes the wrapped function.
// A command of any other type, or a nil *T, is rejected with
// ErrInvalidCommand.
func (h HandlerFunc[T]) Handle(ctx context.Context, cmd any) (Result, error) {
	typed, ok := cmd.(T)
	if !ok {
		ptr, isPtr := cmd.(*T)
		if !isPtr || ptr == nil {
			return Result{}, fmt.Errorf("%w: expected %s, got %T", ErrInvalidCommand, h.name, cmd)
		}
		typed = *ptr
	}
	return h.fn(ctx, typed)
}
