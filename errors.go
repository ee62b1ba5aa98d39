package dispatch

import "errors"

var (
	// ErrHandlerNotFound is returned by Dispatch when no handler is registered
	// for the command type. It indicates a wiring defect, not a business
	// failure, and is never wrapped into a Result.
	ErrHandlerNotFound = errors.New("no handler registered for command")

	// ErrDuplicateHandler is the panic cause when a second handler is
	// registered for a command type that already has one.
	ErrDuplicateHandler = errors.New("handler already registered for command")

	// ErrNilCommand is returned by Dispatch when the command is nil.
	ErrNilCommand = errors.New("command cannot be nil")

	// ErrNilHandler is the panic cause when a nil handler is registered.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrNilValidator is the panic cause when a nil validator is registered.
	ErrNilValidator = errors.New("validator cannot be nil")

	// ErrInvalidCommand is returned by handler adapters when the dispatched
	// command is not of the type the handler was created for.
	ErrInvalidCommand = errors.New("invalid command type")
)
