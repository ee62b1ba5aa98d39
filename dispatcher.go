package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Dispatcher routes commands through validation to their registered
// handlers and normalizes every outcome into a Result. It is safe for
// concurrent use; a single dispatcher is typically created at startup and
// shared across the application.
//
// Example:
//
//	bus := dispatch.New(
//		dispatch.WithLogger(logger),
//		dispatch.WithMiddleware(dispatch.LoggingMiddleware(logger)),
//	)
//	bus.Register(dispatch.NewHandlerFunc(createUser))
//
//	res, err := bus.Dispatch(ctx, CreateUser{Email: "jane@example.com"})
type Dispatcher struct {
	registry   *Registry
	middleware []Middleware
	logger     *slog.Logger
}

// New creates a dispatcher with an empty registry. Behavior is adjusted
// through functional options.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register binds handlers to their command names. It panics if a handler is
// nil or if a handler is already registered for the same command.
func (d *Dispatcher) Register(handlers ...Handler) {
	d.registry.Register(handlers...)
}

// RegisterValidator binds validators to their command names. It panics if a
// validator is nil.
func (d *Dispatcher) RegisterValidator(validators ...Validator) {
	d.registry.RegisterValidator(validators...)
}

// Commands returns the sorted names of all registered commands.
func (d *Dispatcher) Commands() []string {
	return d.registry.Commands()
}

// Dispatch routes a command to its handler and returns the outcome.
//
// The command's validators all run before the handler; any violations
// reject the command with a validation fault and the handler is never
// invoked. Handler errors, panics, and context cancellation are normalized
// into the Result's fault. The returned error is reserved for dispatch
// infrastructure problems, currently a nil command or an unregistered
// command name, so callers can distinguish "the bus could not route this"
// from "the command was routed and failed".
func (d *Dispatcher) Dispatch(ctx context.Context, cmd any) (Result, error) {
	if cmd == nil {
		return Result{}, ErrNilCommand
	}

	name := commandName(cmd)
	handler, validators, err := d.registry.Resolve(name)
	if err != nil {
		return Result{}, err
	}

	ctx = WithCommandID(ctx, uuid.New())
	ctx = WithCommandName(ctx, name)
	ctx = WithDispatchTime(ctx, time.Now())

	if err := ctx.Err(); err != nil {
		return Error(err), nil
	}

	if violations := d.runValidators(ctx, cmd, validators); len(violations) > 0 {
		d.logger.WarnContext(ctx, "command rejected",
			slog.String("command", name),
			slog.Int("violations", len(violations)),
		)
		return Invalid(violations...), nil
	}

	// Cancellation during validation must not reach the handler.
	if err := ctx.Err(); err != nil {
		return Error(err), nil
	}

	if len(d.middleware) > 0 {
		handler = chainMiddleware(handler, d.middleware)
	}

	res, err := safeHandle(ctx, handler, cmd)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %s", ctxErr, err)
		}
		return Error(err), nil
	}
	return res, nil
}

// runValidators collects violations from the command's own Validate method
// and from every registered validator. All validators run even after
// violations are found, so the caller sees the command's full set of
// problems at once.
func (d *Dispatcher) runValidators(ctx context.Context, cmd any, validators []Validator) []Violation {
	var violations []Violation
	// Self-validation on a nil pointer would panic dereferencing the receiver.
	if v, ok := cmd.(Validatable); ok && !isNilPointer(cmd) {
		violations = append(violations, v.Validate(ctx)...)
	}
	for _, validator := range validators {
		violations = append(violations, validator.Validate(ctx, cmd)...)
	}
	return violations
}
