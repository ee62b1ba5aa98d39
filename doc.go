// Package dispatch provides a command bus that routes commands through
// validation to type-safe handlers and reports every outcome as a uniform
// Result envelope.
//
// Commands represent intent/orders with one-to-one handler relationships.
// Each command has exactly one handler, any number of validators, and
// missing handlers are errors.
//
// # Core Concepts
//
// Commands are intent-based operations like CreateUser, GenerateThumbnail,
// SendEmail. Each command type maps to exactly one handler. The package
// provides:
//
//   - Type-safe handlers and validators via generics
//   - Uniform Result envelope (success, object ID, fault)
//   - Aggregated validation that runs every validator before rejecting
//   - Immutable middleware configured at construction
//   - Unified panic recovery around handlers
//   - OpenTelemetry metrics and tracing middleware
//
// # Quick Start
//
// Basic command execution:
//
//	import "github.com/dmitrymomot/dispatch"
//
//	type CreateUser struct {
//	    Email string
//	    Name  string
//	}
//
//	func createUserHandler(ctx context.Context, cmd CreateUser) (dispatch.Result, error) {
//	    id, err := db.InsertUser(ctx, cmd.Email, cmd.Name)
//	    if err != nil {
//	        return dispatch.Error(err), nil
//	    }
//	    return dispatch.SuccessWithID(id), nil
//	}
//
//	bus := dispatch.New()
//	bus.Register(dispatch.NewHandlerFunc(createUserHandler))
//
//	res, err := bus.Dispatch(ctx, CreateUser{
//	    Email: "user@example.com",
//	    Name:  "John Doe",
//	})
//
// # Results
//
// Every dispatched command resolves to a Result describing the outcome.
// A Result is either successful, optionally carrying the identifier of the
// object it touched, or faulted with a machine-readable fault code and a
// human-readable message.
//
// Constructors cover the common outcomes:
//
//	return dispatch.Success(), nil                          // success, no object
//	return dispatch.SuccessWithID(userID), nil              // success with object ID
//	return dispatch.Error(err), nil                         // failure from an error
//	return dispatch.NotFound("User", cmd.UserID), nil       // entity lookup miss
//	return dispatch.Invalid(violations...), nil             // explicit validation failure
//
// Result.ErrorMessage always returns a safe message: the fault's message
// when present, or a generic fallback, so callers can render it without
// nil checks:
//
//	if !res.Successful() {
//	    return render(res.ErrorMessage())
//	}
//
// # Validation
//
// Validators run before the handler. Every validator registered for the
// command runs even after violations are found, so a single dispatch
// reports the command's full set of problems. Any violation rejects the
// command with a validation fault and the handler is never invoked.
//
// Three validation sources compose:
//
//	// 1. Commands may validate themselves (checked first).
//	func (c CreateUser) Validate(ctx context.Context) []dispatch.Violation {
//	    if c.Email == "" {
//	        return []dispatch.Violation{{Field: "email", Message: "email is required"}}
//	    }
//	    return nil
//	}
//
//	// 2. Struct tags via the validate subpackage.
//	type CreateUser struct {
//	    Email string `validate:"required;email"`
//	    Name  string `validate:"required;min:2"`
//	}
//	bus.RegisterValidator(dispatch.NewStructValidator[CreateUser]())
//
//	// 3. Standalone validators for checks that need dependencies.
//	bus.RegisterValidator(dispatch.NewValidatorFunc(func(ctx context.Context, cmd CreateUser) []dispatch.Violation {
//	    if taken, _ := users.EmailTaken(ctx, cmd.Email); taken {
//	        return []dispatch.Violation{{Field: "email", Message: "email is already in use"}}
//	    }
//	    return nil
//	}))
//
// # Middleware
//
// Middleware wraps handlers to add cross-cutting functionality like
// logging, metrics, tracing, or timeouts. Middleware runs after validation
// has passed, so it observes only commands that reached their handler.
//
// IMPORTANT: Middleware is immutable and must be configured at construction
// time using WithMiddleware(). It cannot be added or modified after the
// dispatcher is created.
//
// Built-in middleware:
//   - LoggingMiddleware: logs command execution with timing
//   - TimeoutMiddleware: bounds handler execution time
//   - MetricsMiddleware: OpenTelemetry dispatch counts and durations
//   - TracingMiddleware: OpenTelemetry spans per dispatch
//
// Example:
//
//	bus := dispatch.New(
//	    dispatch.WithMiddleware(
//	        dispatch.LoggingMiddleware(logger),
//	        dispatch.TimeoutMiddleware(5*time.Second),
//	    ),
//	)
//
// Custom middleware wraps the Handler interface:
//
//	type authHandler struct {
//	    next dispatch.Handler
//	}
//
//	func (h authHandler) CommandName() string { return h.next.CommandName() }
//
//	func (h authHandler) Handle(ctx context.Context, cmd any) (dispatch.Result, error) {
//	    if !authorized(ctx) {
//	        return dispatch.Error(errors.New("not authorized")), nil
//	    }
//	    return h.next.Handle(ctx, cmd)
//	}
//
//	func authMiddleware(next dispatch.Handler) dispatch.Handler {
//	    return authHandler{next: next}
//	}
//
// # Observability
//
// Dispatch stamps every command's context with a unique command ID, the
// command name, and the dispatch time before validators run. Handlers,
// validators, and middleware read them back through the context accessors:
//
//	func handler(ctx context.Context, cmd CreateUser) (dispatch.Result, error) {
//	    logger.InfoContext(ctx, "processing",
//	        slog.String("command_id", dispatch.CommandID(ctx).String()),
//	        slog.String("command", dispatch.CommandName(ctx)),
//	    )
//	    // ...
//	}
//
// The OpenTelemetry middleware records dispatch counts, duration
// histograms, and spans tagged with the command type and outcome:
//
//	bus := dispatch.New(
//	    dispatch.WithMiddleware(
//	        dispatch.MetricsMiddleware(otel.GetMeterProvider()),
//	        dispatch.TracingMiddleware(otel.GetTracerProvider()),
//	    ),
//	)
//
// # Error Handling
//
// Dispatch separates routing failures from command failures. The returned
// error is reserved for infrastructure problems:
//
//	res, err := bus.Dispatch(ctx, cmd)
//	// err is ErrNilCommand or ErrHandlerNotFound
//
// Everything that happens after routing succeeds is reported on the
// Result: validation violations, handler errors, not-found lookups,
// panics, and context cancellation all become faults with distinct codes
// (FaultValidation, FaultHandler, FaultNotFound, FaultCancelled).
//
// Registration-time misconfiguration panics immediately rather than
// surfacing on the first dispatch:
//
//	bus.Register(handler)
//	bus.Register(handler) // panics: handler already registered
//
// # Panic Recovery
//
// If a handler panics, the panic is caught and converted to a handler
// fault, preventing the process from crashing:
//
//	func riskyHandler(ctx context.Context, cmd ProcessData) (dispatch.Result, error) {
//	    panic("something went wrong") // Caught, returned as a fault
//	}
//
// The dispatch context is always propagated into validators and handlers,
// so context values and cancellation work correctly throughout the
// pipeline.
//
// # Testing
//
// Dispatch is synchronous and deterministic, which makes testing
// straightforward: register, dispatch, assert.
//
//	func TestCreateUser(t *testing.T) {
//	    bus := dispatch.New()
//	    bus.Register(dispatch.NewHandlerFunc(createUserHandler))
//
//	    res, err := bus.Dispatch(ctx, CreateUser{Email: "test@example.com"})
//	    require.NoError(t, err)
//	    require.True(t, res.Successful())
//	}
//
// # Best Practices
//
// 1. Commands should be self-contained data structures with all needed data
// 2. Return domain failures as faulted Results, reserve errors for infrastructure
// 3. Put cheap structural checks in struct tags, cross-field logic in Validatable
// 4. Use standalone validators for checks that need external dependencies
// 5. Configure middleware at construction time (immutable after creation)
// 6. Use middleware for cross-cutting concerns (logging, metrics, tracing)
// 7. Keep handlers simple and focused on business logic
// 8. Respect context cancellation in long-running handlers
// 9. Let panic recovery handle unexpected failures gracefully
// 10. Use the context accessors for correlation instead of threading IDs by hand
package dispatch
