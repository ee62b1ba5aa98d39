package dispatch

import (
	"context"
	"log/slog"
	"time"
)

// Middleware wraps a Handler with cross-cutting behavior. Middleware is
// applied around every handler the dispatcher resolves, after validation
// has passed.
type Middleware func(next Handler) Handler

// middlewareHandler adapts a closure to the Handler interface while
// preserving the wrapped handler's command name.
type middlewareHandler struct {
	name string
	fn   func(ctx context.Context, cmd any) (Result, error)
}

func (m middlewareHandler) CommandName() string {
	return m.name
}

func (m middlewareHandler) Handle(ctx context.Context, cmd any) (Result, error) {
	return m.fn(ctx, cmd)
}

// LoggingMiddleware logs the start and outcome of every command. Successful
// commands log at info level, rejected commands at warn, and failed
// commands at error. A nil logger falls back to slog.Default().
//
// Example:
//
//	bus := dispatch.New(
//		dispatch.WithMiddleware(dispatch.LoggingMiddleware(logger)),
//	)
func LoggingMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Handler) Handler {
		return middlewareHandler{
			name: next.CommandName(),
			fn: func(ctx context.Context, cmd any) (Result, error) {
				start := time.Now()
				logger.InfoContext(ctx, "command started",
					slog.String("command", next.CommandName()),
					slog.String("command_id", CommandID(ctx).String()),
				)

				res, err := next.Handle(ctx, cmd)
				duration := time.Since(start)

				switch {
				case err != nil:
					logger.ErrorContext(ctx, "command failed",
						slog.String("command", next.CommandName()),
						slog.Duration("duration", duration),
						slog.String("error", err.Error()),
					)
				case !res.Successful():
					logger.WarnContext(ctx, "command rejected",
						slog.String("command", next.CommandName()),
						slog.Duration("duration", duration),
						slog.String("reason", res.ErrorMessage()),
					)
				default:
					logger.InfoContext(ctx, "command completed",
						slog.String("command", next.CommandName()),
						slog.Duration("duration", duration),
					)
				}

				return res, err
			},
		}
	}
}

// TimeoutMiddleware bounds handler execution time. The handler's context is
// cancelled when the timeout elapses; handlers must respect context
// cancellation for the bound to take effect. An expired timeout surfaces as
// a cancellation fault on the returned Result.
//
// Example:
//
//	bus := dispatch.New(
//		dispatch.WithMiddleware(dispatch.TimeoutMiddleware(5 * time.Second)),
//	)
func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next Handler) Handler {
		return middlewareHandler{
			name: next.CommandName(),
			fn: func(ctx context.Context, cmd any) (Result, error) {
				ctx, cancel := context.WithTimeout(ctx, timeout)
				defer cancel()
				return next.Handle(ctx, cmd)
			},
		}
	}
}
