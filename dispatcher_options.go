package dispatch

import "log/slog"

// Option configures a Dispatcher during construction.
type Option func(*Dispatcher)

// WithRegistry replaces the dispatcher's registry. Provide this option
// before WithHandler or WithValidator, since those register into whichever
// registry the dispatcher holds at the time.
func WithRegistry(registry *Registry) Option {
	return func(d *Dispatcher) {
		if registry != nil {
			d.registry = registry
		}
	}
}

// WithHandler registers handlers during construction. It panics under the
// same conditions as Register.
func WithHandler(handlers ...Handler) Option {
	return func(d *Dispatcher) {
		d.registry.Register(handlers...)
	}
}

// WithValidator registers validators during construction.
func WithValidator(validators ...Validator) Option {
	return func(d *Dispatcher) {
		d.registry.RegisterValidator(validators...)
	}
}

// WithMiddleware sets the middleware chain applied around every handler.
// The first middleware is the outermost. Repeated use replaces the chain.
func WithMiddleware(middleware ...Middleware) Option {
	return func(d *Dispatcher) {
		d.middleware = middleware
	}
}

// WithLogger sets the logger used for dispatcher-level events such as
// rejected commands. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}
