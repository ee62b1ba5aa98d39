package dispatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-reflect"
)

// commandNameCache caches reflection results for command name lookups.
// Key is reflect.Type, value is the command name string.
var commandNameCache sync.Map

// commandName derives the registry key for a command value from its type.
// Pointers are dereferenced, named types use their bare name, and unnamed
// types fall back to the type's string form. Results are cached to avoid
// repeated reflection overhead.
func commandName(cmd any) string {
	t := reflect.TypeOf(cmd)
	if name, ok := commandNameCache.Load(t); ok {
		return name.(string)
	}

	elem := t
	for elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}

	name := elem.Name()
	if name == "" {
		name = elem.String()
	}

	commandNameCache.Store(t, name)
	return name
}

// CommandNameOf returns the command name that Dispatch derives for the given
// command value. Useful for logging and for wiring non-generic validators.
func CommandNameOf(cmd any) string {
	return commandName(cmd)
}

// isNilPointer reports whether cmd is a typed nil pointer.
func isNilPointer(cmd any) bool {
	rv := reflect.ValueOf(cmd)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

// chainMiddleware applies middleware to a handler.
// The first middleware in the slice is the outermost (executed first).
func chainMiddleware(handler Handler, middleware []Middleware) Handler {
	// Reverse order required: wrapping innermost first makes it execute last
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}
	return handler
}

// safeHandle executes a handler with panic recovery. A panicking handler
// yields a zero Result and an error describing the panic, giving the
// dispatcher a single point of fault normalization.
func safeHandle(ctx context.Context, handler Handler, cmd any) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = fmt.Errorf("handler %s panicked: %v", handler.CommandName(), r)
		}
	}()
	return handler.Handle(ctx, cmd)
}
