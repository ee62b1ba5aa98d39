package dispatch

import (
	"fmt"
	"slices"
	"sync"
)

// Registry holds the handler and validator bindings for a set of commands.
// Each command name maps to exactly one handler and any number of
// validators. All methods are safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	handlers   map[string]Handler
	validators map[string][]Validator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers:   make(map[string]Handler),
		validators: make(map[string][]Validator),
	}
}

// Register binds handlers to their command names. Registering a second
// handler for the same command is a programming error and panics
// immediately, so misconfiguration surfaces at startup rather than on the
// first dispatch.
func (r *Registry) Register(handlers ...Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, h := range handlers {
		if h == nil {
			panic(ErrNilHandler.Error())
		}
		name := h.CommandName()
		if _, exists := r.handlers[name]; exists {
			panic(fmt.Sprintf("%s: %s", ErrDuplicateHandler, name))
		}
		r.handlers[name] = h
	}
}

// RegisterValidator binds validators to their command names. A command may
// have any number of validators; they run in registration order.
func (r *Registry) RegisterValidator(validators ...Validator) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, v := range validators {
		if v == nil {
			panic(ErrNilValidator.Error())
		}
		name := v.CommandName()
		r.validators[name] = append(r.validators[name], v)
	}
}

// Resolve returns the handler and validators bound to a command name.
// An unregistered name yields ErrHandlerNotFound.
func (r *Registry) Resolve(name string) (Handler, []Validator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handlers[name]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrHandlerNotFound, name)
	}

	// Copy so concurrent RegisterValidator calls cannot mutate the returned slice.
	validators := slices.Clone(r.validators[name])
	return h, validators, nil
}

// Commands returns the sorted names of all registered commands.
func (r *Registry) Commands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
