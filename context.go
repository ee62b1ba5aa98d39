package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type (
	commandIDCtx    struct{}
	commandNameCtx  struct{}
	dispatchTimeCtx struct{}
)

// WithCommandID returns a context carrying the given command ID. Dispatch
// assigns a fresh ID to every command before validation runs.
func WithCommandID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, commandIDCtx{}, id)
}

// CommandID returns the command ID from the context, or uuid.Nil when the
// context was not produced by a dispatch.
func CommandID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(commandIDCtx{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// WithCommandName returns a context carrying the given command name.
func WithCommandName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandNameCtx{}, name)
}

// CommandName returns the command name from the context, or an empty string
// when the context was not produced by a dispatch.
func CommandName(ctx context.Context) string {
	if name, ok := ctx.Value(commandNameCtx{}).(string); ok {
		return name
	}
	return ""
}

// WithDispatchTime returns a context carrying the time the command entered
// the dispatcher.
func WithDispatchTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, dispatchTimeCtx{}, t)
}

// DispatchTime returns the dispatch time from the context, or the zero time
// when the context was not produced by a dispatch.
func DispatchTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(dispatchTimeCtx{}).(time.Time); ok {
		return t
	}
	return time.Time{}
}
