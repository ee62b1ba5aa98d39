package dispatch_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/dispatch"
)

type ShipOrder struct {
	OrderID string
}

// testLogHandler captures log entries for testing
type testLogHandler struct {
	entries []map[string]any
}

func (h *testLogHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *testLogHandler) Handle(_ context.Context, r slog.Record) error {
	entry := make(map[string]any)
	entry["level"] = r.Level.String()
	entry["msg"] = r.Message

	r.Attrs(func(a slog.Attr) bool {
		entry[a.Key] = a.Value.Any()
		return true
	})

	h.entries = append(h.entries, entry)
	return nil
}

func (h *testLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *testLogHandler) WithGroup(name string) slog.Handler {
	return h
}

func TestLoggingMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("logs successful command at info", func(t *testing.T) {
		t.Parallel()

		logHandler := &testLogHandler{}
		testLogger := slog.New(logHandler)

		bus := dispatch.New(dispatch.WithMiddleware(dispatch.LoggingMiddleware(testLogger)))
		bus.Register(noopHandler[ShipOrder]())

		res, err := bus.Dispatch(context.Background(), ShipOrder{OrderID: "ord_1"})
		require.NoError(t, err)
		require.True(t, res.Successful())

		require.Len(t, logHandler.entries, 2)

		startLog := logHandler.entries[0]
		assert.Equal(t, "command started", startLog["msg"])
		assert.Equal(t, "ShipOrder", startLog["command"])
		assert.NotEqual(t, uuid.Nil.String(), startLog["command_id"])

		doneLog := logHandler.entries[1]
		assert.Equal(t, "INFO", doneLog["level"])
		assert.Equal(t, "command completed", doneLog["msg"])
		assert.Equal(t, "ShipOrder", doneLog["command"])
		assert.NotNil(t, doneLog["duration"])
	})

	t.Run("logs faulted command at warn", func(t *testing.T) {
		t.Parallel()

		logHandler := &testLogHandler{}
		testLogger := slog.New(logHandler)

		bus := dispatch.New(dispatch.WithMiddleware(dispatch.LoggingMiddleware(testLogger)))
		bus.Register(dispatch.NewHandlerFunc(func(ctx context.Context, cmd ShipOrder) (dispatch.Result, error) {
			return dispatch.NotFound("Order", cmd.OrderID), nil
		}))

		_, err := bus.Dispatch(context.Background(), ShipOrder{OrderID: "ord_404"})
		require.NoError(t, err)

		require.Len(t, logHandler.entries, 2)

		rejectLog := logHandler.entries[1]
		assert.Equal(t, "WARN", rejectLog["level"])
		assert.Equal(t, "command rejected", rejectLog["msg"])
		assert.Contains(t, rejectLog["reason"], "ord_404")
	})

	t.Run("logs handler error at error level", func(t *testing.T) {
		t.Parallel()

		logHandler := &testLogHandler{}
		testLogger := slog.New(logHandler)

		bus := dispatch.New(dispatch.WithMiddleware(dispatch.LoggingMiddleware(testLogger)))
		bus.Register(dispatch.NewHandlerFunc(func(ctx context.Context, cmd ShipOrder) (dispatch.Result, error) {
			return dispatch.Result{}, errors.New("carrier API unreachable")
		}))

		_, err := bus.Dispatch(context.Background(), ShipOrder{})
		require.NoError(t, err)

		require.Len(t, logHandler.entries, 2)

		failLog := logHandler.entries[1]
		assert.Equal(t, "ERROR", failLog["level"])
		assert.Equal(t, "command failed", failLog["msg"])
		assert.Equal(t, "carrier API unreachable", failLog["error"])
	})

	t.Run("nil logger falls back to default", func(t *testing.T) {
		t.Parallel()

		bus := dispatch.New(dispatch.WithMiddleware(dispatch.LoggingMiddleware(nil)))
		bus.Register(noopHandler[ShipOrder]())

		assert.NotPanics(t, func() {
			_, _ = bus.Dispatch(context.Background(), ShipOrder{})
		})
	})
}

func TestTimeoutMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("expired timeout surfaces as cancelled fault", func(t *testing.T) {
		t.Parallel()

		bus := dispatch.New(dispatch.WithMiddleware(dispatch.TimeoutMiddleware(50 * time.Millisecond)))
		bus.Register(dispatch.NewHandlerFunc(func(ctx context.Context, cmd ShipOrder) (dispatch.Result, error) {
			select {
			case <-ctx.Done():
				return dispatch.Error(ctx.Err()), nil
			case <-time.After(2 * time.Second):
				return dispatch.Success(), nil
			}
		}))

		res, err := bus.Dispatch(context.Background(), ShipOrder{})
		require.NoError(t, err)
		assert.False(t, res.Successful())
		require.NotNil(t, res.Fault())
		assert.Equal(t, dispatch.FaultCancelled, res.Fault().Code)
	})

	t.Run("fast handler is unaffected", func(t *testing.T) {
		t.Parallel()

		bus := dispatch.New(dispatch.WithMiddleware(dispatch.TimeoutMiddleware(1 * time.Second)))
		bus.Register(noopHandler[ShipOrder]())

		res, err := bus.Dispatch(context.Background(), ShipOrder{})
		require.NoError(t, err)
		assert.True(t, res.Successful())
	})
}

func TestMiddlewareChainOrder(t *testing.T) {
	t.Parallel()

	var calls []string

	orderMiddleware := func(name string) dispatch.Middleware {
		return func(next dispatch.Handler) dispatch.Handler {
			return dispatch.NewHandlerFunc(func(ctx context.Context, cmd ShipOrder) (dispatch.Result, error) {
				calls = append(calls, name+" before")
				res, err := next.Handle(ctx, cmd)
				calls = append(calls, name+" after")
				return res, err
			})
		}
	}

	bus := dispatch.New(dispatch.WithMiddleware(
		orderMiddleware("outer"),
		orderMiddleware("inner"),
	))
	bus.Register(dispatch.NewHandlerFunc(func(ctx context.Context, cmd ShipOrder) (dispatch.Result, error) {
		calls = append(calls, "handler")
		return dispatch.Success(), nil
	}))

	res, err := bus.Dispatch(context.Background(), ShipOrder{})
	require.NoError(t, err)
	require.True(t, res.Successful())

	assert.Equal(t, []string{
		"outer before",
		"inner before",
		"handler",
		"inner after",
		"outer after",
	}, calls)
}
