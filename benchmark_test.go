package dispatch_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrymomot/dispatch"
)

type AdjustBalance struct {
	Delta int
}

func BenchmarkDispatch(b *testing.B) {
	bus := dispatch.New()
	bus.Register(dispatch.NewHandlerFunc(func(ctx context.Context, cmd AdjustBalance) (dispatch.Result, error) {
		return dispatch.Success(), nil
	}))

	ctx := context.Background()
	cmd := AdjustBalance{Delta: 10}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bus.Dispatch(ctx, cmd)
	}
}

func BenchmarkDispatchWithValidators(b *testing.B) {
	bus := dispatch.New()
	bus.Register(dispatch.NewHandlerFunc(func(ctx context.Context, cmd AdjustBalance) (dispatch.Result, error) {
		return dispatch.Success(), nil
	}))
	bus.RegisterValidator(
		dispatch.NewValidatorFunc(func(ctx context.Context, cmd AdjustBalance) []dispatch.Violation {
			if cmd.Delta == 0 {
				return []dispatch.Violation{{Field: "delta", Message: "must not be zero"}}
			}
			return nil
		}),
		dispatch.NewValidatorFunc(func(ctx context.Context, cmd AdjustBalance) []dispatch.Violation {
			return nil
		}),
	)

	ctx := context.Background()
	cmd := AdjustBalance{Delta: 10}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bus.Dispatch(ctx, cmd)
	}
}

func BenchmarkDispatchWithMiddleware(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	bus := dispatch.New(dispatch.WithMiddleware(
		dispatch.LoggingMiddleware(logger),
		dispatch.TimeoutMiddleware(time.Second),
	))
	bus.Register(dispatch.NewHandlerFunc(func(ctx context.Context, cmd AdjustBalance) (dispatch.Result, error) {
		return dispatch.Success(), nil
	}))

	ctx := context.Background()
	cmd := AdjustBalance{Delta: 10}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bus.Dispatch(ctx, cmd)
	}
}

func BenchmarkDispatchParallel(b *testing.B) {
	bus := dispatch.New()
	bus.Register(dispatch.NewHandlerFunc(func(ctx context.Context, cmd AdjustBalance) (dispatch.Result, error) {
		return dispatch.Success(), nil
	}))

	ctx := context.Background()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = bus.Dispatch(ctx, AdjustBalance{Delta: 10})
		}
	})
}
