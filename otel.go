package dispatch

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName    = "github.com/dmitrymomot/dispatch"
	instrumentationVersion = "0.1.0"
)

// MetricsMiddleware records dispatch counts and durations through the given
// meter provider. Each measurement carries the command type and a status of
// success, fault, or error. A nil provider disables instrumentation.
//
// Example:
//
//	bus := dispatch.New(
//		dispatch.WithMiddleware(dispatch.MetricsMiddleware(otel.GetMeterProvider())),
//	)
func MetricsMiddleware(provider metric.MeterProvider) Middleware {
	if provider == nil {
		return func(next Handler) Handler { return next }
	}

	meter := provider.Meter(instrumentationName,
		metric.WithInstrumentationVersion(instrumentationVersion),
	)

	counter, err := meter.Int64Counter("command.dispatch.count",
		metric.WithDescription("Number of dispatched commands"),
		metric.WithUnit("{command}"),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create dispatch counter: %v", err))
	}

	histogram, err := meter.Float64Histogram("command.dispatch.duration",
		metric.WithDescription("Duration of command dispatch"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to create dispatch duration histogram: %v", err))
	}

	return func(next Handler) Handler {
		return middlewareHandler{
			name: next.CommandName(),
			fn: func(ctx context.Context, cmd any) (Result, error) {
				start := time.Now()
				res, err := next.Handle(ctx, cmd)
				duration := float64(time.Since(start).Microseconds()) / 1000.0

				status := "success"
				switch {
				case err != nil:
					status = "error"
				case !res.Successful():
					status = "fault"
				}

				attrs := metric.WithAttributes(
					attribute.String("command.type", next.CommandName()),
					attribute.String("status", status),
				)
				counter.Add(ctx, 1, attrs)
				histogram.Record(ctx, duration, attrs)

				return res, err
			},
		}
	}
}

// TracingMiddleware wraps each dispatch in a span named after the command.
// Handler errors are recorded on the span, and faulted results are tagged
// with the fault code. A nil provider disables instrumentation.
//
// Example:
//
//	bus := dispatch.New(
//		dispatch.WithMiddleware(dispatch.TracingMiddleware(otel.GetTracerProvider())),
//	)
func TracingMiddleware(provider trace.TracerProvider) Middleware {
	if provider == nil {
		return func(next Handler) Handler { return next }
	}

	tracer := provider.Tracer(instrumentationName,
		trace.WithInstrumentationVersion(instrumentationVersion),
	)

	return func(next Handler) Handler {
		return middlewareHandler{
			name: next.CommandName(),
			fn: func(ctx context.Context, cmd any) (Result, error) {
				ctx, span := tracer.Start(ctx, next.CommandName()+" dispatch",
					trace.WithSpanKind(trace.SpanKindInternal),
				)
				defer span.End()

				res, err := next.Handle(ctx, cmd)
				if err != nil {
					span.RecordError(err)
				} else if f := res.Fault(); f != nil {
					span.SetAttributes(attribute.String("command.fault", string(f.Code)))
				}

				return res, err
			},
		}
	}
}
