package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for form engines.
const defaultTracerName = "formflow"

// TracerConfig configures the engine tracer.
type TracerConfig struct {
	// TracerName is the name of the tracer (default: "formflow").
	TracerName string
}

// TracerOption configures the engine tracer.
type TracerOption func(*TracerConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracerOption {
	return func(c *TracerConfig) {
		c.TracerName = name
	}
}

// NewTracer resolves a tracer from the global OpenTelemetry provider.
// Configure the provider in main() before constructing engines:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	)
//	otel.SetTracerProvider(tp)
func NewTracer(opts ...TracerOption) trace.Tracer {
	config := TracerConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	return otel.Tracer(config.TracerName)
}

// StartSubmit starts a span covering one submit attempt. Returns the
// original context and a nil-safe span when tracer is nil.
func StartSubmit(ctx context.Context, tracer trace.Tracer, attemptID string) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(context.Background())
	}
	return tracer.Start(ctx, "formflow.submit",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("formflow.attempt_id", attemptID),
		),
	)
}

// EndSubmit records the attempt's outcome on the span and ends it.
func EndSubmit(span trace.Span, result string, err error, fieldErrors int) {
	if span == nil {
		return
	}
	span.SetAttributes(
		attribute.String("formflow.result", result),
		attribute.Int("formflow.field_errors", fieldErrors),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
