// Package tracing wires OpenTelemetry spans around scoring and AI calls.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/ressKim-io/fraudlens/internal/infrastructure/config"
)

const tracerName = "github.com/ressKim-io/fraudlens"

// ShutdownFunc flushes and stops the tracer provider
type ShutdownFunc func(context.Context) error

// Init installs a global tracer provider exporting over OTLP/gRPC.
// With no endpoint configured the global no-op provider stays in place.
func Init(ctx context.Context, cfg *config.TracingConfig, log *zap.Logger) (ShutdownFunc, error) {
	if cfg.Endpoint == "" {
		log.Info("Tracing disabled")
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	log.Info("Tracing enabled", zap.String("endpoint", cfg.Endpoint))
	return tp.Shutdown, nil
}

// StartSpan starts a span from the global tracer
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, name)
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
	return ctx, span
}

// Fail records err on span and marks it as failed. A nil err only sets the status.
func Fail(span trace.Span, err error) {
	if err == nil {
		span.SetStatus(codes.Error, "")
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Common attributes

func ModelVersion(v string) attribute.KeyValue {
	return attribute.String("model.version", v)
}

func PredictionSource(s string) attribute.KeyValue {
	return attribute.String("prediction.source", s)
}

func FraudProbability(p float64) attribute.KeyValue {
	return attribute.Float64("prediction.probability", p)
}

func VerdictLabel(l string) attribute.KeyValue {
	return attribute.String("prediction.label", l)
}

func HTTPMethod(m string) attribute.KeyValue {
	return semconv.HTTPRequestMethodKey.String(m)
}

func HTTPRoute(r string) attribute.KeyValue {
	return semconv.HTTPRoute(r)
}

func HTTPStatusCode(code int) attribute.KeyValue {
	return semconv.HTTPResponseStatusCode(code)
}
