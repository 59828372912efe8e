// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const serviceName = "startup-analyzer"

// InitTracing installs a global tracer provider whose spans are reported to
// logger when they end. Callers must Shutdown the returned provider.
func InitTracing(ctx context.Context, logger *slog.Logger, version string) (*sdktrace.TracerProvider, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(SpanLogger{Logger: logger}),
	)
	otel.SetTracerProvider(tp)
	return tp, nil
}

// SpanLogger is a span processor that logs every ended span at debug level,
// or at error level when the span failed.
type SpanLogger struct {
	Logger *slog.Logger
}

func (p SpanLogger) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

func (p SpanLogger) OnEnd(s sdktrace.ReadOnlySpan) {
	level := slog.LevelDebug
	if s.Status().Code == codes.Error {
		level = slog.LevelError
	}
	attrs := []any{
		"span", s.Name(),
		"trace_id", s.SpanContext().TraceID().String(),
		"duration", s.EndTime().Sub(s.StartTime()),
	}
	for _, kv := range s.Attributes() {
		attrs = append(attrs, string(kv.Key), kv.Value.Emit())
	}
	if s.Status().Description != "" {
		attrs = append(attrs, "status", s.Status().Description)
	}
	p.Logger.Log(context.Background(), level, "span ended", attrs...)
}

func (p SpanLogger) Shutdown(context.Context) error { return nil }

func (p SpanLogger) ForceFlush(context.Context) error { return nil }
