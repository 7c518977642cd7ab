// Package tracing wires the OpenTelemetry tracer provider for the
// drill engine spans.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/zerodrill/zerodrill"

// Tracer returns the tracer all spans are created from. Before Init it
// is the global noop tracer, so instrumented code needs no guards.
func Tracer() oteltrace.Tracer {
	return otel.Tracer(tracerName)
}

// Config selects the span exporter.
type Config struct {
	// Enabled turns span export on.
	Enabled bool
	// Endpoint is an OTLP gRPC collector address.
	Endpoint string
	// File receives pretty-printed spans when no endpoint is set. The
	// TUI owns stdout, so spans never go there.
	File string
}

// Init installs the tracer provider and returns a shutdown func that
// flushes pending spans. With cfg.Enabled false both are no-ops.
func Init(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	var (
		exp    sdktrace.SpanExporter
		closer io.Closer
		err    error
	)
	switch {
	case cfg.Endpoint != "":
		exp, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
			otlptracegrpc.WithInsecure(),
		)
	case cfg.File != "":
		f, ferr := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if ferr != nil {
			return nil, fmt.Errorf("opening trace file: %w", ferr)
		}
		closer = f
		exp, err = stdouttrace.New(stdouttrace.WithWriter(f), stdouttrace.WithPrettyPrint())
	default:
		return nil, fmt.Errorf("tracing enabled but neither endpoint nor file configured")
	}
	if err != nil {
		return nil, fmt.Errorf("creating span exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("zerodrill"),
	))
	if err != nil {
		return nil, fmt.Errorf("building trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return func(ctx context.Context) error {
		err := tp.Shutdown(ctx)
		if closer != nil {
			if cerr := closer.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}, nil
}
