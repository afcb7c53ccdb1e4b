// Package trace sets up OpenTelemetry tracing for layout operations.
package trace

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracerName is the instrumentation name used for layout spans.
const TracerName = "paneboard/layout"

// Provider owns the tracer provider for the process. The zero-cost no-op
// tracer is used when no OTLP endpoint is configured.
type Provider struct {
	sdk    *sdktrace.TracerProvider
	tracer oteltrace.Tracer
}

// NewProvider exports spans over OTLP/HTTP when OTEL_EXPORTER_OTLP_ENDPOINT is
// set. The service name comes from OTEL_SERVICE_NAME (default "paneboard").
func NewProvider(ctx context.Context) (*Provider, error) {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return &Provider{tracer: noop.NewTracerProvider().Tracer(TracerName)}, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(), // local collectors
	)
	if err != nil {
		return nil, err
	}
	return NewProviderWith(sdktrace.WithBatcher(exporter)), nil
}

// NewProviderWith builds an SDK provider from opts, e.g. a span processor
// recording spans in tests.
func NewProviderWith(opts ...sdktrace.TracerProviderOption) *Provider {
	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "paneboard"
	}
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)
	sdk := sdktrace.NewTracerProvider(append(opts, sdktrace.WithResource(res))...)
	return &Provider{sdk: sdk, tracer: sdk.Tracer(TracerName)}
}

// Tracer returns the layout tracer.
func (p *Provider) Tracer() oteltrace.Tracer { return p.tracer }

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool { return p != nil && p.sdk != nil }

// Shutdown flushes and closes the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}
