package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/aprendis543/Modernize-your-code-solution-accelerator/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Tracing holds the initialized tracer and its shutdown hook. When the
// exporter is unreachable or disabled a no-op tracer is returned, so callers
// never have to branch on telemetry availability.
type Tracing struct {
	Tracer   trace.Tracer
	Enabled  bool
	shutdown func(context.Context) error
}

// Init wires the OTLP HTTP exporter and tracer provider. Initialization
// failure is returned to the caller for logging only; the application must
// continue without instrumentation.
func Init(ctx context.Context, cfg config.TelemetryConfig) (*Tracing, error) {
	disabled := &Tracing{
		Tracer:   noop.NewTracerProvider().Tracer(cfg.ServiceName),
		shutdown: func(context.Context) error { return nil },
	}

	if !cfg.Enabled {
		return disabled, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return disabled, fmt.Errorf("create OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)),
	)
	if err != nil {
		return disabled, fmt.Errorf("create resource: %w", err)
	}

	var sampler sdktrace.Sampler
	switch {
	case cfg.SampleRate >= 1.0:
		sampler = sdktrace.AlwaysSample()
	case cfg.SampleRate <= 0.0:
		sampler = sdktrace.NeverSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(cfg.SampleRate)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Tracing{
		Tracer:  provider.Tracer(cfg.ServiceName),
		Enabled: true,
		shutdown: func(ctx context.Context) error {
			flushCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return provider.Shutdown(flushCtx)
		},
	}, nil
}

// Shutdown flushes and closes the exporter
func (t *Tracing) Shutdown(ctx context.Context) error {
	return t.shutdown(ctx)
}
