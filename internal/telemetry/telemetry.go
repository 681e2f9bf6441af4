// Package telemetry provides OpenTelemetry tracing for the battle engine.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "battlesim"
	serviceVersion = "0.1.0"
)

// Options describes the exporter and the simulation run the traces belong
// to.
type Options struct {
	Endpoint    string  // Overrides OTEL_EXPORTER_OTLP_ENDPOINT when set
	SampleRatio float64 // Share of battles traced; <= 0 or >= 1 traces all

	Mode    string // sim or play
	Ruleset string
	Level   int
	Seed    int64
}

// Setup initializes OpenTelemetry with an OTLP HTTP exporter. Everything
// not in opts comes from the standard OTEL_* environment variables.
//
// Returns a shutdown function that should be called on application exit.
func Setup(ctx context.Context, opts Options) (shutdown func(context.Context) error, err error) {
	var exporterOpts []otlptracehttp.Option
	if opts.Endpoint != "" {
		exporterOpts = append(exporterOpts, otlptracehttp.WithEndpointURL(opts.Endpoint))
	}
	exporter, err := otlptracehttp.New(ctx, exporterOpts...)
	if err != nil {
		return nil, err
	}

	// Own resource, not merged with Default(), to avoid schema URL conflicts
	res, err := resource.New(ctx, resource.WithAttributes(resourceAttributes(opts)...))
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(opts.SampleRatio)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

func resourceAttributes(opts Options) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("service.version", serviceVersion),
		attribute.String("host.name", getHostname()),
		attribute.String("os.type", runtime.GOOS),
		attribute.String("process.runtime.name", "go"),
		attribute.String("process.runtime.version", runtime.Version()),
		attribute.Int("battlesim.level", opts.Level),
		attribute.Int64("battlesim.seed", opts.Seed),
	}
	if opts.Mode != "" {
		attrs = append(attrs, attribute.String("battlesim.mode", opts.Mode))
	}
	if opts.Ruleset != "" {
		attrs = append(attrs, attribute.String("battlesim.ruleset", opts.Ruleset))
	}
	return attrs
}

// sampler keeps whole battles: a battle's root span decides for every
// turn and switch span below it.
func sampler(ratio float64) sdktrace.Sampler {
	if ratio <= 0 || ratio >= 1 {
		return sdktrace.AlwaysSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

// BattleAttributes are the attributes every battle-scoped span carries.
func BattleAttributes(battleID, battleType, format string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("battle_id", battleID),
		attribute.String("type", battleType),
		attribute.String("format", format),
	}
}

// Tracer returns a named tracer for the given component.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + name)
}

// NoopTracer returns a no-op tracer for use when telemetry is disabled.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(serviceName + "/noop")
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return hostname
}
