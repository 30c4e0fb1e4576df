package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records template metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordParse records a parse with the number of keys found and its error status.
	RecordParse(ctx context.Context, keyCount int, duration time.Duration, err error)

	// RecordApply records an application with the number of arguments supplied.
	RecordApply(ctx context.Context, argCount int, duration time.Duration, err error)

	// RecordCatalog records a catalog operation ("put", "get", "delete", ...).
	RecordCatalog(ctx context.Context, op string, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	parses       metric.Int64Counter
	parseLatency metric.Float64Histogram
	parseErrors  metric.Int64Counter
	parseKeys    metric.Int64Histogram
	applies      metric.Int64Counter
	applyLatency metric.Float64Histogram
	applyErrors  metric.Int64Counter
	catalogOps   metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("markings")
	m := &otelMetrics{}

	var err error
	if m.parses, err = meter.Int64Counter("markings.parse.count",
		metric.WithDescription("Number of template parses"),
	); err != nil {
		return nil, err
	}
	if m.parseLatency, err = meter.Float64Histogram("markings.parse.latency_ms",
		metric.WithDescription("Template parse latency in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}
	if m.parseErrors, err = meter.Int64Counter("markings.parse.errors",
		metric.WithDescription("Number of rejected templates"),
	); err != nil {
		return nil, err
	}
	if m.parseKeys, err = meter.Int64Histogram("markings.parse.keys",
		metric.WithDescription("Number of keys per parsed template"),
	); err != nil {
		return nil, err
	}
	if m.applies, err = meter.Int64Counter("markings.apply.count",
		metric.WithDescription("Number of template applications"),
	); err != nil {
		return nil, err
	}
	if m.applyLatency, err = meter.Float64Histogram("markings.apply.latency_ms",
		metric.WithDescription("Template application latency in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, err
	}
	if m.applyErrors, err = meter.Int64Counter("markings.apply.errors",
		metric.WithDescription("Number of failed template applications"),
	); err != nil {
		return nil, err
	}
	if m.catalogOps, err = meter.Int64Counter("markings.catalog.ops",
		metric.WithDescription("Number of catalog operations"),
	); err != nil {
		return nil, err
	}
	return m, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordParse records a parse.
func (m *otelMetrics) RecordParse(ctx context.Context, keyCount int, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.Bool("success", err == nil))
	m.parses.Add(ctx, 1, attrs)
	m.parseLatency.Record(ctx, Milliseconds(duration), attrs)

	if err != nil {
		m.parseErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", ErrorKind(err))))
		return
	}
	m.parseKeys.Record(ctx, int64(keyCount))
}

// RecordApply records an application.
func (m *otelMetrics) RecordApply(ctx context.Context, argCount int, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.Bool("success", err == nil),
		attribute.Int("args", argCount),
	)
	m.applies.Add(ctx, 1, attrs)
	m.applyLatency.Record(ctx, Milliseconds(duration), attrs)

	if err != nil {
		m.applyErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", ErrorKind(err))))
	}
}

// RecordCatalog records a catalog operation.
func (m *otelMetrics) RecordCatalog(ctx context.Context, op string, err error) {
	m.catalogOps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.Bool("success", err == nil),
	))
}
