package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordParse does nothing.
func (NoopMetrics) RecordParse(_ context.Context, _ int, _ time.Duration, _ error) {}

// RecordApply does nothing.
func (NoopMetrics) RecordApply(_ context.Context, _ int, _ time.Duration, _ error) {}

// RecordCatalog does nothing.
func (NoopMetrics) RecordCatalog(_ context.Context, _ string, _ error) {}

// NoopSpanManager is a SpanManager that does nothing.
type NoopSpanManager struct{}

// Compile-time interface check.
var _ SpanManager = NoopSpanManager{}

var noopSpan = noop.Span{}

// StartParseSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartParseSpan(ctx context.Context, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// StartApplySpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartApplySpan(ctx context.Context, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndSpanWithError does nothing.
func (NoopSpanManager) EndSpanWithError(_ trace.Span, _ error) {}

// AddSpanEvent does nothing.
func (NoopSpanManager) AddSpanEvent(_ context.Context, _ string, _ ...attribute.KeyValue) {}
