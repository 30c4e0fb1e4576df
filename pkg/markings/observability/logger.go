// Package observability provides logging, metrics, and tracing helpers
// for template parsing and application.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds template context to a logger.
// Returns a new logger with template_id and source fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "b6f0...", "catalog")
//	enriched.Info("rendering") // includes template_id, source
func EnrichLogger(logger *slog.Logger, templateID, source string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("template_id", templateID),
		slog.String("source", source),
	)
}

// LogParse logs a successful parse.
func LogParse(logger *slog.Logger, keyCount int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("template parsed",
		slog.Int("keys", keyCount),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogParseError logs a rejected template.
func LogParseError(logger *slog.Logger, err error) {
	if logger == nil {
		return
	}
	logger.Warn("template rejected",
		slog.String("kind", ErrorKind(err)),
		slog.String("error", err.Error()),
	)
}

// LogApply logs a successful application.
func LogApply(logger *slog.Logger, argCount, outputBytes int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("template applied",
		slog.Int("args", argCount),
		slog.Int("output_bytes", outputBytes),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogApplyError logs a failed application.
func LogApplyError(logger *slog.Logger, err error) {
	if logger == nil {
		return
	}
	logger.Warn("template application failed",
		slog.String("kind", ErrorKind(err)),
		slog.String("error", err.Error()),
	)
}

// LogCatalogError logs a failed catalog operation.
func LogCatalogError(logger *slog.Logger, op, name string, err error) {
	if logger == nil {
		return
	}
	logger.Error("catalog operation failed",
		slog.String("operation", op),
		slog.String("name", name),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	elapsed := done()
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}

// Milliseconds converts d to fractional milliseconds for log fields.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
