package render

import (
	"log/slog"

	"github.com/randalmurphal/markings/pkg/markings"
	"github.com/randalmurphal/markings/pkg/markings/catalog"
	"github.com/randalmurphal/markings/pkg/markings/config"
	"github.com/randalmurphal/markings/pkg/markings/observability"
	"github.com/randalmurphal/markings/pkg/markings/rules"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithOpts sets the parse and apply policy for inline templates.
// Default: markings.DefaultOpts()
func WithOpts(opts markings.Opts) Option {
	return func(r *Renderer) {
		r.opts = opts
	}
}

// WithRule switches inline parsing to strict mode with the named key rule.
// An empty name keeps the permissive scan. Unknown names fail at parse time
// with rules.ErrUnknownRule.
//
// Example:
//
//	r := render.New(render.WithRule(rules.Env))
func WithRule(name string) Option {
	return func(r *Renderer) {
		r.rule = name
	}
}

// WithRules sets the registry that WithRule names are resolved against.
// Default: rules.Default()
func WithRules(reg *rules.Registry) Option {
	return func(r *Renderer) {
		if reg != nil {
			r.rules = reg
		}
	}
}

// WithLogger enables structured logging of every parse and apply.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
// Use observability.NewMetricsRecorder() for OpenTelemetry metrics.
// Default: observability.NoopMetrics{}
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(r *Renderer) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithTracing enables OpenTelemetry spans for each parse and apply.
// Spans go to the global tracer provider.
func WithTracing(enabled bool) Option {
	return func(r *Renderer) {
		if enabled {
			r.spans = observability.NewSpanManager()
		} else {
			r.spans = observability.NoopSpanManager{}
		}
	}
}

// WithCatalog sets the catalog used by RenderNamed.
func WithCatalog(c *catalog.Catalog) Option {
	return func(r *Renderer) {
		r.catalog = c
	}
}

// ConfigOptions returns the options described by a loaded config:
// the policy flags and the key rule name.
func ConfigOptions(cfg config.Config) []Option {
	return []Option{
		WithOpts(cfg.Opts()),
		WithRule(cfg.RuleName()),
	}
}
