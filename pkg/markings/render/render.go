package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/randalmurphal/markings/pkg/markings"
	"github.com/randalmurphal/markings/pkg/markings/catalog"
	"github.com/randalmurphal/markings/pkg/markings/observability"
	"github.com/randalmurphal/markings/pkg/markings/rules"
)

// ErrNoCatalog is returned by RenderNamed when no catalog was configured.
var ErrNoCatalog = errors.New("render: no catalog configured")

// Renderer parses and applies templates with logging, metrics and tracing.
// A Renderer is safe for concurrent use; every call works on its own template.
type Renderer struct {
	opts    markings.Opts
	rule    string
	rules   *rules.Registry
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	catalog *catalog.Catalog
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		opts:    markings.DefaultOpts(),
		rules:   rules.Default(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TemplateID derives a stable identifier for inline template text.
// It appears in log fields and span attributes.
func TemplateID(text string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(text)).String()
}

// Parse parses text under the renderer's policy and key rule.
func (r *Renderer) Parse(ctx context.Context, text string) (*markings.Template, error) {
	id := TemplateID(text)
	logger := observability.EnrichLogger(r.logger, id, "inline")
	return r.parse(ctx, logger, id, text)
}

// Render parses text and applies args to it.
func (r *Renderer) Render(ctx context.Context, text string, args markings.Values) (string, error) {
	return r.renderInline(ctx, text, args, false)
}

// RenderExact is Render with markings.Template.ApplyExact semantics:
// every key in text must be supplied.
func (r *Renderer) RenderExact(ctx context.Context, text string, args markings.Values) (string, error) {
	return r.renderInline(ctx, text, args, true)
}

// RenderNamed applies args to the catalog template stored under name.
// The template parses under its stored policy, not the renderer's.
func (r *Renderer) RenderNamed(ctx context.Context, name string, args markings.Values) (string, error) {
	return r.renderNamed(ctx, name, args, false)
}

// RenderNamedExact is RenderNamed with ApplyExact semantics.
func (r *Renderer) RenderNamedExact(ctx context.Context, name string, args markings.Values) (string, error) {
	return r.renderNamed(ctx, name, args, true)
}

func (r *Renderer) renderInline(ctx context.Context, text string, args markings.Values, exact bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := TemplateID(text)
	logger := observability.EnrichLogger(r.logger, id, "inline")

	tmpl, err := r.parse(ctx, logger, id, text)
	if err != nil {
		return "", err
	}
	return r.apply(ctx, logger, id, tmpl, args, exact)
}

func (r *Renderer) renderNamed(ctx context.Context, name string, args markings.Values, exact bool) (string, error) {
	if r.catalog == nil {
		return "", ErrNoCatalog
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	logger := observability.EnrichLogger(r.logger, name, "catalog")

	tmpl, err := r.catalog.Template(ctx, name)
	if err != nil {
		return "", err
	}
	return r.apply(ctx, logger, name, tmpl, args, exact)
}

func (r *Renderer) parse(ctx context.Context, logger *slog.Logger, id, text string) (tmpl *markings.Template, err error) {
	ctx, span := r.spans.StartParseSpan(ctx, id)
	defer func() {
		r.spans.EndSpanWithError(span, err)
	}()

	done := observability.TimedOperation()
	tmpl, err = catalog.Compile(r.rules, text, r.opts, r.rule)
	elapsed := done()

	keyCount := 0
	if tmpl != nil {
		keyCount = len(tmpl.Keys())
	}
	r.metrics.RecordParse(ctx, keyCount, elapsed, err)

	if err != nil {
		observability.LogParseError(logger, err)
		return nil, fmt.Errorf("parse: %w", err)
	}
	observability.LogParse(logger, keyCount, observability.Milliseconds(elapsed))
	return tmpl, nil
}

func (r *Renderer) apply(ctx context.Context, logger *slog.Logger, id string, tmpl *markings.Template, args markings.Values, exact bool) (out string, err error) {
	ctx, span := r.spans.StartApplySpan(ctx, id)
	defer func() {
		r.spans.EndSpanWithError(span, err)
	}()

	done := observability.TimedOperation()
	if exact {
		out, err = tmpl.ApplyExact(args)
	} else {
		out, err = tmpl.Apply(args)
	}
	elapsed := done()
	r.metrics.RecordApply(ctx, len(args), elapsed, err)

	if err != nil {
		observability.LogApplyError(logger, err)
		return "", fmt.Errorf("apply: %w", err)
	}
	observability.LogApply(logger, len(args), len(out), observability.Milliseconds(elapsed))
	return out, nil
}
