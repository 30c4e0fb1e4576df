/*
Package render is the observed entry point for parsing and applying templates.

A Renderer holds the policy (markings.Opts), an optional key rule, and the
observability hooks. Each call parses a fresh template, so one Renderer can
serve many goroutines:

	r := render.New(
		render.WithOpts(markings.DefaultOpts().ToggleOptionalKeys()),
		render.WithRule(rules.Ident),
		render.WithLogger(logger),
		render.WithMetrics(observability.NewMetricsRecorder()),
		render.WithTracing(true),
	)
	out, err := r.Render(ctx, "hello ${name}", markings.Values{"name": "world"})

# Named Templates

With WithCatalog, RenderNamed applies arguments to a template stored in a
catalog.Catalog. Stored templates keep the policy they were saved with.

# Observability

Parse and apply each get a log line, metrics and, with WithTracing(true),
a span (markings.parse and markings.apply). Inline templates are identified
by TemplateID, a name-based UUID of the text; named templates by their name.
*/
package render
