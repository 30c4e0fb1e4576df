package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/randalmurphal/markings/pkg/markings"
	"github.com/randalmurphal/markings/pkg/markings/observability"
	"github.com/randalmurphal/markings/pkg/markings/rules"
)

// Catalog validates and serves named templates backed by a Store.
//
// Parsed templates are cached per name as prototypes. Template hands out
// a clone of the prototype, so every caller gets its own single-use
// template. A cached prototype is dropped as soon as the stored revision
// no longer matches.
type Catalog struct {
	store   Store
	rules   *rules.Registry
	logger  *slog.Logger
	metrics observability.MetricsRecorder

	mu    sync.Mutex
	cache map[string]prototype
}

type prototype struct {
	id       uuid.UUID
	revision int
	tmpl     *markings.Template
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithRules sets the registry used to resolve an entry's key rule.
// Default: rules.Default().
func WithRules(reg *rules.Registry) Option {
	return func(c *Catalog) {
		c.rules = reg
	}
}

// WithLogger sets the logger for failed operations.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// WithMetrics sets the recorder for catalog operations.
// Default: observability.NoopMetrics{}.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(c *Catalog) {
		c.metrics = m
	}
}

// New creates a Catalog over store.
func New(store Store, opts ...Option) *Catalog {
	c := &Catalog{
		store:   store,
		metrics: observability.NoopMetrics{},
		cache:   make(map[string]prototype),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rules == nil {
		c.rules = rules.Default()
	}
	if c.metrics == nil {
		c.metrics = observability.NoopMetrics{}
	}
	return c
}

// Compile parses text under opts, using the named key rule from reg when
// rule is non-empty.
func Compile(reg *rules.Registry, text string, opts markings.Opts, rule string) (*markings.Template, error) {
	if rule == "" {
		return markings.Parse(text, opts)
	}
	keyRule, err := reg.Lookup(rule)
	if err != nil {
		return nil, err
	}
	return markings.ParseStrict(text, opts, keyRule)
}

func (c *Catalog) record(ctx context.Context, op, name string, err error) {
	c.metrics.RecordCatalog(ctx, op, err)
	if err != nil {
		observability.LogCatalogError(c.logger, op, name, err)
	}
}

// Put validates text by parsing it and stores it under name.
// Invalid templates are never saved.
func (c *Catalog) Put(ctx context.Context, name, text string, opts markings.Opts, rule string) (Entry, error) {
	entry, err := c.put(name, text, opts, rule)
	c.record(ctx, "put", name, err)
	return entry, err
}

func (c *Catalog) put(name, text string, opts markings.Opts, rule string) (Entry, error) {
	if !validName(name) {
		return Entry{}, fmt.Errorf("put %q: %w", name, ErrInvalidName)
	}

	tmpl, err := Compile(c.rules, text, opts, rule)
	if err != nil {
		return Entry{}, fmt.Errorf("put %q: %w", name, err)
	}

	entry, err := c.store.Save(Entry{Name: name, Text: text, Opts: opts, Rule: rule})
	if err != nil {
		return Entry{}, fmt.Errorf("put %q: %w", name, err)
	}

	c.mu.Lock()
	c.cache[name] = prototype{id: entry.ID, revision: entry.Revision, tmpl: tmpl}
	c.mu.Unlock()
	return entry, nil
}

// Seed stores every template in sources under the same policy, in name order.
// It stops at the first failure.
func (c *Catalog) Seed(ctx context.Context, sources map[string]string, opts markings.Opts, rule string) error {
	for _, name := range slices.Sorted(maps.Keys(sources)) {
		if _, err := c.Put(ctx, name, sources[name], opts, rule); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the stored entry for name.
func (c *Catalog) Get(ctx context.Context, name string) (Entry, error) {
	entry, err := c.store.Load(name)
	if err != nil {
		err = fmt.Errorf("get %q: %w", name, err)
	}
	c.record(ctx, "get", name, err)
	return entry, err
}

// List returns every stored entry ordered by name.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	entries, err := c.store.List()
	if err != nil {
		err = fmt.Errorf("list: %w", err)
	}
	c.record(ctx, "list", "", err)
	return entries, err
}

// Template returns a fresh, unconsumed template for name.
func (c *Catalog) Template(ctx context.Context, name string) (*markings.Template, error) {
	tmpl, err := c.template(name)
	c.record(ctx, "template", name, err)
	return tmpl, err
}

func (c *Catalog) template(name string) (*markings.Template, error) {
	entry, err := c.store.Load(name)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.cache[name]; ok && p.id == entry.ID && p.revision == entry.Revision {
		return p.tmpl.Clone(), nil
	}

	tmpl, err := Compile(c.rules, entry.Text, entry.Opts, entry.Rule)
	if err != nil {
		delete(c.cache, name)
		return nil, fmt.Errorf("template %q: %w", name, err)
	}
	c.cache[name] = prototype{id: entry.ID, revision: entry.Revision, tmpl: tmpl}
	return tmpl.Clone(), nil
}

// Delete removes name from the store and the cache.
func (c *Catalog) Delete(ctx context.Context, name string) error {
	err := c.store.Delete(name)
	if err != nil {
		err = fmt.Errorf("delete %q: %w", name, err)
	} else {
		c.mu.Lock()
		delete(c.cache, name)
		c.mu.Unlock()
	}
	c.record(ctx, "delete", name, err)
	return err
}

// Close closes the underlying store.
func (c *Catalog) Close() error {
	return c.store.Close()
}
