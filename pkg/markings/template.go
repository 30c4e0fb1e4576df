package markings

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Template is a parsed ${key} template.
//
// A Template is single-use: Apply consumes it and any later Apply returns
// ErrTemplateConsumed. Use Clone before applying to keep a reusable copy.
// A Template is not safe for concurrent use; give each goroutine its own clone.
type Template struct {
	text     string
	markers  []marker
	opts     Opts
	consumed bool
}

// Parse scans input for ${key} markers and validates them against opts.
//
// Example:
//
//	t, err := markings.Parse("hello ${name}", markings.DefaultOpts())
func Parse(input string, opts Opts) (*Template, error) {
	markers, err := scan(input)
	if err != nil {
		return nil, err
	}
	return newTemplate(input, markers, opts)
}

// ParseStrict is Parse with every key checked against rule, as
// FindKeysStrict does. Repeated keys are only rejected by the scan when
// opts.DuplicateKeys is off.
func ParseStrict(input string, opts Opts, rule KeyRule) (*Template, error) {
	markers, err := scanStrict(input, rule, opts.DuplicateKeys)
	if err != nil {
		return nil, err
	}
	return newTemplate(input, markers, opts)
}

// MustParse is like Parse but panics on error.
// Use it for templates that are compiled into the program.
func MustParse(input string, opts Opts) *Template {
	t, err := Parse(input, opts)
	if err != nil {
		panic(fmt.Sprintf("markings: %v", err))
	}
	return t
}

func newTemplate(input string, markers []marker, opts Opts) (*Template, error) {
	if err := opts.Validate(keysOf(markers)); err != nil {
		return nil, err
	}
	return &Template{
		text:    input,
		markers: markers,
		opts:    opts,
	}, nil
}

// Text returns the original template text.
func (t *Template) Text() string { return t.text }

// Opts returns the options the template was parsed with.
func (t *Template) Opts() Opts { return t.opts }

// Keys returns the template keys in order of appearance, one entry per marker.
func (t *Template) Keys() []string { return keysOf(t.markers) }

// IsEmpty reports whether the template has no markers. Such a template
// only parses with Opts.EmptyTemplate and applies as the identity.
func (t *Template) IsEmpty() bool { return len(t.markers) == 0 }

// Consumed reports whether Apply or ApplyExact has been called.
func (t *Template) Consumed() bool { return t.consumed }

// Clone returns an independent copy of t. A clone of a consumed template
// is also consumed.
func (t *Template) Clone() *Template {
	return &Template{
		text:     t.text,
		markers:  slices.Clone(t.markers),
		opts:     t.opts,
		consumed: t.consumed,
	}
}

// Apply replaces the markers of t with args and consumes t.
//
// Every argument must name a key in the template unless Opts.OptionalKeys
// is set; otherwise Apply fails with *UnmatchedArgumentError. One argument
// replaces all markers with its key. Keys without an argument are left in
// the output as ${key}. The order of args never changes the result.
//
// An empty template returns its text unchanged whatever args holds.
// On error the returned string is empty.
func (t *Template) Apply(args Values) (string, error) {
	if err := t.consume(); err != nil {
		return "", err
	}
	if t.IsEmpty() {
		return t.text, nil
	}

	resolved, err := t.resolve(args)
	if err != nil {
		return "", err
	}
	return t.substitute(resolved), nil
}

// ApplyExact is Apply with the reverse check added: every key in the
// template must also be supplied, or it fails with *MissingArgumentsError.
func (t *Template) ApplyExact(args Values) (string, error) {
	if err := t.consume(); err != nil {
		return "", err
	}
	if t.IsEmpty() {
		return t.text, nil
	}

	resolved, err := t.resolve(args)
	if err != nil {
		return "", err
	}
	if missing := t.unresolved(resolved); len(missing) > 0 {
		return "", &MissingArgumentsError{Keys: missing}
	}
	return t.substitute(resolved), nil
}

func (t *Template) consume() error {
	if t.consumed {
		return ErrTemplateConsumed
	}
	t.consumed = true
	return nil
}

// resolve matches args against the template keys. Arguments are visited in
// sorted order so the reported unmatched key is deterministic.
func (t *Template) resolve(args Values) (map[string]string, error) {
	present := make(map[string]struct{}, len(t.markers))
	for _, m := range t.markers {
		present[m.key] = struct{}{}
	}

	resolved := make(map[string]string, len(args))
	for _, key := range slices.Sorted(maps.Keys(args)) {
		if _, ok := present[key]; ok {
			resolved[key] = args[key]
			continue
		}
		if !t.opts.OptionalKeys {
			return nil, &UnmatchedArgumentError{Key: key}
		}
	}
	return resolved, nil
}

// unresolved returns the keys with no value in resolved, first occurrence only.
func (t *Template) unresolved(resolved map[string]string) []string {
	var missing []string
	seen := make(map[string]struct{})
	for _, m := range t.markers {
		if _, ok := resolved[m.key]; ok {
			continue
		}
		if _, ok := seen[m.key]; ok {
			continue
		}
		seen[m.key] = struct{}{}
		missing = append(missing, m.key)
	}
	return missing
}

// substitute writes the template text with every resolved marker replaced.
// Replacement text is never rescanned.
func (t *Template) substitute(resolved map[string]string) string {
	var b strings.Builder
	b.Grow(len(t.text))

	prev := 0
	for _, m := range t.markers {
		b.WriteString(t.text[prev:m.start])
		if val, ok := resolved[m.key]; ok {
			b.WriteString(val)
		} else {
			b.WriteString(t.text[m.start:m.end])
		}
		prev = m.end
	}
	b.WriteString(t.text[prev:])
	return b.String()
}
