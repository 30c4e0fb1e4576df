package rules

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"unicode"

	"github.com/randalmurphal/markings/pkg/markings"
)

// ErrUnknownRule indicates a rule name is not registered.
var ErrUnknownRule = errors.New("unknown key rule")

// Names of the built-in rules.
const (
	Ident  = "ident"
	ASCII  = "ascii"
	Dotted = "dotted"
	Env    = "env"
)

// Registry is a thread-safe set of named key rules.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]markings.KeyRule
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{rules: make(map[string]markings.KeyRule)}
}

// Default creates a registry holding the built-in rules.
func Default() *Registry {
	r := New()
	r.Register(Ident, IdentRule())
	r.Register(ASCII, ASCIIRule())
	r.Register(Dotted, DottedRule())
	r.Register(Env, EnvRule())
	return r
}

// Register adds or replaces a rule.
func (r *Registry) Register(name string, rule markings.KeyRule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[name] = rule
}

// Get returns the rule registered under name.
func (r *Registry) Get(name string) (markings.KeyRule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[name]
	return rule, ok
}

// Lookup is like Get but returns an error wrapping ErrUnknownRule.
func (r *Registry) Lookup(name string) (markings.KeyRule, error) {
	rule, ok := r.Get(name)
	if !ok {
		return markings.KeyRule{}, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return rule, nil
}

// MustGet returns the rule for name, panicking if it is not registered.
func (r *Registry) MustGet(name string) markings.KeyRule {
	rule, err := r.Lookup(name)
	if err != nil {
		panic("rules: " + err.Error())
	}
	return rule
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Delete removes a rule.
func (r *Registry) Delete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rules, name)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

func isIdentStart(c rune) bool { return c == '_' || unicode.IsLetter(c) }

func isIdentContinue(c rune) bool { return isIdentStart(c) || unicode.IsDigit(c) }

func isASCIIStart(c rune) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isASCIIContinue(c rune) bool { return isASCIIStart(c) || ('0' <= c && c <= '9') }

func isEnvStart(c rune) bool { return c == '_' || ('A' <= c && c <= 'Z') }

func isEnvContinue(c rune) bool { return isEnvStart(c) || ('0' <= c && c <= '9') }

// IdentRule accepts Unicode identifiers.
func IdentRule() markings.KeyRule {
	return markings.KeyRule{Start: isIdentStart, Continue: isIdentContinue}
}

// ASCIIRule accepts ASCII identifiers.
func ASCIIRule() markings.KeyRule {
	return markings.KeyRule{Start: isASCIIStart, Continue: isASCIIContinue}
}

// DottedRule accepts identifiers joined by '.' or '-', such as "user.first-name".
func DottedRule() markings.KeyRule {
	return markings.KeyRule{
		Start: isIdentStart,
		Continue: func(c rune) bool {
			return c == '.' || c == '-' || isIdentContinue(c)
		},
	}
}

// EnvRule accepts upper-case environment variable names.
func EnvRule() markings.KeyRule {
	return markings.KeyRule{Start: isEnvStart, Continue: isEnvContinue}
}
