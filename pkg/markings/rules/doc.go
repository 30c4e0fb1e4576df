// Package rules provides named key grammars for strict template parsing.
//
// A Registry maps names to markings.KeyRule values so that configuration
// files and command-line flags can select a grammar by name.
//
// # Built-in Rules
//
// Default returns a registry holding:
//
//	ident   Unicode letter or '_', then letters, digits, '_'
//	ascii   [A-Za-z_][A-Za-z0-9_]*
//	dotted  ident, with '.' and '-' also allowed after the first character
//	env     [A-Z_][A-Z0-9_]*, the shape of environment variable names
//
// # Custom Rules
//
//	r := rules.Default()
//	r.Register("lower", markings.KeyRule{
//	    Start:    unicode.IsLower,
//	    Continue: func(c rune) bool { return unicode.IsLower(c) || c == '_' },
//	})
//
//	rule, ok := r.Get("lower")
//
// # Thread Safety
//
// All Registry methods are safe for concurrent use.
package rules
