/*
Package markings replaces ${key} markers in strings by name.

# Overview

A template is plain text with ${key} markers. Parse finds the markers,
checks them against Opts, and returns a Template. Apply replaces each
marker with the argument of the same name and returns the result.

	t, err := markings.Parse("hello ${name}, an answer: ${greeting}.", markings.DefaultOpts())
	if err != nil {
	    return err
	}

	args := markings.NewArgs().
	    With("name", "test-user").
	    With("greeting", false).
	    Build()

	out, err := t.Apply(args)
	// out: "hello test-user, an answer: false."

# Syntax

A marker is "${", a key, and "}". Keys cannot contain "{" or start another
marker; nesting is always an error. A "}" outside a marker is plain text.
There is no escape for a literal "${".

# Options

The zero Opts is the strictest policy. Each toggle relaxes one rule:

	opts := markings.DefaultOpts().
	    ToggleOptionalKeys().  // arguments may name keys that are not in the template
	    ToggleDuplicateKeys(). // a key may appear more than once
	    ToggleEmptyTemplate()  // a template may have no markers at all

# Missing Arguments

Apply fails when an argument has no key in the template (unless
OptionalKeys is set) but leaves keys that received no argument in the
output as ${key}. Use ApplyExact when every key must be supplied:

	_, err := t.ApplyExact(markings.Values{"name": "x"})
	// err: missing argument: greeting

# Strict Keys

FindKeysStrict and ParseStrict check each key against a KeyRule, a pair
of predicates for the first and following characters:

	rule := markings.KeyRule{
	    Start:    unicode.IsLetter,
	    Continue: func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) },
	}
	keys, err := markings.FindKeysStrict("${ name } ${2fast}", rule)
	// err: invalid start of key "2fast" at 12..17

Errors carry byte offsets into the template text.

# Reuse

Templates are consumed by Apply. Clone a template to apply it again:

	proto := markings.MustParse("Dear ${name},", markings.DefaultOpts())
	for _, name := range names {
	    out, _ := proto.Clone().Apply(markings.Values{"name": name})
	    fmt.Println(out)
	}

# Errors

Scanner errors unwrap to ErrMalformed, strict key errors to ErrInvalidKey,
and unmatched arguments to ErrUnmatchedArgument, so callers can branch with
errors.Is and extract offsets with errors.As.
*/
package markings
