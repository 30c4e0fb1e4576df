package markings

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// KeyRule decides which key names are valid in strict mode.
//
// Start is applied to the first character of a trimmed key and Continue to
// every character after it. A nil predicate accepts any character.
type KeyRule struct {
	Start    func(r rune) bool
	Continue func(r rune) bool
}

// check validates a trimmed key whose text occupies span.
func (r KeyRule) check(name string, span Span) error {
	first, size := utf8.DecodeRuneInString(name)
	if r.Start != nil && !r.Start(first) {
		return &InvalidKeyStartError{Name: name, Span: span}
	}
	if r.Continue == nil {
		return nil
	}
	for _, c := range name[size:] {
		if !r.Continue(c) {
			return &InvalidKeyNameError{Name: name, Span: span}
		}
	}
	return nil
}

// FindKeysStrict scans input like FindKeys, then validates every key
// against rule. Keys are trimmed of surrounding whitespace before they are
// checked and returned.
//
// The first problem aborts the scan: an empty key, a key rejected by rule,
// or a key name that was already seen.
func FindKeysStrict(input string, rule KeyRule) ([]string, error) {
	markers, err := scanStrict(input, rule, false)
	if err != nil {
		return nil, err
	}
	return keysOf(markers), nil
}

// scanStrict runs scan and rewrites each marker key to its trimmed,
// validated form.
func scanStrict(input string, rule KeyRule, allowDuplicates bool) ([]marker, error) {
	markers, err := scan(input)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(markers))
	for i, m := range markers {
		raw := m.key
		lead := len(raw) - len(strings.TrimLeftFunc(raw, unicode.IsSpace))
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, &EmptyKeyError{Span: Span{Start: m.keyStart(), End: m.keyEnd()}}
		}

		span := Span{Start: m.keyStart() + lead, End: m.keyStart() + lead + len(name)}
		if err := rule.check(name, span); err != nil {
			return nil, err
		}

		if !allowDuplicates {
			if _, dup := seen[name]; dup {
				return nil, &DuplicateKeyError{Name: name, Span: span}
			}
			seen[name] = struct{}{}
		}
		markers[i].key = name
	}
	return markers, nil
}
