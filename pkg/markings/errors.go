package markings

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for template validation.
var (
	// ErrEmptyTemplate indicates a template had no markers and Opts did not allow it.
	ErrEmptyTemplate = errors.New("markings: empty template was found")

	// ErrDuplicateKeys indicates a key appeared more than once and Opts did not allow it.
	ErrDuplicateKeys = errors.New("markings: duplicate keys were found")
)

// Sentinel errors for template application.
var (
	// ErrTemplateConsumed indicates Apply was called on a template that was already applied.
	ErrTemplateConsumed = errors.New("markings: template already applied")

	// ErrUnmatchedArgument indicates an argument had no matching key in the template.
	ErrUnmatchedArgument = errors.New("markings: unmatched argument")

	// ErrMissingArgument indicates a template key was not supplied to ApplyExact.
	ErrMissingArgument = errors.New("markings: missing argument")
)

// Category errors. Concrete error types unwrap to one of these.
var (
	// ErrMalformed is the category of every scanner error.
	ErrMalformed = errors.New("markings: malformed template")

	// ErrInvalidKey is the category of strict key name errors.
	ErrInvalidKey = errors.New("markings: invalid key")
)

// BraceCountError reports that the number of opened markers does not
// match the number of closed markers.
type BraceCountError struct {
	Open  int
	Close int
}

// Error implements the error interface.
func (e *BraceCountError) Error() string {
	return fmt.Sprintf("found %d open braces and %d closed braces", e.Open, e.Close)
}

// Unwrap returns ErrMalformed.
func (e *BraceCountError) Unwrap() error { return ErrMalformed }

// ExpectedClosingError reports an opened marker without a closing brace.
type ExpectedClosingError struct {
	// Head is the byte offset of the marker's "${".
	Head int
}

// Error implements the error interface.
func (e *ExpectedClosingError) Error() string {
	return fmt.Sprintf("expected closing brace for marker at offset %d", e.Head)
}

// Unwrap returns ErrMalformed.
func (e *ExpectedClosingError) Unwrap() error { return ErrMalformed }

// ExpectedOpeningError reports a closing brace that does not follow its marker's opening.
type ExpectedOpeningError struct {
	// Tail is the byte offset of the closing brace.
	Tail int
}

// Error implements the error interface.
func (e *ExpectedOpeningError) Error() string {
	return fmt.Sprintf("expected opening brace before offset %d", e.Tail)
}

// Unwrap returns ErrMalformed.
func (e *ExpectedOpeningError) Unwrap() error { return ErrMalformed }

// NestedMarkerError reports a marker opened inside another marker.
type NestedMarkerError struct {
	// Pos is the byte offset of the nested "${" or "{".
	Pos int
}

// Error implements the error interface.
func (e *NestedMarkerError) Error() string {
	return fmt.Sprintf("nested template starting at offset %d", e.Pos)
}

// Unwrap returns ErrMalformed.
func (e *NestedMarkerError) Unwrap() error { return ErrMalformed }

// Span is a half-open byte range [Start, End) in template text.
type Span struct {
	Start int
	End   int
}

// String formats the span as start..end.
func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// EmptyKeyError reports a marker whose key is empty after trimming.
type EmptyKeyError struct {
	Span Span
}

// Error implements the error interface.
func (e *EmptyKeyError) Error() string {
	return fmt.Sprintf("empty key name at %s", e.Span)
}

// Unwrap returns ErrInvalidKey.
func (e *EmptyKeyError) Unwrap() error { return ErrInvalidKey }

// InvalidKeyStartError reports a key whose first character is rejected by KeyRule.Start.
type InvalidKeyStartError struct {
	Name string
	Span Span
}

// Error implements the error interface.
func (e *InvalidKeyStartError) Error() string {
	return fmt.Sprintf("invalid start of key %q at %s", e.Name, e.Span)
}

// Unwrap returns ErrInvalidKey.
func (e *InvalidKeyStartError) Unwrap() error { return ErrInvalidKey }

// InvalidKeyNameError reports a key containing a character rejected by KeyRule.Continue.
type InvalidKeyNameError struct {
	Name string
	Span Span
}

// Error implements the error interface.
func (e *InvalidKeyNameError) Error() string {
	return fmt.Sprintf("invalid key name %q at %s", e.Name, e.Span)
}

// Unwrap returns ErrInvalidKey.
func (e *InvalidKeyNameError) Unwrap() error { return ErrInvalidKey }

// DuplicateKeyError reports a repeated key found by the strict scanner.
type DuplicateKeyError struct {
	Name string
	// Span is the range of the repeated occurrence.
	Span Span
}

// Error implements the error interface.
func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q at %s", e.Name, e.Span)
}

// Unwrap returns ErrDuplicateKeys.
func (e *DuplicateKeyError) Unwrap() error { return ErrDuplicateKeys }

// UnmatchedArgumentError is returned by Apply when an argument has no key
// in the template and Opts.OptionalKeys is off.
type UnmatchedArgumentError struct {
	Key string
}

// Error implements the error interface.
func (e *UnmatchedArgumentError) Error() string {
	return fmt.Sprintf("argument %q has no matching key in the template", e.Key)
}

// Unwrap returns ErrUnmatchedArgument.
func (e *UnmatchedArgumentError) Unwrap() error { return ErrUnmatchedArgument }

// MissingArgumentsError is returned by ApplyExact when template keys were
// left unresolved.
type MissingArgumentsError struct {
	// Keys are the unresolved key names, in template order, without repeats.
	Keys []string
}

// Error implements the error interface.
func (e *MissingArgumentsError) Error() string {
	if len(e.Keys) == 1 {
		return fmt.Sprintf("missing argument: %s", e.Keys[0])
	}
	return fmt.Sprintf("missing arguments: %s", strings.Join(e.Keys, ", "))
}

// Unwrap returns ErrMissingArgument.
func (e *MissingArgumentsError) Unwrap() error { return ErrMissingArgument }
