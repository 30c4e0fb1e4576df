package markings

import "fmt"

// Values maps key names to their rendered replacement text.
// Apply only reads it.
type Values map[string]string

// Args builds Values.
//
// Values are rendered to text as soon as they are added, so the builder
// never holds on to the caller's values. Adding a key twice keeps the last
// value.
//
// Example:
//
//	args := markings.NewArgs().
//	    With("name", "test-user").
//	    With("greeting", false).
//	    Build()
type Args struct {
	values Values
}

// NewArgs creates an empty Args builder.
func NewArgs() *Args {
	return &Args{values: make(Values)}
}

// With renders value with fmt.Sprint and maps key to it.
// Types implementing fmt.Stringer or error render themselves.
func (a *Args) With(key string, value any) *Args {
	a.values[key] = fmt.Sprint(value)
	return a
}

// Len returns the number of distinct keys added so far.
func (a *Args) Len() int {
	return len(a.values)
}

// Build returns the accumulated values.
// The builder can keep being used; later calls to With do not affect the result.
func (a *Args) Build() Values {
	out := make(Values, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}
