package markings

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const creditsTemplate = "you've reached a max of ${max} credits, " +
	"out of ${total} total credits with ${success} " +
	"successes and ${failure} failures. and I've " +
	"'collected' ${overall_total} credits from all of " +
	"the failures."

const creditsExpected = "you've reached a max of 218,731 credits, " +
	"out of 706,917 total credits with 169 " +
	"successes and 174 failures. and I've " +
	"'collected' 1,629,011 credits from all of " +
	"the failures."

// TestApply_Basic verifies straightforward substitution.
func TestApply_Basic(t *testing.T) {
	tmpl, err := Parse("${a} ${b}${c}", DefaultOpts())
	require.NoError(t, err)

	out, err := tmpl.Apply(NewArgs().With("a", 0).With("b", 1).With("c", 2).Build())
	require.NoError(t, err)
	assert.Equal(t, "0 12", out)
}

// TestApply_RealTemplate verifies a longer template built with Args.
func TestApply_RealTemplate(t *testing.T) {
	tmpl, err := Parse(creditsTemplate, DefaultOpts())
	require.NoError(t, err)

	args := NewArgs().
		With("max", "218,731").
		With("total", "706,917").
		With("success", "169").
		With("failure", "174").
		With("overall_total", "1,629,011").
		Build()

	out, err := tmpl.Apply(args)
	require.NoError(t, err)
	assert.Equal(t, creditsExpected, out)
	assert.NotContains(t, out, "${")
}

// TestApply_Iterative verifies output with unresolved markers can be parsed again.
func TestApply_Iterative(t *testing.T) {
	var markers []string
	for c := 'a'; c <= 'z'; c++ {
		markers = append(markers, fmt.Sprintf("${%c}", c))
	}
	base := strings.Join(markers, " ")

	for c := 'a'; c <= 'z'; c++ {
		tmpl, err := Parse(base, DefaultOpts())
		require.NoError(t, err)
		base, err = tmpl.Apply(Values{string(c): fmt.Sprintf("%c = %d", c, c)})
		require.NoError(t, err)
	}

	expected := "a = 97 b = 98 c = 99 d = 100 e = 101 " +
		"f = 102 g = 103 h = 104 i = 105 j = 106 " +
		"k = 107 l = 108 m = 109 n = 110 o = 111 " +
		"p = 112 q = 113 r = 114 s = 115 t = 116 " +
		"u = 117 v = 118 w = 119 x = 120 y = 121 " +
		"z = 122"
	assert.Equal(t, expected, base)
}

// TestParse_EmptyTemplate verifies identity templates.
func TestParse_EmptyTemplate(t *testing.T) {
	for _, input := range []string{"", "foobar baz quux {{something}}"} {
		_, err := Parse(input, DefaultOpts())
		require.ErrorIs(t, err, ErrEmptyTemplate)

		tmpl, err := Parse(input, DefaultOpts().ToggleEmptyTemplate())
		require.NoError(t, err)
		assert.True(t, tmpl.IsEmpty())

		out, err := tmpl.Apply(NewArgs().Build())
		require.NoError(t, err)
		assert.Equal(t, input, out)

		// Arguments are ignored entirely, even without OptionalKeys.
		tmpl, err = Parse(input, DefaultOpts().ToggleEmptyTemplate())
		require.NoError(t, err)
		out, err = tmpl.Apply(Values{"unknown": "x"})
		require.NoError(t, err)
		assert.Equal(t, input, out)
	}
}

// TestParse_DuplicateKeys verifies the duplicate policy.
func TestParse_DuplicateKeys(t *testing.T) {
	input := "${one} and ${two} and ${one}"

	_, err := Parse(input, DefaultOpts())
	require.ErrorIs(t, err, ErrDuplicateKeys)

	tmpl, err := Parse(input, DefaultOpts().ToggleDuplicateKeys())
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "one"}, tmpl.Keys())

	out, err := tmpl.Apply(NewArgs().With("one", 1).With("two", 2).Build())
	require.NoError(t, err)
	assert.Equal(t, "1 and 2 and 1", out)
}

// TestApply_OptionalKeys verifies unmatched arguments with and without OptionalKeys.
func TestApply_OptionalKeys(t *testing.T) {
	input := "${foo} ${bar} ${baz}"
	args := NewArgs().With("foo", false).With("unknown", true).Build()

	tmpl, err := Parse(input, DefaultOpts())
	require.NoError(t, err)
	out, err := tmpl.Apply(args)
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Equal(t, &UnmatchedArgumentError{Key: "unknown"}, err)
	assert.ErrorIs(t, err, ErrUnmatchedArgument)

	tmpl, err = Parse(input, DefaultOpts().ToggleOptionalKeys())
	require.NoError(t, err)
	out, err = tmpl.Apply(args)
	require.NoError(t, err)
	assert.Equal(t, "false ${bar} ${baz}", out)
}

// TestApply_UnmatchedIsDeterministic verifies the reported key does not depend on map order.
func TestApply_UnmatchedIsDeterministic(t *testing.T) {
	for i := 0; i < 20; i++ {
		tmpl := MustParse("${k}", DefaultOpts())
		_, err := tmpl.Apply(Values{"k": "v", "zz": "1", "aa": "2", "mm": "3"})
		assert.Equal(t, &UnmatchedArgumentError{Key: "aa"}, err)
	}
}

// TestApply_OrderIndependent verifies replacement text is never substituted again.
func TestApply_OrderIndependent(t *testing.T) {
	for i := 0; i < 20; i++ {
		tmpl := MustParse("${a} ${b}", DefaultOpts())
		out, err := tmpl.Apply(Values{"a": "${b}", "b": "x"})
		require.NoError(t, err)
		assert.Equal(t, "${b} x", out)
	}
}

// TestApply_StrictMarkersWithWhitespace verifies trimmed keys replace their whole marker.
func TestApply_StrictMarkersWithWhitespace(t *testing.T) {
	tmpl, err := ParseStrict("${a} ${ a } ${b}", DefaultOpts().ToggleDuplicateKeys(), identRule)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a", "b"}, tmpl.Keys())

	out, err := tmpl.Apply(Values{"a": "1", "b": "2"})
	require.NoError(t, err)
	assert.Equal(t, "1 1 2", out)
}

// TestParseStrict_Duplicates verifies duplicate handling follows Opts.
func TestParseStrict_Duplicates(t *testing.T) {
	_, err := ParseStrict("${a} ${ a }", DefaultOpts(), identRule)
	assert.Equal(t, &DuplicateKeyError{Name: "a", Span: Span{Start: 8, End: 9}}, err)
	assert.ErrorIs(t, err, ErrDuplicateKeys)

	_, err = ParseStrict("${ok} ${bad key}", DefaultOpts(), identRule)
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = ParseStrict("nothing here", DefaultOpts(), identRule)
	assert.ErrorIs(t, err, ErrEmptyTemplate)
}

// TestApply_Consumed verifies a template can only be applied once.
func TestApply_Consumed(t *testing.T) {
	tmpl := MustParse("hi ${name}", DefaultOpts())
	assert.False(t, tmpl.Consumed())

	out, err := tmpl.Apply(Values{"name": "bob"})
	require.NoError(t, err)
	assert.Equal(t, "hi bob", out)
	assert.True(t, tmpl.Consumed())

	_, err = tmpl.Apply(Values{"name": "bob"})
	assert.ErrorIs(t, err, ErrTemplateConsumed)

	_, err = tmpl.ApplyExact(Values{"name": "bob"})
	assert.ErrorIs(t, err, ErrTemplateConsumed)
}

// TestApply_ConsumedOnFailure verifies a failed Apply still consumes the template.
func TestApply_ConsumedOnFailure(t *testing.T) {
	tmpl := MustParse("hi ${name}", DefaultOpts())
	_, err := tmpl.Apply(Values{"other": "x"})
	require.Error(t, err)

	_, err = tmpl.Apply(Values{"name": "bob"})
	assert.ErrorIs(t, err, ErrTemplateConsumed)
}

// TestClone verifies clones are independent and share consumption state at clone time.
func TestClone(t *testing.T) {
	orig := MustParse("${greeting}, ${name}!", DefaultOpts())
	args := Values{"greeting": "hello", "name": "world"}

	clone := orig.Clone()
	fromClone, err := clone.Apply(args)
	require.NoError(t, err)
	assert.False(t, orig.Consumed())

	fromOrig, err := orig.Apply(args)
	require.NoError(t, err)
	assert.Equal(t, fromOrig, fromClone)
	assert.Equal(t, "hello, world!", fromOrig)

	late := orig.Clone()
	assert.True(t, late.Consumed())
	_, err = late.Apply(args)
	assert.ErrorIs(t, err, ErrTemplateConsumed)
}

// TestApplyExact verifies the bidirectional coverage check.
func TestApplyExact(t *testing.T) {
	input := "${foo} ${bar} ${baz} ${bar}"
	opts := DefaultOpts().ToggleDuplicateKeys()

	tmpl := MustParse(input, opts)
	out, err := tmpl.ApplyExact(Values{"foo": "1"})
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Equal(t, &MissingArgumentsError{Keys: []string{"bar", "baz"}}, err)
	assert.ErrorIs(t, err, ErrMissingArgument)
	assert.Equal(t, "missing arguments: bar, baz", err.Error())

	tmpl = MustParse(input, opts)
	out, err = tmpl.ApplyExact(Values{"foo": "1", "bar": "2", "baz": "3"})
	require.NoError(t, err)
	assert.Equal(t, "1 2 3 2", out)

	tmpl = MustParse(input, opts)
	_, err = tmpl.ApplyExact(Values{"foo": "1", "bar": "2", "baz": "3", "qux": "4"})
	assert.Equal(t, &UnmatchedArgumentError{Key: "qux"}, err)

	tmpl = MustParse("plain", DefaultOpts().ToggleEmptyTemplate())
	out, err = tmpl.ApplyExact(nil)
	require.NoError(t, err)
	assert.Equal(t, "plain", out)
}

// TestApply_NilArgs verifies nil args leave every marker in place.
func TestApply_NilArgs(t *testing.T) {
	tmpl := MustParse("x ${a} y", DefaultOpts())
	out, err := tmpl.Apply(nil)
	require.NoError(t, err)
	assert.Equal(t, "x ${a} y", out)
}

// TestTemplate_Accessors verifies the read-only accessors.
func TestTemplate_Accessors(t *testing.T) {
	opts := DefaultOpts().ToggleOptionalKeys()
	tmpl := MustParse("a ${b} c", opts)

	assert.Equal(t, "a ${b} c", tmpl.Text())
	assert.Equal(t, opts, tmpl.Opts())
	assert.False(t, tmpl.IsEmpty())

	keys := tmpl.Keys()
	keys[0] = "changed"
	assert.Equal(t, []string{"b"}, tmpl.Keys())
}

// TestMustParse_Panics verifies MustParse panics on invalid input.
func TestMustParse_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "markings: found 1 open braces and 0 closed braces", func() {
		MustParse("${a", DefaultOpts())
	})
	assert.NotPanics(t, func() {
		MustParse("${a}", DefaultOpts())
	})
}
