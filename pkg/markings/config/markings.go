package config

import (
	"fmt"

	"github.com/randalmurphal/markings/pkg/markings"
	"github.com/randalmurphal/markings/pkg/markings/rules"
)

// Keys read by the markings accessors.
const (
	KeyOptionalKeys  = "optional_keys"
	KeyDuplicateKeys = "duplicate_keys"
	KeyEmptyTemplate = "empty_template"
	KeyRule          = "key_rule"
	KeyArgs          = "args"
	KeyTemplates     = "templates"
)

// Opts builds template options from the optional_keys, duplicate_keys and
// empty_template settings. Missing settings keep their default (off).
func (c Config) Opts() markings.Opts {
	return markings.Opts{
		OptionalKeys:  c.Bool(KeyOptionalKeys, false),
		DuplicateKeys: c.Bool(KeyDuplicateKeys, false),
		EmptyTemplate: c.Bool(KeyEmptyTemplate, false),
	}
}

// RuleName returns the key_rule setting. Empty means keys are not checked.
func (c Config) RuleName() string {
	return c.String(KeyRule, "")
}

// Rule resolves the key_rule setting against reg.
// It returns ok=false when no rule is configured.
func (c Config) Rule(reg *rules.Registry) (rule markings.KeyRule, ok bool, err error) {
	name := c.RuleName()
	if name == "" {
		return markings.KeyRule{}, false, nil
	}
	rule, err = reg.Lookup(name)
	if err != nil {
		return markings.KeyRule{}, false, err
	}
	return rule, true, nil
}

// Args renders the mapping under key into template values.
// Scalars of any type are rendered with markings.Args; a missing key
// yields empty values.
func (c Config) Args(key string) markings.Values {
	args := markings.NewArgs()
	for k, v := range c.Map(key) {
		args.With(k, v)
	}
	return args.Build()
}

// Templates returns the named template sources under key.
// Every value must be a string.
func (c Config) Templates(key string) (map[string]string, error) {
	raw := c.Map(key)
	out := make(map[string]string, len(raw))
	for name, v := range raw {
		text, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("template %q: expected string, got %T", name, v)
		}
		out[name] = text
	}
	return out, nil
}
