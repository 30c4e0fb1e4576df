/*
Package config loads template settings from YAML or JSON.

# Overview

config wraps a map[string]any and provides typed accessors that return
defaults for missing keys or mismatched types, plus accessors that turn
the settings into markings types.

# File Format

	optional_keys: true
	duplicate_keys: false
	empty_template: false
	key_rule: ident

	args:
	  name: world
	  count: 3

	templates:
	  greeting: "hello ${name}, you have ${count} messages"

# Basic Usage

	cfg, err := config.FromFile("markings.yaml")
	if err != nil {
	    return err
	}

	opts := cfg.Opts()
	args := cfg.Args(config.KeyArgs)
	rule, strict, err := cfg.Rule(rules.Default())

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
