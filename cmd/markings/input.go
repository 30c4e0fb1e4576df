package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/markings/pkg/markings"
	"github.com/randalmurphal/markings/pkg/markings/config"
)

// readTemplate returns the template text named by arg, reading stdin for "-".
func readTemplate(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// parseSets turns repeated key=value flags into values.
// The first "=" separates key from value; later ones belong to the value.
func parseSets(sets []string) (markings.Values, error) {
	args := markings.NewArgs()
	for _, set := range sets {
		key, value, ok := strings.Cut(set, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", set)
		}
		args.With(key, value)
	}
	return args.Build(), nil
}

// loadArgsFile reads a YAML or JSON mapping of argument values.
func loadArgsFile(path string) (markings.Values, error) {
	cfg, err := config.FromFile(path)
	if err != nil {
		return nil, err
	}
	args := markings.NewArgs()
	for key, value := range cfg.Raw() {
		args.With(key, value)
	}
	return args.Build(), nil
}

// policyFlags are the flags shared by commands that parse templates.
type policyFlags struct {
	configPath string
	optional   bool
	duplicates bool
	empty      bool
	rule       string
}

func (p *policyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.configPath, "config", "", "YAML or JSON policy file (optional_keys, duplicate_keys, empty_template, key_rule, args)")
	cmd.Flags().BoolVar(&p.optional, "optional", false, "Ignore arguments with no matching key")
	cmd.Flags().BoolVar(&p.duplicates, "duplicates", false, "Allow a key to appear more than once")
	cmd.Flags().BoolVar(&p.empty, "empty", false, "Accept templates without any keys")
	cmd.Flags().StringVar(&p.rule, "rule", "", "Key rule for strict parsing (ident, ascii, dotted, env)")
}

// resolve merges the config file with the flags. Flags can only turn options on.
func (p *policyFlags) resolve() (config.Config, markings.Opts, string, error) {
	cfg := config.New(nil)
	if p.configPath != "" {
		loaded, err := config.FromFile(p.configPath)
		if err != nil {
			return config.Config{}, markings.Opts{}, "", err
		}
		cfg = loaded
	}

	opts := cfg.Opts()
	opts.OptionalKeys = opts.OptionalKeys || p.optional
	opts.DuplicateKeys = opts.DuplicateKeys || p.duplicates
	opts.EmptyTemplate = opts.EmptyTemplate || p.empty

	rule := cfg.RuleName()
	if p.rule != "" {
		rule = p.rule
	}
	return cfg, opts, rule, nil
}

// argFlags collect argument values from a file and repeated --set flags.
type argFlags struct {
	sets     []string
	argsFile string
}

func (a *argFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&a.sets, "set", nil, "Argument as key=value (repeatable)")
	cmd.Flags().StringVar(&a.argsFile, "args-file", "", "YAML or JSON file with argument values")
}

// values merges config args, then the args file, then --set flags. Later sources win.
func (a *argFlags) values(cfg config.Config) (markings.Values, error) {
	merged := markings.Values{}
	for k, v := range cfg.Args(config.KeyArgs) {
		merged[k] = v
	}

	if a.argsFile != "" {
		fromFile, err := loadArgsFile(a.argsFile)
		if err != nil {
			return nil, err
		}
		for k, v := range fromFile {
			merged[k] = v
		}
	}

	fromSets, err := parseSets(a.sets)
	if err != nil {
		return nil, err
	}
	for k, v := range fromSets {
		merged[k] = v
	}
	return merged, nil
}
