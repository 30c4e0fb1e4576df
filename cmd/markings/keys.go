package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/markings/pkg/markings"
	"github.com/randalmurphal/markings/pkg/markings/rules"
)

func newKeysCmd() *cobra.Command {
	var rule string

	cmd := &cobra.Command{
		Use:   "keys <template|->",
		Short: "Print the keys of a template, one per line",
		Long: `Scans the template and prints every key in order of appearance,
including repeats. With --rule, keys are trimmed and checked against the
named key rule.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readTemplate(cmd, args[0])
			if err != nil {
				return err
			}

			var keys []string
			if rule == "" {
				keys, err = markings.FindKeys(text)
			} else {
				var keyRule markings.KeyRule
				keyRule, err = rules.Default().Lookup(rule)
				if err == nil {
					keys, err = markings.FindKeysStrict(text, keyRule)
				}
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, key := range keys {
				fmt.Fprintln(out, key)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rule, "rule", "", "Key rule for strict scanning (ident, ascii, dotted, env)")
	return cmd
}
