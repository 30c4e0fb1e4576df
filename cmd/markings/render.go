package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/markings/pkg/markings/render"
)

func newRenderCmd() *cobra.Command {
	var (
		policy policyFlags
		values argFlags
		exact  bool
	)

	cmd := &cobra.Command{
		Use:   "render <template|->",
		Short: "Substitute argument values into a template",
		Long: `Parses the template and replaces each ${key} with its argument value.

Arguments come from the "args" mapping of --config, then --args-file, then
--set flags; later sources win. Keys without a value are left in place
unless --exact is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := loggerFor(cmd)
			if err != nil {
				return err
			}

			text, err := readTemplate(cmd, args[0])
			if err != nil {
				return err
			}

			cfg, opts, rule, err := policy.resolve()
			if err != nil {
				return err
			}
			vals, err := values.values(cfg)
			if err != nil {
				return err
			}

			r := render.New(
				render.WithOpts(opts),
				render.WithRule(rule),
				render.WithLogger(logger),
			)

			var out string
			if exact {
				out, err = r.RenderExact(cmd.Context(), text, vals)
			} else {
				out, err = r.Render(cmd.Context(), text, vals)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	policy.register(cmd)
	values.register(cmd)
	cmd.Flags().BoolVar(&exact, "exact", false, "Fail when any key has no argument")
	return cmd
}
