package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/markings/pkg/markings/catalog"
	"github.com/randalmurphal/markings/pkg/markings/config"
	"github.com/randalmurphal/markings/pkg/markings/render"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage named templates",
		Long:  `Store, inspect, render and remove named templates kept in a SQLite database.`,
	}

	cmd.PersistentFlags().String("db", "markings.db", "Path to the catalog database")

	cmd.AddCommand(
		newCatalogPutCmd(),
		newCatalogSeedCmd(),
		newCatalogGetCmd(),
		newCatalogListCmd(),
		newCatalogDeleteCmd(),
		newCatalogRenderCmd(),
	)
	return cmd
}

// openCatalog opens the catalog named by --db with a logger from --log-level.
func openCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	logger, err := loggerFor(cmd)
	if err != nil {
		return nil, err
	}

	path, _ := cmd.Flags().GetString("db")
	store, err := catalog.NewSQLiteStore(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	return catalog.New(store, catalog.WithLogger(logger)), nil
}

func newCatalogPutCmd() *cobra.Command {
	var policy policyFlags

	cmd := &cobra.Command{
		Use:   "put <name> <template|->",
		Short: "Validate a template and store it under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readTemplate(cmd, args[1])
			if err != nil {
				return err
			}
			_, opts, rule, err := policy.resolve()
			if err != nil {
				return err
			}

			cat, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer cat.Close()

			entry, err := cat.Put(cmd.Context(), args[0], text, opts, rule)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %s revision %d\n", entry.Name, entry.Revision)
			return nil
		},
	}

	policy.register(cmd)
	return cmd
}

func newCatalogSeedCmd() *cobra.Command {
	var policy policyFlags

	cmd := &cobra.Command{
		Use:   "seed --config <file>",
		Short: "Store every template listed under \"templates\" in a config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if policy.configPath == "" {
				return fmt.Errorf("seed requires --config")
			}
			cfg, opts, rule, err := policy.resolve()
			if err != nil {
				return err
			}
			sources, err := cfg.Templates(config.KeyTemplates)
			if err != nil {
				return err
			}

			cat, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer cat.Close()

			if err := cat.Seed(cmd.Context(), sources, opts, rule); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "stored %d templates\n", len(sources))
			return nil
		},
	}

	policy.register(cmd)
	return cmd
}

func newCatalogGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Print the text of a stored template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer cat.Close()

			entry, err := cat.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), entry.Text)
			return nil
		},
	}
}

func newCatalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer cat.Close()

			entries, err := cat.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates stored.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tREVISION\tRULE\tID")
			for _, e := range entries {
				rule := e.Rule
				if rule == "" {
					rule = "-"
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", e.Name, e.Revision, rule, e.ID)
			}
			return w.Flush()
		},
	}
}

func newCatalogDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Remove a stored template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer cat.Close()

			return cat.Delete(cmd.Context(), args[0])
		},
	}
}

func newCatalogRenderCmd() *cobra.Command {
	var (
		values     argFlags
		configPath string
		exact      bool
	)

	cmd := &cobra.Command{
		Use:   "render <name>",
		Short: "Substitute argument values into a stored template",
		Long: `Renders a stored template under the policy it was stored with.
Arguments come from the "args" mapping of --config, then --args-file, then
--set flags.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.New(nil)
			if configPath != "" {
				loaded, err := config.FromFile(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			vals, err := values.values(cfg)
			if err != nil {
				return err
			}

			cat, err := openCatalog(cmd)
			if err != nil {
				return err
			}
			defer cat.Close()

			logger, err := loggerFor(cmd)
			if err != nil {
				return err
			}
			r := render.New(render.WithCatalog(cat), render.WithLogger(logger))

			var out string
			if exact {
				out, err = r.RenderNamedExact(cmd.Context(), args[0], vals)
			} else {
				out, err = r.RenderNamed(cmd.Context(), args[0], vals)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	values.register(cmd)
	cmd.Flags().StringVar(&configPath, "config", "", "YAML or JSON file whose \"args\" mapping supplies values")
	cmd.Flags().BoolVar(&exact, "exact", false, "Fail when any key has no argument")
	return cmd
}
