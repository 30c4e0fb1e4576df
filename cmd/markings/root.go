package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "markings",
		Short: "markings scans and renders ${key} templates",
		Long: `markings finds ${key} markers in text and substitutes values for them.

Template text is taken from the first argument, or read from stdin when the
argument is "-". Named templates can be kept in a SQLite-backed catalog.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().String("log-level", "warn", "Log level for stderr output (debug, info, warn, error)")

	root.AddCommand(
		newKeysCmd(),
		newRenderCmd(),
		newCatalogCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// newLogger builds the stderr logger used by every command.
// The "error" attribute is shortened to "err".
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	})
	return slog.New(handler), nil
}

// loggerFor builds the logger from the command's --log-level flag.
func loggerFor(cmd *cobra.Command) (*slog.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	return newLogger(cmd.ErrOrStderr(), level)
}
