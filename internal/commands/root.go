// Package commands wires the CLI surface. Each subcommand opens the store
// lazily so commands like help and version never touch the database.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sprout-dev/sprout/internal/buildinfo"
)

// rootOptions carries the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	userID     int64
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "sprout",
		Short:   "Daily budget ledger with rollover and spending projections",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "sprout.yaml", "path to config file")
	rootCmd.PersistentFlags().Int64Var(&opts.userID, "user", 1, "user id")

	rootCmd.AddCommand(newInitCommand(opts))
	rootCmd.AddCommand(newExpenseCommand(opts))
	rootCmd.AddCommand(newSummaryCommand(opts))
	rootCmd.AddCommand(newAnalyticsCommand(opts))
	rootCmd.AddCommand(newRolloverCommand(opts))
	rootCmd.AddCommand(newPrefsCommand(opts))
	rootCmd.AddCommand(newCategoryCommand(opts))
	rootCmd.AddCommand(newImportCommand(opts))

	return rootCmd
}
