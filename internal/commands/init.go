package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sprout-dev/sprout/internal/config"
	"github.com/sprout-dev/sprout/internal/model"
	"github.com/sprout-dev/sprout/internal/store"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new budget ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, opts.userID)
		},
	}

	return cmd
}

func runInit(cmd *cobra.Command, dir string, userID int64) error {
	dirs := []string{
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// A pre-existing sprout.yaml wins over the built-in defaults, so a
	// hand-edited config survives re-running init.
	configPath := filepath.Join(dir, "sprout.yaml")
	cfg, err := config.Load(configPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.Default(dir)
		if err := config.Save(configPath, cfg); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	limit, err := decimal.NewFromString(cfg.Defaults.DailyLimit)
	if err != nil {
		return fmt.Errorf("parsing default daily limit %q: %w", cfg.Defaults.DailyLimit, err)
	}

	// Opening creates the schema; InitUser seeds default categories and
	// the configured preferences.
	st, err := store.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	defer func() { _ = st.Close() }()

	prefs := model.Preferences{
		UserID:            userID,
		DailyLimit:        limit,
		RequireCategories: cfg.Defaults.RequireCategories,
		RolloverEnabled:   cfg.Defaults.RolloverEnabled,
	}
	if err := st.InitUser(userID, prefs); err != nil {
		return fmt.Errorf("seeding user: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized budget ledger at %s\n", dir)
	return nil
}
