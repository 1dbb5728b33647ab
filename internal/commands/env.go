package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sprout-dev/sprout/internal/config"
	"github.com/sprout-dev/sprout/internal/rollover"
	"github.com/sprout-dev/sprout/internal/store"
	"github.com/sprout-dev/sprout/internal/summary"
)

// env bundles the opened store and services for one command invocation.
type env struct {
	cfg   *config.Config
	store *store.Store
	svc   *summary.Service
}

// openEnv loads the config and opens the database. Callers must close().
func openEnv(opts *rootOptions) (*env, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s (run 'sprout init' first?): %w", opts.configPath, err)
	}

	st, err := store.Open(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	acct := rollover.NewAccountant(st.Rollovers(), st)
	return &env{
		cfg:   cfg,
		store: st,
		svc:   summary.NewService(st, acct, cfg.Storage.DataDir),
	}, nil
}

func (e *env) close() {
	_ = e.store.Close()
}

// resolveDays validates a --days flag value, substituting the configured
// default when the flag was not set. configDays of 0 means no configured
// default exists for the command.
func resolveDays(cmd *cobra.Command, flagDays, configDays int) (int, error) {
	if !cmd.Flags().Changed("days") && configDays > 0 {
		flagDays = configDays
	}
	if flagDays < 1 {
		return 0, fmt.Errorf("--days must be at least 1, got %d", flagDays)
	}
	return flagDays, nil
}
