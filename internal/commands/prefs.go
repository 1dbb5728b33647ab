package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sprout-dev/sprout/internal/datewindow"
)

func newPrefsCommand(opts *rootOptions) *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "View and change preferences",
	}
	prefsCmd.AddCommand(newPrefsShowCommand(opts))
	prefsCmd.AddCommand(newPrefsLimitCommand(opts))
	prefsCmd.AddCommand(newPrefsRequireCategoriesCommand(opts))
	prefsCmd.AddCommand(newPrefsSimulateDateCommand(opts))
	return prefsCmd
}

func newPrefsShowCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			prefs, err := e.store.Preferences(opts.userID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Daily limit:        %s%s\n", e.cfg.Display.CurrencySymbol, prefs.DailyLimit.StringFixed(2))
			fmt.Fprintf(out, "Require categories: %t\n", prefs.RequireCategories)
			fmt.Fprintf(out, "Rollover enabled:   %t\n", prefs.RolloverEnabled)
			if prefs.SimulatedDate != nil {
				fmt.Fprintf(out, "Simulated date:     %s\n", prefs.SimulatedDate.Format("2006-01-02"))
			}
			return nil
		},
	}
	return cmd
}

func newPrefsLimitCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "limit <amount>",
		Short: "Set the base daily limit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", args[0], err)
			}

			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			prefs, err := e.store.Preferences(opts.userID)
			if err != nil {
				return err
			}
			prefs.DailyLimit = limit
			if err := e.store.SavePreferences(prefs); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Daily limit set to %s%s\n",
				e.cfg.Display.CurrencySymbol, limit.StringFixed(2))
			return nil
		},
	}
	return cmd
}

func newPrefsRequireCategoriesCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "require-categories <on|off>",
		Short: "Require a category on every expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var required bool
			switch args[0] {
			case "on":
				required = true
			case "off":
				required = false
			default:
				return fmt.Errorf("expected on or off, got %q", args[0])
			}

			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			prefs, err := e.store.Preferences(opts.userID)
			if err != nil {
				return err
			}
			prefs.RequireCategories = required
			if err := e.store.SavePreferences(prefs); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Require categories: %t\n", required)
			return nil
		},
	}
	return cmd
}

func newPrefsSimulateDateCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate-date <YYYY-MM-DD|clear>",
		Short: "Override today's date for testing day transitions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			prefs, err := e.store.Preferences(opts.userID)
			if err != nil {
				return err
			}
			oldToday := datewindow.Resolve(prefs, 0, time.Now()).Date()

			if args[0] == "clear" {
				prefs.SimulatedDate = nil
				if err := e.store.SavePreferences(prefs); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Simulated date cleared")
				return nil
			}

			newDate, err := time.Parse("2006-01-02", args[0])
			if err != nil {
				return fmt.Errorf("parsing date %q: %w", args[0], err)
			}
			newDate = newDate.UTC()

			prefs.SimulatedDate = &newDate
			if err := e.store.SavePreferences(prefs); err != nil {
				return err
			}

			// Moving forward closes out each skipped day so the rollover
			// chain stays settled.
			if newDate.After(oldToday) {
				if err := e.svc.ProcessDayTransition(opts.userID, newDate.AddDate(0, 0, -1)); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Simulated date set to %s\n", newDate.Format("2006-01-02"))
			return nil
		},
	}
	return cmd
}
