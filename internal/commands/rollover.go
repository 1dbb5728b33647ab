package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sprout-dev/sprout/internal/datewindow"
)

func newRolloverCommand(opts *rootOptions) *cobra.Command {
	rolloverCmd := &cobra.Command{
		Use:   "rollover",
		Short: "Rollover budget accounting",
	}
	rolloverCmd.AddCommand(newRolloverEnableCommand(opts, true))
	rolloverCmd.AddCommand(newRolloverEnableCommand(opts, false))
	rolloverCmd.AddCommand(newRolloverHistoryCommand(opts))
	return rolloverCmd
}

func newRolloverEnableCommand(opts *rootOptions, enable bool) *cobra.Command {
	use, short := "enable", "Enable rollover of unspent budget"
	if !enable {
		use, short = "disable", "Disable rollover"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
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
			prefs.RolloverEnabled = enable
			if err := e.store.SavePreferences(prefs); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Rollover %sd\n", use)
			return nil
		},
	}
	return cmd
}

func newRolloverHistoryCommand(opts *rootOptions) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent rollover records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			days, err = resolveDays(cmd, days, 0)
			if err != nil {
				return err
			}

			prefs, err := e.store.Preferences(opts.userID)
			if err != nil {
				return err
			}
			today := datewindow.Resolve(prefs, 0, time.Now())

			recs, err := e.store.Rollovers().History(opts.userID, days, today.Date())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			sym := e.cfg.Display.CurrencySymbol
			if len(recs) == 0 {
				fmt.Fprintln(out, "No rollover records")
				return nil
			}
			for _, rec := range recs {
				fmt.Fprintf(out, "%s  limit %s%s  spent %s%s  carried in %s%s\n",
					rec.Date.Format("2006-01-02"),
					sym, rec.BaseDailyLimit.StringFixed(2),
					sym, rec.AmountSpent.StringFixed(2),
					sym, rec.RolloverAmount.StringFixed(2))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "number of trailing days")

	return cmd
}
