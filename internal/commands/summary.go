package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newSummaryCommand(opts *rootOptions) *cobra.Command {
	var dayOffset int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the day's budget summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			day, err := e.svc.ForDay(opts.userID, dayOffset, time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			sym := e.cfg.Display.CurrencySymbol

			fmt.Fprintf(out, "%s  %s (%s)\n", day.PlantEmoji, day.Date.Format("Mon Jan 2 2006"), day.PlantState)
			if day.Rollover != nil {
				fmt.Fprintf(out, "Budget: %s%s (%s%s base + %s%s rollover)\n",
					sym, day.Rollover.Effective.StringFixed(2),
					sym, day.Rollover.Base.StringFixed(2),
					sym, day.Rollover.CarryIn.StringFixed(2))
			} else {
				fmt.Fprintf(out, "Budget: %s%s\n", sym, day.EffectiveBudget.StringFixed(2))
			}
			fmt.Fprintf(out, "Spent:  %s%s across %d expenses\n", sym, day.TotalSpent.StringFixed(2), day.ExpenseCount)
			fmt.Fprintf(out, "Left:   %s%s\n", sym, day.Balance.StringFixed(2))
			fmt.Fprintf(out, "30-day projection: %s%s\n", sym, day.Projection30.StringFixed(2))

			for _, cb := range day.CategoryBudgets {
				marker := ""
				if cb.OverBudget {
					marker = "  OVER"
				}
				fmt.Fprintf(out, "  %s %s: %s%s / %s%s (%s%%)%s\n",
					cb.Icon, cb.Name,
					sym, cb.Spent.StringFixed(2),
					sym, cb.DailyBudget.StringFixed(2),
					cb.PercentUsed.String(), marker)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&dayOffset, "day-offset", 0, "shift the reference day, e.g. -1 for yesterday")

	return cmd
}
