package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newAnalyticsCommand(opts *rootOptions) *cobra.Command {
	analyticsCmd := &cobra.Command{
		Use:   "analytics",
		Short: "Spending analytics",
	}
	analyticsCmd.AddCommand(newAnalyticsDailyCommand(opts))
	analyticsCmd.AddCommand(newAnalyticsCategoriesCommand(opts))
	analyticsCmd.AddCommand(newAnalyticsHeatmapCommand(opts))
	return analyticsCmd
}

func newAnalyticsDailyCommand(opts *rootOptions) *cobra.Command {
	var days, dayOffset int

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Daily spending series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			days, err = resolveDays(cmd, days, e.cfg.Display.HistoryDays)
			if err != nil {
				return err
			}

			points, sum, err := e.svc.DailyAnalytics(opts.userID, dayOffset, days, time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			sym := e.cfg.Display.CurrencySymbol
			for _, p := range points {
				fmt.Fprintf(out, "%s  %s%s  (%d)\n",
					p.Date.Format("2006-01-02"), sym, p.Amount.StringFixed(2), p.Count)
			}
			fmt.Fprintf(out, "Total: %s%s  Avg/day: %s%s\n",
				sym, sum.TotalSpent.StringFixed(2), sym, sum.AverageDaily.StringFixed(2))
			fmt.Fprintf(out, "Over budget: %d days  Under: %d  No spending: %d\n",
				sum.DaysOverBudget, sum.DaysUnderBudget, sum.DaysNoSpending)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "number of trailing days")
	cmd.Flags().IntVar(&dayOffset, "day-offset", 0, "shift the reference day")

	return cmd
}

func newAnalyticsCategoriesCommand(opts *rootOptions) *cobra.Command {
	var days, dayOffset int

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Spending breakdown by category",
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

			slices, err := e.svc.CategoryAnalytics(opts.userID, dayOffset, days, time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			sym := e.cfg.Display.CurrencySymbol
			if len(slices) == 0 {
				fmt.Fprintln(out, "No spending in period")
				return nil
			}
			for _, s := range slices {
				fmt.Fprintf(out, "%s %s\t%s%s\t%s%%\n",
					s.Icon, s.Name, sym, s.Amount.StringFixed(2), s.Percentage.String())
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "number of trailing days")
	cmd.Flags().IntVar(&dayOffset, "day-offset", 0, "shift the reference day")

	return cmd
}

func newAnalyticsHeatmapCommand(opts *rootOptions) *cobra.Command {
	var days, dayOffset int

	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Weekly spending heatmap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			days, err = resolveDays(cmd, days, e.cfg.Display.HeatmapDays)
			if err != nil {
				return err
			}

			grid, err := e.svc.Heatmap(opts.userID, dayOffset, days, time.Now())
			if err != nil {
				return err
			}

			// Levels 0-4 render as a density ramp.
			ramp := []string{"·", "░", "▒", "▓", "█"}
			out := cmd.OutOrStdout()
			for _, week := range grid {
				var row strings.Builder
				for _, cell := range week {
					row.WriteString(ramp[cell.ColorLevel])
					row.WriteByte(' ')
				}
				fmt.Fprintf(out, "%s  (week of %s)\n", row.String(), week[0].Date.Format("Jan 2"))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 28, "number of trailing days")
	cmd.Flags().IntVar(&dayOffset, "day-offset", 0, "shift the reference day")

	return cmd
}
