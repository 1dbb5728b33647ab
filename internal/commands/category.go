package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sprout-dev/sprout/internal/category"
	"github.com/sprout-dev/sprout/internal/model"
)

func newCategoryCommand(opts *rootOptions) *cobra.Command {
	categoryCmd := &cobra.Command{
		Use:   "category",
		Short: "Manage spending categories",
	}
	categoryCmd.AddCommand(newCategoryListCommand(opts))
	categoryCmd.AddCommand(newCategoryAddCommand(opts))
	categoryCmd.AddCommand(newCategoryBudgetCommand(opts))
	categoryCmd.AddCommand(newCategoryDeleteCommand(opts))
	categoryCmd.AddCommand(newCategoryTrackingCommand(opts))
	return categoryCmd
}

func newCategoryTrackingCommand(opts *rootOptions) *cobra.Command {
	var dayOffset int

	cmd := &cobra.Command{
		Use:   "tracking",
		Short: "Roll-up across sub-budgeted categories for the day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			sum, err := e.svc.BudgetTracking(opts.userID, dayOffset, time.Now())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			sym := e.cfg.Display.CurrencySymbol
			fmt.Fprintf(out, "Budgeted:   %s%s of %s%s (%s%%)\n",
				sym, sum.SpentBudgeted.StringFixed(2),
				sym, sum.TotalBudget.StringFixed(2),
				sum.PercentUsed.String())
			fmt.Fprintf(out, "Remaining:  %s%s\n", sym, sum.Remaining.StringFixed(2))
			fmt.Fprintf(out, "Unbudgeted: %s%s\n", sym, sum.SpentUnbudgeted.StringFixed(2))
			if sum.OverBudgetCount > 0 {
				fmt.Fprintf(out, "%d categories over budget\n", sum.OverBudgetCount)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&dayOffset, "day-offset", 0, "shift the reference day")

	return cmd
}

func newCategoryListCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			cats, err := e.store.Categories(opts.userID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, c := range category.NewService(cats).All() {
				budget := "-"
				if c.HasBudget() {
					budget = e.cfg.Display.CurrencySymbol + c.DailyBudget.StringFixed(2)
				}
				fmt.Fprintf(out, "%s\t%s %s\t%s/day\n", c.Ref(), c.Icon, c.Name, budget)
			}
			return nil
		},
	}
	return cmd
}

func newCategoryAddCommand(opts *rootOptions) *cobra.Command {
	var name, icon, color string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a custom category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			newID, err := e.store.AddCategory(model.Category{
				UserID: opts.userID,
				Scope:  model.ScopeCustom,
				Name:   name,
				Icon:   icon,
				Color:  color,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added category custom_%d: %s\n", newID, name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "category name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&icon, "icon", "📝", "emoji icon")
	cmd.Flags().StringVar(&color, "color", "#6c757d", "display color")

	return cmd
}

func newCategoryBudgetCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget <ref> <amount>",
		Short: "Set a category's daily sub-budget (0 clears it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", args[1], err)
			}

			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.store.SetCategoryBudget(opts.userID, args[0], amount); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Budget for %s set to %s%s\n",
				args[0], e.cfg.Display.CurrencySymbol, amount.StringFixed(2))
			return nil
		},
	}
	return cmd
}

func newCategoryDeleteCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <ref>",
		Short: "Delete a custom category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.store.DeleteCategory(opts.userID, args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %s\n", args[0])
			return nil
		},
	}
	return cmd
}
