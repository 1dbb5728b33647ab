package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sprout-dev/sprout/internal/model"
)

func newExpenseCommand(opts *rootOptions) *cobra.Command {
	expenseCmd := &cobra.Command{
		Use:   "expense",
		Short: "Record and manage expenses",
	}
	expenseCmd.AddCommand(newExpenseAddCommand(opts))
	expenseCmd.AddCommand(newExpenseEditCommand(opts))
	expenseCmd.AddCommand(newExpenseDeleteCommand(opts))
	expenseCmd.AddCommand(newExpenseListCommand(opts))
	return expenseCmd
}

func newExpenseAddCommand(opts *rootOptions) *cobra.Command {
	var amount, description, category, date string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amount, err)
			}

			ts, err := expenseTimestamp(e, opts.userID, date)
			if err != nil {
				return err
			}

			newID, err := e.svc.RecordExpense(model.Expense{
				UserID:      opts.userID,
				Amount:      amt,
				Description: description,
				CategoryRef: category,
				Timestamp:   ts,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded expense %d: %s%s %s\n",
				newID, e.cfg.Display.CurrencySymbol, amt.StringFixed(2), description)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "expense amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&description, "desc", "", "description")
	cmd.Flags().StringVar(&category, "category", "", "category reference, e.g. default_1")
	cmd.Flags().StringVar(&date, "date", "", "date (YYYY-MM-DD), defaults to today")

	return cmd
}

func newExpenseEditCommand(opts *rootOptions) *cobra.Command {
	var amount, description, category, date string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expenseID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parsing expense id %q: %w", args[0], err)
			}

			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			existing, err := e.store.GetExpense(opts.userID, expenseID)
			if err != nil {
				return err
			}

			// Unset flags keep the existing values.
			if amount != "" {
				existing.Amount, err = decimal.NewFromString(amount)
				if err != nil {
					return fmt.Errorf("parsing amount %q: %w", amount, err)
				}
			}
			if cmd.Flags().Changed("desc") {
				existing.Description = description
			}
			if cmd.Flags().Changed("category") {
				existing.CategoryRef = category
			}
			if date != "" {
				day, err := time.Parse("2006-01-02", date)
				if err != nil {
					return fmt.Errorf("parsing date %q: %w", date, err)
				}
				existing.Timestamp = day
			}

			if err := e.svc.AmendExpense(existing); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated expense %d\n", expenseID)
			return nil
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "new amount")
	cmd.Flags().StringVar(&description, "desc", "", "new description")
	cmd.Flags().StringVar(&category, "category", "", "new category reference")
	cmd.Flags().StringVar(&date, "date", "", "new date (YYYY-MM-DD)")

	return cmd
}

func newExpenseDeleteCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expenseID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("parsing expense id %q: %w", args[0], err)
			}

			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.svc.RemoveExpense(opts.userID, expenseID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted expense %d\n", expenseID)
			return nil
		},
	}
	return cmd
}

func newExpenseListCommand(opts *rootOptions) *cobra.Command {
	var days, dayOffset int
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent expenses",
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

			expenses, err := e.svc.History(opts.userID, dayOffset, days, category, time.Now())
			if err != nil {
				return err
			}

			if len(expenses) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No expenses in period")
				return nil
			}

			// Newest first, grouped by calendar day.
			out := cmd.OutOrStdout()
			var currentDay time.Time
			for _, exp := range expenses {
				if day := exp.Date(); !day.Equal(currentDay) {
					currentDay = day
					fmt.Fprintf(out, "%s\n", day.Format("Mon Jan 2 2006"))
				}
				fmt.Fprintf(out, "  %d\t%s\t%s%s\t%s\t%s\n",
					exp.ID,
					exp.Timestamp.UTC().Format("15:04"),
					e.cfg.Display.CurrencySymbol, exp.Amount.StringFixed(2),
					exp.CategoryRef,
					exp.Description)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "number of trailing days")
	cmd.Flags().IntVar(&dayOffset, "day-offset", 0, "shift the reference day, e.g. -1 for yesterday")
	cmd.Flags().StringVar(&category, "category", "", "filter by category reference")

	return cmd
}

// expenseTimestamp resolves the timestamp for a new expense. An explicit
// --date lands at midnight of that day; otherwise the simulated date (if
// set) or the real clock applies.
func expenseTimestamp(e *env, userID int64, date string) (time.Time, error) {
	if date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return time.Time{}, fmt.Errorf("parsing date %q: %w", date, err)
		}
		return day.UTC(), nil
	}

	prefs, err := e.store.Preferences(userID)
	if err != nil {
		return time.Time{}, fmt.Errorf("loading preferences: %w", err)
	}

	now := time.Now().UTC()
	if prefs.SimulatedDate != nil {
		d := prefs.SimulatedDate.UTC()
		return time.Date(d.Year(), d.Month(), d.Day(),
			now.Hour(), now.Minute(), now.Second(), 0, time.UTC), nil
	}
	return now, nil
}
