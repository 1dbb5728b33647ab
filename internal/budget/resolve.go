// Package budget combines the base daily limit, rollover carry-in, and
// category sub-budgets into the effective budget view for a day, and derives
// the projection and plant-health signals from it.
package budget

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sprout-dev/sprout/internal/ledger"
	"github.com/sprout-dev/sprout/internal/model"
)

// Status is the resolved budget for one day. Balance may be negative.
type Status struct {
	DailyBudget     decimal.Decimal
	RolloverAmount  decimal.Decimal
	EffectiveBudget decimal.Decimal
	TotalSpent      decimal.Decimal
	Balance         decimal.Decimal
	Categories      []model.CategoryBudgetStatus
}

// Resolve computes the day's budget status from the user's preferences, the
// carry-in amount (zero when rollover is disabled), the day's aggregated
// totals, and the category list.
func Resolve(prefs model.Preferences, carryIn decimal.Decimal, totals ledger.DayTotals, categories []model.Category) Status {
	effective := prefs.DailyLimit.Add(carryIn)

	status := Status{
		DailyBudget:     prefs.DailyLimit,
		RolloverAmount:  carryIn,
		EffectiveBudget: effective,
		TotalSpent:      totals.Total,
		Balance:         effective.Sub(totals.Total),
	}

	for _, cat := range categories {
		if !cat.HasBudget() {
			continue
		}
		ref := cat.Ref()
		spent := totals.Spent(ref)
		status.Categories = append(status.Categories, model.CategoryBudgetStatus{
			CategoryRef: ref,
			Name:        cat.Name,
			Icon:        cat.Icon,
			Color:       cat.Color,
			DailyBudget: cat.DailyBudget,
			Spent:       spent,
			Remaining:   cat.DailyBudget.Sub(spent),
			PercentUsed: percentOf(spent, cat.DailyBudget),
			OverBudget:  spent.GreaterThan(cat.DailyBudget),
		})
	}

	// Stable presentation order: most spent first, then by name.
	sort.SliceStable(status.Categories, func(i, j int) bool {
		a, b := status.Categories[i], status.Categories[j]
		if !a.Spent.Equal(b.Spent) {
			return a.Spent.GreaterThan(b.Spent)
		}
		return a.Name < b.Name
	})

	return status
}

// percentOf returns spent/budget as a percentage rounded to one decimal,
// zero when the budget is zero.
func percentOf(spent, budget decimal.Decimal) decimal.Decimal {
	if !budget.IsPositive() {
		return decimal.Zero
	}
	return spent.Div(budget).Mul(decimal.NewFromInt(100)).Round(1)
}
