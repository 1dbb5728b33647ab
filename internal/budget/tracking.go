package budget

import (
	"github.com/shopspring/decimal"

	"github.com/sprout-dev/sprout/internal/ledger"
	"github.com/sprout-dev/sprout/internal/model"
)

// TrackingSummary is the roll-up across all sub-budgeted categories for one
// day. SpentUnbudgeted counts spending in categories without a sub-budget
// (and uncategorized spending), which the per-category view cannot show.
type TrackingSummary struct {
	TotalBudget     decimal.Decimal
	SpentBudgeted   decimal.Decimal
	SpentUnbudgeted decimal.Decimal
	Remaining       decimal.Decimal
	PercentUsed     decimal.Decimal
	OverBudgetCount int
}

// TrackBudgets reduces the day's totals against the sub-budgeted categories.
func TrackBudgets(totals ledger.DayTotals, categories []model.Category) TrackingSummary {
	t := TrackingSummary{
		TotalBudget:     decimal.Zero,
		SpentBudgeted:   decimal.Zero,
		SpentUnbudgeted: decimal.Zero,
	}

	budgeted := make(map[string]bool, len(categories))
	for _, cat := range categories {
		if !cat.HasBudget() {
			continue
		}
		ref := cat.Ref()
		budgeted[ref] = true
		spent := totals.Spent(ref)
		t.TotalBudget = t.TotalBudget.Add(cat.DailyBudget)
		t.SpentBudgeted = t.SpentBudgeted.Add(spent)
		if spent.GreaterThan(cat.DailyBudget) {
			t.OverBudgetCount++
		}
	}

	for ref, amt := range totals.ByCategory {
		if !budgeted[ref] {
			t.SpentUnbudgeted = t.SpentUnbudgeted.Add(amt)
		}
	}

	t.Remaining = t.TotalBudget.Sub(t.SpentBudgeted)
	t.PercentUsed = percentOf(t.SpentBudgeted, t.TotalBudget)
	return t
}
