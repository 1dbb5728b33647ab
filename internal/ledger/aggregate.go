// Package ledger aggregates expense records over day windows. All sums use
// exact decimal arithmetic; rounding to cents happens only at presentation
// boundaries, never during accumulation.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/sprout-dev/sprout/internal/datewindow"
	"github.com/sprout-dev/sprout/internal/model"
)

// DayTotals is the aggregate spend within one window. ByCategory keys are
// category refs; the empty key collects uncategorized expenses.
type DayTotals struct {
	Total      decimal.Decimal
	ByCategory map[string]decimal.Decimal
	Count      int
}

// Aggregate filters expenses to the window and sums them overall and per
// category.
func Aggregate(expenses []model.Expense, w datewindow.Window) DayTotals {
	totals := DayTotals{
		Total:      decimal.Zero,
		ByCategory: make(map[string]decimal.Decimal),
	}

	for _, e := range expenses {
		if !w.Contains(e.Timestamp) {
			continue
		}
		totals.Total = totals.Total.Add(e.Amount)
		totals.ByCategory[e.CategoryRef] = totals.ByCategory[e.CategoryRef].Add(e.Amount)
		totals.Count++
	}
	return totals
}

// Spent returns the amount aggregated under a category ref, zero if none.
func (t DayTotals) Spent(categoryRef string) decimal.Decimal {
	if amt, ok := t.ByCategory[categoryRef]; ok {
		return amt
	}
	return decimal.Zero
}

// DailyTotals buckets expenses into per-day totals for each window in order.
// Days without expenses get a zero entry.
func DailyTotals(expenses []model.Expense, windows []datewindow.Window) []DayTotals {
	out := make([]DayTotals, len(windows))
	for i, w := range windows {
		out[i] = Aggregate(expenses, w)
	}
	return out
}
