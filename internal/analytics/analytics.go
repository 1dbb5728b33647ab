// Package analytics produces time-bucketed reporting series over trailing
// windows: daily totals, category breakdowns, and the weekly spending
// heatmap. All results are deterministic for a given input set.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sprout-dev/sprout/internal/datewindow"
	"github.com/sprout-dev/sprout/internal/ledger"
	"github.com/sprout-dev/sprout/internal/model"
)

// uncategorizedColor is the fallback slice color for expenses without a
// (surviving) category.
const uncategorizedColor = "#6c757d"

// DailyPoint is one calendar day in a series, zero-filled when nothing was
// spent.
type DailyPoint struct {
	Date   time.Time
	Amount decimal.Decimal
	Count  int
}

// SeriesSummary aggregates a daily series against the user's base limit.
type SeriesSummary struct {
	TotalSpent      decimal.Decimal
	AverageDaily    decimal.Decimal
	DaysOverBudget  int
	DaysUnderBudget int
	DaysNoSpending  int
}

// DailySeries returns one point per day for the N trailing days ending at
// today, oldest first. A non-positive day count yields an empty series.
func DailySeries(expenses []model.Expense, today datewindow.Window, days int) []DailyPoint {
	if days < 0 {
		days = 0
	}
	points := make([]DailyPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		w := today.Shift(-i)
		totals := ledger.Aggregate(expenses, w)
		points = append(points, DailyPoint{
			Date:   w.Date(),
			Amount: totals.Total,
			Count:  totals.Count,
		})
	}
	return points
}

// Summarize reduces a daily series against the daily limit.
func Summarize(points []DailyPoint, dailyLimit decimal.Decimal) SeriesSummary {
	var s SeriesSummary
	s.TotalSpent = decimal.Zero
	for _, p := range points {
		s.TotalSpent = s.TotalSpent.Add(p.Amount)
		switch {
		case p.Amount.IsZero():
			s.DaysNoSpending++
		case p.Amount.GreaterThan(dailyLimit):
			s.DaysOverBudget++
		default:
			s.DaysUnderBudget++
		}
	}
	if len(points) > 0 {
		s.AverageDaily = s.TotalSpent.Div(decimal.NewFromInt(int64(len(points)))).Round(2)
	} else {
		s.AverageDaily = decimal.Zero
	}
	return s
}

// CategorySlice is one category's share of spending in a window.
type CategorySlice struct {
	CategoryRef string
	Name        string
	Icon        string
	Color       string
	Amount      decimal.Decimal
	Count       int
	Percentage  decimal.Decimal // of total spend, one decimal place
}

// CategoryBreakdown groups the trailing N days of spending by category,
// sorted by amount descending. Percentages sum to 100 up to rounding.
// Expenses whose category no longer exists fall into an "Uncategorized"
// slice rather than being dropped.
func CategoryBreakdown(expenses []model.Expense, categories []model.Category, today datewindow.Window, days int) []CategorySlice {
	start := today.Shift(-(days - 1)).Start
	window := datewindow.Window{Start: start, End: today.End}

	byRef := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		byRef[c.Ref()] = c
	}

	slices := make(map[string]*CategorySlice)
	total := decimal.Zero
	for _, e := range expenses {
		if !window.Contains(e.Timestamp) {
			continue
		}

		key := e.CategoryRef
		if _, known := byRef[key]; !known {
			key = ""
		}
		sl, ok := slices[key]
		if !ok {
			sl = &CategorySlice{CategoryRef: key, Amount: decimal.Zero}
			if cat, known := byRef[key]; known {
				sl.Name = cat.Name
				sl.Icon = cat.Icon
				sl.Color = cat.Color
			} else {
				sl.Name = "Uncategorized"
				sl.Color = uncategorizedColor
			}
			slices[key] = sl
		}
		sl.Amount = sl.Amount.Add(e.Amount)
		sl.Count++
		total = total.Add(e.Amount)
	}

	out := make([]CategorySlice, 0, len(slices))
	for _, sl := range slices {
		if total.IsPositive() {
			sl.Percentage = sl.Amount.Div(total).Mul(decimal.NewFromInt(100)).Round(1)
		} else {
			sl.Percentage = decimal.Zero
		}
		out = append(out, *sl)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Name < out[j].Name
	})
	return out
}
