package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

// DaySpend is one day of spending history for the projection lookback.
type DaySpend struct {
	Date  time.Time
	Spent decimal.Decimal
}

// DefaultHorizonDays is the forward projection window shown to the user.
const DefaultHorizonDays = 30

// Project extrapolates the trailing average daily spend against today's
// effective budget over horizonDays. Empty history means an average of zero,
// which yields the full-budget projection rather than an error.
func Project(history []DaySpend, effectiveBudget decimal.Decimal, horizonDays int) decimal.Decimal {
	avg := AverageDailySpend(history)
	return effectiveBudget.Sub(avg).Mul(decimal.NewFromInt(int64(horizonDays)))
}

// AverageDailySpend returns the mean spend across the history entries, zero
// for empty history. Days with no spending count as zeros, so the history
// slice should be zero-filled for the full lookback window.
func AverageDailySpend(history []DaySpend) decimal.Decimal {
	if len(history) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, day := range history {
		sum = sum.Add(day.Spent)
	}
	return sum.Div(decimal.NewFromInt(int64(len(history))))
}
