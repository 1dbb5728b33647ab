package budget

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func history(amounts ...string) []DaySpend {
	base := date(2025, 6, 9)
	out := make([]DaySpend, len(amounts))
	for i, a := range amounts {
		out[i] = DaySpend{Date: base.AddDate(0, 0, i), Spent: dec(a)}
	}
	return out
}

func TestProject_EmptyHistory(t *testing.T) {
	// No history: average 0, projection is the full budget over 30 days.
	got := Project(nil, dec("30.00"), DefaultHorizonDays)
	assert.True(t, got.Equal(dec("900.00")), "got %s", got)
}

func TestProject_TrailingAverage(t *testing.T) {
	// 7 days averaging 10/day against a 30 budget: (30-10)*30 = 600.
	h := history("10", "10", "10", "10", "10", "10", "10")
	got := Project(h, dec("30.00"), DefaultHorizonDays)
	assert.True(t, got.Equal(dec("600.00")), "got %s", got)
}

func TestProject_OverspendingGoesNegative(t *testing.T) {
	h := history("40", "40", "40", "40", "40", "40", "40")
	got := Project(h, dec("30.00"), DefaultHorizonDays)
	assert.True(t, got.Equal(dec("-300.00")), "got %s", got)
}

func TestAverageDailySpend_CountsZeroDays(t *testing.T) {
	// Zero-filled days pull the average down: 70 over 7 days, not over 1.
	h := history("70", "0", "0", "0", "0", "0", "0")
	avg := AverageDailySpend(h)
	assert.True(t, avg.Equal(dec("10")), "got %s", avg)
}

func TestAverageDailySpend_Empty(t *testing.T) {
	assert.True(t, AverageDailySpend(nil).IsZero())
}
