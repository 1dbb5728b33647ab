package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprout-dev/sprout/internal/datewindow"
	"github.com/sprout-dev/sprout/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func expense(amount string, ts time.Time, categoryRef string) model.Expense {
	return model.Expense{
		UserID:      1,
		Amount:      dec(amount),
		CategoryRef: categoryRef,
		Timestamp:   ts,
	}
}

func TestAggregate_SumsWindowOnly(t *testing.T) {
	day := date(2025, 6, 15)
	w := datewindow.ForDate(day)

	expenses := []model.Expense{
		expense("12.50", day.Add(9*time.Hour), "default_1"),
		expense("4.25", day.Add(13*time.Hour), ""),
		expense("99.99", day.AddDate(0, 0, -1).Add(23*time.Hour), "default_1"), // yesterday
		expense("50.00", day.AddDate(0, 0, 1), "default_2"),                    // tomorrow, boundary
	}

	totals := Aggregate(expenses, w)
	assert.True(t, totals.Total.Equal(dec("16.75")), "got %s", totals.Total)
	assert.Equal(t, 2, totals.Count)
}

func TestAggregate_ByCategory(t *testing.T) {
	day := date(2025, 6, 15)
	w := datewindow.ForDate(day)

	expenses := []model.Expense{
		expense("10.00", day.Add(time.Hour), "default_1"),
		expense("2.50", day.Add(2*time.Hour), "default_1"),
		expense("7.00", day.Add(3*time.Hour), "custom_4"),
		expense("1.25", day.Add(4*time.Hour), ""),
	}

	totals := Aggregate(expenses, w)
	assert.True(t, totals.Spent("default_1").Equal(dec("12.50")))
	assert.True(t, totals.Spent("custom_4").Equal(dec("7.00")))
	assert.True(t, totals.Spent("").Equal(dec("1.25")), "uncategorized aggregates under the empty key")
	assert.True(t, totals.Spent("default_99").IsZero())
}

func TestAggregate_TotalEqualsCategorySum(t *testing.T) {
	day := date(2025, 6, 15)
	w := datewindow.ForDate(day)

	expenses := []model.Expense{
		expense("3.33", day.Add(time.Hour), "default_1"),
		expense("6.67", day.Add(2*time.Hour), "custom_2"),
		expense("0.01", day.Add(3*time.Hour), ""),
		expense("19.99", day.Add(4*time.Hour), "default_1"),
	}

	totals := Aggregate(expenses, w)
	sum := decimal.Zero
	for _, amt := range totals.ByCategory {
		sum = sum.Add(amt)
	}
	assert.True(t, totals.Total.Equal(sum), "total %s != category sum %s", totals.Total, sum)
}

func TestAggregate_Empty(t *testing.T) {
	totals := Aggregate(nil, datewindow.ForDate(date(2025, 6, 15)))
	assert.True(t, totals.Total.IsZero())
	assert.Equal(t, 0, totals.Count)
	assert.Empty(t, totals.ByCategory)
}

func TestAggregate_NoCentDrift(t *testing.T) {
	// 0.10 added 100 times must be exactly 10.00.
	day := date(2025, 6, 15)
	var expenses []model.Expense
	for i := 0; i < 100; i++ {
		expenses = append(expenses, expense("0.10", day.Add(time.Duration(i)*time.Minute), ""))
	}

	totals := Aggregate(expenses, datewindow.ForDate(day))
	assert.True(t, totals.Total.Equal(dec("10.00")), "got %s", totals.Total)
}

func TestDailyTotals(t *testing.T) {
	day := date(2025, 6, 15)
	windows := []datewindow.Window{
		datewindow.ForDate(day.AddDate(0, 0, -2)),
		datewindow.ForDate(day.AddDate(0, 0, -1)),
		datewindow.ForDate(day),
	}
	expenses := []model.Expense{
		expense("5.00", day.AddDate(0, 0, -2).Add(time.Hour), ""),
		expense("8.00", day.Add(time.Hour), ""),
	}

	days := DailyTotals(expenses, windows)
	require.Len(t, days, 3)
	assert.True(t, days[0].Total.Equal(dec("5.00")))
	assert.True(t, days[1].Total.IsZero(), "day without spend is zero-filled")
	assert.True(t, days[2].Total.Equal(dec("8.00")))
}

func TestValidateExpense(t *testing.T) {
	prefs := model.DefaultPreferences(1)
	ts := date(2025, 6, 15).Add(10 * time.Hour)

	ok := ValidateExpense(expense("5.00", ts, "default_1"), prefs)
	assert.Empty(t, ok)

	negative := ValidateExpense(expense("-1.00", ts, "default_1"), prefs)
	require.Len(t, negative, 1)
	assert.Equal(t, "amount", negative[0].Field)

	zero := ValidateExpense(expense("0", ts, "default_1"), prefs)
	require.Len(t, zero, 1)

	fractional := ValidateExpense(expense("1.999", ts, "default_1"), prefs)
	require.Len(t, fractional, 1)
	assert.Contains(t, fractional[0].Error(), "decimal places")
}

func TestValidateExpense_CategoryRequirement(t *testing.T) {
	ts := date(2025, 6, 15).Add(10 * time.Hour)

	strict := model.DefaultPreferences(1) // require_categories defaults on
	errs := ValidateExpense(expense("5.00", ts, ""), strict)
	require.Len(t, errs, 1)
	assert.Equal(t, "category", errs[0].Field)

	relaxed := strict
	relaxed.RequireCategories = false
	assert.Empty(t, ValidateExpense(expense("5.00", ts, ""), relaxed))
}
