package budget

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprout-dev/sprout/internal/datewindow"
	"github.com/sprout-dev/sprout/internal/ledger"
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

func totalsFor(amounts ...string) ledger.DayTotals {
	day := date(2025, 6, 15)
	var expenses []model.Expense
	for i, a := range amounts {
		expenses = append(expenses, model.Expense{
			UserID:    1,
			Amount:    dec(a),
			Timestamp: day.Add(time.Duration(i+1) * time.Hour),
		})
	}
	return ledger.Aggregate(expenses, datewindow.ForDate(day))
}

func TestResolve_NoRollover(t *testing.T) {
	// Limit 30, rollover disabled, expenses 12.50 + 4.25.
	prefs := model.DefaultPreferences(1)
	totals := totalsFor("12.50", "4.25")

	status := Resolve(prefs, decimal.Zero, totals, nil)
	assert.True(t, status.EffectiveBudget.Equal(dec("30.00")), "got %s", status.EffectiveBudget)
	assert.True(t, status.TotalSpent.Equal(dec("16.75")), "got %s", status.TotalSpent)
	assert.True(t, status.Balance.Equal(dec("13.25")), "got %s", status.Balance)
}

func TestResolve_WithCarryIn(t *testing.T) {
	prefs := model.DefaultPreferences(1)
	prefs.RolloverEnabled = true

	status := Resolve(prefs, dec("20.00"), totalsFor(), nil)
	assert.True(t, status.EffectiveBudget.Equal(dec("50.00")), "30 + 20, got %s", status.EffectiveBudget)
	assert.True(t, status.RolloverAmount.Equal(dec("20.00")))
	assert.True(t, status.Balance.Equal(dec("50.00")))
}

func TestResolve_NegativeBalanceIsValid(t *testing.T) {
	prefs := model.DefaultPreferences(1)
	status := Resolve(prefs, decimal.Zero, totalsFor("45.00"), nil)
	assert.True(t, status.Balance.Equal(dec("-15.00")), "got %s", status.Balance)
}

func TestResolve_CategoryOverBudget(t *testing.T) {
	// Category "Food" budget 10, spent 12 -> over budget, remaining -2.
	food := model.Category{ID: 1, Scope: model.ScopeDefault, Name: "Food", DailyBudget: dec("10.00")}

	day := date(2025, 6, 15)
	totals := ledger.Aggregate([]model.Expense{
		{UserID: 1, Amount: dec("12.00"), CategoryRef: food.Ref(), Timestamp: day.Add(time.Hour)},
	}, datewindow.ForDate(day))

	status := Resolve(model.DefaultPreferences(1), decimal.Zero, totals, []model.Category{food})
	require.Len(t, status.Categories, 1)

	cat := status.Categories[0]
	assert.True(t, cat.OverBudget)
	assert.True(t, cat.Remaining.Equal(dec("-2.00")), "got %s", cat.Remaining)
	assert.True(t, cat.PercentUsed.Equal(dec("120")), "got %s", cat.PercentUsed)
}

func TestResolve_SkipsUnbudgetedCategories(t *testing.T) {
	cats := []model.Category{
		{ID: 1, Scope: model.ScopeDefault, Name: "Food", DailyBudget: dec("10.00")},
		{ID: 2, Scope: model.ScopeDefault, Name: "Transport"}, // no sub-budget
	}

	status := Resolve(model.DefaultPreferences(1), decimal.Zero, totalsFor(), cats)
	require.Len(t, status.Categories, 1)
	assert.Equal(t, "Food", status.Categories[0].Name)
}

func TestResolve_CategoriesSortedBySpent(t *testing.T) {
	day := date(2025, 6, 15)
	food := model.Category{ID: 1, Scope: model.ScopeDefault, Name: "Food", DailyBudget: dec("20.00")}
	fun := model.Category{ID: 2, Scope: model.ScopeCustom, Name: "Fun", DailyBudget: dec("20.00")}

	totals := ledger.Aggregate([]model.Expense{
		{UserID: 1, Amount: dec("5.00"), CategoryRef: food.Ref(), Timestamp: day.Add(time.Hour)},
		{UserID: 1, Amount: dec("15.00"), CategoryRef: fun.Ref(), Timestamp: day.Add(2 * time.Hour)},
	}, datewindow.ForDate(day))

	status := Resolve(model.DefaultPreferences(1), decimal.Zero, totals, []model.Category{food, fun})
	require.Len(t, status.Categories, 2)
	assert.Equal(t, "Fun", status.Categories[0].Name)
	assert.Equal(t, "Food", status.Categories[1].Name)
}

func TestResolve_Idempotent(t *testing.T) {
	prefs := model.DefaultPreferences(1)
	totals := totalsFor("9.99", "0.01")

	a := Resolve(prefs, dec("5"), totals, nil)
	b := Resolve(prefs, dec("5"), totals, nil)
	assert.Equal(t, a, b)
}
