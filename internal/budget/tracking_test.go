package budget

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sprout-dev/sprout/internal/datewindow"
	"github.com/sprout-dev/sprout/internal/ledger"
	"github.com/sprout-dev/sprout/internal/model"
)

func TestTrackBudgets(t *testing.T) {
	day := date(2025, 6, 15)
	food := model.Category{ID: 1, Scope: model.ScopeDefault, Name: "Food", DailyBudget: dec("10.00")}
	fun := model.Category{ID: 2, Scope: model.ScopeCustom, Name: "Fun", DailyBudget: dec("5.00")}
	transport := model.Category{ID: 3, Scope: model.ScopeDefault, Name: "Transport"}

	totals := ledger.Aggregate([]model.Expense{
		{UserID: 1, Amount: dec("12.00"), CategoryRef: food.Ref(), Timestamp: day.Add(time.Hour)},
		{UserID: 1, Amount: dec("3.00"), CategoryRef: fun.Ref(), Timestamp: day.Add(2 * time.Hour)},
		{UserID: 1, Amount: dec("2.75"), CategoryRef: transport.Ref(), Timestamp: day.Add(3 * time.Hour)},
		{UserID: 1, Amount: dec("1.25"), Timestamp: day.Add(4 * time.Hour)}, // uncategorized
	}, datewindow.ForDate(day))

	sum := TrackBudgets(totals, []model.Category{food, fun, transport})

	assert.True(t, sum.TotalBudget.Equal(dec("15.00")), "got %s", sum.TotalBudget)
	assert.True(t, sum.SpentBudgeted.Equal(dec("15.00")), "12 + 3, got %s", sum.SpentBudgeted)
	assert.True(t, sum.SpentUnbudgeted.Equal(dec("4.00")), "2.75 + 1.25, got %s", sum.SpentUnbudgeted)
	assert.True(t, sum.Remaining.IsZero())
	assert.True(t, sum.PercentUsed.Equal(dec("100")), "got %s", sum.PercentUsed)
	assert.Equal(t, 1, sum.OverBudgetCount, "only Food is over")
}

func TestTrackBudgets_NoBudgetedCategories(t *testing.T) {
	sum := TrackBudgets(totalsFor("9.00"), nil)
	assert.True(t, sum.TotalBudget.IsZero())
	assert.True(t, sum.SpentUnbudgeted.Equal(dec("9.00")))
	assert.True(t, sum.PercentUsed.IsZero(), "zero total budget never divides")
}
