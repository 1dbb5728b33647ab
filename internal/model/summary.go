package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryBudgetStatus is the per-category view for categories that carry a
// sub-budget. Remaining may be negative when the category is over budget.
type CategoryBudgetStatus struct {
	CategoryRef string
	Name        string
	Icon        string
	Color       string
	DailyBudget decimal.Decimal
	Spent       decimal.Decimal
	Remaining   decimal.Decimal
	PercentUsed decimal.Decimal
	OverBudget  bool
}

// RolloverInfo breaks down the effective budget when rollover is enabled.
type RolloverInfo struct {
	Base      decimal.Decimal
	CarryIn   decimal.Decimal
	Effective decimal.Decimal
}

// DaySummary is the full budget status for one user on one day. Balance may
// be negative; that is a meaningful state, not an error.
type DaySummary struct {
	Date            time.Time
	Balance         decimal.Decimal
	EffectiveBudget decimal.Decimal
	TotalSpent      decimal.Decimal
	ExpenseCount    int
	Rollover        *RolloverInfo // nil when rollover is disabled
	Projection30    decimal.Decimal
	PlantState      PlantState
	PlantEmoji      string
	CategoryBudgets []CategoryBudgetStatus
}
