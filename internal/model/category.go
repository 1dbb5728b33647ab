package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CategoryScope distinguishes seeded default categories from user-created ones.
type CategoryScope string

const (
	ScopeDefault CategoryScope = "default"
	ScopeCustom  CategoryScope = "custom"
)

// Category is a spending category. DailyBudget of zero means the category
// has no sub-budget of its own.
type Category struct {
	ID          int64
	UserID      int64
	Scope       CategoryScope
	Name        string
	Icon        string
	Color       string
	DailyBudget decimal.Decimal
}

// HasBudget reports whether the category carries a per-day sub-budget.
func (c Category) HasBudget() bool {
	return c.DailyBudget.IsPositive()
}

// Ref returns the reference expenses use to point at this category,
// e.g. "default_3" or "custom_7".
func (c Category) Ref() string {
	return fmt.Sprintf("%s_%d", c.Scope, c.ID)
}
