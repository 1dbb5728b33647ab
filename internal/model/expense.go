package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a single spending record. Amount is always positive; the
// timestamp is normalized to UTC at creation and never derived from the
// host's local wall clock.
type Expense struct {
	ID          int64
	UserID      int64
	Amount      decimal.Decimal
	Description string
	CategoryRef string // "default_N" / "custom_N", empty = uncategorized
	Timestamp   time.Time
}

// Date returns the UTC calendar day the expense falls on, at midnight.
func (e Expense) Date() time.Time {
	t := e.Timestamp.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
