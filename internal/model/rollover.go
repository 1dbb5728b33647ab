package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RolloverRecord is the persisted carry-in for one (user, date). RolloverAmount
// is the unspent budget carried *into* Date from the prior day. One row per
// user per date, upsert semantics.
type RolloverRecord struct {
	UserID         int64
	Date           time.Time // UTC midnight
	BaseDailyLimit decimal.Decimal
	AmountSpent    decimal.Decimal
	RolloverAmount decimal.Decimal
}
