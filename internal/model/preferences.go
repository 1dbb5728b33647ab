package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Preferences is the per-user settings record.
type Preferences struct {
	UserID            int64
	DailyLimit        decimal.Decimal
	RequireCategories bool
	RolloverEnabled   bool
	SimulatedDate     *time.Time // overrides "today" until cleared
}

// DefaultPreferences returns the documented fallback settings used when no
// preferences record exists for a user.
func DefaultPreferences(userID int64) Preferences {
	return Preferences{
		UserID:            userID,
		DailyLimit:        decimal.NewFromFloat(30.00),
		RequireCategories: true,
		RolloverEnabled:   false,
	}
}
