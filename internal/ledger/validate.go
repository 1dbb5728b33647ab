package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sprout-dev/sprout/internal/model"
)

// ValidationError describes a single rejected expense field.
type ValidationError struct {
	Field       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

// ValidateExpense enforces the boundary rules before an expense reaches the
// engine: positive amount, at most 2 decimal places, and a category when the
// user's preferences require one.
func ValidateExpense(e model.Expense, prefs model.Preferences) []ValidationError {
	var errs []ValidationError

	if !e.Amount.IsPositive() {
		errs = append(errs, ValidationError{
			Field:       "amount",
			Description: fmt.Sprintf("must be positive, got %s", e.Amount),
		})
	}

	cents := e.Amount.Mul(decimal.NewFromInt(100))
	if !cents.Equal(cents.Floor()) {
		errs = append(errs, ValidationError{
			Field:       "amount",
			Description: fmt.Sprintf("%s has more than 2 decimal places", e.Amount),
		})
	}

	if prefs.RequireCategories && e.CategoryRef == "" {
		errs = append(errs, ValidationError{
			Field:       "category",
			Description: "a category is required by your preferences",
		})
	}

	if e.Timestamp.IsZero() {
		errs = append(errs, ValidationError{
			Field:       "timestamp",
			Description: "timestamp is required",
		})
	}

	return errs
}
