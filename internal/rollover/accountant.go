// Package rollover computes the carry-forward budget chain. Each day's
// carry-in depends only on the prior day's effective budget and spend, so the
// chain for a date can never be influenced by expenses recorded after it.
package rollover

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sprout-dev/sprout/internal/model"
)

// Store persists one RolloverRecord per (user, date) with upsert semantics.
type Store interface {
	Get(userID int64, date time.Time) (model.RolloverRecord, bool, error)
	Upsert(rec model.RolloverRecord) error
	// LatestBefore returns the most recent record strictly before date.
	LatestBefore(userID int64, date time.Time) (model.RolloverRecord, bool, error)
	// DeleteAfter removes all records strictly after date.
	DeleteAfter(userID int64, date time.Time) error
}

// DailySpender supplies historical spend totals for the chain walk.
type DailySpender interface {
	SpentOn(userID int64, date time.Time) (decimal.Decimal, error)
	// FirstActivity returns the user's earliest expense date, if any.
	FirstActivity(userID int64) (time.Time, bool, error)
}

// Accountant walks and caches the rollover chain.
type Accountant struct {
	store Store
	spend DailySpender
}

// NewAccountant creates an Accountant over a record store and spend source.
func NewAccountant(store Store, spend DailySpender) *Accountant {
	return &Accountant{store: store, spend: spend}
}

// CarryIn returns the rollover amount carried into date. With rollover
// disabled it is always zero. Otherwise the chain is walked forward from the
// last persisted record (or the user's first activity), upserting each
// intermediate day, so repeated calls are idempotent and a gap in the
// persisted records is recomputed from its predecessor rather than failing.
func (a *Accountant) CarryIn(prefs model.Preferences, date time.Time) (decimal.Decimal, error) {
	if !prefs.RolloverEnabled {
		return decimal.Zero, nil
	}
	day := midnight(date)

	if rec, ok, err := a.store.Get(prefs.UserID, day); err != nil {
		return decimal.Zero, fmt.Errorf("reading rollover record: %w", err)
	} else if ok {
		return rec.RolloverAmount, nil
	}

	start, carry, err := a.chainStart(prefs.UserID, day)
	if err != nil {
		return decimal.Zero, err
	}
	if !start.Before(day) {
		// No history before this date: the chain starts here with nothing
		// carried in.
		if err := a.record(prefs, day, decimal.Zero); err != nil {
			return decimal.Zero, err
		}
		return decimal.Zero, nil
	}

	for d := start; d.Before(day); d = d.AddDate(0, 0, 1) {
		spent, err := a.spend.SpentOn(prefs.UserID, d)
		if err != nil {
			return decimal.Zero, fmt.Errorf("reading spend for %s: %w", d.Format("2006-01-02"), err)
		}
		if err := a.store.Upsert(model.RolloverRecord{
			UserID:         prefs.UserID,
			Date:           d,
			BaseDailyLimit: prefs.DailyLimit,
			AmountSpent:    spent,
			RolloverAmount: carry,
		}); err != nil {
			return decimal.Zero, fmt.Errorf("storing rollover record: %w", err)
		}

		effective := prefs.DailyLimit.Add(carry)
		carry = effective.Sub(spent)
		// Overspend never creates debt; it only zeroes the next carry-in.
		if carry.IsNegative() {
			carry = decimal.Zero
		}
	}

	if err := a.record(prefs, day, carry); err != nil {
		return decimal.Zero, err
	}
	return carry, nil
}

// CloseDay finalizes fromDate and persists the carry-in for the next day.
// Used on explicit day transitions (date simulation).
func (a *Accountant) CloseDay(prefs model.Preferences, fromDate time.Time) error {
	if !prefs.RolloverEnabled {
		return nil
	}
	_, err := a.CarryIn(prefs, midnight(fromDate).AddDate(0, 0, 1))
	return err
}

// Invalidate drops every cached record after editedDate for the user. An
// edit or delete of an expense on day D retroactively changes the chain for
// all later days; they are recomputed lazily on the next read.
func (a *Accountant) Invalidate(userID int64, editedDate time.Time) error {
	if err := a.store.DeleteAfter(userID, midnight(editedDate)); err != nil {
		return fmt.Errorf("invalidating rollover chain: %w", err)
	}
	return nil
}

// chainStart locates where the forward walk begins: the latest persisted
// record before day, else the user's first expense date with zero carry.
func (a *Accountant) chainStart(userID int64, day time.Time) (time.Time, decimal.Decimal, error) {
	if rec, ok, err := a.store.LatestBefore(userID, day); err != nil {
		return time.Time{}, decimal.Zero, fmt.Errorf("reading rollover chain: %w", err)
	} else if ok {
		return rec.Date, rec.RolloverAmount, nil
	}

	first, ok, err := a.spend.FirstActivity(userID)
	if err != nil {
		return time.Time{}, decimal.Zero, fmt.Errorf("finding first activity: %w", err)
	}
	if !ok {
		return day, decimal.Zero, nil
	}
	return midnight(first), decimal.Zero, nil
}

func (a *Accountant) record(prefs model.Preferences, day time.Time, carry decimal.Decimal) error {
	spent, err := a.spend.SpentOn(prefs.UserID, day)
	if err != nil {
		return fmt.Errorf("reading spend for %s: %w", day.Format("2006-01-02"), err)
	}
	if err := a.store.Upsert(model.RolloverRecord{
		UserID:         prefs.UserID,
		Date:           day,
		BaseDailyLimit: prefs.DailyLimit,
		AmountSpent:    spent,
		RolloverAmount: carry,
	}); err != nil {
		return fmt.Errorf("storing rollover record: %w", err)
	}
	return nil
}

func midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
