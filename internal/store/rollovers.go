package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sprout-dev/sprout/internal/model"
)

// RolloverStore exposes the daily_rollovers table as a rollover.Store.
type RolloverStore struct {
	db *sql.DB
}

// Rollovers returns the rollover record store backed by this database.
func (s *Store) Rollovers() *RolloverStore {
	return &RolloverStore{db: s.db}
}

// Get returns the record for one (user, date).
func (r *RolloverStore) Get(userID int64, date time.Time) (model.RolloverRecord, bool, error) {
	row := r.db.QueryRow(`SELECT user_id, date, base_daily_limit, amount_spent, rollover_amount
		FROM daily_rollovers WHERE user_id = ? AND date = ?`,
		userID, date.UTC().Format(dateFormat))
	rec, err := scanRollover(row)
	if err == sql.ErrNoRows {
		return model.RolloverRecord{}, false, nil
	}
	if err != nil {
		return model.RolloverRecord{}, false, fmt.Errorf("reading rollover record: %w", err)
	}
	return rec, true, nil
}

// Upsert writes a record, replacing any existing row for the same (user, date).
func (r *RolloverStore) Upsert(rec model.RolloverRecord) error {
	_, err := r.db.Exec(`INSERT INTO daily_rollovers
		(user_id, date, base_daily_limit, amount_spent, rollover_amount, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date) DO UPDATE SET
			base_daily_limit = excluded.base_daily_limit,
			amount_spent = excluded.amount_spent,
			rollover_amount = excluded.rollover_amount,
			updated_at = excluded.updated_at`,
		rec.UserID, rec.Date.UTC().Format(dateFormat), rec.BaseDailyLimit.String(),
		rec.AmountSpent.String(), rec.RolloverAmount.String(),
		time.Now().UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("upserting rollover record: %w", err)
	}
	return nil
}

// LatestBefore returns the most recent record strictly before date.
func (r *RolloverStore) LatestBefore(userID int64, date time.Time) (model.RolloverRecord, bool, error) {
	row := r.db.QueryRow(`SELECT user_id, date, base_daily_limit, amount_spent, rollover_amount
		FROM daily_rollovers WHERE user_id = ? AND date < ?
		ORDER BY date DESC LIMIT 1`,
		userID, date.UTC().Format(dateFormat))
	rec, err := scanRollover(row)
	if err == sql.ErrNoRows {
		return model.RolloverRecord{}, false, nil
	}
	if err != nil {
		return model.RolloverRecord{}, false, fmt.Errorf("reading rollover chain: %w", err)
	}
	return rec, true, nil
}

// DeleteAfter removes all records strictly after date, forcing the chain to
// recompute from date on the next read.
func (r *RolloverStore) DeleteAfter(userID int64, date time.Time) error {
	_, err := r.db.Exec("DELETE FROM daily_rollovers WHERE user_id = ? AND date > ?",
		userID, date.UTC().Format(dateFormat))
	if err != nil {
		return fmt.Errorf("deleting rollover records: %w", err)
	}
	return nil
}

// History returns up to days records ending at the given date, newest first.
func (r *RolloverStore) History(userID int64, days int, ending time.Time) ([]model.RolloverRecord, error) {
	since := ending.UTC().AddDate(0, 0, -(days - 1))
	rows, err := r.db.Query(`SELECT user_id, date, base_daily_limit, amount_spent, rollover_amount
		FROM daily_rollovers
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date DESC`,
		userID, since.Format(dateFormat), ending.UTC().Format(dateFormat))
	if err != nil {
		return nil, fmt.Errorf("querying rollover history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var recs []model.RolloverRecord
	for rows.Next() {
		rec, err := scanRollover(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning rollover record: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func scanRollover(row rowScanner) (model.RolloverRecord, error) {
	var rec model.RolloverRecord
	var date, base, spent, carry string
	if err := row.Scan(&rec.UserID, &date, &base, &spent, &carry); err != nil {
		return model.RolloverRecord{}, err
	}

	var err error
	rec.Date, err = time.ParseInLocation(dateFormat, date, time.UTC)
	if err != nil {
		return model.RolloverRecord{}, fmt.Errorf("parsing stored date %q: %w", date, err)
	}
	if rec.BaseDailyLimit, err = decimal.NewFromString(base); err != nil {
		return model.RolloverRecord{}, fmt.Errorf("parsing stored limit %q: %w", base, err)
	}
	if rec.AmountSpent, err = decimal.NewFromString(spent); err != nil {
		return model.RolloverRecord{}, fmt.Errorf("parsing stored spend %q: %w", spent, err)
	}
	if rec.RolloverAmount, err = decimal.NewFromString(carry); err != nil {
		return model.RolloverRecord{}, fmt.Errorf("parsing stored rollover %q: %w", carry, err)
	}
	return rec, nil
}
