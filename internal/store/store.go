// Package store is the persistence collaborator: a SQLite database holding
// expenses, categories, preferences, and the daily rollover cache.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sprout-dev/sprout/internal/category"
	"github.com/sprout-dev/sprout/internal/id"
	"github.com/sprout-dev/sprout/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

const (
	dateFormat = "2006-01-02"
	timeFormat = time.RFC3339
)

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// InitUser seeds the default categories and the given preferences for a
// new user. Calling it again for an existing user is a no-op: existing
// preferences are never overwritten.
func (s *Store) InitUser(userID int64, prefs model.Preferences) error {
	if !prefs.DailyLimit.IsPositive() {
		return fmt.Errorf("daily limit must be positive, got %s", prefs.DailyLimit)
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM categories WHERE user_id = ?", userID).Scan(&count); err != nil {
		return fmt.Errorf("counting categories: %w", err)
	}

	if count == 0 {
		for _, c := range category.DefaultSet(userID) {
			if _, err := s.AddCategory(c); err != nil {
				return err
			}
		}
	}

	_, err := s.db.Exec(`INSERT OR IGNORE INTO user_preferences
		(user_id, daily_limit, require_categories, rollover_enabled)
		VALUES (?, ?, ?, ?)`,
		userID, prefs.DailyLimit.String(), boolInt(prefs.RequireCategories), boolInt(prefs.RolloverEnabled))
	if err != nil {
		return fmt.Errorf("seeding preferences: %w", err)
	}
	return nil
}

// AddExpense inserts an expense and returns its ID. The timestamp is
// normalized to UTC on the way in.
func (s *Store) AddExpense(e model.Expense) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO expenses (user_id, amount, description, category_ref, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		e.UserID, e.Amount.String(), e.Description, e.CategoryRef, e.Timestamp.UTC().Format(timeFormat))
	if err != nil {
		return 0, fmt.Errorf("inserting expense: %w", err)
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading expense id: %w", err)
	}
	return newID, nil
}

// GetExpense returns one expense owned by the user.
func (s *Store) GetExpense(userID, expenseID int64) (model.Expense, error) {
	row := s.db.QueryRow(`SELECT id, user_id, amount, description, category_ref, timestamp
		FROM expenses WHERE id = ? AND user_id = ?`, expenseID, userID)
	e, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return model.Expense{}, fmt.Errorf("expense %d not found", expenseID)
	}
	if err != nil {
		return model.Expense{}, fmt.Errorf("reading expense: %w", err)
	}
	return e, nil
}

// UpdateExpense rewrites an expense owned by the user.
func (s *Store) UpdateExpense(e model.Expense) error {
	res, err := s.db.Exec(`UPDATE expenses SET amount = ?, description = ?, category_ref = ?, timestamp = ?
		WHERE id = ? AND user_id = ?`,
		e.Amount.String(), e.Description, e.CategoryRef, e.Timestamp.UTC().Format(timeFormat), e.ID, e.UserID)
	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("expense %d not found", e.ID)
	}
	return nil
}

// DeleteExpense removes an expense and returns the deleted record so callers
// can invalidate the rollover chain from its date.
func (s *Store) DeleteExpense(userID, expenseID int64) (model.Expense, error) {
	e, err := s.GetExpense(userID, expenseID)
	if err != nil {
		return model.Expense{}, err
	}
	if _, err := s.db.Exec("DELETE FROM expenses WHERE id = ? AND user_id = ?", expenseID, userID); err != nil {
		return model.Expense{}, fmt.Errorf("deleting expense: %w", err)
	}
	return e, nil
}

// ExpensesBetween returns the user's expenses with timestamps in [start, end),
// newest first, optionally filtered to one category ref.
func (s *Store) ExpensesBetween(userID int64, start, end time.Time, categoryRef string) ([]model.Expense, error) {
	query := `SELECT id, user_id, amount, description, category_ref, timestamp
		FROM expenses WHERE user_id = ? AND timestamp >= ? AND timestamp < ?`
	args := []any{userID, start.UTC().Format(timeFormat), end.UTC().Format(timeFormat)}
	if categoryRef != "" {
		query += " AND category_ref = ?"
		args = append(args, categoryRef)
	}
	query += " ORDER BY timestamp DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// SpentOn returns the user's total spend on a UTC calendar day. Part of the
// rollover chain's spend source.
func (s *Store) SpentOn(userID int64, date time.Time) (decimal.Decimal, error) {
	day := date.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	rows, err := s.db.Query(`SELECT amount FROM expenses
		WHERE user_id = ? AND timestamp >= ? AND timestamp < ?`,
		userID, start.Format(timeFormat), end.Format(timeFormat))
	if err != nil {
		return decimal.Zero, fmt.Errorf("querying day spend: %w", err)
	}
	defer func() { _ = rows.Close() }()

	total := decimal.Zero
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return decimal.Zero, fmt.Errorf("scanning amount: %w", err)
		}
		amt, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parsing stored amount %q: %w", raw, err)
		}
		total = total.Add(amt)
	}
	return total, rows.Err()
}

// FirstActivity returns the user's earliest expense timestamp, if any.
func (s *Store) FirstActivity(userID int64) (time.Time, bool, error) {
	var raw sql.NullString
	err := s.db.QueryRow("SELECT MIN(timestamp) FROM expenses WHERE user_id = ?", userID).Scan(&raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("querying first activity: %w", err)
	}
	if !raw.Valid || raw.String == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(timeFormat, raw.String)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing first activity %q: %w", raw.String, err)
	}
	return t, true, nil
}

// AddCategory inserts a category and returns its ID.
func (s *Store) AddCategory(c model.Category) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO categories (user_id, scope, name, icon, color, daily_budget)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.UserID, string(c.Scope), c.Name, c.Icon, c.Color, c.DailyBudget.String())
	if err != nil {
		return 0, fmt.Errorf("inserting category: %w", err)
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading category id: %w", err)
	}
	return newID, nil
}

// Categories returns all of the user's categories, defaults first.
func (s *Store) Categories(userID int64) ([]model.Category, error) {
	rows, err := s.db.Query(`SELECT id, user_id, scope, name, icon, color, daily_budget
		FROM categories WHERE user_id = ? ORDER BY scope, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cats []model.Category
	for rows.Next() {
		var c model.Category
		var scope, budget string
		if err := rows.Scan(&c.ID, &c.UserID, &scope, &c.Name, &c.Icon, &c.Color, &budget); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		c.Scope = model.CategoryScope(scope)
		c.DailyBudget, err = decimal.NewFromString(budget)
		if err != nil {
			return nil, fmt.Errorf("parsing stored budget %q: %w", budget, err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// SetCategoryBudget sets (or clears, with zero) a category's daily sub-budget.
func (s *Store) SetCategoryBudget(userID int64, ref string, budget decimal.Decimal) error {
	if budget.IsNegative() {
		return fmt.Errorf("category budget must be >= 0, got %s", budget)
	}
	scope, catID, err := id.ParseCategoryRef(ref)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE categories SET daily_budget = ?
		WHERE user_id = ? AND scope = ? AND id = ?`,
		budget.String(), userID, string(scope), catID)
	if err != nil {
		return fmt.Errorf("updating category budget: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating category budget: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("category %s not found", ref)
	}
	return nil
}

// DeleteCategory removes a custom category. Historical expenses keep their
// now-dangling reference; they are never deleted alongside the category.
func (s *Store) DeleteCategory(userID int64, ref string) error {
	scope, catID, err := id.ParseCategoryRef(ref)
	if err != nil {
		return err
	}
	if scope != model.ScopeCustom {
		return fmt.Errorf("only custom categories can be deleted")
	}
	res, err := s.db.Exec("DELETE FROM categories WHERE user_id = ? AND scope = ? AND id = ?",
		userID, string(scope), catID)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("category %s not found", ref)
	}
	return nil
}

// Preferences returns the user's preferences, falling back to the documented
// defaults when no record exists.
func (s *Store) Preferences(userID int64) (model.Preferences, error) {
	row := s.db.QueryRow(`SELECT daily_limit, require_categories, rollover_enabled, simulated_date
		FROM user_preferences WHERE user_id = ?`, userID)

	var limit string
	var requireCats, rolloverOn int
	var simDate sql.NullString
	err := row.Scan(&limit, &requireCats, &rolloverOn, &simDate)
	if err == sql.ErrNoRows {
		return model.DefaultPreferences(userID), nil
	}
	if err != nil {
		return model.Preferences{}, fmt.Errorf("reading preferences: %w", err)
	}

	prefs := model.Preferences{
		UserID:            userID,
		RequireCategories: requireCats != 0,
		RolloverEnabled:   rolloverOn != 0,
	}
	prefs.DailyLimit, err = decimal.NewFromString(limit)
	if err != nil {
		return model.Preferences{}, fmt.Errorf("parsing stored limit %q: %w", limit, err)
	}
	if simDate.Valid && simDate.String != "" {
		t, err := time.ParseInLocation(dateFormat, simDate.String, time.UTC)
		if err != nil {
			return model.Preferences{}, fmt.Errorf("parsing simulated date %q: %w", simDate.String, err)
		}
		prefs.SimulatedDate = &t
	}
	return prefs, nil
}

// SavePreferences upserts the user's preferences record.
func (s *Store) SavePreferences(prefs model.Preferences) error {
	if !prefs.DailyLimit.IsPositive() {
		return fmt.Errorf("daily limit must be positive, got %s", prefs.DailyLimit)
	}
	var simDate any
	if prefs.SimulatedDate != nil {
		simDate = prefs.SimulatedDate.UTC().Format(dateFormat)
	}
	_, err := s.db.Exec(`INSERT INTO user_preferences
		(user_id, daily_limit, require_categories, rollover_enabled, simulated_date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			daily_limit = excluded.daily_limit,
			require_categories = excluded.require_categories,
			rollover_enabled = excluded.rollover_enabled,
			simulated_date = excluded.simulated_date`,
		prefs.UserID, prefs.DailyLimit.String(), boolInt(prefs.RequireCategories),
		boolInt(prefs.RolloverEnabled), simDate)
	if err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (model.Expense, error) {
	var e model.Expense
	var amount, ts string
	if err := row.Scan(&e.ID, &e.UserID, &amount, &e.Description, &e.CategoryRef, &ts); err != nil {
		return model.Expense{}, err
	}
	var err error
	e.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing stored amount %q: %w", amount, err)
	}
	e.Timestamp, err = time.Parse(timeFormat, ts)
	if err != nil {
		return model.Expense{}, fmt.Errorf("parsing stored timestamp %q: %w", ts, err)
	}
	return e, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
