// Package summary assembles the per-day budget status a user sees: balance,
// effective budget, projection, plant state, and category sub-budgets. It
// also owns the write path for expenses, since chain-affecting writes must
// serialize per user and invalidate the rollover cache.
package summary

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sprout-dev/sprout/internal/auditlog"
	"github.com/sprout-dev/sprout/internal/budget"
	"github.com/sprout-dev/sprout/internal/category"
	"github.com/sprout-dev/sprout/internal/datewindow"
	"github.com/sprout-dev/sprout/internal/ledger"
	"github.com/sprout-dev/sprout/internal/model"
	"github.com/sprout-dev/sprout/internal/rollover"
)

// historyDays is the trailing lookback used for the projection average and
// the default history view.
const historyDays = 7

// Datastore is the persistence surface the service needs.
type Datastore interface {
	AddExpense(e model.Expense) (int64, error)
	GetExpense(userID, expenseID int64) (model.Expense, error)
	UpdateExpense(e model.Expense) error
	DeleteExpense(userID, expenseID int64) (model.Expense, error)
	ExpensesBetween(userID int64, start, end time.Time, categoryRef string) ([]model.Expense, error)
	Categories(userID int64) ([]model.Category, error)
	Preferences(userID int64) (model.Preferences, error)
}

// Service computes day summaries and mediates expense writes.
type Service struct {
	store      Datastore
	accountant *rollover.Accountant
	auditDir   string // empty disables the audit trail

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewService creates a summary Service. auditDir may be empty to skip audit
// logging (tests).
func NewService(store Datastore, accountant *rollover.Accountant, auditDir string) *Service {
	return &Service{
		store:      store,
		accountant: accountant,
		auditDir:   auditDir,
		locks:      make(map[int64]*sync.Mutex),
	}
}

// ForDay returns the full day summary for the user's "today" shifted by
// dayOffset.
func (s *Service) ForDay(userID int64, dayOffset int, now time.Time) (model.DaySummary, error) {
	prefs, err := s.store.Preferences(userID)
	if err != nil {
		return model.DaySummary{}, fmt.Errorf("loading preferences: %w", err)
	}

	today := datewindow.Resolve(prefs, dayOffset, now)

	// One fetch covers the lookback history and today.
	lookback := today.Shift(-(historyDays - 1))
	expenses, err := s.store.ExpensesBetween(userID, lookback.Start, today.End, "")
	if err != nil {
		return model.DaySummary{}, fmt.Errorf("loading expenses: %w", err)
	}

	categories, err := s.store.Categories(userID)
	if err != nil {
		return model.DaySummary{}, fmt.Errorf("loading categories: %w", err)
	}

	carryIn, err := s.accountant.CarryIn(prefs, today.Date())
	if err != nil {
		return model.DaySummary{}, fmt.Errorf("computing rollover: %w", err)
	}

	totals := ledger.Aggregate(expenses, today)
	status := budget.Resolve(prefs, carryIn, totals, categories)

	windows := make([]datewindow.Window, historyDays)
	for i := range windows {
		windows[i] = today.Shift(i - (historyDays - 1))
	}
	history := make([]budget.DaySpend, historyDays)
	for i, day := range ledger.DailyTotals(expenses, windows) {
		history[i] = budget.DaySpend{Date: windows[i].Date(), Spent: day.Total}
	}

	plant := budget.PlantForDay(status.TotalSpent, status.EffectiveBudget)

	out := model.DaySummary{
		Date:            today.Date(),
		Balance:         status.Balance,
		EffectiveBudget: status.EffectiveBudget,
		TotalSpent:      status.TotalSpent,
		ExpenseCount:    totals.Count,
		Projection30:    budget.Project(history, status.EffectiveBudget, budget.DefaultHorizonDays),
		PlantState:      plant,
		PlantEmoji:      plant.Emoji(),
		CategoryBudgets: status.Categories,
	}
	if prefs.RolloverEnabled {
		out.Rollover = &model.RolloverInfo{
			Base:      status.DailyBudget,
			CarryIn:   status.RolloverAmount,
			Effective: status.EffectiveBudget,
		}
	}
	return out, nil
}

// RecordExpense validates and stores a new expense, invalidating the
// rollover chain from its date.
func (s *Service) RecordExpense(e model.Expense) (int64, error) {
	prefs, err := s.store.Preferences(e.UserID)
	if err != nil {
		return 0, fmt.Errorf("loading preferences: %w", err)
	}
	if verrs := ledger.ValidateExpense(e, prefs); len(verrs) > 0 {
		return 0, validationError(verrs)
	}
	if err := s.checkCategoryRef(e.UserID, e.CategoryRef); err != nil {
		return 0, err
	}

	unlock := s.lockUser(e.UserID)
	defer unlock()

	newID, err := s.store.AddExpense(e)
	if err != nil {
		return 0, err
	}
	if err := s.accountant.Invalidate(e.UserID, e.Date()); err != nil {
		return 0, err
	}
	if err := s.audit(auditlog.ActionAdd, e.UserID, newID, e.Amount.StringFixed(2), e.Description); err != nil {
		return 0, err
	}
	return newID, nil
}

// AmendExpense rewrites an existing expense. The chain is invalidated from
// the earlier of the old and new dates, since both days' totals changed.
func (s *Service) AmendExpense(e model.Expense) error {
	prefs, err := s.store.Preferences(e.UserID)
	if err != nil {
		return fmt.Errorf("loading preferences: %w", err)
	}
	if verrs := ledger.ValidateExpense(e, prefs); len(verrs) > 0 {
		return validationError(verrs)
	}
	if err := s.checkCategoryRef(e.UserID, e.CategoryRef); err != nil {
		return err
	}

	unlock := s.lockUser(e.UserID)
	defer unlock()

	old, err := s.store.GetExpense(e.UserID, e.ID)
	if err != nil {
		return err
	}
	if err := s.store.UpdateExpense(e); err != nil {
		return err
	}

	from := old.Date()
	if e.Date().Before(from) {
		from = e.Date()
	}
	if err := s.accountant.Invalidate(e.UserID, from); err != nil {
		return err
	}
	return s.audit(auditlog.ActionEdit, e.UserID, e.ID, e.Amount.StringFixed(2), e.Description)
}

// RemoveExpense deletes an expense and invalidates the chain from its date.
func (s *Service) RemoveExpense(userID, expenseID int64) error {
	unlock := s.lockUser(userID)
	defer unlock()

	deleted, err := s.store.DeleteExpense(userID, expenseID)
	if err != nil {
		return err
	}
	if err := s.accountant.Invalidate(userID, deleted.Date()); err != nil {
		return err
	}
	return s.audit(auditlog.ActionDelete, userID, expenseID, deleted.Amount.StringFixed(2), deleted.Description)
}

// ImportExpenses validates and stores a batch of expenses, invalidating the
// chain once from the earliest affected date. All-or-nothing validation: a
// bad row rejects the whole batch before anything is written.
func (s *Service) ImportExpenses(userID int64, expenses []model.Expense) (int, error) {
	if len(expenses) == 0 {
		return 0, nil
	}
	prefs, err := s.store.Preferences(userID)
	if err != nil {
		return 0, fmt.Errorf("loading preferences: %w", err)
	}

	cats, err := s.store.Categories(userID)
	if err != nil {
		return 0, fmt.Errorf("loading categories: %w", err)
	}
	catSvc := category.NewService(cats)

	earliest := expenses[0].Date()
	for i, e := range expenses {
		e.UserID = userID
		if verrs := ledger.ValidateExpense(e, prefs); len(verrs) > 0 {
			return 0, fmt.Errorf("row %d: %w", i+1, validationError(verrs))
		}
		if e.CategoryRef != "" && !catSvc.Exists(e.CategoryRef) {
			return 0, fmt.Errorf("row %d: unknown category %s", i+1, e.CategoryRef)
		}
		if e.Date().Before(earliest) {
			earliest = e.Date()
		}
	}

	unlock := s.lockUser(userID)
	defer unlock()

	for i, e := range expenses {
		e.UserID = userID
		if _, err := s.store.AddExpense(e); err != nil {
			return i, fmt.Errorf("storing row %d: %w", i+1, err)
		}
	}
	if err := s.accountant.Invalidate(userID, earliest); err != nil {
		return len(expenses), err
	}
	details := fmt.Sprintf("imported %d expenses", len(expenses))
	return len(expenses), s.audit(auditlog.ActionImport, userID, 0, "", details)
}

// History returns the user's expenses for the trailing period ending at the
// offset day, newest first, optionally filtered by category.
func (s *Service) History(userID int64, dayOffset, period int, categoryRef string, now time.Time) ([]model.Expense, error) {
	prefs, err := s.store.Preferences(userID)
	if err != nil {
		return nil, fmt.Errorf("loading preferences: %w", err)
	}
	today := datewindow.Resolve(prefs, dayOffset, now)
	start := today.Shift(-(period - 1)).Start
	return s.store.ExpensesBetween(userID, start, today.End, categoryRef)
}

// BudgetTracking returns the roll-up across sub-budgeted categories for the
// offset day.
func (s *Service) BudgetTracking(userID int64, dayOffset int, now time.Time) (budget.TrackingSummary, error) {
	prefs, err := s.store.Preferences(userID)
	if err != nil {
		return budget.TrackingSummary{}, fmt.Errorf("loading preferences: %w", err)
	}
	today := datewindow.Resolve(prefs, dayOffset, now)

	expenses, err := s.store.ExpensesBetween(userID, today.Start, today.End, "")
	if err != nil {
		return budget.TrackingSummary{}, fmt.Errorf("loading expenses: %w", err)
	}
	categories, err := s.store.Categories(userID)
	if err != nil {
		return budget.TrackingSummary{}, fmt.Errorf("loading categories: %w", err)
	}
	budgeted := category.NewService(categories).Budgeted()
	return budget.TrackBudgets(ledger.Aggregate(expenses, today), budgeted), nil
}

// ProcessDayTransition finalizes fromDate's rollover and persists the next
// day's carry-in. Used when the simulated date advances.
func (s *Service) ProcessDayTransition(userID int64, fromDate time.Time) error {
	prefs, err := s.store.Preferences(userID)
	if err != nil {
		return fmt.Errorf("loading preferences: %w", err)
	}

	unlock := s.lockUser(userID)
	defer unlock()
	return s.accountant.CloseDay(prefs, fromDate)
}

// checkCategoryRef rejects writes pointing at a category the user does not
// have. Empty refs pass; whether they are allowed at all is decided by
// preference validation.
func (s *Service) checkCategoryRef(userID int64, ref string) error {
	if ref == "" {
		return nil
	}
	cats, err := s.store.Categories(userID)
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}
	if _, ok := category.NewService(cats).Get(ref); !ok {
		return fmt.Errorf("unknown category %s", ref)
	}
	return nil
}

// lockUser serializes chain-affecting writes for one user.
func (s *Service) lockUser(userID int64) func() {
	s.mu.Lock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (s *Service) audit(action auditlog.Action, userID, expenseID int64, amount, details string) error {
	if s.auditDir == "" {
		return nil
	}
	return auditlog.Append(s.auditDir, []auditlog.Entry{{
		Timestamp: time.Now().UTC(),
		UserID:    userID,
		Action:    action,
		ExpenseID: expenseID,
		Amount:    amount,
		Details:   details,
	}})
}

func validationError(verrs []ledger.ValidationError) error {
	msgs := make([]string, len(verrs))
	for i, ve := range verrs {
		msgs[i] = ve.Error()
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}
