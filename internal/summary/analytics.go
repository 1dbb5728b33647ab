package summary

import (
	"fmt"
	"time"

	"github.com/sprout-dev/sprout/internal/analytics"
	"github.com/sprout-dev/sprout/internal/datewindow"
	"github.com/sprout-dev/sprout/internal/model"
)

// DailyAnalytics returns the zero-filled daily series plus its summary for
// the trailing days ending at the offset day.
func (s *Service) DailyAnalytics(userID int64, dayOffset, days int, now time.Time) ([]analytics.DailyPoint, analytics.SeriesSummary, error) {
	prefs, today, expenses, err := s.windowExpenses(userID, dayOffset, days, now)
	if err != nil {
		return nil, analytics.SeriesSummary{}, err
	}
	points := analytics.DailySeries(expenses, today, days)
	return points, analytics.Summarize(points, prefs.DailyLimit), nil
}

// CategoryAnalytics returns the category breakdown for the trailing days.
func (s *Service) CategoryAnalytics(userID int64, dayOffset, days int, now time.Time) ([]analytics.CategorySlice, error) {
	_, today, expenses, err := s.windowExpenses(userID, dayOffset, days, now)
	if err != nil {
		return nil, err
	}
	categories, err := s.store.Categories(userID)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	return analytics.CategoryBreakdown(expenses, categories, today, days), nil
}

// Heatmap returns the weekly heatmap grid for the trailing days.
func (s *Service) Heatmap(userID int64, dayOffset, days int, now time.Time) ([][]analytics.HeatmapCell, error) {
	_, today, expenses, err := s.windowExpenses(userID, dayOffset, days, now)
	if err != nil {
		return nil, err
	}
	return analytics.WeeklyHeatmap(expenses, today, days), nil
}

func (s *Service) windowExpenses(userID int64, dayOffset, days int, now time.Time) (model.Preferences, datewindow.Window, []model.Expense, error) {
	prefs, err := s.store.Preferences(userID)
	if err != nil {
		return model.Preferences{}, datewindow.Window{}, nil, fmt.Errorf("loading preferences: %w", err)
	}
	today := datewindow.Resolve(prefs, dayOffset, now)
	start := today.Shift(-(days - 1)).Start
	expenses, err := s.store.ExpensesBetween(userID, start, today.End, "")
	if err != nil {
		return model.Preferences{}, datewindow.Window{}, nil, fmt.Errorf("loading expenses: %w", err)
	}
	return prefs, today, expenses, nil
}
