// Package datewindow resolves "today" into a half-open UTC day interval.
// All day boundaries are UTC midnights so an expense lands on the same
// calendar day regardless of host or client timezone.
package datewindow

import (
	"time"

	"github.com/sprout-dev/sprout/internal/model"
)

// Window is a half-open interval [Start, End) covering one UTC calendar day.
type Window struct {
	Start time.Time
	End   time.Time
}

// Resolve returns the day window for the user's "today" shifted by dayOffset
// calendar days. A simulated date in the preferences overrides now.
func Resolve(prefs model.Preferences, dayOffset int, now time.Time) Window {
	base := now.UTC()
	if prefs.SimulatedDate != nil {
		base = prefs.SimulatedDate.UTC()
	}
	return ForDate(truncateDay(base).AddDate(0, 0, dayOffset))
}

// ForDate returns the window covering the UTC calendar day of t.
func ForDate(t time.Time) Window {
	start := truncateDay(t.UTC())
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// Date returns the UTC midnight identifying the window's day.
func (w Window) Date() time.Time {
	return w.Start
}

// Contains reports whether t falls inside [Start, End).
func (w Window) Contains(t time.Time) bool {
	u := t.UTC()
	return !u.Before(w.Start) && u.Before(w.End)
}

// Shift returns the window moved by days calendar days.
func (w Window) Shift(days int) Window {
	return ForDate(w.Start.AddDate(0, 0, days))
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
