// Package availability derives the set of bookable time slots and dates
// for the consultation calendar.  It is pure: nothing here reads the store
// or keeps state, so two calls with the same inputs always produce the
// same output.  Filtering against existing bookings is the caller's job.
package availability

import (
	"fmt"
	"time"
)

// The daily service window.  Slots begin no earlier than the open time and
// the last slot's start must be strictly before the close time.  Both are
// configured constants, not derived from data.
const (
	windowOpenMinutes  = 12 * 60 // 12:00
	windowCloseMinutes = 18 * 60 // 18:00
)

// Slots returns the ordered candidate start times for one calendar date
// and one duration.  Successive starts are spaced exactly durationMinutes
// apart, beginning at the window open time, while the start remains before
// the window close.  A duration that does not evenly divide the window
// simply stops early; no truncated slot is emitted.  The date does not
// influence the sequence (the window is the same every day) but is part of
// the operation so callers pair each returned time with it.
func Slots(date string, durationMinutes int) []string {
	if durationMinutes <= 0 {
		return nil
	}
	var out []string
	for start := windowOpenMinutes; start < windowCloseMinutes; start += durationMinutes {
		out = append(out, formatTimeOfDay(start))
	}
	return out
}

// BookableDates returns every date of the given month that is on or after
// today, same-day inclusive, in ascending order.  An entirely past month
// yields an empty slice; rolling over to the next month in that case is a
// navigation policy owned by the caller.
func BookableDates(year int, month time.Month, today time.Time) []string {
	loc := today.Location()
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)

	var out []string
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		if d.Before(todayDate) {
			continue
		}
		out = append(out, d.Format("2006-01-02"))
	}
	return out
}

// NextMonth returns the month following the given one.  Navigating forward
// is always permitted; there is no upper bound on how far ahead a visitor
// may browse.
func NextMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return t.Year(), t.Month()
}

// PrevMonth returns the month preceding the given one.  Callers must gate
// it with CanGoToPrevMonth; the function itself does not enforce the bound.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return t.Year(), t.Month()
}

// CanGoToPrevMonth reports whether navigating back from the given month is
// permitted: the resulting month must still be today's month or later.
func CanGoToPrevMonth(year int, month time.Month, today time.Time) bool {
	py, pm := PrevMonth(year, month)
	if py != today.Year() {
		return py > today.Year()
	}
	return pm >= today.Month()
}

func formatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
