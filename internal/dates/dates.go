// Package dates provides calendar-date helpers. All engine computations
// treat dates as local calendar days, never instants: values are normalized
// to midnight UTC so two events on the same day always compare equal
// regardless of what timestamp the storage layer handed us.
package dates

import "time"

// Midnight truncates t to its calendar date at midnight UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// EndOfMonth returns the last calendar day of the given month.
func EndOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Sunday on or before t. Weeks are fixed
// Sunday through Saturday, independent of locale.
func WeekStart(t time.Time) time.Time {
	d := Midnight(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// WeekEnd returns the Saturday on or after t.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 6)
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
