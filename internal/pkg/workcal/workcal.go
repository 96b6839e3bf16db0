// Package workcal provides working-day calendar arithmetic for the allocator.
// The shop runs Monday through Friday; dates are normalized to midnight UTC.
package workcal

import "time"

// Midnight truncates t to the start of its day in UTC.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func IsWorkday(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// NextWorkday returns the first working day strictly after t.
func NextWorkday(t time.Time) time.Time {
	d := Midnight(t).AddDate(0, 0, 1)
	for !IsWorkday(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// EnsureWorkday returns t itself when it is a working day, otherwise the next
// working day after it.
func EnsureWorkday(t time.Time) time.Time {
	d := Midnight(t)
	for !IsWorkday(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// CalendarDaysBetween returns the number of calendar days from a to b,
// negative when b precedes a.
func CalendarDaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)).Hours() / 24)
}

// DayKey formats a date as the ISO day string used as load-matrix key.
func DayKey(t time.Time) string {
	return Midnight(t).Format("2006-01-02")
}
