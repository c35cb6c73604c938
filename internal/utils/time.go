package utils

import (
	"fmt"
	"time"

	"github.com/foyerapp/foyer/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// StartOfDay returns t truncated to local midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AddDays returns the start of the day n calendar days after t.
// Calendar arithmetic, so DST transitions do not shift the result off midnight.
func AddDays(t time.Time, n int) time.Time {
	return StartOfDay(t).AddDate(0, 0, n)
}

// SameCalendarDate reports whether a and b fall on the same calendar
// date, ignoring time-of-day. b is evaluated in a's location so that a
// deadline stored in another zone compares against the reference day.
func SameCalendarDate(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DateKey formats t's calendar date as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// WholeDaysBetween returns the number of whole calendar days from
// earlier to later. Negative when later precedes earlier.
func WholeDaysBetween(earlier, later time.Time) int {
	e := StartOfDay(earlier)
	l := StartOfDay(later.In(earlier.Location()))
	return int(l.Sub(e).Hours() / 24)
}

// ParseClockTime parses a wall-clock time string in the standard format (HH:MM).
func ParseClockTime(timeStr string) (hour, minute int, err error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}

// At combines a calendar date and a wall-clock time (HH:MM) into a
// concrete instant in the date's location.
func At(date time.Time, clock string) (time.Time, error) {
	hour, minute, err := ParseClockTime(clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) at midnight in
// the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
