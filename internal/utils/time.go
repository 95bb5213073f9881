package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/weeklit/internal/constants"
)

// StartOfWeek returns midnight on the Monday of the ISO week containing t.
// Sunday counts as day 7 and belongs to the preceding Monday's week.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		offset = 6
	}
	return day.AddDate(0, 0, -offset)
}

// StartOfDay strips the time-of-day, keeping t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ISODate returns t as YYYY-MM-DD in t's own calendar.
func ISODate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// FormatDisplay returns "January 15": full month name, unpadded day, no year.
func FormatDisplay(t time.Time) string {
	return t.Format(constants.DisplayDateFormat)
}

// FormatShort returns "Jan 15".
func FormatShort(t time.Time) string {
	return t.Format(constants.ShortDateFormat)
}

// ParseDate parses a YYYY-MM-DD string at midnight in loc.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// AddDays shifts a YYYY-MM-DD string by n calendar days.
func AddDays(dateStr string, n int) (string, error) {
	t, err := ParseDate(dateStr, time.UTC)
	if err != nil {
		return "", err
	}
	return ISODate(t.AddDate(0, 0, n)), nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
