package timeutil

import (
	"os"
	"regexp"
	"time"
)

// Store-local time handling. Daily counts and activity reports are keyed by
// the store's calendar date, not UTC.

const defaultTZ = "America/Phoenix"

var usDate = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)

// StoreLocation resolves STORE_TZ, falling back to the default store zone.
// An unknown zone name falls back to UTC rather than failing the request.
func StoreLocation() *time.Location {
	name := os.Getenv("STORE_TZ")
	if name == "" {
		name = defaultTZ
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LocalDate formats t as the store-local YYYY-MM-DD date string.
func LocalDate(t time.Time) string {
	return t.In(StoreLocation()).Format("2006-01-02")
}

// Today is the store-local date string for the current moment.
func Today() string {
	return LocalDate(time.Now())
}

// NormalizeDate accepts YYYY-MM-DD or MM/DD/YYYY and returns YYYY-MM-DD.
// Anything else is returned unchanged for the caller to reject.
func NormalizeDate(s string) string {
	if usDate.MatchString(s) {
		if d, err := time.Parse("01/02/2006", s); err == nil {
			return d.Format("2006-01-02")
		}
	}
	return s
}

// DayBounds returns the UTC instants covering the store-local date.
func DayBounds(localDate string) (time.Time, time.Time, error) {
	loc := StoreLocation()
	day, err := time.ParseInLocation("2006-01-02", localDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := day.UTC()
	return start, day.AddDate(0, 0, 1).UTC(), nil
}
