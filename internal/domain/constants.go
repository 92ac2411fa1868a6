package domain

import "time"

// Time format constants
const (
	DateFormat    = "2006-01-02" // YYYY-MM-DD
	RefDateFormat = "20060102"   // YYYYMMDD
)

// Booking constants
const (
	ReferencePrefix          = "NFA"
	ReferenceSuffixLength    = 6
	MaxReferenceAttempts     = 5
	MaxAvailabilityRangeDays = 366
	MaxNameLength            = 100
)

// NormalizeDate strips the time component, keeping the calendar date in UTC
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateKey formats a date as YYYY-MM-DD
func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}

// IsWeekend returns true for Saturday and Sunday
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
