package utils

import "time"

// DateLayout is the wire format every schedule endpoint uses.
const DateLayout = "2006-01-02"

// blockedDatesWindowDays is how far ahead the blocked-dates query looks.
const blockedDatesWindowDays = 180

// FormatDate renders a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current date as YYYY-MM-DD.
func Today() string {
	return FormatDate(time.Now().UTC())
}

// BlockedDatesWindow returns the default [today, today+180d] query range.
func BlockedDatesWindow() (string, string) {
	now := time.Now().UTC()
	return FormatDate(now), FormatDate(now.AddDate(0, 0, blockedDatesWindowDays))
}

// ValidDate reports whether s parses as YYYY-MM-DD.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
