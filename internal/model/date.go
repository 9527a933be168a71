package model

import "time"

// DateLayout is the calendar-date key format used throughout the engine.
// Keys compare chronologically as plain strings.
const DateLayout = "2006-01-02"

// DateKey formats a time as a local calendar-date key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidDateKey reports whether s is a well-formed YYYY-MM-DD date.
func ValidDateKey(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
