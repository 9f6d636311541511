package services

import "time"

// DateLayout is the calendar-day format stored in usage and practice records.
const DateLayout = "2006-01-02"

// Clock supplies the current time. Swap it in tests to cross midnight.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in local time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Today formats now as a calendar day in now's own location.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// IsSameDay reports whether the stored YYYY-MM-DD date is the calendar day of now.
func IsSameDay(stored string, now time.Time) bool {
	return stored == Today(now)
}
