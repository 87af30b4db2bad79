package validate

import (
	"fmt"
	"time"
)

// DateLayout is the wire/input format for calendar dates.
const DateLayout = "2006-01-02"

// NormalizeUTC strips the time-of-day component so dates compare by UTC
// calendar day only. Comparing un-normalized values near a timezone boundary
// produces false rejections.
func NormalizeUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Age returns the number of whole years between birth and now.
func Age(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

// formatUS renders a date as M/D/YYYY for user-facing boundary messages.
func formatUS(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}
