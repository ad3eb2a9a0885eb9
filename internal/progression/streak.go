package progression

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format stored in Character.LastActiveDate.
const DateLayout = "2006-01-02"

// FormatDate truncates t to its calendar day in t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysBetween returns the number of calendar days from last to today. Both are
// YYYY-MM-DD strings so time-of-day and zone offsets never matter.
func DaysBetween(last, today string) (int, error) {
	l, err := time.Parse(DateLayout, last)
	if err != nil {
		return 0, fmt.Errorf("parse last active date: %w", err)
	}
	t, err := time.Parse(DateLayout, today)
	if err != nil {
		return 0, fmt.Errorf("parse today: %w", err)
	}
	// Both parse as UTC midnight, so the difference is an exact multiple of 24h.
	return int(t.Sub(l).Hours() / 24), nil
}

// NextStreak applies the streak policy for a day difference: same day keeps
// the streak, the next day extends it, a longer gap restarts it at 1. A
// negative difference (clock moved backwards) keeps the streak.
func NextStreak(streak, daysDiff int) int {
	switch {
	case daysDiff == 1:
		return streak + 1
	case daysDiff > 1:
		return 1
	default:
		return streak
	}
}
