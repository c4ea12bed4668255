package service

import (
	"time"

	"github.com/mvogttech/geekfit/internal/model"
)

// NextStreak computes the streak state after an activity on today's
// date. Same-day activity leaves the streak unchanged; a consecutive
// day extends it; any gap of two or more days, or a stored date in
// the future, resets it to 1. The longest streak never decreases.
func NextStreak(state model.StreakState, today time.Time) model.StreakState {
	next := state

	switch {
	case state.LastActiveDate == "":
		next.CurrentStreak = 1
	default:
		last, err := time.ParseInLocation(dateLayout, state.LastActiveDate, time.Local)
		if err != nil {
			// Unparseable state is treated like a fresh start.
			next.CurrentStreak = 1
			break
		}
		switch daysBetween(last, today) {
		case 0:
			// Second log on the same day does not double-count.
		case 1:
			next.CurrentStreak = state.CurrentStreak + 1
		default:
			next.CurrentStreak = 1
		}
	}

	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	next.LastActiveDate = formatDate(today)
	return next
}
