package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mvogttech/geekfit/internal/model"
)

// History returns log entries from the last days calendar days, most
// recent first. The log is the ground truth; nothing here is cached.
func History(db *sql.DB, days int, limit int) ([]model.ExerciseLog, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days must be > 0", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = 50
	}
	cutoff := time.Now().AddDate(0, 0, -days).Format(timeLayout)

	rows, err := db.Query(`
SELECT el.id, el.exercise_id, e.name, el.reps, el.xp_earned, el.logged_at
FROM exercise_logs el
JOIN exercises e ON e.id = el.exercise_id
WHERE el.logged_at >= ?
ORDER BY el.logged_at DESC, el.id DESC
LIMIT ?`, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	items := make([]model.ExerciseLog, 0)
	for rows.Next() {
		var item model.ExerciseLog
		var loggedRaw string
		if err := rows.Scan(&item.ID, &item.ExerciseID, &item.ExerciseName, &item.Reps, &item.XPEarned, &loggedRaw); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		logged, err := time.ParseInLocation(timeLayout, loggedRaw, time.Local)
		if err != nil {
			return nil, fmt.Errorf("parse logged_at: %w", err)
		}
		item.LoggedAt = logged
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return items, nil
}
