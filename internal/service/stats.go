package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mvogttech/geekfit/internal/model"
)

func GetStats(db *sql.DB) (*model.AggregateStats, error) {
	stats := &model.AggregateStats{}
	if err := db.QueryRow(`SELECT COALESCE(SUM(total_xp), 0), COALESCE(SUM(current_level), 0), COUNT(1) FROM exercises`).
		Scan(&stats.TotalXP, &stats.TotalLevel, &stats.ExerciseCount); err != nil {
		return nil, fmt.Errorf("aggregate exercise stats: %w", err)
	}

	var lastRaw sql.NullString
	if err := db.QueryRow(`SELECT current_streak, longest_streak, last_exercise_date FROM user_stats WHERE id = 1`).
		Scan(&stats.CurrentStreak, &stats.LongestStreak, &lastRaw); err != nil {
		return nil, fmt.Errorf("read streak state: %w", err)
	}
	if lastRaw.Valid {
		stats.LastActiveDate = lastRaw.String
	}
	return stats, nil
}

type TodayActivity struct {
	Exercise string
	Reps     int
	XPEarned int
}

type TodayStatus struct {
	Date       string
	XPEarned   int64
	GoalXP     int
	Activities []TodayActivity
}

func TodaySummary(db *sql.DB, target time.Time) (*TodayStatus, error) {
	status := &TodayStatus{Date: formatDate(target)}

	if err := db.QueryRow(`SELECT COALESCE(SUM(xp_earned), 0) FROM exercise_logs WHERE DATE(logged_at) = ?`, status.Date).Scan(&status.XPEarned); err != nil {
		return nil, fmt.Errorf("sum today's xp: %w", err)
	}

	settings, err := GetSettings(db)
	if err != nil {
		return nil, err
	}
	status.GoalXP = settings.DailyGoalXP

	rows, err := db.Query(`
SELECT e.name, SUM(el.reps), SUM(el.xp_earned)
FROM exercise_logs el
JOIN exercises e ON e.id = el.exercise_id
WHERE DATE(el.logged_at) = ?
GROUP BY e.name
ORDER BY SUM(el.xp_earned) DESC`, status.Date)
	if err != nil {
		return nil, fmt.Errorf("group today's activities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a TodayActivity
		if err := rows.Scan(&a.Exercise, &a.Reps, &a.XPEarned); err != nil {
			return nil, fmt.Errorf("scan today's activity: %w", err)
		}
		status.Activities = append(status.Activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate today's activities: %w", err)
	}
	return status, nil
}
