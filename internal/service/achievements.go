package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mvogttech/geekfit/internal/model"
)

// FlagshipExercise is the exercise the century achievement counts
// daily reps for.
const FlagshipExercise = "Pushups"

// ruleSnapshot is the read-only aggregate state an achievement
// predicate sees, captured after the transaction's updates.
type ruleSnapshot struct {
	ExerciseLevel     int
	Streak            int
	TotalLevel        int
	DistinctExercises int
	LogCount          int
	FlagshipRepsToday int
}

type achievementRule struct {
	key       string
	satisfied func(ruleSnapshot) bool
}

// All rules are monotonic: once true they stay true (or, for
// first-exercise and century, the unlock has already happened), so
// evaluation order does not matter.
var achievementRules = []achievementRule{
	{"first-exercise", func(s ruleSnapshot) bool { return s.LogCount == 1 }},
	{"skill-10", func(s ruleSnapshot) bool { return s.ExerciseLevel >= 10 }},
	{"skill-25", func(s ruleSnapshot) bool { return s.ExerciseLevel >= 25 }},
	{"skill-50", func(s ruleSnapshot) bool { return s.ExerciseLevel >= 50 }},
	{"total-100", func(s ruleSnapshot) bool { return s.TotalLevel >= 100 }},
	{"week-streak", func(s ruleSnapshot) bool { return s.Streak >= 7 }},
	{"month-streak", func(s ruleSnapshot) bool { return s.Streak >= 30 }},
	{"variety", func(s ruleSnapshot) bool { return s.DistinctExercises >= 5 }},
	{"century", func(s ruleSnapshot) bool { return s.FlagshipRepsToday >= 100 }},
}

// evaluateAchievements unlocks every still-locked achievement whose
// predicate holds and returns their keys. Already-unlocked keys are
// untouched and never re-emitted.
func evaluateAchievements(tx *sql.Tx, snap ruleSnapshot, now time.Time) ([]string, error) {
	unlocked := make([]string, 0)
	stamp := now.Format(timeLayout)
	for _, rule := range achievementRules {
		if !rule.satisfied(snap) {
			continue
		}
		res, err := tx.Exec(`UPDATE achievements SET unlocked_at = ? WHERE key = ? AND unlocked_at IS NULL`, stamp, rule.key)
		if err != nil {
			return nil, fmt.Errorf("unlock achievement %q: %w", rule.key, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("resolve unlock count for %q: %w", rule.key, err)
		}
		if affected > 0 {
			unlocked = append(unlocked, rule.key)
		}
	}
	return unlocked, nil
}

// snapshotForRules gathers the aggregate counters the ruleset needs,
// inside the same transaction that just applied the update.
func snapshotForRules(tx *sql.Tx, exerciseLevel, streak int, today string) (ruleSnapshot, error) {
	snap := ruleSnapshot{ExerciseLevel: exerciseLevel, Streak: streak}

	if err := tx.QueryRow(`SELECT COUNT(1) FROM exercise_logs`).Scan(&snap.LogCount); err != nil {
		return snap, fmt.Errorf("count logs: %w", err)
	}
	if err := tx.QueryRow(`SELECT COUNT(DISTINCT exercise_id) FROM exercise_logs`).Scan(&snap.DistinctExercises); err != nil {
		return snap, fmt.Errorf("count distinct exercises: %w", err)
	}
	if err := tx.QueryRow(`SELECT COALESCE(SUM(current_level), 0) FROM exercises`).Scan(&snap.TotalLevel); err != nil {
		return snap, fmt.Errorf("sum total level: %w", err)
	}
	if err := tx.QueryRow(`
SELECT COALESCE(SUM(el.reps), 0)
FROM exercise_logs el
JOIN exercises e ON e.id = el.exercise_id
WHERE e.name = ? AND DATE(el.logged_at) = ?`, FlagshipExercise, today).Scan(&snap.FlagshipRepsToday); err != nil {
		return snap, fmt.Errorf("sum flagship reps today: %w", err)
	}
	return snap, nil
}

func ListAchievements(db *sql.DB) ([]model.Achievement, error) {
	rows, err := db.Query(`
SELECT id, key, name, IFNULL(description, ''), IFNULL(icon, ''), unlocked_at
FROM achievements
ORDER BY unlocked_at IS NULL, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	items := make([]model.Achievement, 0)
	for rows.Next() {
		var item model.Achievement
		var unlockedRaw sql.NullString
		if err := rows.Scan(&item.ID, &item.Key, &item.Name, &item.Description, &item.Icon, &unlockedRaw); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		if unlockedRaw.Valid {
			if at, err := time.ParseInLocation(timeLayout, unlockedRaw.String, time.Local); err == nil {
				item.UnlockedAt = &at
			}
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate achievements: %w", err)
	}
	return items, nil
}
