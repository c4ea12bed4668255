package service

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/mvogttech/geekfit/internal/model"
	"github.com/mvogttech/geekfit/internal/xp"
)

type LogResult struct {
	Exercise      string
	Reps          int
	XPEarned      int
	OldLevel      int
	NewLevel      int
	LeveledUp     bool
	Streak        int
	NewlyUnlocked []string
}

// One progress transaction at a time, regardless of which front end
// (CLI, reminder loop, automation) calls in.
var progressMu sync.Mutex

// LogExercise records one completed exercise: appends the log entry,
// charges XP, advances the streak, and evaluates achievements, all as
// a single transaction. ref may be an exact or partial exercise name.
func LogExercise(db *sql.DB, ref string, reps int) (*LogResult, error) {
	return LogExerciseAt(db, ref, reps, time.Now())
}

// LogExerciseAt is LogExercise with an explicit clock. "Today" is
// captured once from now, so a day boundary crossed mid-update cannot
// split the transaction across two dates.
func LogExerciseAt(db *sql.DB, ref string, reps int, now time.Time) (*LogResult, error) {
	// Fail fast before any mutation.
	exercise, err := FindExercise(db, ref)
	if err != nil {
		return nil, err
	}
	if reps <= 0 {
		return nil, fmt.Errorf("%w: reps must be > 0", ErrInvalidInput)
	}

	progressMu.Lock()
	defer progressMu.Unlock()

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin log transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Re-read inside the transaction; the catalog row is authoritative.
	var xpPerRep int
	var oldXP int64
	var oldLevel int
	if err := tx.QueryRow(`SELECT xp_per_rep, total_xp, current_level FROM exercises WHERE id = ?`, exercise.ID).Scan(&xpPerRep, &oldXP, &oldLevel); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: exercise %q", ErrNotFound, ref)
		}
		return nil, fmt.Errorf("read exercise: %w", err)
	}

	xpEarned := xpPerRep * reps
	newXP := oldXP + int64(xpEarned)
	newLevel := xp.LevelFromXP(newXP)

	if _, err := tx.Exec(`INSERT INTO exercise_logs(exercise_id, reps, xp_earned, logged_at) VALUES(?, ?, ?, ?)`,
		exercise.ID, reps, xpEarned, now.Format(timeLayout)); err != nil {
		return nil, fmt.Errorf("append exercise log: %w", err)
	}
	if _, err := tx.Exec(`UPDATE exercises SET total_xp = ?, current_level = ? WHERE id = ?`, newXP, newLevel, exercise.ID); err != nil {
		return nil, fmt.Errorf("apply xp: %w", err)
	}

	streak, err := advanceStreakTx(tx, now)
	if err != nil {
		return nil, err
	}

	today := formatDate(now)
	snap, err := snapshotForRules(tx, newLevel, streak.CurrentStreak, today)
	if err != nil {
		return nil, err
	}
	unlocked, err := evaluateAchievements(tx, snap, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit log transaction: %w", err)
	}

	return &LogResult{
		Exercise:      exercise.Name,
		Reps:          reps,
		XPEarned:      xpEarned,
		OldLevel:      oldLevel,
		NewLevel:      newLevel,
		LeveledUp:     newLevel > oldLevel,
		Streak:        streak.CurrentStreak,
		NewlyUnlocked: unlocked,
	}, nil
}

func advanceStreakTx(tx *sql.Tx, now time.Time) (model.StreakState, error) {
	var state model.StreakState
	var lastRaw sql.NullString
	if err := tx.QueryRow(`SELECT current_streak, longest_streak, last_exercise_date FROM user_stats WHERE id = 1`).Scan(&state.CurrentStreak, &state.LongestStreak, &lastRaw); err != nil {
		return state, fmt.Errorf("read streak state: %w", err)
	}
	if lastRaw.Valid {
		state.LastActiveDate = lastRaw.String
	}

	next := NextStreak(state, now)
	if _, err := tx.Exec(`UPDATE user_stats SET current_streak = ?, longest_streak = ?, last_exercise_date = ? WHERE id = 1`,
		next.CurrentStreak, next.LongestStreak, next.LastActiveDate); err != nil {
		return next, fmt.Errorf("update streak state: %w", err)
	}
	return next, nil
}
