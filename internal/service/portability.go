package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mvogttech/geekfit/internal/db"
	"github.com/mvogttech/geekfit/internal/xp"
)

const exportVersion = "1"

type ExportExercise struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	XPPerRep  int    `json:"xp_per_rep"`
	TotalXP   int64  `json:"total_xp"`
	Icon      string `json:"icon,omitempty"`
	CreatedAt string `json:"created_at"`
}

type ExportLog struct {
	ExerciseID int64  `json:"exercise_id"`
	Reps       int    `json:"reps"`
	XPEarned   int    `json:"xp_earned"`
	LoggedAt   string `json:"logged_at"`
}

type ExportStreak struct {
	CurrentStreak  int    `json:"current_streak"`
	LongestStreak  int    `json:"longest_streak"`
	LastActiveDate string `json:"last_active_date,omitempty"`
}

type ExportAchievement struct {
	Key        string `json:"key"`
	UnlockedAt string `json:"unlocked_at,omitempty"`
}

type ExportData struct {
	Version      string              `json:"version"`
	ExportedAt   string              `json:"exported_at"`
	Exercises    []ExportExercise    `json:"exercises"`
	Logs         []ExportLog         `json:"exercise_logs"`
	Streak       ExportStreak        `json:"streak"`
	Achievements []ExportAchievement `json:"achievements"`
	Settings     map[string]string   `json:"settings"`
}

func ExportSnapshot(sqldb *sql.DB) (*ExportData, error) {
	out := &ExportData{
		Version:    exportVersion,
		ExportedAt: time.Now().Format(timeLayout),
		Settings:   map[string]string{},
	}

	exRows, err := sqldb.Query(`SELECT id, name, xp_per_rep, total_xp, IFNULL(icon, ''), created_at FROM exercises ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("export exercises: %w", err)
	}
	for exRows.Next() {
		var item ExportExercise
		if err := exRows.Scan(&item.ID, &item.Name, &item.XPPerRep, &item.TotalXP, &item.Icon, &item.CreatedAt); err != nil {
			_ = exRows.Close()
			return nil, fmt.Errorf("scan export exercise: %w", err)
		}
		out.Exercises = append(out.Exercises, item)
	}
	_ = exRows.Close()

	logRows, err := sqldb.Query(`SELECT exercise_id, reps, xp_earned, logged_at FROM exercise_logs ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("export logs: %w", err)
	}
	for logRows.Next() {
		var item ExportLog
		if err := logRows.Scan(&item.ExerciseID, &item.Reps, &item.XPEarned, &item.LoggedAt); err != nil {
			_ = logRows.Close()
			return nil, fmt.Errorf("scan export log: %w", err)
		}
		out.Logs = append(out.Logs, item)
	}
	_ = logRows.Close()

	var lastRaw sql.NullString
	if err := sqldb.QueryRow(`SELECT current_streak, longest_streak, last_exercise_date FROM user_stats WHERE id = 1`).
		Scan(&out.Streak.CurrentStreak, &out.Streak.LongestStreak, &lastRaw); err != nil {
		return nil, fmt.Errorf("export streak state: %w", err)
	}
	if lastRaw.Valid {
		out.Streak.LastActiveDate = lastRaw.String
	}

	achRows, err := sqldb.Query(`SELECT key, IFNULL(unlocked_at, '') FROM achievements ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("export achievements: %w", err)
	}
	for achRows.Next() {
		var item ExportAchievement
		if err := achRows.Scan(&item.Key, &item.UnlockedAt); err != nil {
			_ = achRows.Close()
			return nil, fmt.Errorf("scan export achievement: %w", err)
		}
		out.Achievements = append(out.Achievements, item)
	}
	_ = achRows.Close()

	settings, err := ListSettings(sqldb)
	if err != nil {
		return nil, err
	}
	out.Settings = settings

	return out, nil
}

// validateSnapshot checks shape and referential integrity before the
// import touches any live state. The first violation rejects the
// whole snapshot.
func validateSnapshot(data *ExportData) error {
	if data == nil {
		return fmt.Errorf("%w: empty snapshot", ErrInvalidInput)
	}
	ids := make(map[int64]bool, len(data.Exercises))
	names := make(map[string]bool, len(data.Exercises))
	for _, ex := range data.Exercises {
		if ex.ID <= 0 {
			return fmt.Errorf("%w: exercise %q has invalid id %d", ErrInvalidInput, ex.Name, ex.ID)
		}
		if ids[ex.ID] {
			return fmt.Errorf("%w: duplicate exercise id %d", ErrInvalidInput, ex.ID)
		}
		ids[ex.ID] = true
		name := normalizeName(ex.Name)
		if name == "" {
			return fmt.Errorf("%w: exercise %d has empty name", ErrInvalidInput, ex.ID)
		}
		if names[name] {
			return fmt.Errorf("%w: duplicate exercise name %q", ErrInvalidInput, ex.Name)
		}
		names[name] = true
		if ex.XPPerRep <= 0 {
			return fmt.Errorf("%w: exercise %q has non-positive xp_per_rep", ErrInvalidInput, ex.Name)
		}
		if ex.TotalXP < 0 {
			return fmt.Errorf("%w: exercise %q has negative total_xp", ErrInvalidInput, ex.Name)
		}
	}
	ledger := make(map[int64]int64, len(data.Exercises))
	for i, lg := range data.Logs {
		if !ids[lg.ExerciseID] {
			return fmt.Errorf("%w: log %d references unknown exercise %d", ErrInvalidInput, i, lg.ExerciseID)
		}
		if lg.Reps <= 0 {
			return fmt.Errorf("%w: log %d has non-positive reps", ErrInvalidInput, i)
		}
		if lg.XPEarned < 0 {
			return fmt.Errorf("%w: log %d has negative xp_earned", ErrInvalidInput, i)
		}
		if _, err := time.ParseInLocation(timeLayout, lg.LoggedAt, time.Local); err != nil {
			return fmt.Errorf("%w: log %d logged_at %q is not YYYY-MM-DD HH:MM:SS", ErrInvalidInput, i, lg.LoggedAt)
		}
		ledger[lg.ExerciseID] += int64(lg.XPEarned)
	}
	// The log is the ground truth; a cached total that disagrees with
	// it would import in a state doctor immediately flags.
	for _, ex := range data.Exercises {
		if ex.TotalXP != ledger[ex.ID] {
			return fmt.Errorf("%w: exercise %q total_xp %d does not match its log entries (%d)", ErrInvalidInput, ex.Name, ex.TotalXP, ledger[ex.ID])
		}
	}
	if data.Streak.CurrentStreak < 0 || data.Streak.LongestStreak < data.Streak.CurrentStreak {
		return fmt.Errorf("%w: streak state violates longest >= current >= 0", ErrInvalidInput)
	}
	if data.Streak.LastActiveDate != "" {
		if _, err := time.ParseInLocation(dateLayout, data.Streak.LastActiveDate, time.Local); err != nil {
			return fmt.Errorf("%w: last_active_date %q is not YYYY-MM-DD", ErrInvalidInput, data.Streak.LastActiveDate)
		}
	}
	for _, a := range data.Achievements {
		if a.UnlockedAt == "" {
			continue
		}
		if _, err := time.ParseInLocation(timeLayout, a.UnlockedAt, time.Local); err != nil {
			return fmt.Errorf("%w: achievement %q unlocked_at %q is not YYYY-MM-DD HH:MM:SS", ErrInvalidInput, a.Key, a.UnlockedAt)
		}
	}
	for key, value := range data.Settings {
		validate, ok := settingValidators[key]
		if !ok {
			continue
		}
		if err := validate(value); err != nil {
			return fmt.Errorf("setting %q: %w", key, err)
		}
	}
	return nil
}

// ImportSnapshot validates data in full, then replaces all live state
// in one transaction. Levels are recomputed from the imported XP so
// the curve invariant holds regardless of what the payload claims.
func ImportSnapshot(sqldb *sql.DB, data *ExportData) error {
	if err := validateSnapshot(data); err != nil {
		return err
	}

	progressMu.Lock()
	defer progressMu.Unlock()

	tx, err := sqldb.Begin()
	if err != nil {
		return fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := clearUserData(tx); err != nil {
		return err
	}

	for _, ex := range data.Exercises {
		level := xp.LevelFromXP(ex.TotalXP)
		if _, err := tx.Exec(`INSERT INTO exercises(id, name, xp_per_rep, total_xp, current_level, icon, created_at) VALUES(?, ?, ?, ?, ?, ?, COALESCE(NULLIF(?, ''), CURRENT_TIMESTAMP))`,
			ex.ID, strings.TrimSpace(ex.Name), ex.XPPerRep, ex.TotalXP, level, nullableString(ex.Icon), ex.CreatedAt); err != nil {
			return fmt.Errorf("import exercise %q: %w", ex.Name, err)
		}
	}
	for i, lg := range data.Logs {
		if _, err := tx.Exec(`INSERT INTO exercise_logs(exercise_id, reps, xp_earned, logged_at) VALUES(?, ?, ?, ?)`,
			lg.ExerciseID, lg.Reps, lg.XPEarned, lg.LoggedAt); err != nil {
			return fmt.Errorf("import log %d: %w", i, err)
		}
	}
	if _, err := tx.Exec(`UPDATE user_stats SET current_streak = ?, longest_streak = ?, last_exercise_date = NULLIF(?, '') WHERE id = 1`,
		data.Streak.CurrentStreak, data.Streak.LongestStreak, data.Streak.LastActiveDate); err != nil {
		return fmt.Errorf("import streak state: %w", err)
	}
	for _, a := range data.Achievements {
		if a.UnlockedAt == "" {
			continue
		}
		if _, err := tx.Exec(`UPDATE achievements SET unlocked_at = ? WHERE key = ?`, a.UnlockedAt, a.Key); err != nil {
			return fmt.Errorf("import achievement %q: %w", a.Key, err)
		}
	}
	for key, value := range data.Settings {
		if _, ok := settingValidators[key]; !ok {
			continue
		}
		if _, err := tx.Exec(`
INSERT INTO settings(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`, key, value); err != nil {
			return fmt.Errorf("import setting %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import tx: %w", err)
	}
	return nil
}

func clearUserData(tx *sql.Tx) error {
	if _, err := tx.Exec(`DELETE FROM exercise_logs`); err != nil {
		return fmt.Errorf("clear exercise logs: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM exercises`); err != nil {
		return fmt.Errorf("clear exercises: %w", err)
	}
	if _, err := tx.Exec(`UPDATE user_stats SET current_streak = 0, longest_streak = 0, last_exercise_date = NULL WHERE id = 1`); err != nil {
		return fmt.Errorf("clear streak state: %w", err)
	}
	if _, err := tx.Exec(`UPDATE achievements SET unlocked_at = NULL`); err != nil {
		return fmt.Errorf("clear achievement unlocks: %w", err)
	}
	return nil
}

// ResetAll wipes logs, exercise XP, streak, and achievement unlocks,
// then re-seeds the default catalog.
func ResetAll(sqldb *sql.DB) error {
	progressMu.Lock()
	defer progressMu.Unlock()

	tx, err := sqldb.Begin()
	if err != nil {
		return fmt.Errorf("begin reset tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := clearUserData(tx); err != nil {
		return err
	}
	if err := db.SeedDefaultExercises(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset tx: %w", err)
	}
	return nil
}

func nullableString(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
