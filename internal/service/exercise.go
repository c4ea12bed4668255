package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mvogttech/geekfit/internal/model"
)

func ListExercises(db *sql.DB) ([]model.Exercise, error) {
	rows, err := db.Query(`
SELECT id, name, xp_per_rep, total_xp, current_level, IFNULL(icon, ''), created_at
FROM exercises
ORDER BY current_level DESC, total_xp DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	items := make([]model.Exercise, 0)
	for rows.Next() {
		item, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercises: %w", err)
	}
	return items, nil
}

// FindExercise resolves a name or fragment to a catalog entry.
// Case-insensitive exact match wins; otherwise the first substring
// match in catalog insertion order.
func FindExercise(db *sql.DB, ref string) (*model.Exercise, error) {
	name := normalizeName(ref)
	if name == "" {
		return nil, fmt.Errorf("%w: exercise name is required", ErrInvalidInput)
	}

	row := db.QueryRow(`
SELECT id, name, xp_per_rep, total_xp, current_level, IFNULL(icon, ''), created_at
FROM exercises WHERE LOWER(name) = ?`, name)
	item, err := scanExercise(row)
	if err == nil {
		return &item, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	row = db.QueryRow(`
SELECT id, name, xp_per_rep, total_xp, current_level, IFNULL(icon, ''), created_at
FROM exercises WHERE LOWER(name) LIKE ? ORDER BY id ASC LIMIT 1`, "%"+name+"%")
	item, err = scanExercise(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: no exercise matching %q", ErrNotFound, ref)
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// SearchExercises returns up to limit fuzzy matches, strongest levels
// first. Used by the quick command and the reminder picker.
func SearchExercises(db *sql.DB, term string, limit int) ([]model.Exercise, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.Query(`
SELECT id, name, xp_per_rep, total_xp, current_level, IFNULL(icon, ''), created_at
FROM exercises
WHERE LOWER(name) LIKE ?
ORDER BY current_level DESC, id ASC
LIMIT ?`, "%"+normalizeName(term)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search exercises: %w", err)
	}
	defer rows.Close()

	items := make([]model.Exercise, 0)
	for rows.Next() {
		item, err := scanExercise(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercise search: %w", err)
	}
	return items, nil
}

func AddExercise(db *sql.DB, name string, xpPerRep int) (int64, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: exercise name is required", ErrInvalidInput)
	}
	if xpPerRep <= 0 {
		return 0, fmt.Errorf("%w: xp per rep must be > 0", ErrInvalidInput)
	}
	var existing int
	if err := db.QueryRow(`SELECT COUNT(1) FROM exercises WHERE LOWER(name) = ?`, normalizeName(trimmed)).Scan(&existing); err != nil {
		return 0, fmt.Errorf("check exercise name: %w", err)
	}
	if existing > 0 {
		return 0, fmt.Errorf("%w: exercise %q already exists", ErrInvalidInput, trimmed)
	}
	res, err := db.Exec(`INSERT INTO exercises(name, xp_per_rep, total_xp, current_level) VALUES(?, ?, 0, 1)`, trimmed, xpPerRep)
	if err != nil {
		return 0, fmt.Errorf("add exercise: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve exercise id: %w", err)
	}
	return id, nil
}

// DeleteExercise removes an exercise together with its log entries.
func DeleteExercise(db *sql.DB, id int64) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete exercise: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM exercise_logs WHERE exercise_id = ?`, id); err != nil {
		return fmt.Errorf("delete exercise logs: %w", err)
	}
	res, err := tx.Exec(`DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("resolve delete count: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: exercise %d", ErrNotFound, id)
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExercise(row rowScanner) (model.Exercise, error) {
	var item model.Exercise
	var createdRaw string
	if err := row.Scan(&item.ID, &item.Name, &item.XPPerRep, &item.TotalXP, &item.CurrentLevel, &item.Icon, &createdRaw); err != nil {
		if err == sql.ErrNoRows {
			return item, err
		}
		return item, fmt.Errorf("scan exercise: %w", err)
	}
	if created, err := time.ParseInLocation(timeLayout, createdRaw, time.Local); err == nil {
		item.CreatedAt = created
	} else if created, err := time.Parse(time.RFC3339, createdRaw); err == nil {
		item.CreatedAt = created
	}
	return item, nil
}
