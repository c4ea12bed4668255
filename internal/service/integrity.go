package service

import (
	"database/sql"
	"fmt"

	"github.com/mvogttech/geekfit/internal/xp"
)

type DoctorReport struct {
	OrphanLogs       int `json:"orphan_logs"`
	LedgerMismatches int `json:"ledger_mismatches"`
	LevelMismatches  int `json:"level_mismatches"`
	StreakViolations int `json:"streak_violations"`
	FixedExercises   int `json:"fixed_exercises,omitempty"`
}

func (r DoctorReport) Clean() bool {
	return r.OrphanLogs == 0 && r.LedgerMismatches == 0 && r.LevelMismatches == 0 && r.StreakViolations == 0
}

// RunDoctor checks the invariants the engine maintains: every log row
// references a catalog entry, each exercise's cached total_xp equals
// the sum of its log entries, current_level matches the curve, and
// longest_streak >= current_streak. With fix set, totals and levels
// are recomputed from the append-only log.
func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}

	if err := db.QueryRow(`
SELECT COUNT(1) FROM exercise_logs el
LEFT JOIN exercises e ON e.id = el.exercise_id
WHERE e.id IS NULL`).Scan(&report.OrphanLogs); err != nil {
		return report, fmt.Errorf("doctor orphan check: %w", err)
	}

	rows, err := db.Query(`
SELECT e.id, e.total_xp, e.current_level, COALESCE(SUM(el.xp_earned), 0)
FROM exercises e
LEFT JOIN exercise_logs el ON el.exercise_id = e.id
GROUP BY e.id`)
	if err != nil {
		return report, fmt.Errorf("doctor ledger query: %w", err)
	}
	type mismatch struct {
		id       int64
		ledgerXP int64
	}
	toFix := make([]mismatch, 0)
	for rows.Next() {
		var id int64
		var totalXP, ledgerXP int64
		var level int
		if err := rows.Scan(&id, &totalXP, &level, &ledgerXP); err != nil {
			_ = rows.Close()
			return report, fmt.Errorf("doctor ledger scan: %w", err)
		}
		broken := false
		if totalXP != ledgerXP {
			report.LedgerMismatches++
			broken = true
		}
		if level != xp.LevelFromXP(totalXP) {
			report.LevelMismatches++
			broken = true
		}
		if broken {
			toFix = append(toFix, mismatch{id: id, ledgerXP: ledgerXP})
		}
	}
	_ = rows.Close()

	var current, longest int
	if err := db.QueryRow(`SELECT current_streak, longest_streak FROM user_stats WHERE id = 1`).Scan(&current, &longest); err != nil {
		return report, fmt.Errorf("doctor streak query: %w", err)
	}
	if longest < current || current < 0 {
		report.StreakViolations++
	}

	if fix && len(toFix) > 0 {
		tx, err := db.Begin()
		if err != nil {
			return report, fmt.Errorf("doctor fix begin tx: %w", err)
		}
		for _, m := range toFix {
			if _, err := tx.Exec(`UPDATE exercises SET total_xp = ?, current_level = ? WHERE id = ?`,
				m.ledgerXP, xp.LevelFromXP(m.ledgerXP), m.id); err != nil {
				_ = tx.Rollback()
				return report, fmt.Errorf("doctor fix exercise %d: %w", m.id, err)
			}
			report.FixedExercises++
		}
		if err := tx.Commit(); err != nil {
			return report, fmt.Errorf("doctor fix commit: %w", err)
		}
	}

	return report, nil
}
