// Package db owns the sqlite file underneath the progress engine:
// opening it, migrating the schema, and seeding the default exercise
// catalog, achievements, and settings.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open returns a single-connection handle to the geekfit database at
// path. One connection serializes every progress transaction at the
// driver level; WAL plus a busy timeout keeps a second process (a
// running reminder loop, a backup) from failing on a log in flight.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	for _, pragma := range []string{
		`PRAGMA foreign_keys = ON;`,
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA busy_timeout = 5000;`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			return nil, fmt.Errorf("apply %s: %w", pragma, err)
		}
	}
	return db, nil
}
