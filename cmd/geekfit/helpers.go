package geekfit

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mvogttech/geekfit/internal/app"
	"github.com/mvogttech/geekfit/internal/db"
)

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

func parseIntArg(name, value string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	return v, nil
}

func formatXP(xp int64) string {
	switch {
	case xp >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(xp)/1_000_000)
	case xp >= 1000:
		return fmt.Sprintf("%.1fK", float64(xp)/1000)
	default:
		return fmt.Sprintf("%d", xp)
	}
}

func progressBar(fraction float64, width int) string {
	// A zero goal divides to NaN upstream; render it as empty rather
	// than handing strings.Repeat a negative count.
	if math.IsNaN(fraction) || fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("=", filled), strings.Repeat(" ", width-filled), int(fraction*100))
}
