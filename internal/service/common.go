package service

import (
	"errors"
	"strings"
	"time"
)

// Error kinds surfaced to callers. Persistence failures are returned
// as wrapped driver errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "2006-01-02 15:04:05"
)

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// daysBetween counts whole calendar days from one local date to
// another, ignoring the time of day. Negative when to precedes from.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
