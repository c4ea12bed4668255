// Package reminder runs the background exercise-reminder loop. It
// owns no engine state; each tick it picks a suggestion and hands it
// to the caller, who decides how to surface it.
package reminder

import (
	"context"
	"time"

	"github.com/mvogttech/geekfit/internal/model"
)

type Suggestion struct {
	Exercise model.Exercise
	Reps     int
}

type Scheduler struct {
	Interval time.Duration
	Pick     func() (Suggestion, error)
	Notify   func(Suggestion)
}

// Run polls until the context is cancelled. Pick errors skip the tick
// rather than stopping the loop; the next interval retries naturally.
func (s *Scheduler) Run(ctx context.Context) error {
	interval := s.Interval
	if interval <= 0 {
		interval = 2 * time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			suggestion, err := s.Pick()
			if err != nil {
				continue
			}
			s.Notify(suggestion)
		}
	}
}
