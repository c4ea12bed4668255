package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/mvogttech/geekfit/internal/service"
)

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func TestLogExerciseAwardsXPAndLevels(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.Local)
	res, err := service.LogExerciseAt(db, "pushups", 20, now)
	if err != nil {
		t.Fatalf("log exercise: %v", err)
	}
	if res.Exercise != "Pushups" {
		t.Errorf("exercise = %q, want Pushups", res.Exercise)
	}
	if res.XPEarned != 200 {
		t.Errorf("xp earned = %d, want 200", res.XPEarned)
	}
	// 200 XP crosses the level 2 (83) and level 3 (174) thresholds.
	if res.OldLevel != 1 || res.NewLevel != 3 || !res.LeveledUp {
		t.Errorf("levels = %d -> %d (leveled up %v), want 1 -> 3 (true)", res.OldLevel, res.NewLevel, res.LeveledUp)
	}
	if res.Streak != 1 {
		t.Errorf("streak = %d, want 1", res.Streak)
	}
	if !containsKey(res.NewlyUnlocked, "first-exercise") {
		t.Errorf("newly unlocked = %v, want first-exercise", res.NewlyUnlocked)
	}

	var totalXP int64
	var level int
	if err := db.QueryRow(`SELECT total_xp, current_level FROM exercises WHERE name = 'Pushups'`).Scan(&totalXP, &level); err != nil {
		t.Fatalf("read exercise row: %v", err)
	}
	if totalXP != 200 || level != 3 {
		t.Errorf("stored total_xp = %d level = %d, want 200 and 3", totalXP, level)
	}
}

func TestLogExerciseFailsFastBeforeMutation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.LogExercise(db, "time travel", 10); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("unknown exercise: err = %v, want ErrNotFound", err)
	}
	if _, err := service.LogExercise(db, "pushups", 0); !errors.Is(err, service.ErrInvalidInput) {
		t.Fatalf("zero reps: err = %v, want ErrInvalidInput", err)
	}
	if _, err := service.LogExercise(db, "pushups", -5); !errors.Is(err, service.ErrInvalidInput) {
		t.Fatalf("negative reps: err = %v, want ErrInvalidInput", err)
	}

	var logs int
	if err := db.QueryRow(`SELECT COUNT(1) FROM exercise_logs`).Scan(&logs); err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if logs != 0 {
		t.Fatalf("logs after rejected attempts = %d, want 0", logs)
	}
}

func TestCenturyNeedsHundredFlagshipRepsInOneDay(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	now := time.Date(2026, 4, 2, 8, 0, 0, 0, time.Local)
	res, err := service.LogExerciseAt(db, "Pushups", 99, now)
	if err != nil {
		t.Fatalf("log 99 pushups: %v", err)
	}
	if containsKey(res.NewlyUnlocked, "century") {
		t.Fatalf("century unlocked at 99 daily reps")
	}

	res, err = service.LogExerciseAt(db, "Pushups", 1, now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("log 1 more pushup: %v", err)
	}
	if !containsKey(res.NewlyUnlocked, "century") {
		t.Fatalf("century not unlocked at 100 daily reps; got %v", res.NewlyUnlocked)
	}
}

func TestCenturyCountsOnlyFlagshipAndOnlyToday(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	day1 := time.Date(2026, 4, 3, 8, 0, 0, 0, time.Local)
	if _, err := service.LogExerciseAt(db, "Squats", 150, day1); err != nil {
		t.Fatalf("log squats: %v", err)
	}
	if _, err := service.LogExerciseAt(db, "Pushups", 60, day1); err != nil {
		t.Fatalf("log pushups day 1: %v", err)
	}
	// 60 yesterday plus 60 today never crosses; the window is one day.
	res, err := service.LogExerciseAt(db, "Pushups", 60, day1.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("log pushups day 2: %v", err)
	}
	if containsKey(res.NewlyUnlocked, "century") {
		t.Fatalf("century unlocked across a day boundary")
	}
}

func TestWeekStreakUnlocksOnSeventhDay(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	base := time.Date(2026, 5, 1, 18, 0, 0, 0, time.Local)
	for day := 0; day < 6; day++ {
		res, err := service.LogExerciseAt(db, "squats", 5, base.AddDate(0, 0, day))
		if err != nil {
			t.Fatalf("log day %d: %v", day, err)
		}
		if res.Streak != day+1 {
			t.Fatalf("streak on day %d = %d, want %d", day, res.Streak, day+1)
		}
		if containsKey(res.NewlyUnlocked, "week-streak") {
			t.Fatalf("week-streak unlocked early on day %d", day)
		}
	}

	res, err := service.LogExerciseAt(db, "squats", 5, base.AddDate(0, 0, 6))
	if err != nil {
		t.Fatalf("log day 7: %v", err)
	}
	if res.Streak != 7 {
		t.Fatalf("streak on day 7 = %d, want 7", res.Streak)
	}
	if !containsKey(res.NewlyUnlocked, "week-streak") {
		t.Fatalf("week-streak not unlocked on day 7; got %v", res.NewlyUnlocked)
	}
}

func TestStreakSameDayAndGapBehavior(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	day1 := time.Date(2026, 5, 10, 9, 0, 0, 0, time.Local)
	res, err := service.LogExerciseAt(db, "lunges", 5, day1)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if res.Streak != 1 {
		t.Fatalf("first log streak = %d, want 1", res.Streak)
	}

	res, err = service.LogExerciseAt(db, "lunges", 5, day1.Add(6*time.Hour))
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if res.Streak != 1 {
		t.Fatalf("same-day streak = %d, want 1", res.Streak)
	}

	res, err = service.LogExerciseAt(db, "lunges", 5, day1.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if res.Streak != 2 {
		t.Fatalf("next-day streak = %d, want 2", res.Streak)
	}

	res, err = service.LogExerciseAt(db, "lunges", 5, day1.AddDate(0, 0, 4))
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if res.Streak != 1 {
		t.Fatalf("post-gap streak = %d, want 1", res.Streak)
	}

	var longest int
	if err := db.QueryRow(`SELECT longest_streak FROM user_stats WHERE id = 1`).Scan(&longest); err != nil {
		t.Fatalf("read longest streak: %v", err)
	}
	if longest != 2 {
		t.Fatalf("longest streak = %d, want 2", longest)
	}
}

func TestAchievementsUnlockExactlyOnce(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.Local)
	if _, err := service.LogExerciseAt(db, "pushups", 10, now); err != nil {
		t.Fatalf("first log: %v", err)
	}
	var firstStamp string
	if err := db.QueryRow(`SELECT unlocked_at FROM achievements WHERE key = 'first-exercise'`).Scan(&firstStamp); err != nil {
		t.Fatalf("read unlock stamp: %v", err)
	}

	res, err := service.LogExerciseAt(db, "pushups", 10, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("second log: %v", err)
	}
	if containsKey(res.NewlyUnlocked, "first-exercise") {
		t.Fatalf("first-exercise re-emitted on second log")
	}

	var laterStamp string
	if err := db.QueryRow(`SELECT unlocked_at FROM achievements WHERE key = 'first-exercise'`).Scan(&laterStamp); err != nil {
		t.Fatalf("re-read unlock stamp: %v", err)
	}
	if laterStamp != firstStamp {
		t.Fatalf("unlock stamp changed from %q to %q", firstStamp, laterStamp)
	}
}

func TestVarietyUnlocksAtFiveDistinctExercises(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	now := time.Date(2026, 6, 2, 12, 0, 0, 0, time.Local)
	for i, name := range []string{"Pushups", "Squats", "Lunges", "Burpees"} {
		res, err := service.LogExerciseAt(db, name, 5, now.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("log %s: %v", name, err)
		}
		if containsKey(res.NewlyUnlocked, "variety") {
			t.Fatalf("variety unlocked early after %s", name)
		}
	}

	res, err := service.LogExerciseAt(db, "Crunches", 5, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("log fifth exercise: %v", err)
	}
	if !containsKey(res.NewlyUnlocked, "variety") {
		t.Fatalf("variety not unlocked at five distinct exercises; got %v", res.NewlyUnlocked)
	}
}

func TestLogExerciseRollsBackOnPersistenceFailure(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	// Force the streak update, one of the later writes in the
	// transaction, to fail so everything before it must roll back.
	if _, err := db.Exec(`
CREATE TRIGGER fail_streak_update BEFORE UPDATE ON user_stats
BEGIN
  SELECT RAISE(ABORT, 'injected failure');
END;`); err != nil {
		t.Fatalf("install failure trigger: %v", err)
	}

	if _, err := service.LogExercise(db, "pushups", 20); err == nil {
		t.Fatalf("expected persistence failure, got nil")
	}

	var logs int
	if err := db.QueryRow(`SELECT COUNT(1) FROM exercise_logs`).Scan(&logs); err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if logs != 0 {
		t.Errorf("logs after failed transaction = %d, want 0", logs)
	}
	var totalXP int64
	var level int
	if err := db.QueryRow(`SELECT total_xp, current_level FROM exercises WHERE name = 'Pushups'`).Scan(&totalXP, &level); err != nil {
		t.Fatalf("read exercise row: %v", err)
	}
	if totalXP != 0 || level != 1 {
		t.Errorf("exercise mutated despite rollback: total_xp = %d level = %d", totalXP, level)
	}
	var unlocked int
	if err := db.QueryRow(`SELECT COUNT(1) FROM achievements WHERE unlocked_at IS NOT NULL`).Scan(&unlocked); err != nil {
		t.Fatalf("count unlocks: %v", err)
	}
	if unlocked != 0 {
		t.Errorf("achievements unlocked despite rollback: %d", unlocked)
	}

	if _, err := db.Exec(`DROP TRIGGER fail_streak_update`); err != nil {
		t.Fatalf("drop failure trigger: %v", err)
	}
	res, err := service.LogExercise(db, "pushups", 20)
	if err != nil {
		t.Fatalf("log after recovery: %v", err)
	}
	if res.XPEarned != 200 {
		t.Fatalf("xp earned after recovery = %d, want 200", res.XPEarned)
	}
}
