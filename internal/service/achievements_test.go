package service_test

import (
	"testing"
	"time"

	"github.com/mvogttech/geekfit/internal/service"
)

func TestListAchievementsSeededLocked(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	items, err := service.ListAchievements(db)
	if err != nil {
		t.Fatalf("list achievements: %v", err)
	}
	if len(items) != 9 {
		t.Fatalf("achievements = %d, want 9", len(items))
	}
	for _, item := range items {
		if item.UnlockedAt != nil {
			t.Errorf("achievement %q unlocked on a fresh database", item.Key)
		}
	}
}

func TestListAchievementsUnlockedSortFirst(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.LogExerciseAt(db, "pushups", 5, time.Date(2026, 7, 5, 9, 0, 0, 0, time.Local)); err != nil {
		t.Fatalf("log exercise: %v", err)
	}

	items, err := service.ListAchievements(db)
	if err != nil {
		t.Fatalf("list achievements: %v", err)
	}
	if items[0].Key != "first-exercise" {
		t.Fatalf("first item = %q, want the unlocked first-exercise", items[0].Key)
	}
	if items[0].UnlockedAt == nil {
		t.Fatalf("first-exercise has no unlock timestamp")
	}
}

func TestSkillAchievementsFollowLevelThresholds(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	// 116 pushups earn 1160 XP, enough for level 10 (1154) but far
	// from level 25.
	res, err := service.LogExerciseAt(db, "pushups", 116, time.Date(2026, 7, 6, 9, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("log exercise: %v", err)
	}
	if res.NewLevel != 10 {
		t.Fatalf("level = %d, want 10", res.NewLevel)
	}
	if !containsKey(res.NewlyUnlocked, "skill-10") {
		t.Errorf("skill-10 not unlocked at level 10; got %v", res.NewlyUnlocked)
	}
	if containsKey(res.NewlyUnlocked, "skill-25") || containsKey(res.NewlyUnlocked, "skill-50") {
		t.Errorf("higher skill tiers unlocked early: %v", res.NewlyUnlocked)
	}
}
