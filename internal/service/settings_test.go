package service_test

import (
	"errors"
	"testing"

	"github.com/mvogttech/geekfit/internal/service"
)

func TestSettingsValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	cases := []struct {
		key   string
		value string
	}{
		{"reminder_enabled", "yes"},
		{"sound_enabled", "1"},
		{"reminder_interval_minutes", "zero"},
		{"reminder_interval_minutes", "-5"},
		{"daily_goal_xp", "0"},
		{"theme_mode", "neon"},
		{"unknown_key", "whatever"},
	}
	for _, tc := range cases {
		if err := service.SetSetting(db, tc.key, tc.value); !errors.Is(err, service.ErrInvalidInput) {
			t.Errorf("set %s=%s: err = %v, want ErrInvalidInput", tc.key, tc.value, err)
		}
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetSetting(db, "DAILY_GOAL_XP", "750"); err != nil {
		t.Fatalf("set setting: %v", err)
	}
	value, ok, err := service.GetSetting(db, "daily_goal_xp")
	if err != nil {
		t.Fatalf("get setting: %v", err)
	}
	if !ok || value != "750" {
		t.Fatalf("daily_goal_xp = %q (ok=%v), want 750", value, ok)
	}

	settings, err := service.GetSettings(db)
	if err != nil {
		t.Fatalf("get typed settings: %v", err)
	}
	if settings.DailyGoalXP != 750 {
		t.Errorf("typed daily goal = %d, want 750", settings.DailyGoalXP)
	}
	if settings.ReminderIntervalMinutes != 120 {
		t.Errorf("reminder interval = %d, want seeded default 120", settings.ReminderIntervalMinutes)
	}
	if !settings.ReminderEnabled || !settings.SoundEnabled {
		t.Errorf("boolean defaults flipped: reminder=%v sound=%v", settings.ReminderEnabled, settings.SoundEnabled)
	}
	if settings.ThemeMode != "dark" {
		t.Errorf("theme mode = %q, want dark", settings.ThemeMode)
	}
}

func TestListSettingsIncludesSeedDefaults(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	settings, err := service.ListSettings(db)
	if err != nil {
		t.Fatalf("list settings: %v", err)
	}
	for _, key := range []string{"reminder_enabled", "reminder_interval_minutes", "sound_enabled", "daily_goal_xp", "theme_mode"} {
		if _, ok := settings[key]; !ok {
			t.Errorf("seeded setting %q missing", key)
		}
	}
}
