package service

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/mvogttech/geekfit/internal/model"
)

const (
	SettingReminderEnabled  = "reminder_enabled"
	SettingReminderInterval = "reminder_interval_minutes"
	SettingSoundEnabled     = "sound_enabled"
	SettingDailyGoalXP      = "daily_goal_xp"
	SettingThemeMode        = "theme_mode"
)

var settingValidators = map[string]func(string) error{
	SettingReminderEnabled:  validateBoolSetting,
	SettingSoundEnabled:     validateBoolSetting,
	SettingReminderInterval: validatePositiveIntSetting,
	SettingDailyGoalXP:      validatePositiveIntSetting,
	SettingThemeMode: func(v string) error {
		if v != "dark" && v != "light" {
			return fmt.Errorf("%w: theme_mode must be dark or light", ErrInvalidInput)
		}
		return nil
	},
}

func validateBoolSetting(v string) error {
	if v != "true" && v != "false" {
		return fmt.Errorf("%w: value must be true or false", ErrInvalidInput)
	}
	return nil
}

func validatePositiveIntSetting(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fmt.Errorf("%w: value must be a positive integer", ErrInvalidInput)
	}
	return nil
}

func SetSetting(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	value = strings.TrimSpace(value)
	validate, ok := settingValidators[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", ErrInvalidInput, key)
	}
	if err := validate(value); err != nil {
		return err
	}
	if _, err := db.Exec(`
INSERT INTO settings(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`, key, value); err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func GetSetting(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	var value string
	err := db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, true, nil
}

func ListSettings(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM settings ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}
	return out, nil
}

// GetSettings returns the typed settings view, falling back to seed
// defaults for any missing key.
func GetSettings(db *sql.DB) (*model.Settings, error) {
	raw, err := ListSettings(db)
	if err != nil {
		return nil, err
	}
	get := func(key, fallback string) string {
		if v, ok := raw[key]; ok && v != "" {
			return v
		}
		return fallback
	}
	interval, err := strconv.Atoi(get(SettingReminderInterval, "120"))
	if err != nil {
		interval = 120
	}
	goal, err := strconv.Atoi(get(SettingDailyGoalXP, "500"))
	if err != nil {
		goal = 500
	}
	return &model.Settings{
		ReminderEnabled:         get(SettingReminderEnabled, "true") == "true",
		ReminderIntervalMinutes: interval,
		SoundEnabled:            get(SettingSoundEnabled, "true") == "true",
		DailyGoalXP:             goal,
		ThemeMode:               get(SettingThemeMode, "dark"),
	}, nil
}
