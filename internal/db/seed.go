package db

import (
	"database/sql"
	"fmt"
)

type seedExercise struct {
	Name     string
	XPPerRep int
	Icon     string
}

// Desk-friendly default catalog. No equipment needed for any of these.
var defaultExercises = []seedExercise{
	// Upper body
	{"Pushups", 10, "fitness_center"},
	{"Arm Circles", 3, "self_improvement"},
	// Core
	{"Sit-ups", 8, "self_improvement"},
	{"Crunches", 6, "self_improvement"},
	{"Plank (10 sec)", 5, "self_improvement"},
	{"Leg Raises", 8, "self_improvement"},
	{"Mountain Climbers", 10, "self_improvement"},
	// Lower body
	{"Squats", 8, "fitness_center"},
	{"Lunges", 10, "fitness_center"},
	{"Calf Raises", 4, "fitness_center"},
	{"Wall Sit (10 sec)", 4, "fitness_center"},
	{"Side Leg Raises", 6, "fitness_center"},
	{"Step-ups", 8, "fitness_center"},
	// Cardio
	{"Jumping Jacks", 6, "directions_run"},
	{"High Knees", 6, "directions_run"},
	{"Burpees", 15, "directions_run"},
	{"Stair Climbs", 10, "directions_run"},
	{"Marching in Place", 4, "directions_run"},
	// Stretches and mobility
	{"Neck Stretches", 2, "accessibility"},
	{"Shoulder Shrugs", 3, "accessibility"},
	{"Wrist Circles", 2, "accessibility"},
	{"Toe Touches", 4, "accessibility"},
	{"Hip Circles", 3, "accessibility"},
	{"Torso Twists", 3, "accessibility"},
	{"Ankle Rotations", 2, "accessibility"},
	{"Cat-Cow Stretch", 3, "accessibility"},
	{"Chest Opener", 3, "accessibility"},
	{"Quad Stretch", 3, "accessibility"},
}

type seedAchievement struct {
	Key         string
	Name        string
	Description string
}

var defaultAchievements = []seedAchievement{
	{"first-exercise", "First Steps", "Complete your first exercise"},
	{"century", "Century", "Complete 100 pushups in a single day"},
	{"week-streak", "Dedicated", "Maintain a 7-day exercise streak"},
	{"month-streak", "Committed", "Maintain a 30-day exercise streak"},
	{"skill-10", "Rising Star", "Get any exercise to level 10"},
	{"skill-25", "Fitness Warrior", "Get any exercise to level 25"},
	{"skill-50", "Legend", "Get any exercise to level 50"},
	{"total-100", "Century Club", "Reach 100 total level"},
	{"variety", "Well-Rounded", "Log 5 different types of exercises"},
}

var defaultSettings = [][2]string{
	{"reminder_enabled", "true"},
	{"reminder_interval_minutes", "120"},
	{"sound_enabled", "true"},
	{"daily_goal_xp", "500"},
	{"theme_mode", "dark"},
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// Seed is idempotent; existing rows are left untouched.
func Seed(db *sql.DB) error {
	if err := SeedDefaultExercises(db); err != nil {
		return err
	}
	if _, err := db.Exec(`INSERT OR IGNORE INTO user_stats(id, current_streak, longest_streak) VALUES(1, 0, 0)`); err != nil {
		return fmt.Errorf("seed user stats: %w", err)
	}
	for _, a := range defaultAchievements {
		if _, err := db.Exec(`INSERT OR IGNORE INTO achievements(key, name, description) VALUES(?, ?, ?)`, a.Key, a.Name, a.Description); err != nil {
			return fmt.Errorf("seed achievement %q: %w", a.Key, err)
		}
	}
	for _, s := range defaultSettings {
		if _, err := db.Exec(`INSERT OR IGNORE INTO settings(key, value) VALUES(?, ?)`, s[0], s[1]); err != nil {
			return fmt.Errorf("seed setting %q: %w", s[0], err)
		}
	}
	return nil
}

func SeedDefaultExercises(e execer) error {
	for _, ex := range defaultExercises {
		if _, err := e.Exec(`INSERT OR IGNORE INTO exercises(name, xp_per_rep, icon, total_xp, current_level) VALUES(?, ?, ?, 0, 1)`, ex.Name, ex.XPPerRep, ex.Icon); err != nil {
			return fmt.Errorf("seed exercise %q: %w", ex.Name, err)
		}
	}
	return nil
}
