package model

import "time"

type Exercise struct {
	ID           int64
	Name         string
	XPPerRep     int
	TotalXP      int64
	CurrentLevel int
	Icon         string
	CreatedAt    time.Time
}

type ExerciseLog struct {
	ID           int64
	ExerciseID   int64
	ExerciseName string
	Reps         int
	XPEarned     int
	LoggedAt     time.Time
}

type StreakState struct {
	CurrentStreak  int
	LongestStreak  int
	LastActiveDate string // YYYY-MM-DD, empty when never active
}

type Achievement struct {
	ID          int64
	Key         string
	Name        string
	Description string
	Icon        string
	UnlockedAt  *time.Time
}

type AggregateStats struct {
	TotalXP        int64
	TotalLevel     int
	ExerciseCount  int
	CurrentStreak  int
	LongestStreak  int
	LastActiveDate string
}

type Settings struct {
	ReminderEnabled         bool
	ReminderIntervalMinutes int
	SoundEnabled            bool
	DailyGoalXP             int
	ThemeMode               string
}
