// Package xp maps exercise levels to cumulative experience and back.
// The curve is the classic RuneScape progression: cheap early levels,
// steeply increasing cost toward level 99.
package xp

import "math"

const MaxLevel = 99

// thresholds[L] is the cumulative XP required to hold level L.
var thresholds [MaxLevel + 1]int64

func init() {
	var total float64
	for level := 2; level <= MaxLevel; level++ {
		i := float64(level - 1)
		total += i + 300*math.Pow(2, i/7)
		thresholds[level] = int64(math.Floor(total / 4))
	}
}

func XPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	return thresholds[level]
}

// LevelFromXP returns the largest level whose threshold is at or below
// xp, saturating at MaxLevel. Negative xp maps to level 1.
func LevelFromXP(xp int64) int {
	level := 1
	for level < MaxLevel && thresholds[level+1] <= xp {
		level++
	}
	return level
}

// Progress reports how far xp has advanced through the current level,
// in [0,1]. A level-99 exercise always reports 1.
func Progress(level int, xp int64) float64 {
	if level >= MaxLevel {
		return 1
	}
	cur := XPForLevel(level)
	next := XPForLevel(level + 1)
	if xp <= cur {
		return 0
	}
	p := float64(xp-cur) / float64(next-cur)
	if p > 1 {
		return 1
	}
	return p
}
