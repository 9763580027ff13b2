package stats

import "math"

// xpCurveBase scales the experience curve shared by players and monsters.
const xpCurveBase = 100

// XPToNextLevel returns the experience required to advance from level to
// level+1. Pure function of level only; strictly increasing for level >= 1,
// which is what progress bars and the AddExperience loop both rely on.
//
// Formula: floor(100 * level^1.5).
//
// Precondition: level >= 1 (lower values are treated as 1).
func XPToNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(xpCurveBase * math.Pow(float64(level), 1.5)))
}
