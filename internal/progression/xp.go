// Package progression holds the pure leveling, reward and streak math shared by
// the game reducer and the catalog.
package progression

import "math"

// BaseXPPerLevel scales the level curve: XPToNextLevel(1) == BaseXPPerLevel.
const BaseXPPerLevel = 100

// XPToNextLevel returns the XP needed to advance from level to level+1,
// floor(100 * level^1.5). Levels below 1 are treated as 1.
func XPToNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(BaseXPPerLevel * math.Pow(float64(level), 1.5)))
}

// Progress is a character's position on the level curve.
type Progress struct {
	Level         int
	XP            int
	XPToNextLevel int
}

// ApplyXP grants amount XP and resolves every level-up it causes in one pass.
// The threshold is re-derived after each rollover, so a single large grant can
// advance several levels. It returns the new progress and the number of levels
// gained.
func ApplyXP(p Progress, amount int) (Progress, int) {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.XPToNextLevel <= 0 {
		p.XPToNextLevel = XPToNextLevel(p.Level)
	}

	p.XP += amount
	if p.XP < 0 {
		p.XP = 0
	}

	gained := 0
	for p.XP >= p.XPToNextLevel {
		p.XP -= p.XPToNextLevel
		p.Level++
		p.XPToNextLevel = XPToNextLevel(p.Level)
		gained++
	}
	return p, gained
}
