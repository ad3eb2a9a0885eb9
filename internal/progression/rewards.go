package progression

import (
	"math"

	"github.com/yash113gadia/CampusQuest/internal/model"
)

var xpTable = map[model.Difficulty]int{
	model.DifficultyTrivial:   10,
	model.DifficultyEasy:      25,
	model.DifficultyMedium:    50,
	model.DifficultyHard:      100,
	model.DifficultyEpic:      200,
	model.DifficultyLegendary: 500,
}

var goldTable = map[model.Difficulty]int{
	model.DifficultyTrivial:   5,
	model.DifficultyEasy:      10,
	model.DifficultyMedium:    25,
	model.DifficultyHard:      50,
	model.DifficultyEpic:      100,
	model.DifficultyLegendary: 250,
}

// Difficulties returns the closed set of tiers in ascending order.
func Difficulties() []model.Difficulty {
	return []model.Difficulty{
		model.DifficultyTrivial,
		model.DifficultyEasy,
		model.DifficultyMedium,
		model.DifficultyHard,
		model.DifficultyEpic,
		model.DifficultyLegendary,
	}
}

// ValidDifficulty reports whether d is a known tier.
func ValidDifficulty(d model.Difficulty) bool {
	_, ok := xpTable[d]
	return ok
}

// QuestXP returns the XP reward for d. Unknown tiers fall back to easy.
func QuestXP(d model.Difficulty) int {
	if xp, ok := xpTable[d]; ok {
		return xp
	}
	return xpTable[model.DifficultyEasy]
}

// QuestGold returns the gold reward for d. Unknown tiers fall back to easy.
func QuestGold(d model.Difficulty) int {
	if gold, ok := goldTable[d]; ok {
		return gold
	}
	return goldTable[model.DifficultyEasy]
}

// Rewards returns the table rewards for d.
func Rewards(d model.Difficulty) model.QuestRewards {
	return model.QuestRewards{XP: QuestXP(d), Gold: QuestGold(d)}
}

// DifficultyForPoints maps a point-valued quest onto a tier: 15+ is hard,
// 8+ is medium and anything lower is easy.
func DifficultyForPoints(points float64) model.Difficulty {
	switch {
	case points >= 15:
		return model.DifficultyHard
	case points >= 8:
		return model.DifficultyMedium
	default:
		return model.DifficultyEasy
	}
}

// XPForPoints converts point values to whole XP, rounding half away from zero.
func XPForPoints(points float64) int {
	return int(math.Round(points))
}

// GoldForPoints pays half the points in gold, rounded down.
func GoldForPoints(points float64) int {
	return int(math.Floor(points / 2))
}

// PointRewards returns the rewards for a point-valued quest.
func PointRewards(points float64) model.QuestRewards {
	return model.QuestRewards{XP: XPForPoints(points), Gold: GoldForPoints(points)}
}
