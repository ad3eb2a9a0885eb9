package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yash113gadia/CampusQuest/internal/model"
)

func TestXPToNextLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{0, 100},
		{1, 100},
		{2, 282},
		{3, 519},
		{4, 800},
		{10, 3162},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, XPToNextLevel(tt.level), "level %d", tt.level)
	}
}

func TestApplyXP(t *testing.T) {
	tests := []struct {
		name       string
		start      Progress
		amount     int
		want       Progress
		wantGained int
	}{
		{
			name:   "below threshold",
			start:  Progress{Level: 1, XP: 0, XPToNextLevel: 100},
			amount: 50,
			want:   Progress{Level: 1, XP: 50, XPToNextLevel: 100},
		},
		{
			name:       "exact threshold rolls over",
			start:      Progress{Level: 1, XP: 0, XPToNextLevel: 100},
			amount:     100,
			want:       Progress{Level: 2, XP: 0, XPToNextLevel: 282},
			wantGained: 1,
		},
		{
			name:       "one rollover with remainder",
			start:      Progress{Level: 1, XP: 0, XPToNextLevel: 100},
			amount:     250,
			want:       Progress{Level: 2, XP: 150, XPToNextLevel: 282},
			wantGained: 1,
		},
		{
			name:       "multi level jump",
			start:      Progress{Level: 1, XP: 0, XPToNextLevel: 100},
			amount:     100 + 282 + 519 + 10,
			want:       Progress{Level: 4, XP: 10, XPToNextLevel: 800},
			wantGained: 3,
		},
		{
			name:   "missing threshold is derived",
			start:  Progress{Level: 3},
			amount: 1,
			want:   Progress{Level: 3, XP: 1, XPToNextLevel: 519},
		},
		{
			name:   "negative grant clamps at zero",
			start:  Progress{Level: 2, XP: 10, XPToNextLevel: 282},
			amount: -50,
			want:   Progress{Level: 2, XP: 0, XPToNextLevel: 282},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, gained := ApplyXP(tt.start, tt.amount)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantGained, gained)
		})
	}
}

func TestApplyXPInvariantHoldsForAnySequence(t *testing.T) {
	p := Progress{Level: 1, XPToNextLevel: XPToNextLevel(1)}
	grants := []int{1, 99, 500, 3, 10000, 0, 282, 7, 123456}
	for _, g := range grants {
		p, _ = ApplyXP(p, g)
		require.GreaterOrEqual(t, p.XP, 0)
		require.Less(t, p.XP, p.XPToNextLevel)
		require.Equal(t, XPToNextLevel(p.Level), p.XPToNextLevel)
	}
}

func TestRewardTables(t *testing.T) {
	tests := []struct {
		d        model.Difficulty
		xp, gold int
	}{
		{model.DifficultyTrivial, 10, 5},
		{model.DifficultyEasy, 25, 10},
		{model.DifficultyMedium, 50, 25},
		{model.DifficultyHard, 100, 50},
		{model.DifficultyEpic, 200, 100},
		{model.DifficultyLegendary, 500, 250},
		{"unknown", 25, 10},
		{"", 25, 10},
	}
	for _, tt := range tests {
		r := Rewards(tt.d)
		assert.Equal(t, tt.xp, r.XP, "xp for %q", tt.d)
		assert.Equal(t, tt.gold, r.Gold, "gold for %q", tt.d)
	}
	assert.True(t, ValidDifficulty(model.DifficultyEpic))
	assert.False(t, ValidDifficulty("mythic"))
	assert.Len(t, Difficulties(), 6)
}

func TestPointRewards(t *testing.T) {
	assert.Equal(t, model.DifficultyHard, DifficultyForPoints(15))
	assert.Equal(t, model.DifficultyHard, DifficultyForPoints(20))
	assert.Equal(t, model.DifficultyMedium, DifficultyForPoints(8))
	assert.Equal(t, model.DifficultyMedium, DifficultyForPoints(10))
	assert.Equal(t, model.DifficultyEasy, DifficultyForPoints(5))
	assert.Equal(t, model.DifficultyEasy, DifficultyForPoints(2.5))

	assert.Equal(t, model.QuestRewards{XP: 18, Gold: 9}, PointRewards(18))
	assert.Equal(t, model.QuestRewards{XP: 3, Gold: 1}, PointRewards(2.5))
	assert.Equal(t, model.QuestRewards{XP: 5, Gold: 2}, PointRewards(5))
}

func TestStartingStats(t *testing.T) {
	tests := []struct {
		class model.CharacterClass
		want  model.Stats
	}{
		{model.ClassScholar, model.Stats{STR: 5, INT: 10, CHA: 5, VIT: 5, WIS: 8, AGI: 5}},
		{model.ClassAthlete, model.Stats{STR: 10, INT: 5, CHA: 5, VIT: 8, WIS: 5, AGI: 5}},
		{model.ClassArtist, model.Stats{STR: 5, INT: 5, CHA: 8, VIT: 5, WIS: 10, AGI: 5}},
		{model.ClassSocialite, model.Stats{STR: 5, INT: 5, CHA: 10, VIT: 5, WIS: 5, AGI: 8}},
		{model.ClassExplorer, model.Stats{STR: 8, INT: 5, CHA: 5, VIT: 5, WIS: 5, AGI: 10}},
		{"wizard", DefaultStats()},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StartingStats(tt.class), "class %q", tt.class)
	}
	assert.Equal(t, "weapon_wand", StartingWeapon(model.ClassScholar))
	assert.Equal(t, "weapon_phone", StartingWeapon(model.ClassSocialite))
	assert.Equal(t, "weapon_compass", StartingWeapon("wizard"))
}

func TestDaysBetween(t *testing.T) {
	d, err := DaysBetween("2026-03-01", "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, 0, d)

	d, err = DaysBetween("2026-02-28", "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, 1, d)

	d, err = DaysBetween("2025-12-29", "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, 3, d)

	d, err = DaysBetween("2026-03-02", "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, -1, d)

	_, err = DaysBetween("not a date", "2026-03-01")
	require.Error(t, err)
}

func TestNextStreak(t *testing.T) {
	assert.Equal(t, 4, NextStreak(4, 0))
	assert.Equal(t, 5, NextStreak(4, 1))
	assert.Equal(t, 1, NextStreak(4, 3))
	assert.Equal(t, 4, NextStreak(4, -2))
}

func TestDayRating(t *testing.T) {
	assert.Equal(t, "Legendary", DayRating(80).Rating)
	assert.Equal(t, "Epic", DayRating(79.5).Rating)
	assert.Equal(t, "Great", DayRating(40).Rating)
	assert.Equal(t, "Good", DayRating(25).Rating)
	assert.Equal(t, "Okay", DayRating(10).Rating)
	assert.Equal(t, "Rest Day", DayRating(9.5).Rating)
}
