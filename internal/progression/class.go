package progression

import "github.com/yash113gadia/CampusQuest/internal/model"

// BaseStat is every attribute's value before class bonuses.
const BaseStat = 5

// DefaultStats returns the pre-class attribute spread.
func DefaultStats() model.Stats {
	return model.Stats{STR: BaseStat, INT: BaseStat, CHA: BaseStat, VIT: BaseStat, WIS: BaseStat, AGI: BaseStat}
}

func bonus(v int) *int { return &v }

var classBonuses = map[model.CharacterClass]model.StatBonus{
	model.ClassScholar:   {INT: bonus(5), WIS: bonus(3)},
	model.ClassAthlete:   {STR: bonus(5), VIT: bonus(3)},
	model.ClassArtist:    {WIS: bonus(5), CHA: bonus(3)},
	model.ClassSocialite: {CHA: bonus(5), AGI: bonus(3)},
	model.ClassExplorer:  {AGI: bonus(5), STR: bonus(3)},
}

var classWeapons = map[model.CharacterClass]string{
	model.ClassScholar:   "weapon_wand",
	model.ClassAthlete:   "weapon_dumbbell",
	model.ClassArtist:    "weapon_brush",
	model.ClassSocialite: "weapon_phone",
	model.ClassExplorer:  "weapon_compass",
}

// ClassBonus returns the creation-time bonus for c. Unknown classes get none.
func ClassBonus(c model.CharacterClass) model.StatBonus {
	return classBonuses[c]
}

// StartingStats returns the default spread with c's bonus applied.
func StartingStats(c model.CharacterClass) model.Stats {
	return DefaultStats().Add(ClassBonus(c))
}

// StartingWeapon returns the class weapon. Unknown classes get the compass.
func StartingWeapon(c model.CharacterClass) string {
	if w, ok := classWeapons[c]; ok {
		return w
	}
	return "weapon_compass"
}
