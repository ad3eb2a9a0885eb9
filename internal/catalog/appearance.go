package catalog

import (
	"strings"

	"github.com/yash113gadia/CampusQuest/internal/model"
)

// Default appearance for a character that has not been created yet.
const (
	DefaultSkin      = "Peach"
	DefaultHair      = "Short 02 - Parted"
	DefaultHairColor = "Brown"
	DefaultBodyType  = "Body 02 - Masculine, Thin"
	DefaultArmor     = "armor_starter"
	DefaultWeapon    = "weapon_none"
	StartingGold     = 100
)

// Appearance is the set of look choices made at character creation.
type Appearance struct {
	SkinID    string `json:"skinId"`
	HairID    string `json:"hairId"`
	HairColor string `json:"hairColor"`
	BodyType  string `json:"bodyType"`
}

// DefaultAppearance is the look of a fresh, uncreated character.
func DefaultAppearance() Appearance {
	return Appearance{
		SkinID:    DefaultSkin,
		HairID:    DefaultHair,
		HairColor: DefaultHairColor,
		BodyType:  DefaultBodyType,
	}
}

func masculine(bodyType string) bool {
	return strings.Contains(bodyType, "Masculine")
}

// StarterEquipment derives the layered sprite folders for a look. Clothing and
// head follow the body type; body, head and hair follow the chosen colors.
func StarterEquipment(a Appearance) model.Equipment {
	clothing, head := "Feminine, Thin", "Head 01 - Feminine"
	if masculine(a.BodyType) {
		clothing, head = "Masculine, Thin", "Head 02 - Masculine"
	}
	return model.Equipment{
		Body:  characterAssets + "/Body/" + a.BodyType + "/" + a.SkinID,
		Head:  characterAssets + "/Head/" + head + "/" + a.SkinID,
		Shirt: characterAssets + "/Clothing/" + clothing + "/Torso/Shirt 04 - T-shirt/White",
		Pants: characterAssets + "/Clothing/" + clothing + "/Legs/Pants 03 - Pants",
		Shoes: characterAssets + "/Clothing/" + clothing + "/Feet/Shoes 01 - Shoes",
		Hair:  characterAssets + "/Hair/" + a.HairID + "/" + a.HairColor,
	}
}
