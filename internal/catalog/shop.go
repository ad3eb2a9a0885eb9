package catalog

import (
	"path"

	"github.com/yash113gadia/CampusQuest/internal/model"
)

// ItemCategory groups shop items. The wearable categories match equip slots.
type ItemCategory string

const (
	ItemShirt     ItemCategory = "shirt"
	ItemPants     ItemCategory = "pants"
	ItemShoes     ItemCategory = "shoes"
	ItemHair      ItemCategory = "hair"
	ItemAccessory ItemCategory = "accessory"
	ItemWeapon    ItemCategory = "weapon"
)

// Slot returns the equip slot for wearable categories.
func (c ItemCategory) Slot() (model.EquipSlot, bool) {
	s := model.EquipSlot(c)
	return s, s.Valid()
}

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Item is a purchasable cosmetic. StatBonus applies while the item is equipped.
type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    ItemCategory    `json:"category"`
	Rarity      Rarity          `json:"rarity"`
	Price       int             `json:"price"`
	Description string          `json:"description"`
	StatBonus   model.StatBonus `json:"statBonus,omitempty"`
	SpritePath  string          `json:"spritePath"`
}

func pt(v int) *int { return &v }

// EquipPath is the sprite folder the renderer layers for this item.
func (i Item) EquipPath() string {
	return path.Dir(i.SpritePath)
}

const characterAssets = "/assets-lpc/Characters"

var items = []Item{
	{ID: "shirt_white_tee", Name: "White T-Shirt", Category: ItemShirt, Rarity: RarityCommon, Price: 30, Description: "Simple and clean", SpritePath: characterAssets + "/Clothing/Masculine, Thin/Torso/Shirt 04 - T-shirt/White/Idle.png"},
	{ID: "shirt_blue_polo", Name: "Blue Polo", Category: ItemShirt, Rarity: RarityUncommon, Price: 50, Description: "Smart casual style", StatBonus: model.StatBonus{CHA: pt(1)}, SpritePath: characterAssets + "/Clothing/Masculine, Thin/Torso/Shirt 09 - Polo/Blue/Idle.png"},
	{ID: "shirt_red_longsleeve", Name: "Red Longsleeve", Category: ItemShirt, Rarity: RarityUncommon, Price: 60, Description: "Bold and warm", StatBonus: model.StatBonus{STR: pt(1)}, SpritePath: characterAssets + "/Clothing/Masculine, Thin/Torso/Shirt 01 - Longsleeve Shirt/Red/Idle.png"},
	{ID: "shirt_purple_vneck", Name: "Purple V-Neck", Category: ItemShirt, Rarity: RarityRare, Price: 80, Description: "Mystical vibes, +2 WIS", StatBonus: model.StatBonus{WIS: pt(2)}, SpritePath: characterAssets + "/Clothing/Masculine, Thin/Torso/Shirt 02 - V-neck Longsleeve Shirt/Purple/Idle.png"},
	{ID: "shirt_black_buttoned", Name: "Black Formal Shirt", Category: ItemShirt, Rarity: RarityRare, Price: 120, Description: "Elegant and professional, +2 CHA", StatBonus: model.StatBonus{CHA: pt(2)}, SpritePath: characterAssets + "/Clothing/Masculine, Thin/Torso/Shirt 07 - Buttoned Longsleeve Shirt/Black/Idle.png"},
	{ID: "shirt_gold_scoop", Name: "Golden Tunic", Category: ItemShirt, Rarity: RarityEpic, Price: 250, Description: "Fit for royalty, +3 CHA +2 WIS", StatBonus: model.StatBonus{CHA: pt(3), WIS: pt(2)}, SpritePath: characterAssets + "/Clothing/Masculine, Thin/Torso/Shirt 03 - Scoop Longsleeve Shirt/Honey/Idle.png"},

	{ID: "pants_brown_hose", Name: "Brown Hose", Category: ItemPants, Rarity: RarityCommon, Price: 25, Description: "Classic medieval style", SpritePath: characterAssets + "/Clothing/Masculine, Thin/Legs/Pants 01 - Hose/Brown/Idle.png"},
	{ID: "pants_blue_jeans", Name: "Blue Jeans", Category: ItemPants, Rarity: RarityCommon, Price: 40, Description: "Durable denim", SpritePath: characterAssets + "/Clothing/Masculine, Thin/Legs/Pants 03 - Pants/Denim/Idle.png"},
	{ID: "pants_black_leggings", Name: "Black Leggings", Category: ItemPants, Rarity: RarityUncommon, Price: 60, Description: "Flexible and fast, +1 AGI", StatBonus: model.StatBonus{AGI: pt(1)}, SpritePath: characterAssets + "/Clothing/Masculine, Thin/Legs/Pants 02 - Leggings/Black/Idle.png"},
	{ID: "pants_gray_cuffed", Name: "Gray Cuffed Pants", Category: ItemPants, Rarity: RarityUncommon, Price: 80, Description: "Stylish and modern", StatBonus: model.StatBonus{CHA: pt(1)}, SpritePath: characterAssets + "/Clothing/Masculine, Thin/Legs/Pants 04 - Cuffed Pants/Gray/Idle.png"},
	{ID: "pants_green_overalls", Name: "Green Overalls", Category: ItemPants, Rarity: RarityRare, Price: 100, Description: "Ready for adventure, +2 VIT", StatBonus: model.StatBonus{VIT: pt(2)}, SpritePath: characterAssets + "/Clothing/Masculine, Thin/Legs/Pants 05 - Overalls/Green/Idle.png"},
	{ID: "pants_red_shorts", Name: "Red Shorts", Category: ItemPants, Rarity: RarityCommon, Price: 35, Description: "Cool and casual", SpritePath: characterAssets + "/Clothing/Masculine, Thin/Legs/Shorts 01 - Shorts/Red/Idle.png"},

	{ID: "shoes_brown_shoes", Name: "Brown Shoes", Category: ItemShoes, Rarity: RarityCommon, Price: 20, Description: "Basic footwear", SpritePath: characterAssets + "/Clothing/Masculine, Thin/Feet/Shoes 01 - Shoes/Brown/Idle.png"},
	{ID: "shoes_black_boots", Name: "Black Boots", Category: ItemShoes, Rarity: RarityUncommon, Price: 50, Description: "Sturdy and reliable, +1 VIT", StatBonus: model.StatBonus{VIT: pt(1)}, SpritePath: characterAssets + "/Clothing/Masculine, Thin/Feet/Shoes 02 - Boots/Black/Idle.png"},
	{ID: "shoes_white_sneakers", Name: "White Sneakers", Category: ItemShoes, Rarity: RarityRare, Price: 75, Description: "Fast and fresh, +2 AGI", StatBonus: model.StatBonus{AGI: pt(2)}, SpritePath: characterAssets + "/Clothing/Masculine, Thin/Feet/Shoes 01 - Shoes/White/Idle.png"},

	{ID: "hair_buzzcut_black", Name: "Buzzcut (Black)", Category: ItemHair, Rarity: RarityCommon, Price: 30, Description: "Clean and simple", SpritePath: characterAssets + "/Hair/Short 01 - Buzzcut/Black/Idle.png"},
	{ID: "hair_parted_brown", Name: "Parted Hair (Brown)", Category: ItemHair, Rarity: RarityCommon, Price: 40, Description: "Classic gentleman style", SpritePath: characterAssets + "/Hair/Short 02 - Parted/Brown/Idle.png"},
	{ID: "hair_curly_blonde", Name: "Curly Hair (Blonde)", Category: ItemHair, Rarity: RarityUncommon, Price: 60, Description: "Bouncy and fun, +1 CHA", StatBonus: model.StatBonus{CHA: pt(1)}, SpritePath: characterAssets + "/Hair/Short 03 - Curly/Blonde/Idle.png"},
	{ID: "hair_page_red", Name: "Page Cut (Red)", Category: ItemHair, Rarity: RarityRare, Price: 80, Description: "Noble style, +1 CHA +1 WIS", StatBonus: model.StatBonus{CHA: pt(1), WIS: pt(1)}, SpritePath: characterAssets + "/Hair/Medium 01 - Page/Red/Idle.png"},
	{ID: "hair_bob_gray", Name: "Bob Cut (Gray)", Category: ItemHair, Rarity: RarityRare, Price: 100, Description: "Wise and distinguished, +2 WIS", StatBonus: model.StatBonus{WIS: pt(2)}, SpritePath: characterAssets + "/Hair/Medium 07 - Bob, Side Part/Gray/Idle.png"},

	{ID: "acc_glasses_black", Name: "Reading Glasses", Category: ItemAccessory, Rarity: RarityCommon, Price: 50, Description: "For the studious, +1 INT", StatBonus: model.StatBonus{INT: pt(1)}, SpritePath: characterAssets + "/Head Accessories/Eyewear 01 - Glasses/Black/Idle.png"},
	{ID: "acc_glasses_gold", Name: "Gold Spectacles", Category: ItemAccessory, Rarity: RarityRare, Price: 120, Description: "Scholarly elegance, +2 INT +1 CHA", StatBonus: model.StatBonus{INT: pt(2), CHA: pt(1)}, SpritePath: characterAssets + "/Head Accessories/Eyewear 02 - Halfmoon Glasses/Gold/Idle.png"},
	{ID: "acc_eyepatch", Name: "Eyepatch", Category: ItemAccessory, Rarity: RarityUncommon, Price: 80, Description: "Mysterious pirate look, +1 STR +1 CHA", StatBonus: model.StatBonus{STR: pt(1), CHA: pt(1)}, SpritePath: characterAssets + "/Head Accessories/Eyewear 03 - Eyepatch/Black/Idle.png"},
	{ID: "acc_helm_bascinet", Name: "Steel Bascinet", Category: ItemAccessory, Rarity: RarityEpic, Price: 200, Description: "Knight's protection, +3 VIT +2 STR", StatBonus: model.StatBonus{VIT: pt(3), STR: pt(2)}, SpritePath: characterAssets + "/Head Accessories/Helm 01 - Bascinet, Open/Steel/Idle.png"},
	{ID: "acc_helm_chainmail", Name: "Chainmail Hood", Category: ItemAccessory, Rarity: RarityRare, Price: 150, Description: "Warrior's armor, +2 VIT +1 STR", StatBonus: model.StatBonus{VIT: pt(2), STR: pt(1)}, SpritePath: characterAssets + "/Head Accessories/Helm 04 - Chainmail Hood/Steel/Idle.png"},

	{ID: "weapon_sword_steel", Name: "Steel Sword", Category: ItemWeapon, Rarity: RarityRare, Price: 150, Description: "A trusty blade, +3 STR", StatBonus: model.StatBonus{STR: pt(3)}, SpritePath: characterAssets + "/Props/Sword 01 - Arming Sword/Steel/Combat 1h - Idle.png"},
	{ID: "weapon_sword_gold", Name: "Golden Sword", Category: ItemWeapon, Rarity: RarityLegendary, Price: 400, Description: "Legendary blade, +5 STR +2 CHA", StatBonus: model.StatBonus{STR: pt(5), CHA: pt(2)}, SpritePath: characterAssets + "/Props/Sword 01 - Arming Sword/Gold/Combat 1h - Idle.png"},
}

var itemIndex = func() map[string]Item {
	m := make(map[string]Item, len(items))
	for _, it := range items {
		m[it.ID] = it
	}
	return m
}()

// ShopItems returns every item for sale.
func ShopItems() []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// ShopItem looks up an item by id.
func ShopItem(id string) (Item, bool) {
	it, ok := itemIndex[id]
	return it, ok
}

// ItemForPath returns the wearable item whose sprite folder is p in slot. Used
// to backfill equippedItems for characters saved before it existed.
func ItemForPath(slot model.EquipSlot, p string) (Item, bool) {
	for _, it := range items {
		if s, ok := it.Category.Slot(); ok && s == slot && it.EquipPath() == p {
			return it, true
		}
	}
	return Item{}, false
}

// EffectiveStats returns c's stats plus the bonuses of every equipped shop item,
// including a purchased weapon. Stored stats are never modified.
func EffectiveStats(c model.Character) model.Stats {
	stats := c.Stats
	for _, id := range c.EquippedItems {
		if it, ok := itemIndex[id]; ok {
			stats = stats.Add(it.StatBonus)
		}
	}
	if it, ok := itemIndex[c.WeaponID]; ok && it.Category == ItemWeapon {
		stats = stats.Add(it.StatBonus)
	}
	return stats
}
