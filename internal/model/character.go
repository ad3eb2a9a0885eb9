package model

type CharacterClass string

const (
	ClassScholar   CharacterClass = "scholar"
	ClassAthlete   CharacterClass = "athlete"
	ClassArtist    CharacterClass = "artist"
	ClassSocialite CharacterClass = "socialite"
	ClassExplorer  CharacterClass = "explorer"
)

// Valid reports whether c is one of the fixed archetypes.
func (c CharacterClass) Valid() bool {
	switch c {
	case ClassScholar, ClassAthlete, ClassArtist, ClassSocialite, ClassExplorer:
		return true
	}
	return false
}

// Stats are the six character attributes. There is no ceiling.
type Stats struct {
	STR int `json:"STR"`
	INT int `json:"INT"`
	CHA int `json:"CHA"`
	VIT int `json:"VIT"`
	WIS int `json:"WIS"`
	AGI int `json:"AGI"`
}

// StatBonus is a partial Stats record. Nil fields are left alone.
type StatBonus struct {
	STR *int `json:"STR,omitempty"`
	INT *int `json:"INT,omitempty"`
	CHA *int `json:"CHA,omitempty"`
	VIT *int `json:"VIT,omitempty"`
	WIS *int `json:"WIS,omitempty"`
	AGI *int `json:"AGI,omitempty"`
}

// IsZero reports whether the bonus sets no field at all.
func (b StatBonus) IsZero() bool {
	return b.STR == nil && b.INT == nil && b.CHA == nil && b.VIT == nil && b.WIS == nil && b.AGI == nil
}

// Add returns s with every non-nil field of b added to it.
func (s Stats) Add(b StatBonus) Stats {
	add := func(v int, d *int) int {
		if d == nil {
			return v
		}
		return v + *d
	}
	return Stats{
		STR: add(s.STR, b.STR),
		INT: add(s.INT, b.INT),
		CHA: add(s.CHA, b.CHA),
		VIT: add(s.VIT, b.VIT),
		WIS: add(s.WIS, b.WIS),
		AGI: add(s.AGI, b.AGI),
	}
}

// Merge returns s with every non-nil field of b overwriting it.
func (s Stats) Merge(b StatBonus) Stats {
	set := func(v int, d *int) int {
		if d == nil {
			return v
		}
		return *d
	}
	return Stats{
		STR: set(s.STR, b.STR),
		INT: set(s.INT, b.INT),
		CHA: set(s.CHA, b.CHA),
		VIT: set(s.VIT, b.VIT),
		WIS: set(s.WIS, b.WIS),
		AGI: set(s.AGI, b.AGI),
	}
}

// Equipment holds one sprite asset path per layer.
type Equipment struct {
	Body  string `json:"body"`
	Head  string `json:"head"`
	Shirt string `json:"shirt"`
	Pants string `json:"pants"`
	Shoes string `json:"shoes"`
	Hair  string `json:"hair"`
}

// EquipSlot names the equipment layers a player may change after creation.
type EquipSlot string

const (
	SlotShirt EquipSlot = "shirt"
	SlotPants EquipSlot = "pants"
	SlotShoes EquipSlot = "shoes"
	SlotHair  EquipSlot = "hair"
)

func (s EquipSlot) Valid() bool {
	switch s {
	case SlotShirt, SlotPants, SlotShoes, SlotHair:
		return true
	}
	return false
}

// With returns a copy of e with only the given slot replaced.
func (e Equipment) With(slot EquipSlot, path string) Equipment {
	switch slot {
	case SlotShirt:
		e.Shirt = path
	case SlotPants:
		e.Pants = path
	case SlotShoes:
		e.Shoes = path
	case SlotHair:
		e.Hair = path
	}
	return e
}

// Path returns the asset path currently held by slot.
func (e Equipment) Path(slot EquipSlot) string {
	switch slot {
	case SlotShirt:
		return e.Shirt
	case SlotPants:
		return e.Pants
	case SlotShoes:
		return e.Shoes
	case SlotHair:
		return e.Hair
	}
	return ""
}

type Character struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	ClassID       CharacterClass `json:"classId"`
	Level         int            `json:"level"`
	XP            int            `json:"xp"`
	XPToNextLevel int            `json:"xpToNextLevel"`
	Gold          int            `json:"gold"`

	SkinID    string `json:"skinId"`
	HairID    string `json:"hairId"`
	HairColor string `json:"hairColor"`
	BodyType  string `json:"bodyType"`
	ArmorID   string `json:"armorId"`
	WeaponID  string `json:"weaponId"`

	Equipment     Equipment            `json:"equipment"`
	EquippedItems map[EquipSlot]string `json:"equippedItems,omitempty"`
	OwnedItems    []string             `json:"ownedItems"`

	Stats          Stats  `json:"stats"`
	Streak         int    `json:"streak"`
	LastActiveDate string `json:"lastActiveDate"`
}

// Owns reports whether itemID has already been purchased.
func (c Character) Owns(itemID string) bool {
	for _, id := range c.OwnedItems {
		if id == itemID {
			return true
		}
	}
	return false
}
