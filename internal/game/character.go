package game

import (
	"fmt"
	"slices"

	"github.com/yash113gadia/CampusQuest/internal/catalog"
	"github.com/yash113gadia/CampusQuest/internal/model"
	"github.com/yash113gadia/CampusQuest/internal/progression"
)

func (r Reducer) createCharacter(s State, a CreateCharacter) State {
	c := cloneCharacter(s.Character)
	look := a.Appearance
	if look.SkinID == "" {
		look.SkinID = c.SkinID
	}
	if look.HairID == "" {
		look.HairID = c.HairID
	}
	if look.HairColor == "" {
		look.HairColor = c.HairColor
	}
	if look.BodyType == "" {
		look.BodyType = c.BodyType
	}

	c.ID = "char_" + r.newID()
	c.Name = a.Name
	c.ClassID = a.ClassID
	c.SkinID = look.SkinID
	c.HairID = look.HairID
	c.HairColor = look.HairColor
	c.BodyType = look.BodyType
	c.Stats = progression.StartingStats(a.ClassID)
	c.Equipment = catalog.StarterEquipment(look)
	c.EquippedItems = nil
	c.WeaponID = progression.StartingWeapon(a.ClassID)

	s.Character = c
	s.IsCharacterCreated = true
	return s
}

func (r Reducer) addXP(s State, a AddXP) State {
	p, _ := progression.ApplyXP(progression.Progress{
		Level:         s.Character.Level,
		XP:            s.Character.XP,
		XPToNextLevel: s.Character.XPToNextLevel,
	}, a.Amount)

	s.Character.Level = p.Level
	s.Character.XP = p.XP
	s.Character.XPToNextLevel = p.XPToNextLevel

	return addFloatingText(s, model.FloatingText{
		ID:   "ft_" + r.newID(),
		Text: fmt.Sprintf("+%d XP", a.Amount),
		Type: model.FloatingXP,
		X:    a.X,
		Y:    a.Y,
	})
}

func (r Reducer) addGold(s State, a AddGold) State {
	s.Character.Gold += a.Amount
	if s.Character.Gold < 0 {
		s.Character.Gold = 0
	}
	return addFloatingText(s, model.FloatingText{
		ID:   "ft_" + r.newID() + "_gold",
		Text: fmt.Sprintf("+%d Gold", a.Amount),
		Type: model.FloatingGold,
		X:    a.X,
		Y:    a.Y,
	})
}

// levelUp only celebrates. Level itself moves in addXP.
func (r Reducer) levelUp(s State) State {
	s.CurrentAction = model.ActionVictory
	return addFloatingText(s, model.FloatingText{
		ID:   "ft_" + r.newID() + "_lvl",
		Text: "LEVEL UP!",
		Type: model.FloatingLevelUp,
	})
}

func updateStats(s State, a UpdateStats) State {
	s.Character.Stats = s.Character.Stats.Merge(a.StatBonus)
	return s
}

func equipItem(s State, a EquipItem) State {
	switch a.Slot {
	case EquipArmor:
		s.Character.ArmorID = a.ItemID
		return s
	case EquipWeapon:
		s.Character.WeaponID = a.ItemID
		return s
	case EquipHairID:
		s.Character.HairID = a.ItemID
		return s
	}

	slot := model.EquipSlot(a.Slot)
	if !slot.Valid() || !s.Character.Owns(a.ItemID) {
		return s
	}
	item, ok := catalog.ShopItem(a.ItemID)
	if !ok {
		return s
	}
	if itemSlot, ok := item.Category.Slot(); !ok || itemSlot != slot {
		return s
	}

	c := cloneCharacter(s.Character)
	c.Equipment = c.Equipment.With(slot, item.EquipPath())
	if c.EquippedItems == nil {
		c.EquippedItems = map[model.EquipSlot]string{}
	}
	c.EquippedItems[slot] = item.ID
	s.Character = c
	return s
}

func updateEquipment(s State, a UpdateEquipment) State {
	if !a.Slot.Valid() {
		return s
	}
	c := cloneCharacter(s.Character)
	c.Equipment = c.Equipment.With(a.Slot, a.Path)

	// Keep the explicit equipped id in step with the path.
	if item, ok := catalog.ItemForPath(a.Slot, a.Path); ok && c.Owns(item.ID) {
		if c.EquippedItems == nil {
			c.EquippedItems = map[model.EquipSlot]string{}
		}
		c.EquippedItems[a.Slot] = item.ID
	} else if c.EquippedItems != nil {
		delete(c.EquippedItems, a.Slot)
	}
	s.Character = c
	return s
}

func buyItem(s State, a BuyItem) State {
	if a.ItemID == "" || a.Price < 0 {
		return s
	}
	if s.Character.Owns(a.ItemID) || s.Character.Gold < a.Price {
		return s
	}
	c := s.Character
	c.Gold -= a.Price
	c.OwnedItems = append(slices.Clone(c.OwnedItems), a.ItemID)
	s.Character = c
	return s
}

func (r Reducer) updateStreak(s State) State {
	today := r.today()
	diff, err := progression.DaysBetween(s.Character.LastActiveDate, today)
	if err != nil {
		// No usable history: start counting from today.
		s.Character.LastActiveDate = today
		return s
	}
	if diff < 0 {
		return s
	}
	s.Character.Streak = progression.NextStreak(s.Character.Streak, diff)
	s.Character.LastActiveDate = today
	return s
}

func setAction(s State, a SetAction) State {
	if !a.Action.Valid() {
		return s
	}
	s.CurrentAction = a.Action
	return s
}

func addFloatingText(s State, ft model.FloatingText) State {
	s.FloatingTexts = append(slices.Clone(s.FloatingTexts), ft)
	return s
}

func removeFloatingText(s State, a RemoveFloatingText) State {
	s.FloatingTexts = slices.DeleteFunc(slices.Clone(s.FloatingTexts), func(ft model.FloatingText) bool {
		return ft.ID == a.ID
	})
	return s
}
