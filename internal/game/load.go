package game

import (
	"github.com/yash113gadia/CampusQuest/internal/catalog"
	"github.com/yash113gadia/CampusQuest/internal/model"
	"github.com/yash113gadia/CampusQuest/internal/progression"
)

func loadUserData(s State, a LoadUserData) State {
	s.Character = normalizeCharacter(a.Character)
	s.Quests = cloneQuests(a.Quests)
	for i := range s.Quests {
		if s.Quests[i].Subtasks == nil {
			s.Quests[i].Subtasks = []model.Subtask{}
		}
	}
	s.IsCharacterCreated = s.Character.Name != ""
	s.IsLoading = false
	return s
}

// normalizeCharacter repairs documents written by older clients: a missing
// threshold is recomputed and equipped items are recovered from their paths.
func normalizeCharacter(c model.Character) model.Character {
	c = cloneCharacter(c)
	if c.Level < 1 {
		c.Level = 1
	}
	if c.XPToNextLevel <= 0 {
		c.XPToNextLevel = progression.XPToNextLevel(c.Level)
	}
	if c.OwnedItems == nil {
		c.OwnedItems = []string{}
	}
	if c.EquippedItems == nil {
		for _, slot := range []model.EquipSlot{model.SlotShirt, model.SlotPants, model.SlotShoes, model.SlotHair} {
			item, ok := catalog.ItemForPath(slot, c.Equipment.Path(slot))
			if !ok || !c.Owns(item.ID) {
				continue
			}
			if c.EquippedItems == nil {
				c.EquippedItems = map[model.EquipSlot]string{}
			}
			c.EquippedItems[slot] = item.ID
		}
	}
	return c
}
