// Package game holds the aggregate per-player state and the pure reducer that
// is the only way to change it.
package game

import (
	"slices"
	"time"

	"github.com/yash113gadia/CampusQuest/internal/catalog"
	"github.com/yash113gadia/CampusQuest/internal/model"
	"github.com/yash113gadia/CampusQuest/internal/progression"
)

// State is one player's aggregate game state. Values are treated as immutable:
// the reducer always returns a fresh State and never writes through slices or
// pointers it was given.
type State struct {
	Character          model.Character      `json:"character"`
	Quests             []model.Quest        `json:"quests"`
	FloatingTexts      []model.FloatingText `json:"floatingTexts"`
	IsCharacterCreated bool                 `json:"isCharacterCreated"`
	CurrentAction      model.AvatarAction   `json:"currentAction"`
	CurrentGuild       *model.Guild         `json:"currentGuild"`
	AvailableGuilds    []model.Guild        `json:"availableGuilds"`
	UserID             string               `json:"userId"`
	IsLoading          bool                 `json:"isLoading"`
	IsSyncing          bool                 `json:"isSyncing"`
}

// NewCharacter returns the placeholder character every session starts with.
// It has no id or name until CreateCharacter runs.
func NewCharacter(today string) model.Character {
	return model.Character{
		Level:          1,
		XP:             0,
		XPToNextLevel:  progression.XPToNextLevel(1),
		Gold:           catalog.StartingGold,
		SkinID:         catalog.DefaultSkin,
		HairID:         catalog.DefaultHair,
		HairColor:      catalog.DefaultHairColor,
		BodyType:       catalog.DefaultBodyType,
		ArmorID:        catalog.DefaultArmor,
		WeaponID:       catalog.DefaultWeapon,
		Equipment:      catalog.StarterEquipment(catalog.DefaultAppearance()),
		OwnedItems:     []string{},
		Stats:          progression.DefaultStats(),
		ClassID:        model.ClassScholar,
		Streak:         0,
		LastActiveDate: today,
	}
}

// NewState returns the initial state, with today's date taken from now.
func NewState(now time.Time) State {
	return State{
		Character:       NewCharacter(progression.FormatDate(now)),
		Quests:          []model.Quest{},
		FloatingTexts:   []model.FloatingText{},
		CurrentAction:   model.ActionIdle,
		AvailableGuilds: []model.Guild{},
	}
}

// Saveable reports whether the state is worth persisting: a user is signed in,
// their character exists and nothing is mid-load.
func (s State) Saveable() bool {
	return s.UserID != "" && s.IsCharacterCreated && !s.IsLoading
}

// UserData is the persisted projection of s.
func (s State) UserData() model.UserData {
	var guildID *string
	if s.CurrentGuild != nil {
		id := s.CurrentGuild.ID
		guildID = &id
	}
	return model.UserData{
		Character:      cloneCharacter(s.Character),
		Quests:         cloneQuests(s.Quests),
		CurrentGuildID: guildID,
	}
}

// Quest returns the quest with the given id.
func (s State) Quest(id string) (model.Quest, bool) {
	for _, q := range s.Quests {
		if q.ID == id {
			return q, true
		}
	}
	return model.Quest{}, false
}

// Guild returns the available guild with the given id.
func (s State) Guild(id string) (model.Guild, bool) {
	for _, g := range s.AvailableGuilds {
		if g.ID == id {
			return g, true
		}
	}
	return model.Guild{}, false
}

// CompletedQuests counts completed quests.
func (s State) CompletedQuests() int {
	n := 0
	for _, q := range s.Quests {
		if q.IsCompleted {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of s, safe to hand to another goroutine.
func (s State) Clone() State {
	out := s
	out.Character = cloneCharacter(s.Character)
	out.Quests = cloneQuests(s.Quests)
	out.FloatingTexts = slices.Clone(s.FloatingTexts)
	if s.CurrentGuild != nil {
		g := cloneGuild(*s.CurrentGuild)
		out.CurrentGuild = &g
	}
	out.AvailableGuilds = make([]model.Guild, len(s.AvailableGuilds))
	for i, g := range s.AvailableGuilds {
		out.AvailableGuilds[i] = cloneGuild(g)
	}
	return out
}

func cloneCharacter(c model.Character) model.Character {
	c.OwnedItems = slices.Clone(c.OwnedItems)
	if c.EquippedItems != nil {
		m := make(map[model.EquipSlot]string, len(c.EquippedItems))
		for k, v := range c.EquippedItems {
			m[k] = v
		}
		c.EquippedItems = m
	}
	return c
}

func cloneQuests(qs []model.Quest) []model.Quest {
	out := make([]model.Quest, len(qs))
	for i, q := range qs {
		out[i] = cloneQuest(q)
	}
	return out
}

func cloneQuest(q model.Quest) model.Quest {
	q.Subtasks = slices.Clone(q.Subtasks)
	if q.Rewards.StatBonus != nil {
		b := *q.Rewards.StatBonus
		q.Rewards.StatBonus = &b
	}
	return q
}

func cloneGuild(g model.Guild) model.Guild {
	g.Members = slices.Clone(g.Members)
	return g
}
