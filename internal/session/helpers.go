package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/yash113gadia/CampusQuest/internal/catalog"
	"github.com/yash113gadia/CampusQuest/internal/game"
	"github.com/yash113gadia/CampusQuest/internal/model"
	"github.com/yash113gadia/CampusQuest/internal/store"
)

var (
	ErrUnknownItem     = errors.New("unknown item")
	ErrUnknownTemplate = errors.New("unknown quest template")
	ErrUnknownPreset   = errors.New("unknown focus preset")
	ErrNotEquippable   = errors.New("item cannot be equipped")
)

// DefaultGuildDescription is used when a guild is founded without one.
const DefaultGuildDescription = "A new guild of adventurers!"

// guildIDAttempts bounds the search for a free guild id.
const guildIDAttempts = 8

func (s *Session) CreateCharacter(name string, class model.CharacterClass, look catalog.Appearance) game.State {
	return s.Dispatch(game.CreateCharacter{Name: name, ClassID: class, Appearance: look})
}

// Activate records a visit for the daily streak.
func (s *Session) Activate() game.State {
	return s.Dispatch(game.UpdateStreak{})
}

// CompleteQuest runs the reward sequence for a quest. It reports false, with
// the state unchanged, when the quest is missing or already completed.
func (s *Session) CompleteQuest(questID string, x, y float64) (game.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, later := game.CompleteQuestWithRewards(s.state, questID, x, y)
	if len(now) == 0 {
		return s.state.Clone(), false
	}
	for _, a := range now {
		s.dispatchLocked(a)
	}
	s.scheduleLocked(later)
	return s.state.Clone(), true
}

// CreateQuest adds a custom quest priced by difficulty.
func (s *Session) CreateQuest(title string, d model.Difficulty, category string, subtasks []string) (model.Quest, game.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.reducer.NewQuest(title, d, category, subtasks)
	s.dispatchLocked(game.AddQuest{Quest: q})
	return q, s.state.Clone()
}

// CreatePointQuest adds a custom quest priced like a template worth points.
func (s *Session) CreatePointQuest(title, category string, points float64) (model.Quest, game.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.reducer.NewPointQuest(title, category, points)
	s.dispatchLocked(game.AddQuest{Quest: q})
	return q, s.state.Clone()
}

func (s *Session) AddQuestFromTemplate(templateID string) (model.Quest, game.State, error) {
	t, ok := catalog.TemplateByID(templateID)
	if !ok {
		return model.Quest{}, s.State(), fmt.Errorf("template %q: %w", templateID, ErrUnknownTemplate)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.reducer.NewTemplateQuest(t)
	s.dispatchLocked(game.AddQuest{Quest: q})
	return q, s.state.Clone(), nil
}

// CompleteFocus pays out a finished focus session.
func (s *Session) CompleteFocus(label string, x, y float64) (game.State, error) {
	p, ok := catalog.FocusPresetByLabel(label)
	if !ok {
		return s.State(), fmt.Errorf("preset %q: %w", label, ErrUnknownPreset)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range game.CompleteFocusSession(s.state, p, x, y) {
		s.dispatchLocked(a)
	}
	return s.state.Clone(), nil
}

// Buy purchases a shop item at its catalog price.
func (s *Session) Buy(itemID string) (game.State, error) {
	item, ok := catalog.ShopItem(itemID)
	if !ok {
		return s.State(), fmt.Errorf("item %q: %w", itemID, ErrUnknownItem)
	}
	return s.Dispatch(game.BuyItem{ItemID: item.ID, Price: item.Price}), nil
}

// Equip wears an owned item in its slot. Weapons replace the held weapon.
func (s *Session) Equip(itemID string) (game.State, error) {
	item, ok := catalog.ShopItem(itemID)
	if !ok {
		return s.State(), fmt.Errorf("item %q: %w", itemID, ErrUnknownItem)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Character.Owns(item.ID) {
		return s.state.Clone(), nil
	}
	if item.Category == catalog.ItemWeapon {
		s.dispatchLocked(game.EquipItem{Slot: game.EquipWeapon, ItemID: item.ID})
		return s.state.Clone(), nil
	}
	slot, ok := item.Category.Slot()
	if !ok {
		return s.state.Clone(), fmt.Errorf("item %q: %w", itemID, ErrNotEquippable)
	}
	s.dispatchLocked(game.EquipItem{Slot: string(slot), ItemID: item.ID})
	return s.state.Clone(), nil
}

func (s *Session) UpdateEquipment(slot model.EquipSlot, path string) game.State {
	return s.Dispatch(game.UpdateEquipment{Slot: slot, Path: path})
}

// CreateGuild founds a guild under an id reserved in the store. The reserved
// document is the founded guild itself, so it is not written again by the
// next save. If the store cannot be reached the guild is still created
// locally and written on the next save.
func (s *Session) CreateGuild(ctx context.Context, name, description, emblem string) game.State {
	if description == "" {
		description = DefaultGuildDescription
	}

	s.mu.Lock()
	st := s.state
	s.mu.Unlock()
	if st.CurrentGuild != nil {
		return st.Clone()
	}

	id, err := s.reserveGuildID(ctx, s.reducer.FoundGuild(st, name, description, emblem))
	if err != nil {
		s.logger.Warn("reserve guild id", "error", err)
	}

	s.mu.Lock()
	s.dispatchLocked(game.CreateGuild{ID: id, Name: name, Description: description, Emblem: emblem})
	out := s.state.Clone()
	founded := id != "" && out.CurrentGuild != nil && out.CurrentGuild.ID == id
	if founded {
		delete(s.touched, id)
	}
	s.mu.Unlock()

	if id != "" && !founded {
		// Lost a race with another create; release the reservation.
		if err := s.guilds.Delete(ctx, id); err != nil {
			s.logger.Warn("release guild id", "guild_id", id, "error", err)
		}
	}
	return out
}

// reserveGuildID claims a random unused id by creating g under it. It returns
// "" if no id could be claimed.
func (s *Session) reserveGuildID(ctx context.Context, g model.Guild) (string, error) {
	b := retry.WithMaxRetries(guildIDAttempts, retry.NewConstant(10*time.Millisecond))
	next := s.reducer.NewGuildID
	if next == nil {
		next = game.RandomGuildID
	}
	var id string
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		candidate := next()
		g.ID = candidate
		err := s.guilds.Create(ctx, g)
		if errors.Is(err, store.ErrGuildExists) {
			return retry.RetryableError(err)
		}
		if err != nil {
			return err
		}
		id = candidate
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// JoinGuild refreshes the guild list and joins the guild with the given code.
func (s *Session) JoinGuild(ctx context.Context, guildID string) game.State {
	if _, err := s.RefreshGuilds(ctx); err != nil {
		s.logger.Warn("refresh guilds before join", "error", err)
	}
	return s.Dispatch(game.JoinGuild{GuildID: game.NormalizeGuildID(guildID)})
}

func (s *Session) LeaveGuild() game.State {
	return s.Dispatch(game.LeaveGuild{})
}
