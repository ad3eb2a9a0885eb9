package model

import (
	"cmp"
	"slices"
	"time"
)

// DefaultGuildMaxMembers caps every guild roster unless overridden.
const DefaultGuildMaxMembers = 10

type GuildMember struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Level           int            `json:"level"`
	ClassID         CharacterClass `json:"classId"`
	XPContributed   int            `json:"xpContributed"`
	QuestsCompleted int            `json:"questsCompleted"`
	JoinedAt        time.Time      `json:"joinedAt"`

	SkinID    string `json:"skinId"`
	HairID    string `json:"hairId"`
	HairColor string `json:"hairColor"`
	BodyType  string `json:"bodyType"`
}

type Guild struct {
	ID                   string        `json:"id"`
	Name                 string        `json:"name"`
	Description          string        `json:"description"`
	Emblem               string        `json:"emblem"`
	LeaderID             string        `json:"leaderId"`
	Members              []GuildMember `json:"members"`
	TotalXP              int           `json:"totalXp"`
	TotalQuestsCompleted int           `json:"totalQuestsCompleted"`
	CreatedAt            time.Time     `json:"createdAt"`
	MaxMembers           int           `json:"maxMembers"`
}

// IsFull reports whether the roster has reached MaxMembers.
func (g Guild) IsFull() bool {
	return len(g.Members) >= g.MaxMembers
}

// HasMember reports whether a member with the given id is on the roster.
func (g Guild) HasMember(id string) bool {
	for _, m := range g.Members {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Leaderboard returns the roster ordered by XP contributed, highest first.
// Ties keep roster order.
func (g Guild) Leaderboard() []GuildMember {
	out := slices.Clone(g.Members)
	slices.SortStableFunc(out, func(a, b GuildMember) int {
		return cmp.Compare(b.XPContributed, a.XPContributed)
	})
	return out
}

// GuildUpdate is a partial update. Nil fields are not written.
type GuildUpdate struct {
	Name                 *string        `json:"name,omitempty"`
	Description          *string        `json:"description,omitempty"`
	Emblem               *string        `json:"emblem,omitempty"`
	LeaderID             *string        `json:"leaderId,omitempty"`
	Members              *[]GuildMember `json:"members,omitempty"`
	TotalXP              *int           `json:"totalXp,omitempty"`
	TotalQuestsCompleted *int           `json:"totalQuestsCompleted,omitempty"`
	MaxMembers           *int           `json:"maxMembers,omitempty"`
}

// FullUpdate returns an update that overwrites every mutable field of g.
func (g Guild) FullUpdate() GuildUpdate {
	members := g.Members
	return GuildUpdate{
		Name:                 &g.Name,
		Description:          &g.Description,
		Emblem:               &g.Emblem,
		LeaderID:             &g.LeaderID,
		Members:              &members,
		TotalXP:              &g.TotalXP,
		TotalQuestsCompleted: &g.TotalQuestsCompleted,
		MaxMembers:           &g.MaxMembers,
	}
}

// Apply returns g with every non-nil field of u written over it.
func (u GuildUpdate) Apply(g Guild) Guild {
	if u.Name != nil {
		g.Name = *u.Name
	}
	if u.Description != nil {
		g.Description = *u.Description
	}
	if u.Emblem != nil {
		g.Emblem = *u.Emblem
	}
	if u.LeaderID != nil {
		g.LeaderID = *u.LeaderID
	}
	if u.Members != nil {
		g.Members = *u.Members
	}
	if u.TotalXP != nil {
		g.TotalXP = *u.TotalXP
	}
	if u.TotalQuestsCompleted != nil {
		g.TotalQuestsCompleted = *u.TotalQuestsCompleted
	}
	if u.MaxMembers != nil {
		g.MaxMembers = *u.MaxMembers
	}
	return g
}
