package game

import (
	"crypto/rand"
	"slices"
	"strings"

	"github.com/yash113gadia/CampusQuest/internal/model"
)

const (
	guildIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	GuildIDLength   = 6

	maxGuildIDAttempts = 64
)

// RandomGuildID returns a fresh 6-character upper-case alphanumeric id.
func RandomGuildID() string {
	// 252 is the largest multiple of len(guildIDAlphabet) below 256.
	const limit = 252
	out := make([]byte, 0, GuildIDLength)
	buf := make([]byte, GuildIDLength*2)
	for len(out) < GuildIDLength {
		if _, err := rand.Read(buf); err != nil {
			panic(err)
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			out = append(out, guildIDAlphabet[int(b)%len(guildIDAlphabet)])
			if len(out) == GuildIDLength {
				break
			}
		}
	}
	return string(out)
}

// NormalizeGuildID trims and upper-cases a user-entered guild code.
func NormalizeGuildID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func memberIndex(g model.Guild, id string) int {
	return slices.IndexFunc(g.Members, func(m model.GuildMember) bool { return m.ID == id })
}

// withGuild makes g the current guild and writes it into the available list.
func withGuild(s State, g model.Guild) State {
	s.CurrentGuild = &g
	s.AvailableGuilds = replaceGuild(s.AvailableGuilds, g)
	return s
}

func replaceGuild(guilds []model.Guild, g model.Guild) []model.Guild {
	out := slices.Clone(guilds)
	for i := range out {
		if out[i].ID == g.ID {
			out[i] = g
			return out
		}
	}
	return append(out, g)
}

func (r Reducer) memberSnapshot(s State) model.GuildMember {
	c := s.Character
	return model.GuildMember{
		ID:              c.ID,
		Name:            c.Name,
		Level:           c.Level,
		ClassID:         c.ClassID,
		XPContributed:   0,
		QuestsCompleted: s.CompletedQuests(),
		JoinedAt:        r.now(),
		SkinID:          c.SkinID,
		HairID:          c.HairID,
		HairColor:       c.HairColor,
		BodyType:        c.BodyType,
	}
}

// pickGuildID honours a requested id unless it clashes with a known guild, and
// otherwise draws random ids until one is not in the local list.
func (r Reducer) pickGuildID(s State, requested string) string {
	if id := NormalizeGuildID(requested); id != "" {
		if _, taken := s.Guild(id); !taken {
			return id
		}
	}
	id := r.newGuildID()
	for i := 0; i < maxGuildIDAttempts; i++ {
		if _, taken := s.Guild(id); !taken {
			break
		}
		id = r.newGuildID()
	}
	return id
}

// FoundGuild returns the guild s's character would found, led by it and with
// it as the only member. The id is left to the caller.
func (r Reducer) FoundGuild(s State, name, description, emblem string) model.Guild {
	return model.Guild{
		Name:        name,
		Description: description,
		Emblem:      emblem,
		LeaderID:    s.Character.ID,
		Members:     []model.GuildMember{r.memberSnapshot(s)},
		CreatedAt:   r.now(),
		MaxMembers:  model.DefaultGuildMaxMembers,
	}
}

func (r Reducer) createGuild(s State, a CreateGuild) State {
	if s.CurrentGuild != nil {
		return s
	}
	g := r.FoundGuild(s, a.Name, a.Description, a.Emblem)
	g.ID = r.pickGuildID(s, a.ID)
	if _, taken := s.Guild(g.ID); taken {
		return s
	}
	return withGuild(s, g)
}

func (r Reducer) joinGuild(s State, a JoinGuild) State {
	if s.CurrentGuild != nil {
		return s
	}
	target, ok := s.Guild(NormalizeGuildID(a.GuildID))
	if !ok || target.IsFull() || target.HasMember(s.Character.ID) {
		return s
	}
	g := cloneGuild(target)
	g.Members = append(g.Members, r.memberSnapshot(s))
	return withGuild(s, g)
}

// leaveGuild drops the character from its guild. An emptied guild disappears
// from the available list. When the leader leaves, the longest-standing
// remaining member takes over.
func leaveGuild(s State) State {
	if s.CurrentGuild == nil {
		return s
	}
	g := cloneGuild(*s.CurrentGuild)
	g.Members = slices.DeleteFunc(g.Members, func(m model.GuildMember) bool {
		return m.ID == s.Character.ID
	})
	s.CurrentGuild = nil

	if len(g.Members) == 0 {
		s.AvailableGuilds = slices.DeleteFunc(slices.Clone(s.AvailableGuilds), func(x model.Guild) bool {
			return x.ID == g.ID
		})
		return s
	}
	if g.LeaderID == s.Character.ID {
		g.LeaderID = g.Members[0].ID
	}
	s.AvailableGuilds = replaceGuild(s.AvailableGuilds, g)
	return s
}

func contributeXP(s State, a ContributeXPToGuild) State {
	if s.CurrentGuild == nil {
		return s
	}
	g := cloneGuild(*s.CurrentGuild)
	g.TotalXP += a.Amount
	if i := memberIndex(g, s.Character.ID); i >= 0 {
		g.Members[i].XPContributed += a.Amount
		g.Members[i].Level = s.Character.Level
	}
	return withGuild(s, g)
}

// loadGuilds replaces the available list. The current guild may carry changes
// not yet written back, so it is kept and laid over its entry in the list.
func loadGuilds(s State, a LoadGuilds) State {
	guilds := make([]model.Guild, len(a.Guilds))
	for i, g := range a.Guilds {
		guilds[i] = normalizeGuild(g)
	}
	s.AvailableGuilds = guilds
	if s.CurrentGuild != nil {
		s.AvailableGuilds = replaceGuild(s.AvailableGuilds, *s.CurrentGuild)
	}
	return s
}

// setCurrentGuild adopts a stored copy of the user's guild, updating its
// entry in the available list too.
func setCurrentGuild(s State, a SetCurrentGuild) State {
	if a.Guild == nil {
		s.CurrentGuild = nil
		return s
	}
	return withGuild(s, normalizeGuild(*a.Guild))
}

// normalizeGuild copies a guild read from storage, filling a missing cap.
func normalizeGuild(g model.Guild) model.Guild {
	g = cloneGuild(g)
	if g.MaxMembers <= 0 {
		g.MaxMembers = model.DefaultGuildMaxMembers
	}
	if g.Members == nil {
		g.Members = []model.GuildMember{}
	}
	return g
}
