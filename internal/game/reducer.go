package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/yash113gadia/CampusQuest/internal/model"
	"github.com/yash113gadia/CampusQuest/internal/progression"
)

// Reducer applies actions to state. Clock and id sources are injected so every
// transition is deterministic under test.
type Reducer struct {
	Now        func() time.Time
	NewID      func() string
	NewGuildID func() string
	// Location sets the calendar-day boundary for streaks. Nil means UTC.
	Location *time.Location
}

// NewReducer returns a reducer on the wall clock with random ids.
func NewReducer(loc *time.Location) Reducer {
	return Reducer{
		Now:        time.Now,
		NewID:      uuid.NewString,
		NewGuildID: RandomGuildID,
		Location:   loc,
	}
}

func (r Reducer) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r Reducer) newID() string {
	if r.NewID == nil {
		return uuid.NewString()
	}
	return r.NewID()
}

func (r Reducer) newGuildID() string {
	if r.NewGuildID == nil {
		return RandomGuildID()
	}
	return r.NewGuildID()
}

func (r Reducer) today() string {
	return r.dateOf(r.now())
}

// dateOf is the calendar day of t in the reducer's location.
func (r Reducer) dateOf(t time.Time) string {
	if r.Location != nil {
		return progression.FormatDate(t.In(r.Location))
	}
	return progression.FormatDate(t.UTC())
}

// Initial returns the state a fresh session starts from.
func (r Reducer) Initial() State {
	s := NewState(r.now())
	s.Character.LastActiveDate = r.today()
	return s
}

// Apply returns the state after a. It is total: unknown actions and guarded
// transitions return s unchanged. s is never modified.
func (r Reducer) Apply(s State, a Action) State {
	switch a := a.(type) {
	case CreateCharacter:
		return r.createCharacter(s, a)
	case AddXP:
		return r.addXP(s, a)
	case AddGold:
		return r.addGold(s, a)
	case LevelUp:
		return r.levelUp(s)
	case UpdateStats:
		return updateStats(s, a)
	case EquipItem:
		return equipItem(s, a)
	case UpdateEquipment:
		return updateEquipment(s, a)
	case BuyItem:
		return buyItem(s, a)

	case AddQuest:
		return addQuest(s, a)
	case CompleteQuest:
		return r.completeQuest(s, a)
	case CompleteSubtask:
		return completeSubtask(s, a)
	case DeleteQuest:
		return deleteQuest(s, a)

	case SetAction:
		return setAction(s, a)
	case AddFloatingText:
		return addFloatingText(s, a.FloatingText)
	case RemoveFloatingText:
		return removeFloatingText(s, a)
	case UpdateStreak:
		return r.updateStreak(s)
	case TakeDamage:
		s.CurrentAction = model.ActionHurt
		return s

	case CreateGuild:
		return r.createGuild(s, a)
	case JoinGuild:
		return r.joinGuild(s, a)
	case LeaveGuild:
		return leaveGuild(s)
	case ContributeXPToGuild:
		return contributeXP(s, a)

	case SetUserID:
		s.UserID = a.UserID
		return s
	case LoadUserData:
		return loadUserData(s, a)
	case LoadGuilds:
		return loadGuilds(s, a)
	case SetCurrentGuild:
		return setCurrentGuild(s, a)
	case SetLoading:
		s.IsLoading = a.Loading
		return s
	case SetSyncing:
		s.IsSyncing = a.Syncing
		return s
	case ResetState:
		return r.Initial()
	}
	return s
}

// ApplyAll folds actions over s in order.
func (r Reducer) ApplyAll(s State, actions ...Action) State {
	for _, a := range actions {
		s = r.Apply(s, a)
	}
	return s
}
