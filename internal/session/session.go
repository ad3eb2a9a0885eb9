// Package session owns each signed-in user's live game state. A Session is
// the only writer of that state: it runs actions through the reducer, fires
// deferred effects, pushes updates to listeners and saves to the store.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/yash113gadia/CampusQuest/internal/game"
	"github.com/yash113gadia/CampusQuest/internal/model"
	"github.com/yash113gadia/CampusQuest/internal/store"
)

const saveTimeout = 10 * time.Second

// Publisher receives every state change. Calls are made with the session
// lock held, so implementations must not block or call back into the session.
type Publisher interface {
	PublishState(userID string, s game.State)
	PublishFloatingText(userID string, ft model.FloatingText)
}

type nopPublisher struct{}

func (nopPublisher) PublishState(string, game.State)                {}
func (nopPublisher) PublishFloatingText(string, model.FloatingText) {}

// Deps are the collaborators shared by every session.
type Deps struct {
	Users     store.UserDataRepository
	Guilds    store.GuildRepository
	Publisher Publisher
	Reducer   game.Reducer
	SaveDelay time.Duration
	Logger    *slog.Logger
}

type Session struct {
	userID  string
	users   store.UserDataRepository
	guilds  store.GuildRepository
	pub     Publisher
	reducer game.Reducer
	saver   *Debouncer
	logger  *slog.Logger

	mu         sync.Mutex
	state      game.State
	effects    game.EffectQueue
	timer      *time.Timer
	timerGen   uint64
	touched    map[string]struct{}
	lastActive time.Time
	closed     bool
}

// New returns a session in the initial state. Call Load to fill it.
func New(userID string, d Deps) *Session {
	if d.Publisher == nil {
		d.Publisher = nopPublisher{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	s := &Session{
		userID:     userID,
		users:      d.Users,
		guilds:     d.Guilds,
		pub:        d.Publisher,
		reducer:    d.Reducer,
		logger:     d.Logger.With("user_id", userID),
		touched:    map[string]struct{}{},
		lastActive: time.Now(),
	}
	s.state = s.reducer.Initial()
	s.saver = NewDebouncer(d.SaveDelay, s.saveInBackground)
	return s
}

func (s *Session) UserID() string {
	return s.userID
}

// State returns a copy of the current state.
func (s *Session) State() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// LastActive is when the session last dispatched an action.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Dispatch applies actions in order and returns the resulting state.
func (s *Session) Dispatch(actions ...game.Action) game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range actions {
		s.dispatchLocked(a)
	}
	return s.state.Clone()
}

func (s *Session) dispatchLocked(a game.Action) {
	if s.closed {
		return
	}
	before := s.state
	after := s.reducer.Apply(before, a)
	s.state = after
	s.lastActive = time.Now()

	if tracksGuild(a) && before.CurrentGuild != after.CurrentGuild {
		for _, g := range []*model.Guild{before.CurrentGuild, after.CurrentGuild} {
			if g != nil {
				s.touched[g.ID] = struct{}{}
			}
		}
	}

	for _, ft := range game.NewFloatingTexts(before, after) {
		s.pub.PublishFloatingText(s.userID, ft)
	}
	s.scheduleLocked(game.ExpireFloatingTexts(before, after))
	s.pub.PublishState(s.userID, after.Clone())

	if persistent(a) && after.Saveable() {
		s.saver.Trigger()
	}
}

// scheduleLocked queues effects to run through dispatch later.
func (s *Session) scheduleLocked(effects []game.Effect) {
	if len(effects) == 0 {
		return
	}
	s.effects.ScheduleAll(time.Now(), effects)
	s.armLocked()
}

func (s *Session) armLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerGen++
	next, ok := s.effects.Next()
	if !ok || s.closed {
		return
	}
	gen := s.timerGen
	s.timer = time.AfterFunc(time.Until(next), func() { s.runDue(gen) })
}

func (s *Session) runDue(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.timerGen {
		return
	}
	s.timer = nil
	for _, a := range s.effects.Due(time.Now()) {
		s.dispatchLocked(a)
	}
	s.armLocked()
}

// PendingEffects is the number of deferred actions not yet dispatched.
func (s *Session) PendingEffects() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.effects.Len()
}

// tracksGuild reports whether a changes the user's guild in a way that must
// be written back to the guild document.
func tracksGuild(a game.Action) bool {
	switch a.(type) {
	case game.CreateGuild, game.JoinGuild, game.LeaveGuild, game.ContributeXPToGuild, game.CompleteQuest:
		return true
	}
	return false
}

// persistent reports whether a changes the saved user document.
func persistent(a game.Action) bool {
	switch a.(type) {
	case game.CreateCharacter, game.AddXP, game.AddGold, game.UpdateStats,
		game.EquipItem, game.UpdateEquipment, game.BuyItem,
		game.AddQuest, game.CompleteQuest, game.CompleteSubtask, game.DeleteQuest,
		game.UpdateStreak,
		game.CreateGuild, game.JoinGuild, game.LeaveGuild, game.ContributeXPToGuild:
		return true
	}
	return false
}

// Load signs the user in and fills the state from the store. A missing
// document leaves the default character in place. When the user document
// cannot be read the session stays in loading so it never saves over it.
func (s *Session) Load(ctx context.Context) error {
	s.Dispatch(game.SetUserID{UserID: s.userID}, game.SetLoading{Loading: true})

	ud, err := s.users.Load(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("load user data: %w", err)
	}
	if ud == nil {
		s.Dispatch(game.SetLoading{Loading: false})
	} else {
		s.Dispatch(game.LoadUserData{Character: ud.Character, Quests: ud.Quests, CurrentGuildID: ud.CurrentGuildID})
	}

	if ud != nil && ud.CurrentGuildID != nil {
		g, err := s.guilds.Get(ctx, *ud.CurrentGuildID)
		switch {
		case err != nil:
			s.logger.Warn("load current guild", "guild_id", *ud.CurrentGuildID, "error", err)
		case g != nil:
			s.Dispatch(game.SetCurrentGuild{Guild: g})
		}
	}

	if _, err := s.RefreshGuilds(ctx); err != nil {
		s.logger.Warn("load guilds", "error", err)
	}
	return nil
}

// RefreshGuilds reloads the guild list from the store. The current guild is
// taken from the store only when it has no unsaved local changes and the
// stored roster still lists this character.
func (s *Session) RefreshGuilds(ctx context.Context) (game.State, error) {
	guilds, err := s.guilds.List(ctx)
	if err != nil {
		return s.State(), fmt.Errorf("list guilds: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatchLocked(game.LoadGuilds{Guilds: guilds})
	if fresh, ok := s.storedCurrentLocked(guilds); ok {
		s.dispatchLocked(game.SetCurrentGuild{Guild: &fresh})
	}
	return s.state.Clone(), nil
}

func (s *Session) storedCurrentLocked(guilds []model.Guild) (model.Guild, bool) {
	cur := s.state.CurrentGuild
	if cur == nil || s.state.IsSyncing {
		return model.Guild{}, false
	}
	if _, dirty := s.touched[cur.ID]; dirty {
		return model.Guild{}, false
	}
	for _, g := range guilds {
		if g.ID == cur.ID && g.HasMember(s.state.Character.ID) {
			return g, true
		}
	}
	return model.Guild{}, false
}

// Save writes the user document and every guild touched since the last save.
// Failed guild writes are retried on the next save. Memory is never rolled
// back.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	st := s.state
	if !st.Saveable() {
		s.mu.Unlock()
		return nil
	}
	touched := s.touched
	s.touched = map[string]struct{}{}
	data := st.UserData()
	s.dispatchLocked(game.SetSyncing{Syncing: true})
	s.mu.Unlock()

	var errs []error
	if err := s.users.Save(ctx, s.userID, data); err != nil {
		errs = append(errs, fmt.Errorf("save user data: %w", err))
	}

	var failed []string
	for id := range touched {
		var err error
		if g, ok := st.Guild(id); ok {
			err = s.writeGuild(ctx, g)
		} else {
			err = s.guilds.Delete(ctx, id)
		}
		if err != nil {
			failed = append(failed, id)
			errs = append(errs, fmt.Errorf("sync guild %s: %w", id, err))
		}
	}

	s.mu.Lock()
	for _, id := range failed {
		s.touched[id] = struct{}{}
	}
	s.dispatchLocked(game.SetSyncing{Syncing: false})
	s.mu.Unlock()

	return errors.Join(errs...)
}

func (s *Session) writeGuild(ctx context.Context, g model.Guild) error {
	err := s.guilds.Update(ctx, g.ID, g.FullUpdate())
	if errors.Is(err, store.ErrGuildNotFound) {
		return s.guilds.Create(ctx, g)
	}
	return err
}

func (s *Session) saveInBackground() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.Save(ctx); err != nil {
		s.logger.Error("save state", "error", err)
	}
}

// Flush dispatches every deferred effect now, so rewards still in flight are
// granted, and then runs a pending debounced save.
func (s *Session) Flush() {
	s.mu.Lock()
	for !s.closed && s.effects.Len() > 0 {
		for _, a := range s.effects.Drain() {
			s.dispatchLocked(a)
		}
	}
	s.armLocked()
	s.mu.Unlock()

	s.saver.Flush()
}

// Close flushes deferred effects and any pending save, then stops all timers.
// Dispatch is a no-op afterwards.
func (s *Session) Close() {
	s.Flush()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.effects.Cancel()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerGen++
}
