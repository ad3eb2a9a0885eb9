package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/yash113gadia/CampusQuest/internal/game"
)

const (
	DefaultIdleTTL       = 30 * time.Minute
	DefaultEvictInterval = time.Minute
)

// ManagerConfig tunes session lifetime.
type ManagerConfig struct {
	IdleTTL       time.Duration
	EvictInterval time.Duration
}

// Manager holds one live session per signed-in user.
type Manager struct {
	deps   Deps
	cfg    ManagerConfig
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	loading  map[string]*sync.Mutex

	scheduler gocron.Scheduler
	stopMu    sync.Mutex
}

func NewManager(deps Deps, cfg ManagerConfig) *Manager {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = DefaultIdleTTL
	}
	if cfg.EvictInterval <= 0 {
		cfg.EvictInterval = DefaultEvictInterval
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	logger := deps.Logger.With("component", "session")
	deps.Logger = logger
	return &Manager{
		deps:     deps,
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string]*Session),
		loading:  make(map[string]*sync.Mutex),
	}
}

// Get returns the live session for userID, if any.
func (m *Manager) Get(userID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	return s, ok
}

// Open returns the live session for userID, loading it from the store first
// if needed. Concurrent opens for one user share a single load.
func (m *Manager) Open(ctx context.Context, userID string) (*Session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[userID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	lock, ok := m.loading[userID]
	if !ok {
		lock = &sync.Mutex{}
		m.loading[userID] = lock
	}
	m.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	if s, ok := m.Get(userID); ok {
		return s, nil
	}

	s := New(userID, m.deps)
	if err := s.Load(ctx); err != nil {
		s.Close()
		m.mu.Lock()
		delete(m.loading, userID)
		m.mu.Unlock()
		return nil, fmt.Errorf("open session: %w", err)
	}

	m.mu.Lock()
	m.sessions[userID] = s
	delete(m.loading, userID)
	m.mu.Unlock()

	m.logger.Info("session opened", "user_id", userID)
	return s, nil
}

// Close flushes and drops the session for userID. The user's listeners see
// the reset state.
func (m *Manager) Close(userID string) {
	m.mu.Lock()
	s, ok := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()
	if !ok {
		return
	}

	s.Flush()
	s.Dispatch(game.ResetState{})
	s.Close()
	m.logger.Info("session closed", "user_id", userID)
}

// HandleAuth follows sign-in and sign-out events.
func (m *Manager) HandleAuth(userID string, signedIn bool) {
	if !signedIn {
		m.Close(userID)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if _, err := m.Open(ctx, userID); err != nil {
		m.logger.Error("load session on sign-in", "user_id", userID, "error", err)
	}
}

// Len is the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Start schedules the idle-eviction job. Call Stop to end it.
func (m *Manager) Start() error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("new scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(m.cfg.EvictInterval),
		gocron.NewTask(func() { m.EvictIdle(time.Now()) }),
		gocron.WithName("evict-idle-sessions"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("schedule eviction: %w", err)
	}
	m.mu.Lock()
	m.scheduler = s
	m.mu.Unlock()
	s.Start()
	return nil
}

// Stop ends the eviction job and closes every session, saving pending state.
// It returns once every save has finished; a concurrent call waits for the
// first.
func (m *Manager) Stop() {
	m.stopMu.Lock()
	defer m.stopMu.Unlock()

	m.mu.Lock()
	sched := m.scheduler
	m.scheduler = nil
	sessions := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		sessions = append(sessions, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if sched != nil {
		if err := sched.Shutdown(); err != nil {
			m.logger.Error("shutdown scheduler", "error", err)
		}
	}
	for _, s := range sessions {
		s.Close()
	}
}

// EvictIdle closes sessions that have been quiet longer than the idle TTL
// as of now.
func (m *Manager) EvictIdle(now time.Time) {
	cutoff := now.Add(-m.cfg.IdleTTL)

	m.mu.Lock()
	var idle []string
	for id, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			idle = append(idle, id)
		}
	}
	m.mu.Unlock()

	for _, id := range idle {
		m.mu.Lock()
		s, ok := m.sessions[id]
		delete(m.sessions, id)
		m.mu.Unlock()
		if ok {
			s.Close()
			m.logger.Info("session evicted", "user_id", id)
		}
	}
}
