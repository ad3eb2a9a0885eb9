package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/yash113gadia/CampusQuest/internal/auth"
	"github.com/yash113gadia/CampusQuest/internal/game"
	"github.com/yash113gadia/CampusQuest/internal/handler"
	"github.com/yash113gadia/CampusQuest/internal/middleware"
	"github.com/yash113gadia/CampusQuest/internal/session"
	ws "github.com/yash113gadia/CampusQuest/internal/websocket"
)

// Auth endpoints allow this many attempts per client IP per window.
const (
	authRateLimit  = 10
	authRateWindow = time.Minute
)

// Deps are the long-lived services the server routes to.
type Deps struct {
	Sessions *session.Manager
	Hub      *ws.Hub
	Events   *auth.Events
	Provider auth.Provider
	// Local is nil when accounts live with Firebase.
	Local   *auth.LocalProvider
	Reducer game.Reducer
	Logger  *slog.Logger
}

type Server struct {
	sessions    *session.Manager
	hub         *ws.Hub
	provider    auth.Provider
	authH       *handler.AuthHandler
	sessionH    *handler.SessionHandler
	gameH       *handler.GameHandler
	questH      *handler.QuestHandler
	guildH      *handler.GuildHandler
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(d Deps) *Server {
	logger := d.Logger
	s := &Server{
		sessions:    d.Sessions,
		hub:         d.Hub,
		provider:    d.Provider,
		sessionH:    handler.NewSessionHandler(d.Events, d.Sessions, logger.With("component", "session_handler")),
		gameH:       handler.NewGameHandler(d.Sessions, logger.With("component", "game")),
		questH:      handler.NewQuestHandler(d.Sessions, d.Reducer, logger.With("component", "quest")),
		guildH:      handler.NewGuildHandler(d.Sessions, logger.With("component", "guild")),
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
	if d.Local != nil {
		s.authH = handler.NewAuthHandler(d.Local, logger.With("component", "auth"))
	}
	return s
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes (no auth required)
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.HandleFunc("GET /api/catalog/templates", handler.CatalogTemplates)
	outerMux.HandleFunc("GET /api/catalog/shop", handler.CatalogShop)
	outerMux.HandleFunc("GET /api/catalog/focus", handler.CatalogFocus)
	if s.authH != nil {
		outerMux.HandleFunc("POST /api/auth/signup", s.rateLimitedHandler(s.authH.SignUp))
		outerMux.HandleFunc("POST /api/auth/login", s.rateLimitedHandler(s.authH.Login))
	}

	// Protected routes, wrapped with RequireAuth middleware
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.provider)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
		"sockets":  s.hub.ClientCount(),
	})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	rl := middleware.RateLimit(s.rateLimiter, middleware.RealIP, authRateLimit, authRateWindow)
	return rl(h).ServeHTTP
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	// Sign-in lifecycle
	mux.HandleFunc("POST /api/session", s.sessionH.Start)
	mux.HandleFunc("DELETE /api/session", s.sessionH.End)

	// State and raw actions
	mux.HandleFunc("GET /api/state", s.gameH.State)
	mux.HandleFunc("POST /api/actions", s.gameH.Dispatch)

	// Character
	mux.HandleFunc("POST /api/character", s.gameH.CreateCharacter)
	mux.HandleFunc("POST /api/character/activate", s.gameH.Activate)
	mux.HandleFunc("PUT /api/character/equipment", s.gameH.UpdateEquipment)

	// Shop
	mux.HandleFunc("POST /api/shop/{id}/buy", s.gameH.Buy)
	mux.HandleFunc("POST /api/shop/{id}/equip", s.gameH.Equip)

	// Quests and focus sessions
	mux.HandleFunc("GET /api/quests", s.questH.List)
	mux.HandleFunc("POST /api/quests", s.questH.Create)
	mux.HandleFunc("POST /api/templates/{id}/quests", s.questH.FromTemplate)
	mux.HandleFunc("POST /api/quests/{id}/complete", s.questH.Complete)
	mux.HandleFunc("POST /api/quests/{id}/subtasks/{sid}/complete", s.questH.CompleteSubtask)
	mux.HandleFunc("DELETE /api/quests/{id}", s.questH.Delete)
	mux.HandleFunc("POST /api/focus/{label}/complete", s.questH.CompleteFocus)

	// Guilds
	mux.HandleFunc("GET /api/guilds", s.guildH.List)
	mux.HandleFunc("POST /api/guilds", s.guildH.Create)
	mux.HandleFunc("POST /api/guilds/{id}/join", s.guildH.Join)
	mux.HandleFunc("POST /api/guild/leave", s.guildH.Leave)
	mux.HandleFunc("GET /api/guild/leaderboard", s.guildH.Leaderboard)

	// Push channel
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.snapshot, s.logger.With("component", "websocket")))
}

func (s *Server) snapshot(ctx context.Context, userID string) (game.State, error) {
	sess, err := s.sessions.Open(ctx, userID)
	if err != nil {
		return game.State{}, err
	}
	return sess.State(), nil
}
