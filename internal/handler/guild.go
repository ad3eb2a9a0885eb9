package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/yash113gadia/CampusQuest/internal/session"
)

type GuildHandler struct {
	sessions *session.Manager
	logger   *slog.Logger
}

func NewGuildHandler(sessions *session.Manager, logger *slog.Logger) *GuildHandler {
	return &GuildHandler{sessions: sessions, logger: logger}
}

// List refreshes the guild list from the store. A failed refresh still
// returns the last known list.
func (h *GuildHandler) List(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFor(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	st, err := s.RefreshGuilds(r.Context())
	if err != nil {
		h.logger.Warn("refresh guilds", "user_id", s.UserID(), "error", err)
	}
	writeJSON(w, http.StatusOK, st.AvailableGuilds)
}

type guildRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Emblem      string `json:"emblem"`
}

func (h *GuildHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req guildRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	s, ok := sessionFor(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	if !s.State().IsCharacterCreated {
		writeError(w, http.StatusConflict, "create a character first")
		return
	}
	writeJSON(w, http.StatusOK, s.CreateGuild(r.Context(), req.Name, strings.TrimSpace(req.Description), req.Emblem))
}

func (h *GuildHandler) Join(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFor(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.JoinGuild(r.Context(), r.PathValue("id")))
}

func (h *GuildHandler) Leave(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFor(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.LeaveGuild())
}

// Leaderboard ranks the current guild's members by XP contributed.
func (h *GuildHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFor(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	st := s.State()
	if st.CurrentGuild == nil {
		writeError(w, http.StatusNotFound, "not in a guild")
		return
	}
	writeJSON(w, http.StatusOK, st.CurrentGuild.Leaderboard())
}
