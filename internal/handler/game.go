package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yash113gadia/CampusQuest/internal/catalog"
	"github.com/yash113gadia/CampusQuest/internal/game"
	"github.com/yash113gadia/CampusQuest/internal/model"
	"github.com/yash113gadia/CampusQuest/internal/session"
)

type GameHandler struct {
	sessions *session.Manager
	logger   *slog.Logger
}

func NewGameHandler(sessions *session.Manager, logger *slog.Logger) *GameHandler {
	return &GameHandler{sessions: sessions, logger: logger}
}

// stateResponse is the game state plus the character's stats with equipped
// item bonuses applied.
type stateResponse struct {
	game.State
	EffectiveStats model.Stats `json:"effectiveStats"`
}

func withEffectiveStats(st game.State) stateResponse {
	return stateResponse{State: st, EffectiveStats: catalog.EffectiveStats(st.Character)}
}

func (h *GameHandler) State(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFor(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, withEffectiveStats(s.State()))
}

// Dispatch runs one raw {type, payload} action through the reducer.
// Actions that belong to the sign-in lifecycle are refused.
func (h *GameHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	a, err := game.UnmarshalAction(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !clientAction(a) {
		writeError(w, http.StatusForbidden, "action "+game.TypeOf(a)+" is not allowed")
		return
	}

	s, ok := sessionFor(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Dispatch(a))
}

// clientAction reports whether a may be sent by a client. Session lifecycle
// and guild loading are driven by the server.
func clientAction(a game.Action) bool {
	switch a.(type) {
	case game.SetUserID, game.LoadUserData, game.LoadGuilds, game.SetCurrentGuild,
		game.SetLoading, game.SetSyncing, game.ResetState:
		return false
	}
	return true
}

type createCharacterRequest struct {
	Name    string               `json:"name"`
	ClassID model.CharacterClass `json:"classId"`
	catalog.Appearance
}

func (h *GameHandler) CreateCharacter(w http.ResponseWriter, r *http.Request) {
	var req createCharacterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.ClassID != "" && !req.ClassID.Valid() {
		writeError(w, http.StatusBadRequest, "unknown class")
		return
	}

	s, ok := sessionFor(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.CreateCharacter(req.Name, req.ClassID, req.Appearance))
}

// Activate records today's visit for the streak.
func (h *GameHandler) Activate(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFor(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Activate())
}

type equipmentRequest struct {
	Slot model.EquipSlot `json:"slot"`
	Path string          `json:"path"`
}

func (h *GameHandler) UpdateEquipment(w http.ResponseWriter, r *http.Request) {
	var req equipmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.Slot.Valid() {
		writeError(w, http.StatusBadRequest, "slot must be shirt, pants, shoes, or hair")
		return
	}

	s, ok := sessionFor(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, withEffectiveStats(s.UpdateEquipment(req.Slot, req.Path)))
}

func (h *GameHandler) Buy(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFor(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	st, err := s.Buy(r.PathValue("id"))
	if errors.Is(err, session.ErrUnknownItem) {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, withEffectiveStats(st))
}

func (h *GameHandler) Equip(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFor(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	st, err := s.Equip(r.PathValue("id"))
	switch {
	case errors.Is(err, session.ErrUnknownItem):
		writeError(w, http.StatusNotFound, "item not found")
		return
	case errors.Is(err, session.ErrNotEquippable):
		writeError(w, http.StatusBadRequest, "item cannot be equipped")
		return
	}
	writeJSON(w, http.StatusOK, withEffectiveStats(st))
}
