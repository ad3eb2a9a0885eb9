package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yash113gadia/CampusQuest/internal/catalog"
	"github.com/yash113gadia/CampusQuest/internal/game"
	"github.com/yash113gadia/CampusQuest/internal/model"
	"github.com/yash113gadia/CampusQuest/internal/progression"
	"github.com/yash113gadia/CampusQuest/internal/session"
)

type QuestHandler struct {
	sessions *session.Manager
	reducer  game.Reducer
	logger   *slog.Logger
}

func NewQuestHandler(sessions *session.Manager, reducer game.Reducer, logger *slog.Logger) *QuestHandler {
	return &QuestHandler{sessions: sessions, reducer: reducer, logger: logger}
}

type questListResponse struct {
	Quests []model.Quest      `json:"quests"`
	Today  game.DailyProgress `json:"today"`
}

func (h *QuestHandler) List(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFor(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	st := s.State()
	writeJSON(w, http.StatusOK, questListResponse{Quests: st.Quests, Today: h.reducer.Today(st)})
}

// questRequest creates a custom quest. Points, when set, prices it like a
// template; otherwise the difficulty tables apply.
type questRequest struct {
	Title      string           `json:"title"`
	Difficulty model.Difficulty `json:"difficulty"`
	Category   string           `json:"category"`
	Subtasks   []string         `json:"subtasks"`
	Points     *float64         `json:"points"`
}

type questResponse struct {
	Quest model.Quest `json:"quest"`
	State game.State  `json:"state"`
}

func (h *QuestHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req questRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Points != nil && *req.Points <= 0 {
		writeError(w, http.StatusBadRequest, "points must be positive")
		return
	}
	if req.Difficulty != "" && !progression.ValidDifficulty(req.Difficulty) {
		writeError(w, http.StatusBadRequest, "difficulty must be one of "+difficultyList())
		return
	}

	s, ok := sessionFor(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	if req.Category = strings.TrimSpace(req.Category); req.Category == "" {
		req.Category = catalog.Categorize(req.Title)
	}

	var resp questResponse
	if req.Points != nil {
		resp.Quest, resp.State = s.CreatePointQuest(req.Title, req.Category, *req.Points)
	} else {
		subtasks := make([]string, 0, len(req.Subtasks))
		for _, t := range req.Subtasks {
			if t = strings.TrimSpace(t); t != "" {
				subtasks = append(subtasks, t)
			}
		}
		resp.Quest, resp.State = s.CreateQuest(req.Title, req.Difficulty, req.Category, subtasks)
	}
	writeJSON(w, http.StatusCreated, resp)
}

func difficultyList() string {
	names := make([]string, 0, len(progression.Difficulties()))
	for _, d := range progression.Difficulties() {
		names = append(names, string(d))
	}
	return strings.Join(names, ", ")
}

func (h *QuestHandler) FromTemplate(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFor(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	q, st, err := s.AddQuestFromTemplate(r.PathValue("id"))
	if errors.Is(err, session.ErrUnknownTemplate) {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	writeJSON(w, http.StatusCreated, questResponse{Quest: q, State: st})
}

// position is where the client shows reward popups.
type position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type completeResponse struct {
	Completed bool       `json:"completed"`
	State     game.State `json:"state"`
}

// Complete runs the reward sequence. Completing a finished or missing quest
// is a no-op reported with completed=false.
func (h *QuestHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var pos position
	if !decodeJSON(w, r, &pos) {
		return
	}
	s, ok := sessionFor(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	st, done := s.CompleteQuest(r.PathValue("id"), pos.X, pos.Y)
	writeJSON(w, http.StatusOK, completeResponse{Completed: done, State: st})
}

func (h *QuestHandler) CompleteSubtask(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFor(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Dispatch(game.CompleteSubtask{
		QuestID:   r.PathValue("id"),
		SubtaskID: r.PathValue("sid"),
	}))
}

func (h *QuestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFor(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.Dispatch(game.DeleteQuest{QuestID: r.PathValue("id")}))
}

func (h *QuestHandler) CompleteFocus(w http.ResponseWriter, r *http.Request) {
	var pos position
	if !decodeJSON(w, r, &pos) {
		return
	}
	s, ok := sessionFor(w, r, h.sessions, h.logger)
	if !ok {
		return
	}
	st, err := s.CompleteFocus(r.PathValue("label"), pos.X, pos.Y)
	if errors.Is(err, session.ErrUnknownPreset) {
		writeError(w, http.StatusNotFound, "focus preset not found")
		return
	}
	writeJSON(w, http.StatusOK, st)
}
