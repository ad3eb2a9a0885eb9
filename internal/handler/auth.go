package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yash113gadia/CampusQuest/internal/auth"
	"github.com/yash113gadia/CampusQuest/internal/session"
)

// AuthHandler signs local accounts up and in. Firebase deployments do not
// mount it; clients sign in with Firebase directly.
type AuthHandler struct {
	provider *auth.LocalProvider
	logger   *slog.Logger
}

func NewAuthHandler(p *auth.LocalProvider, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{provider: p, logger: logger}
}

type credentialsRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tok, err := h.provider.SignUp(r.Context(), strings.TrimSpace(req.Email), req.Password, strings.TrimSpace(req.DisplayName))
	if err != nil {
		h.authError(w, err, "sign up")
		return
	}
	writeJSON(w, http.StatusCreated, tok)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tok, err := h.provider.SignIn(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		h.authError(w, err, "sign in")
		return
	}
	writeJSON(w, http.StatusOK, tok)
}

func (h *AuthHandler) authError(w http.ResponseWriter, err error, op string) {
	code := auth.Code(err)
	if code == "" {
		h.logger.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, auth.Message(code))
		return
	}

	status := http.StatusBadRequest
	switch {
	case errors.Is(err, auth.ErrEmailExists):
		status = http.StatusConflict
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrUserNotFound):
		status = http.StatusUnauthorized
	}
	writeJSON(w, status, map[string]string{"error": auth.Message(code), "code": code})
}

// SessionHandler turns sign-in and sign-out into auth events.
type SessionHandler struct {
	events   *auth.Events
	sessions *session.Manager
	logger   *slog.Logger
}

func NewSessionHandler(events *auth.Events, sessions *session.Manager, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{events: events, sessions: sessions, logger: logger}
}

// Start announces the sign-in and returns the loaded state.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	h.events.SignedIn(userID)

	s, ok := h.sessions.Get(userID)
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "failed to load game state")
		return
	}
	writeJSON(w, http.StatusOK, s.State())
}

// End announces the sign-out. Pending changes are saved first.
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	h.events.SignedOut(auth.UserID(r.Context()))
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}
