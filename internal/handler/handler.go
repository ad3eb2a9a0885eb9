// Package handler serves the JSON API over a user's live game session.
package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/yash113gadia/CampusQuest/internal/auth"
	"github.com/yash113gadia/CampusQuest/internal/session"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads the request body into v. An empty body leaves v as is.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeError(w, http.StatusBadRequest, "invalid JSON")
	return false
}

// sessionFor returns the caller's session, loading it on first use.
func sessionFor(w http.ResponseWriter, r *http.Request, sessions *session.Manager, logger *slog.Logger) (*session.Session, bool) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, auth.Message(auth.CodeInvalidToken))
		return nil, false
	}
	s, err := sessions.Open(r.Context(), userID)
	if err != nil {
		logger.Error("open session", "user_id", userID, "error", err)
		writeError(w, http.StatusServiceUnavailable, "failed to load game state")
		return nil, false
	}
	return s, true
}
