package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	ws "github.com/coder/websocket"

	"github.com/yash113gadia/CampusQuest/internal/auth"
	"github.com/yash113gadia/CampusQuest/internal/game"
)

// Snapshot returns the current state of a user's session, opening it if
// needed.
type Snapshot func(ctx context.Context, userID string) (game.State, error)

// HandleWebSocket upgrades an authenticated request and streams that user's
// updates. The first message is the current state.
func HandleWebSocket(hub *Hub, snapshot Snapshot, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())
		if userID == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		st, err := snapshot(r.Context(), userID)
		if err != nil {
			logger.Error("load state for websocket", "user_id", userID, "error", err)
			http.Error(w, "failed to load state", http.StatusInternalServerError)
			return
		}
		initial, err := json.Marshal(Message{Type: TypeStateUpdated, Payload: st})
		if err != nil {
			logger.Error("marshal initial state", "user_id", userID, "error", err)
			http.Error(w, "failed to load state", http.StatusInternalServerError)
			return
		}

		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true, // web and mobile clients connect from any origin
		})
		if err != nil {
			logger.Warn("websocket accept", "error", err)
			return
		}

		client := NewClient(hub, conn, userID)
		client.Run(r.Context(), initial)
	}
}
