package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	ws "github.com/coder/websocket"

	"github.com/yash113gadia/CampusQuest/internal/auth"
	"github.com/yash113gadia/CampusQuest/internal/game"
	"github.com/yash113gadia/CampusQuest/internal/model"
)

// mockClient creates a Client with a send channel but no real connection.
func mockClient(hub *Hub, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   nil,
		userID: userID,
		send:   make(chan []byte, sendBufferSize),
	}
}

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data := <-c.send:
		var got Message
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		return got
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for message")
	}
	return Message{}
}

func TestRegisterUnregister(t *testing.T) {
	hub := NewHub(slog.Default())

	c1 := mockClient(hub, "u1")
	c2 := mockClient(hub, "u1")
	c3 := mockClient(hub, "u2")

	hub.Register(c1)
	hub.Register(c2)
	hub.Register(c3)

	if got := hub.ClientCount(); got != 3 {
		t.Fatalf("expected 3 clients, got %d", got)
	}
	if got := hub.UserCount(); got != 2 {
		t.Fatalf("expected 2 users, got %d", got)
	}

	hub.Unregister(c1)
	hub.Unregister(c3)

	if got := hub.ClientCount(); got != 1 {
		t.Fatalf("expected 1 client after unregister, got %d", got)
	}
	if got := hub.UserCount(); got != 1 {
		t.Fatalf("expected 1 user after unregister, got %d", got)
	}

	hub.Unregister(c2)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestDoubleUnregister(t *testing.T) {
	hub := NewHub(slog.Default())
	c := mockClient(hub, "u1")
	hub.Register(c)
	hub.Unregister(c)
	// Should not panic
	hub.Unregister(c)

	if got := hub.ClientCount(); got != 0 {
		t.Fatalf("expected 0 clients, got %d", got)
	}
}

func TestSendIsPerUser(t *testing.T) {
	hub := NewHub(slog.Default())

	mine1 := mockClient(hub, "u1")
	mine2 := mockClient(hub, "u1")
	other := mockClient(hub, "u2")
	for _, c := range []*Client{mine1, mine2, other} {
		hub.Register(c)
	}

	hub.PublishFloatingText("u1", model.FloatingText{ID: "ft_1", Text: "+10 XP", Type: model.FloatingXP})

	for _, c := range []*Client{mine1, mine2} {
		got := receive(t, c)
		if got.Type != TypeFloatingTextAdded {
			t.Errorf("expected type %s, got %s", TypeFloatingTextAdded, got.Type)
		}
		payload, ok := got.Payload.(map[string]any)
		if !ok || payload["text"] != "+10 XP" {
			t.Errorf("expected +10 XP payload, got %#v", got.Payload)
		}
	}

	select {
	case <-other.send:
		t.Error("another user's client should not receive the message")
	default:
	}
}

func TestPublishState(t *testing.T) {
	hub := NewHub(slog.Default())
	c := mockClient(hub, "u1")
	hub.Register(c)
	defer hub.Unregister(c)

	st := game.NewState(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	st.UserID = "u1"
	hub.PublishState("u1", st)

	got := receive(t, c)
	if got.Type != TypeStateUpdated {
		t.Errorf("expected type %s, got %s", TypeStateUpdated, got.Type)
	}
	payload, ok := got.Payload.(map[string]any)
	if !ok || payload["userId"] != "u1" {
		t.Errorf("expected state for u1, got %#v", got.Payload)
	}
}

func TestSendNoClients(t *testing.T) {
	hub := NewHub(slog.Default())
	// Should not panic
	hub.Send("nobody", Message{Type: TypeStateUpdated})
}

func TestSendFullBuffer(t *testing.T) {
	hub := NewHub(slog.Default())

	c := mockClient(hub, "u1")
	hub.Register(c)

	// Fill the send buffer
	for i := 0; i < sendBufferSize; i++ {
		hub.Send("u1", Message{Type: "fill", Payload: i})
	}

	// This should drop the message, not panic or block
	hub.Send("u1", Message{Type: "dropped"})

	count := 0
	for {
		select {
		case <-c.send:
			count++
		default:
			goto done
		}
	}
done:
	if count != sendBufferSize {
		t.Errorf("expected %d messages, got %d", sendBufferSize, count)
	}

	hub.Unregister(c)
}

func TestConcurrentAccess(t *testing.T) {
	hub := NewHub(slog.Default())
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := "u1"
			if i%2 == 0 {
				userID = "u2"
			}
			c := mockClient(hub, userID)
			hub.Register(c)
			hub.Send(userID, Message{Type: "concurrent"})
			for {
				select {
				case <-c.send:
				default:
					hub.Unregister(c)
					return
				}
			}
		}(i)
	}

	wg.Wait()

	if got := hub.ClientCount(); got != 0 {
		t.Errorf("expected 0 clients after concurrent test, got %d", got)
	}
}

func withUser(userID string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID != "" {
			r = r.WithContext(auth.WithUser(r.Context(), userID))
		}
		next.ServeHTTP(w, r)
	})
}

func TestHandleWebSocketSendsSnapshot(t *testing.T) {
	hub := NewHub(slog.Default())
	snapshot := func(_ context.Context, userID string) (game.State, error) {
		st := game.NewState(time.Now())
		st.UserID = userID
		return st, nil
	}
	srv := httptest.NewServer(withUser("u1", HandleWebSocket(hub, snapshot, slog.Default())))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	conn, _, err := ws.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	_, data, err := conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got Message
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Type != TypeStateUpdated {
		t.Errorf("expected type %s, got %s", TypeStateUpdated, got.Type)
	}
	if payload, ok := got.Payload.(map[string]any); !ok || payload["userId"] != "u1" {
		t.Errorf("expected snapshot for u1, got %#v", got.Payload)
	}

	hub.PublishFloatingText("u1", model.FloatingText{ID: "ft_1", Text: "+5 Gold", Type: model.FloatingGold})
	_, data, err = conn.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Type != TypeFloatingTextAdded {
		t.Errorf("expected type %s, got %s", TypeFloatingTextAdded, got.Type)
	}
}

func TestHandleWebSocketRequiresUser(t *testing.T) {
	hub := NewHub(slog.Default())
	snapshot := func(context.Context, string) (game.State, error) { return game.State{}, nil }
	h := withUser("", HandleWebSocket(hub, snapshot, slog.Default()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestHandleWebSocketSnapshotError(t *testing.T) {
	hub := NewHub(slog.Default())
	snapshot := func(context.Context, string) (game.State, error) { return game.State{}, errors.New("boom") }
	h := withUser("u1", HandleWebSocket(hub, snapshot, slog.Default()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
