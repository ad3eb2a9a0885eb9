package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yash113gadia/CampusQuest/internal/auth"
)

type stubProvider map[string]*auth.Claims

func (p stubProvider) VerifyToken(_ context.Context, token string) (*auth.Claims, error) {
	if c, ok := p[token]; ok {
		return c, nil
	}
	return nil, auth.ErrInvalidToken
}

var testProvider = stubProvider{
	"good-token": {UID: "user-1", Email: "ada@example.com"},
	"no-uid":     {Email: "nobody@example.com"},
}

func mustNotReach(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	})
}

func TestRequireAuthNoToken(t *testing.T) {
	handler := RequireAuth(testProvider)(mustNotReach(t))

	req := httptest.NewRequest("GET", "/api/state", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), auth.CodeInvalidToken) {
		t.Errorf("body = %q, want invalid token code", rec.Body.String())
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	for _, h := range []string{"Bearer bad-token", "Basic good-token", "good-token", "Bearer no-uid"} {
		handler := RequireAuth(testProvider)(mustNotReach(t))

		req := httptest.NewRequest("GET", "/api/state", nil)
		req.Header.Set("Authorization", h)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%q: status = %d, want %d", h, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	var got auth.AuthContext
	handler := RequireAuth(testProvider)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/state", nil)
	req.Header.Set("Authorization", "bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", got.UserID)
	}
	if got.Email != "ada@example.com" {
		t.Errorf("Email = %q, want ada@example.com", got.Email)
	}
}

func TestRequireAuthQueryToken(t *testing.T) {
	var userID string
	handler := RequireAuth(testProvider)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID = auth.UserID(r.Context())
	}))

	req := httptest.NewRequest("GET", "/ws?access_token=good-token", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if userID != "user-1" {
		t.Errorf("UserID = %q, want user-1", userID)
	}
}

func TestRequestLoggerRecordsUser(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	inner := RequireAuth(testProvider)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	handler := RequestLogger(logger)(inner)

	req := httptest.NewRequest("POST", "/api/quests", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{"level=INFO", "status=201", "user_id=user-1", "path=/api/quests"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}

func TestRequestLoggerLevels(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "level=INFO"},
		{http.StatusNotFound, "level=WARN"},
		{http.StatusInternalServerError, "level=ERROR"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

		if !strings.Contains(buf.String(), tt.level) {
			t.Errorf("status %d: log %q, want %s", tt.status, buf.String(), tt.level)
		}
		if strings.Contains(buf.String(), "user_id=") {
			t.Errorf("status %d: unexpected user_id in %q", tt.status, buf.String())
		}
	}
}
