package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yash113gadia/CampusQuest/internal/auth"
	"github.com/yash113gadia/CampusQuest/internal/database"
	"github.com/yash113gadia/CampusQuest/internal/game"
	"github.com/yash113gadia/CampusQuest/internal/model"
	"github.com/yash113gadia/CampusQuest/internal/session"
	"github.com/yash113gadia/CampusQuest/internal/store"
	ws "github.com/yash113gadia/CampusQuest/internal/websocket"
)

type testEnv struct {
	srv   *httptest.Server
	users *store.UserDataStore
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(database.Memory)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := store.NewUserDataStore(db)
	hub := ws.NewHub(logger)
	reducer := game.NewReducer(time.UTC)

	sessions := session.NewManager(session.Deps{
		Users:     users,
		Guilds:    store.NewGuildStore(db),
		Publisher: hub,
		Reducer:   reducer,
		SaveDelay: time.Hour,
		Logger:    logger,
	}, session.ManagerConfig{})
	t.Cleanup(sessions.Stop)

	events := auth.NewEvents()
	events.Subscribe(sessions.HandleAuth)

	local := auth.NewLocalProvider(store.NewAccountStore(db), "test-secret", time.Hour, auth.WithBcryptCost(bcrypt.MinCost))
	s := New(Deps{
		Sessions: sessions,
		Hub:      hub,
		Events:   events,
		Provider: local,
		Local:    local,
		Reducer:  reducer,
		Logger:   logger,
	})

	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, users: users}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return v
}

func (e *testEnv) signUp(t *testing.T, email string) auth.Token {
	t.Helper()
	resp, data := e.do(t, "POST", "/api/auth/signup", "", map[string]string{
		"email": email, "password": "hunter22", "displayName": "Ada",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup status = %d, want %d: %s", resp.StatusCode, http.StatusCreated, data)
	}
	return decode[auth.Token](t, data)
}

func TestHealth(t *testing.T) {
	e := setupTestServer(t)
	resp, data := e.do(t, "GET", "/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if got := decode[map[string]any](t, data); got["status"] != "ok" {
		t.Errorf("status = %v, want ok", got["status"])
	}
}

func TestCatalogIsPublic(t *testing.T) {
	e := setupTestServer(t)

	resp, data := e.do(t, "GET", "/api/catalog/shop", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("shop status = %d", resp.StatusCode)
	}
	if items := decode[[]map[string]any](t, data); len(items) == 0 {
		t.Error("expected shop items")
	}

	resp, data = e.do(t, "GET", "/api/catalog/templates?category=nothing", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("templates status = %d", resp.StatusCode)
	}
	got := decode[map[string]any](t, data)
	if list, ok := got["templates"].([]any); !ok || len(list) != 0 {
		t.Errorf("templates = %v, want empty list", got["templates"])
	}

	resp, data = e.do(t, "GET", "/api/catalog/focus", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("focus status = %d", resp.StatusCode)
	}
	if presets := decode[[]map[string]any](t, data); len(presets) != 4 {
		t.Errorf("focus presets = %d, want 4", len(presets))
	}
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	e := setupTestServer(t)
	for _, path := range []string{"/api/state", "/api/quests", "/api/guilds"} {
		resp, _ := e.do(t, "GET", path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want %d", path, resp.StatusCode, http.StatusUnauthorized)
		}
	}
	resp, _ := e.do(t, "GET", "/api/state", "not-a-token", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}

func TestSignUpAndLoginErrors(t *testing.T) {
	e := setupTestServer(t)
	e.signUp(t, "ada@example.com")

	resp, data := e.do(t, "POST", "/api/auth/signup", "", map[string]string{"email": "ADA@example.com", "password": "hunter22"})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate signup status = %d, want %d", resp.StatusCode, http.StatusConflict)
	}
	if got := decode[map[string]string](t, data); got["code"] != auth.CodeEmailInUse {
		t.Errorf("code = %q, want %q", got["code"], auth.CodeEmailInUse)
	}

	resp, _ = e.do(t, "POST", "/api/auth/signup", "", map[string]string{"email": "bo@example.com", "password": "123"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("weak password status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	resp, data = e.do(t, "POST", "/api/auth/login", "", map[string]string{"email": "ada@example.com", "password": "wrong-pass"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want %d", resp.StatusCode, http.StatusUnauthorized)
	}
	if got := decode[map[string]string](t, data); got["error"] != auth.Message(auth.CodeWrongPassword) {
		t.Errorf("error = %q, want wrong-password message", got["error"])
	}

	resp, data = e.do(t, "POST", "/api/auth/login", "", map[string]string{"email": "ada@example.com", "password": "hunter22"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d: %s", resp.StatusCode, data)
	}
	if tok := decode[auth.Token](t, data); tok.Token == "" {
		t.Error("expected a token")
	}
}

func TestGameFlow(t *testing.T) {
	e := setupTestServer(t)
	tok := e.signUp(t, "ada@example.com")

	resp, data := e.do(t, "POST", "/api/session", tok.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("session status = %d: %s", resp.StatusCode, data)
	}
	st := decode[game.State](t, data)
	if st.UserID != tok.UserID || st.IsLoading {
		t.Fatalf("state = %+v, want loaded for %s", st, tok.UserID)
	}

	resp, data = e.do(t, "POST", "/api/character", tok.Token, map[string]string{"name": "Ada", "classId": "scholar"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("character status = %d: %s", resp.StatusCode, data)
	}
	if st = decode[game.State](t, data); !st.IsCharacterCreated {
		t.Fatal("expected character to be created")
	}

	resp, _ = e.do(t, "POST", "/api/character", tok.Token, map[string]string{"name": " "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("blank name status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	resp, data = e.do(t, "POST", "/api/quests", tok.Token, map[string]any{"title": "Read chapter 3", "difficulty": "mythic"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad difficulty status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	if msg := decode[map[string]string](t, data)["error"]; !strings.Contains(msg, "legendary") {
		t.Errorf("bad difficulty error = %q, want the tier list", msg)
	}

	resp, data = e.do(t, "POST", "/api/quests", tok.Token, map[string]any{"title": "Read chapter 3", "difficulty": "medium", "subtasks": []string{"skim", " "}})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("quest status = %d: %s", resp.StatusCode, data)
	}
	created := decode[struct {
		Quest model.Quest `json:"quest"`
	}](t, data)
	if len(created.Quest.Subtasks) != 1 {
		t.Errorf("subtasks = %d, want 1", len(created.Quest.Subtasks))
	}
	if created.Quest.Category != "mind" {
		t.Errorf("category = %q, want mind", created.Quest.Category)
	}

	resp, data = e.do(t, "POST", "/api/quests/"+created.Quest.ID+"/complete", tok.Token, map[string]float64{"x": 10, "y": 20})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete status = %d: %s", resp.StatusCode, data)
	}
	done := decode[struct {
		Completed bool       `json:"completed"`
		State     game.State `json:"state"`
	}](t, data)
	if !done.Completed || done.State.Character.XP != 50 {
		t.Errorf("completed = %v xp = %d, want true and 50", done.Completed, done.State.Character.XP)
	}

	_, data = e.do(t, "POST", "/api/quests/"+created.Quest.ID+"/complete", tok.Token, nil)
	if again := decode[map[string]any](t, data); again["completed"] != false {
		t.Error("second completion should report completed=false")
	}

	resp, data = e.do(t, "POST", "/api/templates/coding_30min/quests", tok.Token, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("template status = %d: %s", resp.StatusCode, data)
	}
	resp, _ = e.do(t, "POST", "/api/templates/nope/quests", tok.Token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown template status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}

	resp, data = e.do(t, "GET", "/api/quests", tok.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	list := decode[struct {
		Quests []model.Quest      `json:"quests"`
		Today  game.DailyProgress `json:"today"`
	}](t, data)
	if len(list.Quests) != 2 {
		t.Errorf("quests = %d, want 2", len(list.Quests))
	}
	if list.Today.Rating.Rating != "Rest Day" {
		t.Errorf("rating = %q, want Rest Day", list.Today.Rating.Rating)
	}

	resp, _ = e.do(t, "POST", "/api/shop/nope/buy", tok.Token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown item status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	resp, data = e.do(t, "POST", "/api/shop/shirt_white_tee/buy", tok.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("buy status = %d: %s", resp.StatusCode, data)
	}
	if st = decode[game.State](t, data); !st.Character.Owns("shirt_white_tee") {
		t.Error("expected shirt to be owned")
	}
	resp, data = e.do(t, "POST", "/api/shop/shirt_white_tee/equip", tok.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("equip status = %d: %s", resp.StatusCode, data)
	}
	if st = decode[game.State](t, data); st.Character.EquippedItems[model.SlotShirt] != "shirt_white_tee" {
		t.Errorf("equipped = %v", st.Character.EquippedItems)
	}

	e.do(t, "POST", "/api/shop/shirt_blue_polo/buy", tok.Token, nil)
	resp, data = e.do(t, "POST", "/api/shop/shirt_blue_polo/equip", tok.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("equip polo status = %d: %s", resp.StatusCode, data)
	}
	_, data = e.do(t, "GET", "/api/state", tok.Token, nil)
	withStats := decode[struct {
		game.State
		EffectiveStats model.Stats `json:"effectiveStats"`
	}](t, data)
	if got, want := withStats.EffectiveStats.CHA, withStats.Character.Stats.CHA+1; got != want {
		t.Errorf("effective CHA = %d, want %d", got, want)
	}
	if withStats.EffectiveStats.STR != withStats.Character.Stats.STR {
		t.Errorf("effective STR = %d, want %d", withStats.EffectiveStats.STR, withStats.Character.Stats.STR)
	}
	st = withStats.State

	resp, _ = e.do(t, "POST", "/api/actions", tok.Token, map[string]any{"type": "SET_USER_ID", "payload": "someone-else"})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("SET_USER_ID status = %d, want %d", resp.StatusCode, http.StatusForbidden)
	}
	resp, _ = e.do(t, "POST", "/api/actions", tok.Token, map[string]any{"type": "ADD_GOLD", "payload": "lots"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad payload status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
	gold := st.Character.Gold
	resp, data = e.do(t, "POST", "/api/actions", tok.Token, map[string]any{"type": "ADD_GOLD", "payload": map[string]int{"amount": 5}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ADD_GOLD status = %d: %s", resp.StatusCode, data)
	}
	if st = decode[game.State](t, data); st.Character.Gold < gold+5 {
		t.Errorf("gold = %d, want at least %d", st.Character.Gold, gold+5)
	}

	resp, _ = e.do(t, "GET", "/api/guild/leaderboard", tok.Token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("leaderboard without guild status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
	resp, data = e.do(t, "POST", "/api/guilds", tok.Token, map[string]string{"name": "Night Owls", "emblem": "owl"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create guild status = %d: %s", resp.StatusCode, data)
	}
	if st = decode[game.State](t, data); st.CurrentGuild == nil || len(st.CurrentGuild.ID) != 6 {
		t.Fatalf("CurrentGuild = %+v, want a six character id", st.CurrentGuild)
	}
	resp, data = e.do(t, "GET", "/api/guild/leaderboard", tok.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("leaderboard status = %d", resp.StatusCode)
	}
	if members := decode[[]model.GuildMember](t, data); len(members) != 1 {
		t.Errorf("leaderboard = %d members, want 1", len(members))
	}

	resp, _ = e.do(t, "DELETE", "/api/session", tok.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("sign out status = %d", resp.StatusCode)
	}
	ud, err := e.users.Load(context.Background(), tok.UserID)
	if err != nil {
		t.Fatalf("load user data: %v", err)
	}
	if ud == nil || ud.Character.Name != "Ada" || ud.CurrentGuildID == nil {
		t.Errorf("saved data = %+v, want Ada in a guild", ud)
	}
}

func TestGuildJoinAcrossUsers(t *testing.T) {
	e := setupTestServer(t)
	ada := e.signUp(t, "ada@example.com")
	bo := e.signUp(t, "bo@example.com")

	for _, tok := range []auth.Token{ada, bo} {
		resp, data := e.do(t, "POST", "/api/character", tok.Token, map[string]string{"name": tok.Email})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("character status = %d: %s", resp.StatusCode, data)
		}
	}

	_, data := e.do(t, "POST", "/api/guilds", ada.Token, map[string]string{"name": "Night Owls"})
	guildID := decode[game.State](t, data).CurrentGuild.ID

	// The guild reaches the store on save; sign out to flush it.
	e.do(t, "DELETE", "/api/session", ada.Token, nil)

	resp, data := e.do(t, "GET", "/api/guilds", bo.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	if guilds := decode[[]model.Guild](t, data); len(guilds) != 1 || guilds[0].ID != guildID {
		t.Fatalf("guilds = %+v, want %s", guilds, guildID)
	}

	resp, data = e.do(t, "POST", "/api/guilds/"+guildID+"/join", bo.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("join status = %d", resp.StatusCode)
	}
	st := decode[game.State](t, data)
	if st.CurrentGuild == nil || len(st.CurrentGuild.Members) != 2 {
		t.Fatalf("CurrentGuild = %+v, want two members", st.CurrentGuild)
	}

	resp, data = e.do(t, "POST", "/api/guild/leave", bo.Token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("leave status = %d", resp.StatusCode)
	}
	if st = decode[game.State](t, data); st.CurrentGuild != nil {
		t.Error("expected to have left the guild")
	}
}
