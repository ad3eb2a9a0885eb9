package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"CAMPUSQUEST_JWT_SECRET": "0123456789abcdef",
	})
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Store != StoreSQLite || cfg.Auth != AuthLocal {
		t.Errorf("Store/Auth = %q/%q, want sqlite/local", cfg.Store, cfg.Auth)
	}
	if cfg.SaveDebounce != 2*time.Second {
		t.Errorf("SaveDebounce = %v, want 2s", cfg.SaveDebounce)
	}
	if cfg.SessionIdleTTL != 30*time.Minute {
		t.Errorf("SessionIdleTTL = %v, want 30m", cfg.SessionIdleTTL)
	}
	if cfg.Location() != time.UTC {
		t.Errorf("Location = %v, want UTC", cfg.Location())
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr())
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"CAMPUSQUEST_PORT":                "9000",
		"CAMPUSQUEST_STORE":               " Firestore ",
		"CAMPUSQUEST_AUTH":                "firebase",
		"CAMPUSQUEST_FIREBASE_PROJECT_ID": "campus-quest",
		"CAMPUSQUEST_SAVE_DEBOUNCE":       "500ms",
		"CAMPUSQUEST_TIMEZONE":            "Asia/Kolkata",
	})
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Store != StoreFirestore {
		t.Errorf("Store = %q, want firestore", cfg.Store)
	}
	if cfg.SaveDebounce != 500*time.Millisecond {
		t.Errorf("SaveDebounce = %v, want 500ms", cfg.SaveDebounce)
	}
	if cfg.Location().String() != "Asia/Kolkata" {
		t.Errorf("Location = %v, want Asia/Kolkata", cfg.Location())
	}
}

func TestLoadBadDuration(t *testing.T) {
	if _, err := LoadFrom(map[string]string{
		"CAMPUSQUEST_JWT_SECRET":    "0123456789abcdef",
		"CAMPUSQUEST_SAVE_DEBOUNCE": "soon",
	}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		DBPath:       "x.db",
		Store:        StoreSQLite,
		Auth:         AuthLocal,
		JWTSecret:    "0123456789abcdef",
		TokenTTL:     time.Hour,
		SaveDebounce: time.Second,
		Timezone:     "UTC",
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown store", func(c *Config) { c.Store = "mongo" }, "unknown STORE"},
		{"unknown auth", func(c *Config) { c.Auth = "ldap" }, "unknown AUTH"},
		{"short secret", func(c *Config) { c.JWTSecret = "short" }, "JWT_SECRET"},
		{"local auth on firestore", func(c *Config) {
			c.Store = StoreFirestore
			c.FirebaseProjectID = "p"
		}, "needs STORE=sqlite"},
		{"firebase without project", func(c *Config) { c.Auth = AuthFirebase }, "FIREBASE_PROJECT_ID"},
		{"zero debounce", func(c *Config) { c.SaveDebounce = 0 }, "SAVE_DEBOUNCE"},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }, "TIMEZONE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}
