// Package config reads server settings from CAMPUSQUEST_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const envPrefix = "CAMPUSQUEST_"

const (
	StoreSQLite    = "sqlite"
	StoreFirestore = "firestore"

	AuthLocal    = "local"
	AuthFirebase = "firebase"
)

type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	DBPath    string `env:"DB_PATH" envDefault:"campusquest.db"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	Store string `env:"STORE" envDefault:"sqlite"`
	Auth  string `env:"AUTH" envDefault:"local"`

	FirebaseProjectID   string `env:"FIREBASE_PROJECT_ID"`
	FirebaseCredentials string `env:"FIREBASE_CREDENTIALS"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	SaveDebounce   time.Duration `env:"SAVE_DEBOUNCE" envDefault:"2s"`
	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`
	EvictInterval  time.Duration `env:"EVICT_INTERVAL" envDefault:"1m"`

	// Timezone sets the day boundary for streaks and daily points.
	Timezone string `env:"TIMEZONE" envDefault:"UTC"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return parse(env.Options{Prefix: envPrefix})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Prefix: envPrefix, Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	cfg.Auth = strings.ToLower(strings.TrimSpace(cfg.Auth))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot work together.
func (c Config) Validate() error {
	var errs []error
	switch c.Store {
	case StoreSQLite:
		if c.DBPath == "" {
			errs = append(errs, errors.New("DB_PATH is required for the sqlite store"))
		}
	case StoreFirestore:
		if c.FirebaseProjectID == "" {
			errs = append(errs, errors.New("FIREBASE_PROJECT_ID is required for the firestore store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE %q", c.Store))
	}

	switch c.Auth {
	case AuthLocal:
		if len(c.JWTSecret) < 16 {
			errs = append(errs, errors.New("JWT_SECRET must be at least 16 characters for local auth"))
		}
		if c.Store != StoreSQLite {
			errs = append(errs, errors.New("local auth keeps accounts in sqlite and needs STORE=sqlite"))
		}
		if c.TokenTTL <= 0 {
			errs = append(errs, errors.New("TOKEN_TTL must be positive"))
		}
	case AuthFirebase:
		if c.FirebaseProjectID == "" {
			errs = append(errs, errors.New("FIREBASE_PROJECT_ID is required for firebase auth"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH %q", c.Auth))
	}

	if c.SaveDebounce <= 0 {
		errs = append(errs, errors.New("SAVE_DEBOUNCE must be positive"))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}
	return errors.Join(errs...)
}

// Location returns the configured day-boundary time zone.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Addr is the HTTP listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}
