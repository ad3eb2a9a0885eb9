package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go"
	"github.com/go-co-op/gocron/v2"

	"github.com/yash113gadia/CampusQuest/internal/auth"
	"github.com/yash113gadia/CampusQuest/internal/cloudstore"
	"github.com/yash113gadia/CampusQuest/internal/config"
	"github.com/yash113gadia/CampusQuest/internal/database"
	"github.com/yash113gadia/CampusQuest/internal/game"
	"github.com/yash113gadia/CampusQuest/internal/logging"
	"github.com/yash113gadia/CampusQuest/internal/middleware"
	"github.com/yash113gadia/CampusQuest/internal/server"
	"github.com/yash113gadia/CampusQuest/internal/session"
	"github.com/yash113gadia/CampusQuest/internal/store"
	ws "github.com/yash113gadia/CampusQuest/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	var (
		db  *sql.DB
		app *firebase.App
		err error
	)
	if cfg.Store == config.StoreSQLite {
		db, err = database.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
	}
	if cfg.Store == config.StoreFirestore || cfg.Auth == config.AuthFirebase {
		app, err = auth.NewFirebaseApp(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentials)
		if err != nil {
			return err
		}
	}

	var deps session.Deps
	switch cfg.Store {
	case config.StoreFirestore:
		client, err := cloudstore.NewClient(ctx, app)
		if err != nil {
			return err
		}
		defer client.Close()
		deps.Users = cloudstore.NewUserDataStore(client)
		deps.Guilds = cloudstore.NewGuildStore(client)
	default:
		deps.Users = store.NewUserDataStore(db)
		deps.Guilds = store.NewGuildStore(db)
	}

	var (
		provider auth.Provider
		local    *auth.LocalProvider
	)
	switch cfg.Auth {
	case config.AuthFirebase:
		fp, err := auth.NewFirebaseProvider(ctx, app)
		if err != nil {
			return err
		}
		provider = fp
	default:
		local = auth.NewLocalProvider(store.NewAccountStore(db), cfg.JWTSecret, cfg.TokenTTL)
		provider = local
	}

	hub := ws.NewHub(logger.With("component", "websocket"))
	reducer := game.NewReducer(cfg.Location())
	deps.Publisher = hub
	deps.Reducer = reducer
	deps.SaveDelay = cfg.SaveDebounce
	deps.Logger = logger

	sessions := session.NewManager(deps, session.ManagerConfig{
		IdleTTL:       cfg.SessionIdleTTL,
		EvictInterval: cfg.EvictInterval,
	})
	if err := sessions.Start(); err != nil {
		return err
	}
	// Runs before the store closes; Stop is safe to call twice.
	defer sessions.Stop()

	events := auth.NewEvents()
	unsubscribe := events.Subscribe(sessions.HandleAuth)
	defer unsubscribe()

	srv := server.New(server.Deps{
		Sessions: sessions,
		Hub:      hub,
		Events:   events,
		Provider: provider,
		Local:    local,
		Reducer:  reducer,
		Logger:   logger,
	})

	scheduler, err := startMaintenance(srv.RateLimiter(), logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			logger.Error("shutdown scheduler", "error", err)
		}
	}()

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("CampusQuest running", "addr", "http://localhost"+cfg.Addr(), "store", cfg.Store, "auth", cfg.Auth)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	sessions.Stop()
	logger.Info("sessions saved")
	return nil
}

// startMaintenance schedules pruning of expired rate-limit windows.
func startMaintenance(limiter *middleware.RateLimiter, logger *slog.Logger) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	_, err = s.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(limiter.Cleanup),
		gocron.WithName("rate-limit-cleanup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}
	s.Start()
	logger.Debug("maintenance scheduled")
	return s, nil
}
