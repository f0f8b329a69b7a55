// Package cli wires the client together for the terminal front-end:
// environment, configuration, logging, the durable session store, the
// API client and the state containers.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fintrack/internal/api"
	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/session"
	"fintrack/internal/state"
)

// SetupLogger initializes structured logging. FINTRACK_DEBUG=1 turns
// on debug records, including per-request API logs.
func SetupLogger() *log.Logger {
	level := slog.LevelInfo
	if os.Getenv("FINTRACK_DEBUG") == "1" {
		level = slog.LevelDebug
	}
	logger := log.New(log.ComponentApp, log.Config{Level: level})
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are
// ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it, exiting
// the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// SignalContext returns a context cancelled on SIGINT/SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// App bundles the wired client. Containers are injected into commands
// from here; nothing in the tree reaches for a global.
type App struct {
	Config  *config.Config
	Logger  *log.Logger
	Session *session.Store
	Client  *api.Client

	Auth         *state.Auth
	Accounts     *state.Accounts
	Categories   *state.Categories
	Transactions *state.Transactions
	Dashboard    *state.Dashboard
}

// NewApp builds the full dependency graph and restores any stored
// session into the auth container.
func NewApp(ctx context.Context, logger *log.Logger) (*App, error) {
	cfg := LoadAndValidateConfig(logger)

	store, err := session.Open(cfg.SessionDBPath)
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout, store, logger.WithComponent(log.ComponentAPI))
	stateLogger := logger.WithComponent(log.ComponentState)

	app := &App{
		Config:       cfg,
		Logger:       logger,
		Session:      store,
		Client:       client,
		Auth:         state.NewAuth(client, store, stateLogger),
		Accounts:     state.NewAccounts(client, stateLogger),
		Categories:   state.NewCategories(client, stateLogger),
		Transactions: state.NewTransactions(client, cfg.PageSize, stateLogger),
		Dashboard:    state.NewDashboard(client, cfg.TrendCacheTTL, stateLogger),
	}

	if _, user, err := store.Load(ctx); err == nil {
		app.Auth.Restore(user)
	}
	return app, nil
}

func (a *App) Close() error {
	if a.Session != nil {
		return a.Session.Close()
	}
	return nil
}
