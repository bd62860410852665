package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/SalisMR/fuscao-frontend/internal/api"
	"github.com/SalisMR/fuscao-frontend/internal/localstate"
	"github.com/SalisMR/fuscao-frontend/internal/session"
	"github.com/SalisMR/fuscao-frontend/internal/ui"
	"github.com/SalisMR/fuscao-frontend/pkg/config"
	"github.com/SalisMR/fuscao-frontend/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "fuscao"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	// The terminal belongs to the TUI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.App.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logg.Error(context.Background(), "failed to open log file", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "fuscao",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Output:      logFile,
	})

	state, err := localstate.Open(cfg.State.Path)
	if err != nil {
		logg.Error(context.Background(), "failed to open state store", err)
		os.Exit(1)
	}
	defer func() {
		if err := multierr.Append(state.Close(), logFile.Close()); err != nil {
			logg.Error(context.Background(), "error during shutdown", err)
		}
	}()

	sessions, err := session.NewManager(state)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}
	if err := sessions.Restore(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to restore session", err)
		os.Exit(1)
	}

	client, err := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithTokenSource(sessions.Token),
		api.WithLogger(logg),
		api.WithRetry(cfg.API.RetryAttempts, cfg.API.RetryBaseDelay),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create api client", err)
		os.Exit(1)
	}

	app, err := ui.NewApp(ui.Deps{
		Config:   cfg,
		Logger:   logg,
		API:      client,
		Sessions: sessions,
		State:    state,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to build ui", err)
		os.Exit(1)
	}

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"base_url": cfg.API.BaseURL,
	})
	logg.Info(ctx, "starting terminal client")

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		logg.Error(ctx, "terminal client stopped unexpectedly", err)
		os.Exit(1)
	}
}
