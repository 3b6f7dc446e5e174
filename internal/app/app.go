// Package app holds the long-lived components of review-warden and manages
// their lifecycle.
package app

import (
	"fmt"
	"log/slog"

	"github.com/sevigo/review-warden/internal/config"
	"github.com/sevigo/review-warden/internal/core"
	"github.com/sevigo/review-warden/internal/server"
	"github.com/sevigo/review-warden/internal/storage"
)

// App holds the main application components.
type App struct {
	Cfg        *config.Config
	Store      storage.Store
	Dispatcher core.JobDispatcher
	Server     *server.Server
	Logger     *slog.Logger
}

// NewApp assembles an App from already constructed components.
func NewApp(cfg *config.Config, store storage.Store, dispatcher core.JobDispatcher, srv *server.Server, logger *slog.Logger) *App {
	return &App{
		Cfg:        cfg,
		Store:      store,
		Dispatcher: dispatcher,
		Server:     srv,
		Logger:     logger,
	}
}

// Start runs the webhook server and blocks until it stops.
func (a *App) Start() error {
	if err := a.Cfg.ValidateServer(); err != nil {
		return fmt.Errorf("invalid server configuration: %w", err)
	}

	a.Logger.Info("starting review-warden",
		"server_port", a.Cfg.Server.Port,
		"max_workers", a.Cfg.MaxWorkers,
		"request_reviews", a.Cfg.Assignment.RequestReviews,
		"check_run", a.Cfg.Assignment.CheckRun,
	)

	if err := a.Server.Start(); err != nil {
		a.Logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the server first so no new events arrive, then drains the
// job queue. The database is closed by the cleanup returned from the injector.
func (a *App) Stop() error {
	a.Logger.Info("shutting down review-warden")

	serverErr := a.Server.Stop()
	if serverErr != nil {
		a.Logger.Error("error during HTTP server shutdown", "error", serverErr)
	}

	a.Dispatcher.Stop()

	if serverErr != nil {
		return serverErr
	}
	a.Logger.Info("review-warden stopped")
	return nil
}
