// Package wire builds the application's dependency graph.
package wire

import (
	"io"
	"log/slog"

	"github.com/google/wire"
	"github.com/jmoiron/sqlx"

	"github.com/sevigo/review-warden/internal/app"
	"github.com/sevigo/review-warden/internal/config"
	"github.com/sevigo/review-warden/internal/core"
	"github.com/sevigo/review-warden/internal/db"
	"github.com/sevigo/review-warden/internal/github"
	"github.com/sevigo/review-warden/internal/jobs"
	"github.com/sevigo/review-warden/internal/logger"
	"github.com/sevigo/review-warden/internal/server"
	"github.com/sevigo/review-warden/internal/storage"
)

// AppSet provides every component of the server.
var AppSet = wire.NewSet(
	config.LoadConfig,
	provideLoggerConfig,
	provideLogWriter,
	provideSlogLogger,
	provideDBConfig,
	db.NewDatabase,
	provideSQLX,
	storage.NewStore,
	github.NewInstallationClientFactory,
	jobs.NewAssignJob,
	wire.Bind(new(core.Job), new(*jobs.AssignJob)),
	provideDispatcher,
	provideReadiness,
	server.NewServer,
	app.NewApp,
)

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

func provideLogWriter(cfg logger.Config) io.Writer {
	return logger.OpenOutput(cfg)
}

func provideSlogLogger(cfg logger.Config, w io.Writer) *slog.Logger {
	l := logger.NewLogger(cfg, w)
	slog.SetDefault(l)
	return l
}

func provideDBConfig(cfg *config.Config) *config.DBConfig {
	return &cfg.Database
}

func provideSQLX(d *db.DB) *sqlx.DB {
	return d.DB
}

func provideDispatcher(job core.Job, cfg *config.Config, logger *slog.Logger) core.JobDispatcher {
	return jobs.NewDispatcher(job, cfg.MaxWorkers, logger)
}

func provideReadiness(d *db.DB) server.ReadinessCheck {
	return d.CheckSchema
}
