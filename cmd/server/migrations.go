package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/postgres/migrations"
	"github.com/pressly/goose/v3"
)

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress messages at info level.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf logs at error level. Unlike goose's default it does not exit;
// the error is returned to the caller instead.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

var migrationCommands = map[string]func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error{
	"up":      goose.UpContext,
	"down":    goose.DownContext,
	"status":  goose.StatusContext,
	"version": goose.VersionContext,
}

// runMigrations opens the configured Postgres database and runs command on it.
func runMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("migrations only apply to the %s driver; the %s schema is created on startup",
			config.DriverPostgres, cfg.Database.Driver)
	}

	db, err := openPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close migration connection", "error", err)
		}
	}()

	return migrate(ctx, db, command, logger)
}

// migrate runs one goose command against db using the embedded migrations.
func migrate(ctx context.Context, db *sql.DB, command string, logger *slog.Logger) error {
	fn, ok := migrationCommands[command]
	if !ok {
		return fmt.Errorf("unknown migration command %q (use up, down, status or version)", command)
	}

	log := logger.With("component", "migrations", "command", command)
	goose.SetBaseFS(migrations.FS)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(&slogGooseLogger{logger: log})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	log.Info("running migrations")
	if err := fn(ctx, db, "."); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	log.Info("migrations finished")
	return nil
}
