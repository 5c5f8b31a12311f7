package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/platform/sqlite"
	"github.com/phrazzld/todo-api/internal/redact"
	"gorm.io/gorm"
)

// database bundles the pool every store and transaction uses. gorm is only
// set for the sqlite driver, whose stores are built on it.
type database struct {
	driver string
	sql    *sql.DB
	gorm   *gorm.DB
}

// Close closes the underlying pool.
func (d *database) Close() error {
	return d.sql.Close()
}

// setupAppDatabase opens the configured database and verifies the connection.
func setupAppDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*database, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		gdb, err := sqlite.Open(cfg.URL, logger)
		if err != nil {
			return nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
		}
		return &database{driver: cfg.Driver, sql: sqlDB, gorm: gdb}, nil

	case config.DriverPostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("database connection established",
			"driver", cfg.Driver,
			"url", redact.String(cfg.URL))
		return &database{driver: cfg.Driver, sql: db}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
