package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/phrazzld/todo-api/internal/config"
	"github.com/phrazzld/todo-api/internal/events"
	"github.com/phrazzld/todo-api/internal/platform/metrics"
	"github.com/phrazzld/todo-api/internal/platform/postgres"
	"github.com/phrazzld/todo-api/internal/platform/ratelimit"
	"github.com/phrazzld/todo-api/internal/platform/sqlite"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/phrazzld/todo-api/internal/store"
	"github.com/redis/go-redis/v9"
)

// rateLimitKeyPrefix namespaces limiter keys in a shared Redis.
const rateLimitKeyPrefix = "todo-api:ratelimit:"

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *database

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService  auth.JWTService
	userService service.UserService
	taskService service.TaskService

	eventEmitter *events.InMemoryEventEmitter

	// Optional; nil when disabled in config.
	metrics     *metrics.Metrics
	redisClient *redis.Client
	rateLimiter *ratelimit.Limiter

	shutdownTracing func(context.Context) error

	// traceOutput receives spans from the stdout exporter.
	traceOutput io.Writer
}

// newApplication creates a new application instance with all dependencies initialized.
// The database must already be open. It is closed by cleanup, also when initialization fails.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *database) (*application, error) {
	app := &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		traceOutput: os.Stderr,
	}
	if err := app.init(ctx); err != nil {
		app.cleanup()
		return nil, err
	}
	logger.Info("application initialized")
	return app, nil
}

func (app *application) init(ctx context.Context) error {
	cfg := app.config

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	switch app.db.driver {
	case config.DriverSQLite:
		app.userStore = sqlite.NewUserStore(app.db.gorm, app.logger)
		app.taskStore = sqlite.NewTaskStore(app.db.gorm, app.logger)
	default:
		app.userStore = postgres.NewPostgresUserStore(app.db.sql, app.logger)
		app.taskStore = postgres.NewPostgresTaskStore(app.db.sql, app.logger)
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(app.logger)
	app.eventEmitter.RegisterHandler(events.NewLogHandler(app.logger))

	if cfg.Metrics.Enabled {
		app.metrics = metrics.New()
		app.eventEmitter.RegisterHandler(app.metrics)
	}

	app.userService = service.NewUserService(
		app.userStore,
		auth.NewBcryptHasher(cfg.Auth.BCryptCost),
		app.db.sql,
		app.logger,
	)

	app.taskService, err = service.NewTaskService(app.taskStore, app.db.sql, app.eventEmitter, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create task service: %w", err)
	}

	if cfg.RateLimit.Enabled {
		app.redisClient, err = ratelimit.NewClient(ctx, cfg.RateLimit.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect rate limiter: %w", err)
		}
		app.rateLimiter = ratelimit.NewLimiter(app.redisClient, rateLimitKeyPrefix)
		app.logger.Info("rate limiting enabled",
			"requests", cfg.RateLimit.Requests,
			"window_seconds", cfg.RateLimit.WindowSeconds)
	}

	if cfg.Tracing.Enabled {
		app.shutdownTracing, err = setupTracing(cfg.Tracing, app.traceOutput)
		if err != nil {
			return fmt.Errorf("failed to set up tracing: %w", err)
		}
	}

	return nil
}

// Run starts the HTTP server and blocks until ctx is cancelled or the server fails.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.shutdownTracing != nil {
		if err := app.shutdownTracing(context.Background()); err != nil {
			app.logger.Error("error shutting down tracer provider", "error", err)
		}
	}

	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
