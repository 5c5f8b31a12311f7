package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/todo-api/internal/api"
	"github.com/phrazzld/todo-api/internal/config"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 0, LogLevel: "debug", ShutdownTimeoutSeconds: 5},
		Database: config.DatabaseConfig{
			Driver:       config.DriverSQLite,
			URL:          ":memory:",
			MaxOpenConns: 1,
		},
		Auth: config.AuthConfig{
			JWTSecret:            strings.Repeat("k", 32),
			TokenLifetimeMinutes: 60,
			BCryptCost:           4,
		},
		RateLimit: config.RateLimitConfig{Requests: 100, WindowSeconds: 60},
		Tracing:   config.TracingConfig{ServiceName: "todo-api-test", SampleRatio: 1},
		Metrics:   config.MetricsConfig{Enabled: true},
	}
}

// newTestApp builds the full application on an in-memory SQLite database.
func newTestApp(t *testing.T, mutate func(*config.Config)) *application {
	t.Helper()

	cfg := testConfig()
	if mutate != nil {
		mutate(cfg)
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	db, err := setupAppDatabase(context.Background(), cfg.Database, logger)
	require.NoError(t, err)

	app, err := newApplication(context.Background(), cfg, logger, db)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app
}

// apiClient sends JSON requests to an in-process router.
type apiClient struct {
	t      *testing.T
	router http.Handler
	token  string
}

func (c *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			b, err := json.Marshal(body)
			require.NoError(c.t, err)
			raw = string(b)
		}
		reader = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	return rec
}

// register creates a user and returns a client authenticated as them.
func register(t *testing.T, router http.Handler, email string) *apiClient {
	t.Helper()

	anon := &apiClient{t: t, router: router}
	rec := anon.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": "correct horse battery",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp api.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return &apiClient{t: t, router: router, token: resp.Token}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
