package api

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authRouter(h *AuthHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	return r
}

func newUser(t *testing.T, email string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(email, "$2a$10$abcdefghijklmnopqrstuuJ0r7f1Wb8j6ByZt3e5Jb6QyT5l3XqJK")
	require.NoError(t, err)
	return u
}

func TestAuthHandler_Register(t *testing.T) {
	t.Parallel()

	t.Run("returns a token", func(t *testing.T) {
		t.Parallel()

		user := newUser(t, "ada@example.com")
		users := &stubUserService{
			RegisterFn: func(_ context.Context, email, password string) (*domain.User, error) {
				assert.Equal(t, "ada@example.com", email)
				assert.Equal(t, "correct horse", password)
				return user, nil
			},
		}
		jwtSvc := auth.NewMockJWTService(user.ID)

		rec := doRequest(t, authRouter(NewAuthHandler(users, jwtSvc, nil)), http.MethodPost,
			"/auth/register", `{"email":"ada@example.com","password":"correct horse"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		resp := decodeBody[AuthResponse](t, rec)
		assert.Equal(t, user.ID, resp.UserID)
		assert.Equal(t, "mock-jwt-token", resp.Token)
		_, err := time.Parse(time.RFC3339, resp.ExpiresAt)
		assert.NoError(t, err)
	})

	for _, tc := range []struct {
		name    string
		body    string
		err     error
		status  int
		message string
	}{
		{name: "invalid json", body: `{`, status: http.StatusBadRequest, message: "Invalid request format"},
		{name: "missing email", body: `{"password":"correct horse"}`, status: http.StatusBadRequest, message: "Invalid email: required field"},
		{name: "bad email", body: `{"email":"nope","password":"correct horse"}`, status: http.StatusBadRequest, message: "Invalid email: invalid email format"},
		{name: "short password", body: `{"email":"a@b.io","password":"short"}`, status: http.StatusBadRequest, message: "Invalid password: too short"},
		{name: "duplicate email", body: `{"email":"a@b.io","password":"correct horse"}`, err: service.ErrEmailExists, status: http.StatusConflict, message: "Email already exists"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			users := &stubUserService{
				RegisterFn: func(context.Context, string, string) (*domain.User, error) {
					if tc.err == nil {
						t.Fatal("service must not be called")
					}
					return nil, tc.err
				},
			}
			rec := doRequest(t, authRouter(NewAuthHandler(users, auth.NewMockJWTService(uuid.New()), nil)),
				http.MethodPost, "/auth/register", tc.body)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.message, errorMessage(t, rec))
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Parallel()

	user := newUser(t, "ada@example.com")
	users := &stubUserService{
		AuthenticateFn: func(_ context.Context, _ string, password string) (*domain.User, error) {
			if password == "correct horse" {
				return user, nil
			}
			return nil, service.ErrInvalidCredentials
		},
	}

	t.Run("ok", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, authRouter(NewAuthHandler(users, auth.NewMockJWTService(user.ID), nil)),
			http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"correct horse"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, user.ID, decodeBody[AuthResponse](t, rec).UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		rec := doRequest(t, authRouter(NewAuthHandler(users, auth.NewMockJWTService(user.ID), nil)),
			http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"battery staple"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid credentials", errorMessage(t, rec))
	})

	t.Run("token generation fails", func(t *testing.T) {
		t.Parallel()

		jwtSvc := auth.NewMockJWTService(user.ID)
		jwtSvc.TokenError = errors.New("signing key missing")
		rec := doRequest(t, authRouter(NewAuthHandler(users, jwtSvc, nil)),
			http.MethodPost, "/auth/login", `{"email":"ada@example.com","password":"correct horse"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "signing key")
	})
}
