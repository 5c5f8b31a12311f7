package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/api/shared"
	"github.com/phrazzld/todo-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name           string
		authHeader     string
		validateErr    error
		expectedStatus int
		expectedBody   string
	}{
		{name: "valid token", authHeader: "Bearer valid-token", expectedStatus: http.StatusOK},
		{name: "lowercase scheme", authHeader: "bearer valid-token", expectedStatus: http.StatusOK},
		{name: "missing auth header", expectedStatus: http.StatusUnauthorized, expectedBody: "Authorization header required"},
		{name: "invalid auth format", authHeader: "InvalidFormat", expectedStatus: http.StatusUnauthorized, expectedBody: "Invalid authorization format"},
		{name: "basic scheme", authHeader: "Basic dXNlcjpwYXNz", expectedStatus: http.StatusUnauthorized, expectedBody: "Invalid authorization format"},
		{name: "extra parts", authHeader: "Bearer a b", expectedStatus: http.StatusUnauthorized, expectedBody: "Invalid authorization format"},
		{name: "expired token", authHeader: "Bearer expired", validateErr: auth.ErrExpiredToken, expectedStatus: http.StatusUnauthorized, expectedBody: "Token expired"},
		{name: "invalid token", authHeader: "Bearer invalid", validateErr: auth.ErrInvalidToken, expectedStatus: http.StatusUnauthorized, expectedBody: "Invalid token"},
		{name: "wrong token type", authHeader: "Bearer refresh", validateErr: auth.ErrWrongTokenType, expectedStatus: http.StatusUnauthorized, expectedBody: "Invalid token"},
		{name: "unexpected error", authHeader: "Bearer boom", validateErr: errors.New("keystore offline"), expectedStatus: http.StatusInternalServerError, expectedBody: "Authentication error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			jwtSvc := auth.NewMockJWTService(userID)
			jwtSvc.ValidationError = tt.validateErr
			mw := NewAuthMiddleware(jwtSvc)

			var gotUserID uuid.UUID
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				id, ok := shared.UserIDFromContext(r.Context())
				require.True(t, ok)
				gotUserID = id
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			mw.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, userID, gotUserID)
				return
			}
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
			assert.NotContains(t, rec.Body.String(), "keystore")
		})
	}
}

func TestAuthMiddleware_PassesTokenToValidator(t *testing.T) {
	t.Parallel()

	var seen string
	jwtSvc := &auth.MockJWTService{
		ValidateTokenFunc: func(_ context.Context, token string) (*auth.Claims, error) {
			seen = token
			return &auth.Claims{UserID: uuid.New()}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	rec := httptest.NewRecorder()
	NewAuthMiddleware(jwtSvc).Authenticate(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(rec, req)

	assert.Equal(t, "abc.def.ghi", seen)
}
