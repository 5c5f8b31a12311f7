package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MockJWTService is a function-field JWTService for tests.
type MockJWTService struct {
	GenerateTokenFunc func(ctx context.Context, userID uuid.UUID) (string, time.Time, error)
	ValidateTokenFunc func(ctx context.Context, tokenString string) (*Claims, error)

	// Defaults used when the function fields are nil.
	Token           string
	TokenError      error
	ValidationError error
	Claims          *Claims
}

var _ JWTService = (*MockJWTService)(nil)

// NewMockJWTService returns a mock whose tokens validate to claims for userID.
func NewMockJWTService(userID uuid.UUID) *MockJWTService {
	now := time.Now().UTC()
	return &MockJWTService{
		Token: "mock-jwt-token",
		Claims: &Claims{
			UserID:    userID,
			TokenType: accessTokenType,
			Subject:   userID.String(),
			IssuedAt:  now,
			ExpiresAt: now.Add(time.Hour),
			ID:        uuid.NewString(),
		},
	}
}

// GenerateToken implements JWTService.
func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, time.Time, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(ctx, userID)
	}
	return m.Token, time.Now().Add(time.Hour).UTC(), m.TokenError
}

// ValidateToken implements JWTService.
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(ctx, tokenString)
	}
	if m.ValidationError != nil {
		return nil, m.ValidationError
	}
	return m.Claims, nil
}
