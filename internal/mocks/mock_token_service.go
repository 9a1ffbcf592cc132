package mocks

import (
	"time"

	"github.com/xoventechdev/Task-Manager-Project/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	IssueFunc  func(userID, email, role string) (string, error)
	VerifyFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Issue issues a session token
func (m *MockTokenService) Issue(userID, email, role string) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(userID, email, role)
	}
	// Default behavior: fixed token
	return "mock-token", nil
}

// Verify verifies a session token
func (m *MockTokenService) Verify(token string) (*domain.TokenClaims, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token)
	}
	// Default behavior: valid claims
	now := time.Now()
	return &domain.TokenClaims{
		UserID:    "mock-user-id",
		Email:     "mock@example.com",
		Role:      domain.RoleUser,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
	}, nil
}

// Ensure MockTokenService implements the interface
var _ domain.TokenService = (*MockTokenService)(nil)
