package mocks

import (
	"context"

	"github.com/xoventechdev/Task-Manager-Project/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	SignUpFunc              func(ctx context.Context, firstName, lastName, email, password string) error
	SignInFunc              func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	VerifyEmailFunc         func(ctx context.Context, email, otp string) error
	RequestVerificationFunc func(ctx context.Context, email string) error
	ForgotPasswordFunc      func(ctx context.Context, email string) error
	ResetPasswordFunc       func(ctx context.Context, token, newPassword string) error
	UpdateProfileFunc       func(ctx context.Context, userID string, updates map[string]string) (bool, error)
	GetProfileFunc          func(ctx context.Context, userID string) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// SignUp registers a new user
func (m *MockAuthService) SignUp(ctx context.Context, firstName, lastName, email, password string) error {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, firstName, lastName, email, password)
	}
	// Default behavior: success
	return nil
}

// SignIn authenticates a user
func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, password)
	}
	// Default behavior: success with fixed token
	return &domain.AuthResult{
		User: &domain.User{
			ID:        "mock-user-id",
			FirstName: "Mock",
			LastName:  "User",
			Email:     email,
			Role:      domain.RoleUser,
		},
		Token:     "mock-token",
		ExpiresIn: 3600,
	}, nil
}

// VerifyEmail validates a staged verification code
func (m *MockAuthService) VerifyEmail(ctx context.Context, email, otp string) error {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, email, otp)
	}
	// Default behavior: success
	return nil
}

// RequestVerification issues a fresh verification code
func (m *MockAuthService) RequestVerification(ctx context.Context, email string) error {
	if m.RequestVerificationFunc != nil {
		return m.RequestVerificationFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// ForgotPassword starts a reset flow
func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// ResetPassword completes a reset flow
func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, token, newPassword)
	}
	// Default behavior: success
	return nil
}

// UpdateProfile applies allowed profile changes
func (m *MockAuthService) UpdateProfile(ctx context.Context, userID string, updates map[string]string) (bool, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, updates)
	}
	// Default behavior: no reverification needed
	return false, nil
}

// GetProfile returns the user record
func (m *MockAuthService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Ensure MockAuthService implements the interface
var _ domain.AuthService = (*MockAuthService)(nil)
