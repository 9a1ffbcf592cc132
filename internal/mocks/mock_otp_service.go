package mocks

import (
	"context"
	"time"

	"github.com/xoventechdev/Task-Manager-Project/domain"
)

// MockOTPService implements domain.OTPService for testing
type MockOTPService struct {
	IssueVerificationFunc func(ctx context.Context, user *domain.User) (string, error)
	IssueResetFunc        func(ctx context.Context, user *domain.User) (string, error)
	ValidateFunc          func(ctx context.Context, user *domain.User, submitted string, now time.Time) error
}

// NewMockOTPService creates a new MockOTPService
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// IssueVerification stages a verification code
func (m *MockOTPService) IssueVerification(ctx context.Context, user *domain.User) (string, error) {
	if m.IssueVerificationFunc != nil {
		return m.IssueVerificationFunc(ctx, user)
	}
	// Default behavior: fixed code
	return "123456", nil
}

// IssueReset stages a reset token
func (m *MockOTPService) IssueReset(ctx context.Context, user *domain.User) (string, error) {
	if m.IssueResetFunc != nil {
		return m.IssueResetFunc(ctx, user)
	}
	// Default behavior: fixed token
	return "mock-reset-token", nil
}

// Validate checks a submitted code
func (m *MockOTPService) Validate(ctx context.Context, user *domain.User, submitted string, now time.Time) error {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, user, submitted, now)
	}
	// Default behavior: accept
	user.ClearOTP()
	return nil
}

// Ensure MockOTPService implements the interface
var _ domain.OTPService = (*MockOTPService)(nil)
