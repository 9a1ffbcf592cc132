package services

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/xoventechdev/Task-Manager-Project/domain"
	"github.com/xoventechdev/Task-Manager-Project/internal/mocks"
)

// createAuthServiceForTest creates an AuthService with mock dependencies for testing
func createAuthServiceForTest(t *testing.T,
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService) domain.AuthService {
	t.Helper()

	// Use provided mocks or create defaults
	if userRepo == nil {
		userRepo = mocks.NewMockUserRepository()
	}
	if passwordSvc == nil {
		passwordSvc = mocks.NewMockPasswordService()
	}
	if tokenSvc == nil {
		tokenSvc = mocks.NewMockTokenService()
	}
	if otpSvc == nil {
		otpSvc = mocks.NewMockOTPService()
	}

	return NewAuthService(userRepo, passwordSvc, tokenSvc, otpSvc, time.Hour, zap.NewNop())
}

// createOTPServiceForTest creates an OTPService backed by the given mocks
func createOTPServiceForTest(t *testing.T, notificationSvc domain.NotificationService, userRepo domain.UserRepository) domain.OTPService {
	t.Helper()

	if notificationSvc == nil {
		notificationSvc = mocks.NewMockNotificationService()
	}
	if userRepo == nil {
		userRepo = mocks.NewMockUserRepository()
	}

	return NewOTPService(notificationSvc, userRepo, OTPConfig{
		VerifyTTL: 10 * time.Minute,
		ResetTTL:  15 * time.Minute,
	}, zap.NewNop())
}

// createVerifiedUser creates a verified user entity for testing
func createVerifiedUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:              "64a1f0c2e8b4a93f5d6c7b01",
		FirstName:       "Test",
		LastName:        "User",
		Email:           "test@example.com",
		PasswordHash:    "hashed:password123",
		Role:            domain.RoleUser,
		IsEmailVerified: true,
		CreatedAt:       time.Now().Add(-24 * time.Hour),
		UpdatedAt:       time.Now().Add(-1 * time.Hour),
	}
}

// createUnverifiedUser creates a user that has not confirmed their email yet
func createUnverifiedUser(t *testing.T) *domain.User {
	t.Helper()

	user := createVerifiedUser(t)
	user.IsEmailVerified = false
	return user
}

// createUserWithOTP stages a code on a verified user
func createUserWithOTP(t *testing.T, code string, expireAt time.Time) *domain.User {
	t.Helper()

	user := createVerifiedUser(t)
	user.SetOTP(code, expireAt)
	return user
}

// createTestContext returns a context for test calls
func createTestContext(t *testing.T) context.Context {
	t.Helper()
	return context.Background()
}
