package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/xoventechdev/Task-Manager-Project/domain"
	"github.com/xoventechdev/Task-Manager-Project/internal/mocks"
)

func TestAuthServiceImpl_SignUp(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockPasswordService, *mocks.MockOTPService)
		expectedError error
		validateUser  func(t *testing.T, user *domain.User)
	}{
		{
			name:     "successful signup",
			email:    "newuser@example.com",
			password: "securepassword123",
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService, otpSvc *mocks.MockOTPService) {
				userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
					user.ID = "64a1f0c2e8b4a93f5d6c7b99"
					return nil
				}
			},
			expectedError: nil,
			validateUser: func(t *testing.T, user *domain.User) {
				if user == nil {
					t.Fatal("user is nil")
				}
				if user.Email != "newuser@example.com" {
					t.Errorf("expected email %s, got %s", "newuser@example.com", user.Email)
				}
				if user.Role != domain.RoleUser {
					t.Errorf("expected role %s, got %s", domain.RoleUser, user.Role)
				}
				if user.IsEmailVerified {
					t.Error("expected new user to be unverified")
				}
				if user.PasswordHash != "hashed:securepassword123" {
					t.Errorf("expected password hash %s, got %s", "hashed:securepassword123", user.PasswordHash)
				}
			},
		},
		{
			name:     "email already registered",
			email:    "existing@example.com",
			password: "password123",
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService, otpSvc *mocks.MockOTPService) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return createVerifiedUser(t), nil
				}
			},
			expectedError: domain.ErrEmailExists,
		},
		{
			name:     "password hashing fails",
			email:    "newuser@example.com",
			password: "password123",
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService, otpSvc *mocks.MockOTPService) {
				passwordSvc.HashFunc = func(password string) (string, error) {
					return "", errors.New("hashing failed")
				}
			},
			expectedError: fmt.Errorf("failed to hash password: %w", errors.New("hashing failed")),
		},
		{
			name:     "verification delivery fails",
			email:    "newuser@example.com",
			password: "password123",
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService, otpSvc *mocks.MockOTPService) {
				otpSvc.IssueVerificationFunc = func(ctx context.Context, user *domain.User) (string, error) {
					return "", domain.ErrDeliveryFailed
				}
			},
			expectedError: domain.ErrDeliveryFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			passwordSvc := mocks.NewMockPasswordService()
			otpSvc := mocks.NewMockOTPService()

			var created *domain.User
			otpSvc.IssueVerificationFunc = func(ctx context.Context, user *domain.User) (string, error) {
				created = user
				return "123456", nil
			}

			tt.setupMocks(userRepo, passwordSvc, otpSvc)

			authService := createAuthServiceForTest(t, userRepo, passwordSvc, nil, otpSvc)
			ctx := createTestContext(t)

			err := authService.SignUp(ctx, "New", "User", tt.email, tt.password)

			if tt.expectedError != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.expectedError)
				}
				if !strings.Contains(err.Error(), tt.expectedError.Error()) {
					t.Errorf("expected error containing '%s', got '%s'", tt.expectedError.Error(), err.Error())
				}
			} else {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
			}

			if tt.validateUser != nil {
				tt.validateUser(t, created)
			}
		})
	}
}

func TestAuthServiceImpl_SignIn(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockTokenService)
		expectedError error
		expectedToken string
	}{
		{
			name:     "successful signin",
			email:    "test@example.com",
			password: "password123",
			setupMocks: func(userRepo *mocks.MockUserRepository, tokenSvc *mocks.MockTokenService) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return createVerifiedUser(t), nil
				}
				tokenSvc.IssueFunc = func(userID, email, role string) (string, error) {
					return "signed-session-token", nil
				}
			},
			expectedToken: "signed-session-token",
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "password123",
			setupMocks: func(userRepo *mocks.MockUserRepository, tokenSvc *mocks.MockTokenService) {
			},
			expectedError: domain.ErrUserNotFound,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrong-password",
			setupMocks: func(userRepo *mocks.MockUserRepository, tokenSvc *mocks.MockTokenService) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return createVerifiedUser(t), nil
				}
			},
			expectedError: domain.ErrInvalidCredentials,
		},
		{
			name:     "email not verified",
			email:    "test@example.com",
			password: "password123",
			setupMocks: func(userRepo *mocks.MockUserRepository, tokenSvc *mocks.MockTokenService) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return createUnverifiedUser(t), nil
				}
			},
			expectedError: domain.ErrEmailNotVerified,
		},
		{
			name:     "token issuance fails",
			email:    "test@example.com",
			password: "password123",
			setupMocks: func(userRepo *mocks.MockUserRepository, tokenSvc *mocks.MockTokenService) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return createVerifiedUser(t), nil
				}
				tokenSvc.IssueFunc = func(userID, email, role string) (string, error) {
					return "", errors.New("signing key unavailable")
				}
			},
			expectedError: fmt.Errorf("failed to issue token: %w", errors.New("signing key unavailable")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			tokenSvc := mocks.NewMockTokenService()
			tt.setupMocks(userRepo, tokenSvc)

			authService := createAuthServiceForTest(t, userRepo, nil, tokenSvc, nil)
			ctx := createTestContext(t)

			result, err := authService.SignIn(ctx, tt.email, tt.password)

			if tt.expectedError != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.expectedError)
				}
				if !strings.Contains(err.Error(), tt.expectedError.Error()) {
					t.Errorf("expected error containing '%s', got '%s'", tt.expectedError.Error(), err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result.Token != tt.expectedToken {
				t.Errorf("expected token %s, got %s", tt.expectedToken, result.Token)
			}
			if result.ExpiresIn != 3600 {
				t.Errorf("expected expiry 3600, got %d", result.ExpiresIn)
			}
			if result.User == nil || result.User.Email != tt.email {
				t.Errorf("expected result user with email %s", tt.email)
			}
		})
	}
}

func TestAuthServiceImpl_VerifyEmail(t *testing.T) {
	t.Run("verifies via primary email", func(t *testing.T) {
		user := createUserWithOTP(t, "123456", time.Now().Add(5*time.Minute))
		user.IsEmailVerified = false

		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		}

		otpSvc := createOTPServiceForTest(t, nil, userRepo)
		authService := createAuthServiceForTest(t, userRepo, nil, nil, otpSvc)

		if err := authService.VerifyEmail(createTestContext(t), user.Email, "123456"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !user.IsEmailVerified {
			t.Error("expected user to be verified")
		}
		if user.HasPendingOTP() {
			t.Error("expected otp fields to be cleared")
		}
	})

	t.Run("promotes staged alternate email", func(t *testing.T) {
		user := createUserWithOTP(t, "654321", time.Now().Add(5*time.Minute))
		user.AltEmail = "new@example.com"

		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByAltEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			if email != "new@example.com" {
				return nil, domain.ErrUserNotFound
			}
			return user, nil
		}

		otpSvc := createOTPServiceForTest(t, nil, userRepo)
		authService := createAuthServiceForTest(t, userRepo, nil, nil, otpSvc)

		if err := authService.VerifyEmail(createTestContext(t), "new@example.com", "654321"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if user.Email != "new@example.com" {
			t.Errorf("expected alternate address to become primary, got %s", user.Email)
		}
		if user.AltEmail != "" {
			t.Errorf("expected alternate address to be cleared, got %s", user.AltEmail)
		}
	})

	t.Run("unknown address", func(t *testing.T) {
		authService := createAuthServiceForTest(t, nil, nil, nil, nil)
		err := authService.VerifyEmail(createTestContext(t), "nobody@example.com", "123456")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("wrong code", func(t *testing.T) {
		user := createUserWithOTP(t, "123456", time.Now().Add(5*time.Minute))
		user.IsEmailVerified = false

		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		}

		otpSvc := createOTPServiceForTest(t, nil, userRepo)
		authService := createAuthServiceForTest(t, userRepo, nil, nil, otpSvc)

		err := authService.VerifyEmail(createTestContext(t), user.Email, "000000")
		if !errors.Is(err, domain.ErrOTPInvalid) {
			t.Fatalf("expected ErrOTPInvalid, got %v", err)
		}
		if user.IsEmailVerified {
			t.Error("expected user to stay unverified")
		}
	})
}

func TestAuthServiceImpl_RequestVerification(t *testing.T) {
	t.Run("delivers a fresh code to the primary address", func(t *testing.T) {
		user := createUnverifiedUser(t)

		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		}

		notificationSvc := mocks.NewMockNotificationService()
		otpSvc := createOTPServiceForTest(t, notificationSvc, userRepo)
		authService := createAuthServiceForTest(t, userRepo, nil, nil, otpSvc)

		if err := authService.RequestVerification(createTestContext(t), user.Email); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !user.HasPendingOTP() {
			t.Fatal("expected a code to be staged")
		}
		if len(notificationSvc.Sent) != 1 || notificationSvc.Sent[0].To != user.Email || notificationSvc.Sent[0].Body != user.OTP {
			t.Errorf("expected the staged code delivered to %s, got %+v", user.Email, notificationSvc.Sent)
		}
	})

	t.Run("delivers to a staged alternate address", func(t *testing.T) {
		user := createVerifiedUser(t)
		user.AltEmail = "pending@example.com"

		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByAltEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			if email != "pending@example.com" {
				return nil, domain.ErrUserNotFound
			}
			return user, nil
		}

		notificationSvc := mocks.NewMockNotificationService()
		otpSvc := createOTPServiceForTest(t, notificationSvc, userRepo)
		authService := createAuthServiceForTest(t, userRepo, nil, nil, otpSvc)

		if err := authService.RequestVerification(createTestContext(t), "pending@example.com"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(notificationSvc.Sent) != 1 || notificationSvc.Sent[0].To != "pending@example.com" {
			t.Errorf("expected delivery to the alternate address, got %+v", notificationSvc.Sent)
		}
	})

	t.Run("replaces a pending code", func(t *testing.T) {
		user := createUserWithOTP(t, "111111", time.Now().Add(time.Minute))
		user.IsEmailVerified = false

		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		}

		otpSvc := createOTPServiceForTest(t, nil, userRepo)
		authService := createAuthServiceForTest(t, userRepo, nil, nil, otpSvc)

		if err := authService.RequestVerification(createTestContext(t), user.Email); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if user.OTP == "111111" {
			t.Error("expected the pending code to be replaced")
		}
	})

	t.Run("unknown address", func(t *testing.T) {
		authService := createAuthServiceForTest(t, nil, nil, nil, nil)
		err := authService.RequestVerification(createTestContext(t), "nobody@example.com")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestAuthServiceImpl_ResetPassword(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		setupMocks    func(*mocks.MockUserRepository, *domain.User)
		expectedError error
	}{
		{
			name:  "successful reset",
			token: "aabbccddeeff00112233445566778899aabbccdd",
			setupMocks: func(userRepo *mocks.MockUserRepository, user *domain.User) {
				userRepo.FindByResetTokenFunc = func(ctx context.Context, token string) (*domain.User, error) {
					if token == user.OTP {
						return user, nil
					}
					return nil, domain.ErrUserNotFound
				}
			},
		},
		{
			name:  "unknown token",
			token: "deadbeefdeadbeefdeadbeefdeadbeefdeadbeef",
			setupMocks: func(userRepo *mocks.MockUserRepository, user *domain.User) {
			},
			expectedError: domain.ErrResetTokenInvalid,
		},
		{
			name:  "expired token",
			token: "aabbccddeeff00112233445566778899aabbccdd",
			setupMocks: func(userRepo *mocks.MockUserRepository, user *domain.User) {
				expired := time.Now().Add(-time.Minute)
				user.OTPExpireTime = &expired
				userRepo.FindByResetTokenFunc = func(ctx context.Context, token string) (*domain.User, error) {
					return user, nil
				}
			},
			expectedError: domain.ErrResetTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := createUserWithOTP(t, "aabbccddeeff00112233445566778899aabbccdd", time.Now().Add(10*time.Minute))
			oldHash := user.PasswordHash

			userRepo := mocks.NewMockUserRepository()
			tt.setupMocks(userRepo, user)

			authService := createAuthServiceForTest(t, userRepo, nil, nil, nil)
			err := authService.ResetPassword(createTestContext(t), tt.token, "brand-new-password")

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if user.PasswordHash == oldHash {
				t.Error("expected password hash to change")
			}
			if user.HasPendingOTP() {
				t.Error("expected reset token to be cleared")
			}
		})
	}
}

func TestAuthServiceImpl_ResetPassword_ReplayFails(t *testing.T) {
	user := createUserWithOTP(t, "aabbccddeeff00112233445566778899aabbccdd", time.Now().Add(10*time.Minute))

	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByResetTokenFunc = func(ctx context.Context, token string) (*domain.User, error) {
		if user.OTP == token {
			return user, nil
		}
		return nil, domain.ErrUserNotFound
	}

	authService := createAuthServiceForTest(t, userRepo, nil, nil, nil)
	ctx := createTestContext(t)

	if err := authService.ResetPassword(ctx, "aabbccddeeff00112233445566778899aabbccdd", "first-password"); err != nil {
		t.Fatalf("first reset failed: %v", err)
	}
	err := authService.ResetPassword(ctx, "aabbccddeeff00112233445566778899aabbccdd", "second-password")
	if !errors.Is(err, domain.ErrResetTokenInvalid) {
		t.Fatalf("expected replay to fail with ErrResetTokenInvalid, got %v", err)
	}
}

func TestAuthServiceImpl_UpdateProfile(t *testing.T) {
	tests := []struct {
		name             string
		updates          map[string]string
		expectedError    error
		expectedReverify bool
		validateUser     func(t *testing.T, user *domain.User)
	}{
		{
			name:    "updates allowed fields",
			updates: map[string]string{"firstName": "Updated", "lastName": "Name", "mobile": "+15551234567"},
			validateUser: func(t *testing.T, user *domain.User) {
				if user.FirstName != "Updated" || user.LastName != "Name" {
					t.Errorf("expected name update, got %s %s", user.FirstName, user.LastName)
				}
				if user.Mobile != "+15551234567" {
					t.Errorf("expected mobile update, got %s", user.Mobile)
				}
			},
		},
		{
			name:          "rejects unknown field before any change",
			updates:       map[string]string{"firstName": "Updated", "role": domain.RoleAdmin},
			expectedError: domain.ErrInvalidUpdateField,
			validateUser: func(t *testing.T, user *domain.User) {
				if user.FirstName == "Updated" {
					t.Error("expected no field to be applied")
				}
			},
		},
		{
			name:             "stages email change for reverification",
			updates:          map[string]string{"email": "changed@example.com"},
			expectedReverify: true,
			validateUser: func(t *testing.T, user *domain.User) {
				if user.Email != "test@example.com" {
					t.Errorf("expected primary email unchanged, got %s", user.Email)
				}
				if user.AltEmail != "changed@example.com" {
					t.Errorf("expected new address staged, got %s", user.AltEmail)
				}
			},
		},
		{
			name:    "same email is a no-op",
			updates: map[string]string{"email": "test@example.com"},
			validateUser: func(t *testing.T, user *domain.User) {
				if user.AltEmail != "" {
					t.Errorf("expected no staged address, got %s", user.AltEmail)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := createVerifiedUser(t)

			userRepo := mocks.NewMockUserRepository()
			userRepo.FindByIDFunc = func(ctx context.Context, id string) (*domain.User, error) {
				return user, nil
			}

			notificationSvc := mocks.NewMockNotificationService()
			otpSvc := createOTPServiceForTest(t, notificationSvc, userRepo)
			authService := createAuthServiceForTest(t, userRepo, nil, nil, otpSvc)

			reverify, err := authService.UpdateProfile(createTestContext(t), user.ID, tt.updates)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected %v, got %v", tt.expectedError, err)
				}
			} else if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if reverify != tt.expectedReverify {
				t.Errorf("expected reverify=%v, got %v", tt.expectedReverify, reverify)
			}
			if tt.expectedReverify {
				if len(notificationSvc.Sent) != 1 || notificationSvc.Sent[0].To != "changed@example.com" {
					t.Errorf("expected verification delivery to staged address, got %+v", notificationSvc.Sent)
				}
			}
			if tt.validateUser != nil {
				tt.validateUser(t, user)
			}
		})
	}
}
