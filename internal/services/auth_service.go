package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xoventechdev/Task-Manager-Project/domain"
)

// profileUpdateAllowList is the closed set of fields a profile update may
// touch. Anything else in the payload rejects the whole update before any
// side effect.
var profileUpdateAllowList = map[string]bool{
	"firstName": true,
	"lastName":  true,
	"email":     true,
	"mobile":    true,
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	tokenTTL    time.Duration
	logger      *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	tokenTTL time.Duration,
	logger *zap.Logger,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		tokenTTL:    tokenTTL,
		logger:      logger.Named("AuthService"),
	}
}

// SignUp implements domain.AuthService
func (s *AuthServiceImpl) SignUp(ctx context.Context, firstName, lastName, email, password string) error {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return domain.ErrEmailExists
	}

	hashed, err := s.passwordSvc.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		FirstName:       firstName,
		LastName:        lastName,
		Email:           email,
		PasswordHash:    hashed,
		Role:            domain.RoleUser,
		IsEmailVerified: false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	if _, err := s.otpSvc.IssueVerification(ctx, user); err != nil {
		return err
	}

	s.logger.Info("user signed up", zap.String("userId", user.ID), zap.String("email", email))
	return nil
}

// SignIn implements domain.AuthService. A token is issued only when the user
// exists, the password matches and the email is verified, in that order.
func (s *AuthServiceImpl) SignIn(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsEmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	token, err := s.tokenSvc.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &domain.AuthResult{
		User:      user,
		Token:     token,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
	}, nil
}

// VerifyEmail implements domain.AuthService. The address is matched against
// the primary email first, then the staged alternate; verifying the alternate
// promotes it to the primary address.
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, email, otp string) error {
	user, viaAlt, err := s.findByAnyEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.otpSvc.Validate(ctx, user, otp, time.Now()); err != nil {
		return err
	}

	user.IsEmailVerified = true
	if viaAlt {
		user.Email = user.AltEmail
		user.AltEmail = ""
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}

	s.logger.Info("email verified", zap.String("userId", user.ID), zap.String("email", user.Email))
	return nil
}

// RequestVerification implements domain.AuthService
func (s *AuthServiceImpl) RequestVerification(ctx context.Context, email string) error {
	user, _, err := s.findByAnyEmail(ctx, email)
	if err != nil {
		return err
	}

	_, err = s.otpSvc.IssueVerification(ctx, user)
	return err
}

// ForgotPassword implements domain.AuthService
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	_, err = s.otpSvc.IssueReset(ctx, user)
	return err
}

// ResetPassword implements domain.AuthService. The token is the lookup key;
// success clears it so a replay of the same token fails.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrResetTokenInvalid
		}
		return err
	}

	if !user.HasPendingOTP() || !time.Now().Before(*user.OTPExpireTime) {
		return domain.ErrResetTokenInvalid
	}

	hashed, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hashed
	user.ClearOTP()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to store new password: %w", err)
	}

	s.logger.Info("password reset", zap.String("userId", user.ID))
	return nil
}

// UpdateProfile implements domain.AuthService. An email change is staged in
// altEmail and triggers a fresh verification cycle against the new address
// instead of replacing the primary email directly.
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, userID string, updates map[string]string) (bool, error) {
	for key := range updates {
		if !profileUpdateAllowList[key] {
			return false, domain.ErrInvalidUpdateField
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}

	reverify := false
	for key, value := range updates {
		switch key {
		case "firstName":
			user.FirstName = value
		case "lastName":
			user.LastName = value
		case "mobile":
			user.Mobile = value
		case "email":
			if value != user.Email {
				user.AltEmail = value
				reverify = true
			}
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return false, err
	}

	if reverify {
		if _, err := s.otpSvc.IssueVerification(ctx, user); err != nil {
			return true, err
		}
	}

	return reverify, nil
}

// GetProfile implements domain.AuthService
func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

func (s *AuthServiceImpl) findByAnyEmail(ctx context.Context, email string) (*domain.User, bool, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, err
	}

	user, err = s.userRepo.FindByAltEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
