package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/xoventechdev/Task-Manager-Project/domain"
)

// OTPConfig holds the expiry windows for the two code flavours.
type OTPConfig struct {
	VerifyTTL time.Duration
	ResetTTL  time.Duration
}

// OTPServiceImpl implements domain.OTPService. Codes live on the user record
// itself; issuing overwrites any pending code rather than queueing.
type OTPServiceImpl struct {
	notificationSvc domain.NotificationService
	userRepo        domain.UserRepository
	config          OTPConfig
	logger          *zap.Logger
}

// NewOTPService creates a new OTP service
func NewOTPService(notificationSvc domain.NotificationService, userRepo domain.UserRepository, config OTPConfig, logger *zap.Logger) domain.OTPService {
	return &OTPServiceImpl{
		notificationSvc: notificationSvc,
		userRepo:        userRepo,
		config:          config,
		logger:          logger.Named("OTPService"),
	}
}

// IssueVerification implements domain.OTPService
func (s *OTPServiceImpl) IssueVerification(ctx context.Context, user *domain.User) (string, error) {
	code, err := s.generateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate otp code: %w", err)
	}

	user.SetOTP(code, time.Now().Add(s.config.VerifyTTL))
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", fmt.Errorf("failed to store otp: %w", err)
	}

	to := user.VerificationAddress()
	if err := s.notificationSvc.SendVerificationEmail(to, code); err != nil {
		s.logger.Error("verification email delivery failed", zap.String("to", to), zap.Error(err))
		return "", domain.ErrDeliveryFailed
	}

	return code, nil
}

// IssueReset implements domain.OTPService
func (s *OTPServiceImpl) IssueReset(ctx context.Context, user *domain.User) (string, error) {
	token, err := s.generateResetToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	user.SetOTP(token, time.Now().Add(s.config.ResetTTL))
	if err := s.userRepo.Update(ctx, user); err != nil {
		return "", fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.notificationSvc.SendPasswordResetEmail(user.Email, token); err != nil {
		s.logger.Error("reset email delivery failed", zap.String("to", user.Email), zap.Error(err))
		return "", domain.ErrDeliveryFailed
	}

	return token, nil
}

// Validate implements domain.OTPService. An expired code is not silently
// rejected: a fresh code is issued and delivered before ErrOTPExpired is
// returned, so the caller's next attempt can succeed.
func (s *OTPServiceImpl) Validate(ctx context.Context, user *domain.User, submitted string, now time.Time) error {
	if !user.HasPendingOTP() || user.OTP != submitted {
		return domain.ErrOTPInvalid
	}

	if now.After(*user.OTPExpireTime) {
		if _, err := s.IssueVerification(ctx, user); err != nil {
			return err
		}
		return domain.ErrOTPExpired
	}

	user.ClearOTP()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to clear otp: %w", err)
	}
	return nil
}

// generateCode samples a 6-digit code uniformly from [100000, 999999].
func (s *OTPServiceImpl) generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// generateResetToken returns an opaque 40-character hex token.
func (s *OTPServiceImpl) generateResetToken() (string, error) {
	bytes := make([]byte, 20)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
