package notifications

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/xoventechdev/Task-Manager-Project/domain"
)

// MailConfig holds SMTP transport settings and message parameters.
type MailConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	ClientURL string
	VerifyTTL time.Duration
	ResetTTL  time.Duration
}

// MailServiceImpl implements domain.NotificationService over SMTP
type MailServiceImpl struct {
	dialer *gomail.Dialer
	cfg    MailConfig
	logger *zap.Logger
}

// NewMailService creates a new SMTP notification service. With no host
// configured it logs messages instead of sending, so the flows stay usable in
// development.
func NewMailService(cfg MailConfig, logger *zap.Logger) domain.NotificationService {
	var dialer *gomail.Dialer
	if cfg.Host != "" {
		dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return &MailServiceImpl{
		dialer: dialer,
		cfg:    cfg,
		logger: logger.Named("MailService"),
	}
}

// SendVerificationEmail implements domain.NotificationService
func (s *MailServiceImpl) SendVerificationEmail(to, code string) error {
	body := fmt.Sprintf(
		"Your verification code is %s. This code is valid for %d minutes. Please do not share this code with anyone.",
		code, int(s.cfg.VerifyTTL.Minutes()),
	)
	return s.send(to, "Email Verification OTP", body)
}

// SendPasswordResetEmail implements domain.NotificationService
func (s *MailServiceImpl) SendPasswordResetEmail(to, resetToken string) error {
	body := fmt.Sprintf(
		"You requested a password reset for your account. Please click the following link to reset your password: %s/reset-password/%s",
		s.cfg.ClientURL, resetToken,
	)
	return s.send(to, "Password Reset Request", body)
}

func (s *MailServiceImpl) send(to, subject, body string) error {
	if s.dialer == nil {
		s.logger.Info("smtp not configured, logging message instead",
			zap.String("to", to), zap.String("subject", subject), zap.String("body", body))
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Error("failed to send email", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
