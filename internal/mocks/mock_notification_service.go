package mocks

import (
	"github.com/xoventechdev/Task-Manager-Project/domain"
)

// MockNotificationService implements domain.NotificationService for testing
type MockNotificationService struct {
	SendVerificationEmailFunc  func(to, code string) error
	SendPasswordResetEmailFunc func(to, resetToken string) error

	// Sent records every delivery attempt for assertions
	Sent []SentMail
}

// SentMail captures one delivery attempt
type SentMail struct {
	To   string
	Kind string // "verification" or "reset"
	Body string // the code or token
}

// NewMockNotificationService creates a new MockNotificationService
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendVerificationEmail records the delivery
func (m *MockNotificationService) SendVerificationEmail(to, code string) error {
	m.Sent = append(m.Sent, SentMail{To: to, Kind: "verification", Body: code})
	if m.SendVerificationEmailFunc != nil {
		return m.SendVerificationEmailFunc(to, code)
	}
	// Default behavior: success
	return nil
}

// SendPasswordResetEmail records the delivery
func (m *MockNotificationService) SendPasswordResetEmail(to, resetToken string) error {
	m.Sent = append(m.Sent, SentMail{To: to, Kind: "reset", Body: resetToken})
	if m.SendPasswordResetEmailFunc != nil {
		return m.SendPasswordResetEmailFunc(to, resetToken)
	}
	// Default behavior: success
	return nil
}

// Ensure MockNotificationService implements the interface
var _ domain.NotificationService = (*MockNotificationService)(nil)
