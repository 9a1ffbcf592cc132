package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/xoventechdev/Task-Manager-Project/domain"
)

// bcrypt silently truncates anything past 72 bytes, so two long passwords
// with the same prefix would collide. Reject instead.
const maxPasswordBytes = 72

// BcryptPasswordService implements domain.PasswordService
type BcryptPasswordService struct {
	cost int
}

// NewPasswordService creates a password service at the default bcrypt cost.
func NewPasswordService() domain.PasswordService {
	return &BcryptPasswordService{cost: bcrypt.DefaultCost}
}

// Hash implements domain.PasswordService
func (p *BcryptPasswordService) Hash(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", fmt.Errorf("password exceeds %d bytes", maxPasswordBytes)
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService. Malformed or empty stored hashes
// simply fail the check; the caller treats that as bad credentials.
func (p *BcryptPasswordService) Verify(hashedPassword, password string) bool {
	if hashedPassword == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
