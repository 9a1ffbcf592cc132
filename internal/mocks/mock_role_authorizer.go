package mocks

import (
	"github.com/xoventechdev/Task-Manager-Project/domain"
)

// MockRoleAuthorizer implements domain.RoleAuthorizer for testing
type MockRoleAuthorizer struct {
	AuthorizeFunc func(role string, required []string) (bool, error)
}

// NewMockRoleAuthorizer creates a new MockRoleAuthorizer
func NewMockRoleAuthorizer() *MockRoleAuthorizer {
	return &MockRoleAuthorizer{}
}

// Authorize checks a role against a requirement list
func (m *MockRoleAuthorizer) Authorize(role string, required []string) (bool, error) {
	if m.AuthorizeFunc != nil {
		return m.AuthorizeFunc(role, required)
	}
	// Default behavior: allow
	return true, nil
}

// Ensure MockRoleAuthorizer implements the interface
var _ domain.RoleAuthorizer = (*MockRoleAuthorizer)(nil)
