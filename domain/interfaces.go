package domain

import (
	"context"
	"time"
)

// UserRepository defines credential store access
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByAltEmail(ctx context.Context, email string) (*User, error)
	FindByResetToken(ctx context.Context, token string) (*User, error)
	Update(ctx context.Context, user *User) error
}

// ProjectRepository defines project document access
type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	FindByID(ctx context.Context, id string) (*Project, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*Project, error)
	Delete(ctx context.Context, id string) error
}

// TaskRepository defines task and subtask document access
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id string) (*Task, error)
	FindByProject(ctx context.Context, projectID string) ([]*Task, error)
	Delete(ctx context.Context, id string) error
	CreateSubTask(ctx context.Context, subTask *SubTask) error
	FindSubTasks(ctx context.Context, taskID string) ([]*SubTask, error)
	DeleteSubTask(ctx context.Context, id string) error
}

// EmployeeRepository defines employee document access
type EmployeeRepository interface {
	Create(ctx context.Context, employee *Employee) error
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByUser(ctx context.Context, userID string) ([]*Employee, error)
	Delete(ctx context.Context, id string) error
}

// AuthService defines the request-facing account operations
type AuthService interface {
	SignUp(ctx context.Context, firstName, lastName, email, password string) error
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
	VerifyEmail(ctx context.Context, email, otp string) error
	RequestVerification(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	UpdateProfile(ctx context.Context, userID string, updates map[string]string) (reverify bool, err error)
	GetProfile(ctx context.Context, userID string) (*User, error)
}

// OTPService manages one-time codes stored on the user record
type OTPService interface {
	// IssueVerification stages a fresh 6-digit code on the user, persists it
	// and delivers it to the user's verification address.
	IssueVerification(ctx context.Context, user *User) (string, error)
	// IssueReset stages an opaque reset token on the user, persists it and
	// delivers the reset link.
	IssueReset(ctx context.Context, user *User) (string, error)
	// Validate checks a submitted code against the staged one. An expired code
	// triggers a fresh verification cycle before the error is returned. A
	// valid code clears the staged fields.
	Validate(ctx context.Context, user *User, submitted string, now time.Time) error
}

// PasswordService defines password hashing operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines session token operations
type TokenService interface {
	Issue(userID, email, role string) (string, error)
	Verify(token string) (*TokenClaims, error)
}

// RoleAuthorizer decides whether a role satisfies a route's requirements
type RoleAuthorizer interface {
	// Authorize allows every role when required is empty; otherwise the
	// role's allowed set must intersect the required list.
	Authorize(role string, required []string) (bool, error)
}

// NotificationService delivers account emails
type NotificationService interface {
	SendVerificationEmail(to, code string) error
	SendPasswordResetEmail(to, resetToken string) error
}
