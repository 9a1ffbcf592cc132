package domain

import "time"

// User represents an account in the credential store
type User struct {
	ID              string
	FirstName       string
	LastName        string
	Email           string
	AltEmail        string
	PasswordHash    string
	Photo           string
	Mobile          string
	IsEmailVerified bool
	OTP             string
	OTPExpireTime   *time.Time
	Role            string
	ProjectIDs      []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// SetOTP stages a one-time code and its expiry on the record, replacing any
// pending code.
func (u *User) SetOTP(code string, expireAt time.Time) {
	u.OTP = code
	u.OTPExpireTime = &expireAt
}

// ClearOTP removes the pending code and expiry together.
func (u *User) ClearOTP() {
	u.OTP = ""
	u.OTPExpireTime = nil
}

// HasPendingOTP reports whether a code is currently staged.
func (u *User) HasPendingOTP() bool {
	return u.OTP != "" && u.OTPExpireTime != nil
}

// VerificationAddress is where verification codes are delivered: the staged
// alternate email when one is pending, otherwise the primary email.
func (u *User) VerificationAddress() string {
	if u.AltEmail != "" {
		return u.AltEmail
	}
	return u.Email
}

// AuthRequest represents sign-in credentials
type AuthRequest struct {
	Email    string
	Password string
}

// AuthResult represents a successful sign-in
type AuthResult struct {
	User      *User
	Token     string
	ExpiresIn int64
}

// TokenClaims represents the identity attributes carried by a session token
type TokenClaims struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// TaskComment is an inline comment on a task
type TaskComment struct {
	AuthorID string
	Content  string
}

// Project is a document owned by a user, holding task references
type Project struct {
	ID          string
	Title       string
	Description string
	Note        string
	StartDate   time.Time
	EndDate     *time.Time
	Attachments []string
	OwnerID     string
	TaskIDs     []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Task belongs to a project and may be assigned to an employee
type Task struct {
	ID            string
	Title         string
	Description   string
	Status        string
	Priority      string
	CompletedDate *time.Time
	AssignedTo    string
	ProjectID     string
	Comments      []TaskComment
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SubTask is a checklist entry under a task
type SubTask struct {
	ID        string
	Title     string
	Done      bool
	TaskID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Employee is a worker record tied to the user that registered it
type Employee struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Photo        string
	Mobile       string
	Status       string
	UserID       string
	Note         string
	ProjectIDs   []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Task status values
const (
	TaskStatusToDo       = "ToDo"
	TaskStatusInProgress = "InProgress"
	TaskStatusDone       = "Done"
	TaskStatusCompleted  = "Completed"
)

// Task priority values
const (
	TaskPriorityLow    = "Low"
	TaskPriorityMedium = "Medium"
	TaskPriorityHigh   = "High"
)

// Role values
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleUser   = "user"
)
