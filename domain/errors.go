package domain

import "errors"

// Validation errors
var (
	ErrMissingFields      = errors.New("please provide all the required fields")
	ErrInvalidUpdateField = errors.New("update contains a field that cannot be changed")
)

// Document store errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
	ErrNotFound     = errors.New("document not found")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrEmailNotVerified   = errors.New("email address not verified")
)

// OTP errors
var (
	ErrOTPInvalid        = errors.New("invalid otp code")
	ErrOTPExpired        = errors.New("otp has expired")
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
)

// Token errors
var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// Authorization errors
var (
	ErrForbidden = errors.New("insufficient permissions")
)

// Delivery errors
var (
	ErrDeliveryFailed = errors.New("notification delivery failed")
)
