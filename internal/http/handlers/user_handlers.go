package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xoventechdev/Task-Manager-Project/domain"
)

// UserHandlers handles the account HTTP operations
type UserHandlers struct {
	authSvc      domain.AuthService
	cookieMaxAge int
	cookieSecure bool
	logger       *zap.Logger
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(authSvc domain.AuthService, cookieMaxAge int, cookieSecure bool, logger *zap.Logger) *UserHandlers {
	return &UserHandlers{
		authSvc:      authSvc,
		cookieMaxAge: cookieMaxAge,
		cookieSecure: cookieSecure,
		logger:       logger.Named("UserHandlers"),
	}
}

// SignUpRequest represents the registration payload
type SignUpRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
}

// SignInRequest represents the sign-in payload
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// EmailVerifyRequest represents the OTP verification payload
type EmailVerifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// EmailRequest carries just an email address
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetRequest represents the reset payload
type PasswordResetRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

func respond(c *gin.Context, code int, status string, response any) {
	c.JSON(code, gin.H{"status": status, "response": response})
}

func missingFields(c *gin.Context) {
	respond(c, http.StatusBadRequest, "error", "Please provide all the required fields")
}

// internalError surfaces the raw message to the caller and logs the detail.
func (h *UserHandlers) internalError(c *gin.Context, op string, err error) {
	h.logger.Error("unhandled internal error", zap.String("op", op), zap.Error(err))
	respond(c, http.StatusInternalServerError, "error", err.Error())
}

// SignUp handles POST /signup
func (h *UserHandlers) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		missingFields(c)
		return
	}

	err := h.authSvc.SignUp(c.Request.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	switch {
	case err == nil:
		respond(c, http.StatusCreated, "success", "User created successfully. Please verify your email address.")
	case errors.Is(err, domain.ErrEmailExists):
		respond(c, http.StatusBadRequest, "warning", "Email already exists")
	case errors.Is(err, domain.ErrDeliveryFailed):
		respond(c, http.StatusInternalServerError, "error", "Verification email sending failed. Please try again")
	default:
		h.internalError(c, "signup", err)
	}
}

// SignIn handles POST /signin
func (h *UserHandlers) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		missingFields(c)
		return
	}

	result, err := h.authSvc.SignIn(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		c.SetCookie("token", result.Token, h.cookieMaxAge, "/", "", h.cookieSecure, true)
		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"token":  result.Token,
			"response": gin.H{
				"email":     result.User.Email,
				"firstName": result.User.FirstName,
				"lastName":  result.User.LastName,
				"role":      result.User.Role,
			},
		})
	case errors.Is(err, domain.ErrUserNotFound):
		respond(c, http.StatusUnauthorized, "error", "The user does not exist. Please create your account.")
	case errors.Is(err, domain.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, "error", "Invalid password. Please try with your valid password")
	case errors.Is(err, domain.ErrEmailNotVerified):
		respond(c, http.StatusUnauthorized, "warning", "Please verify your email address")
	default:
		h.internalError(c, "signin", err)
	}
}

// EmailVerify handles POST /emailVerify
func (h *UserHandlers) EmailVerify(c *gin.Context) {
	var req EmailVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		missingFields(c)
		return
	}

	err := h.authSvc.VerifyEmail(c.Request.Context(), req.Email, req.OTP)
	switch {
	case err == nil:
		respond(c, http.StatusOK, "success", "Email verification successful")
	case errors.Is(err, domain.ErrUserNotFound):
		respond(c, http.StatusBadRequest, "error", "Invalid email address")
	case errors.Is(err, domain.ErrOTPInvalid):
		respond(c, http.StatusUnauthorized, "error", "Invalid OTP. Please, try with a valid OTP.")
	case errors.Is(err, domain.ErrOTPExpired):
		respond(c, http.StatusUnauthorized, "warning", "Your OTP is expired. Requested for new OTP. Please, check your inbox.")
	case errors.Is(err, domain.ErrDeliveryFailed):
		respond(c, http.StatusInternalServerError, "error", "Verification email sending failed. Please try again")
	default:
		h.internalError(c, "emailVerify", err)
	}
}

// EmailVerifyRequestNew handles POST /emailVerifyRequest
func (h *UserHandlers) EmailVerifyRequestNew(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		missingFields(c)
		return
	}

	err := h.authSvc.RequestVerification(c.Request.Context(), req.Email)
	switch {
	case err == nil:
		respond(c, http.StatusOK, "success", "A new OTP has been sent to your email address")
	case errors.Is(err, domain.ErrUserNotFound):
		respond(c, http.StatusBadRequest, "error", "Email address not found")
	case errors.Is(err, domain.ErrDeliveryFailed):
		respond(c, http.StatusInternalServerError, "error", "Verification email sending failed. Please try again")
	default:
		h.internalError(c, "emailVerifyRequest", err)
	}
}

// PasswordForgot handles POST /passwordForgot
func (h *UserHandlers) PasswordForgot(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		missingFields(c)
		return
	}

	err := h.authSvc.ForgotPassword(c.Request.Context(), req.Email)
	switch {
	case err == nil:
		respond(c, http.StatusOK, "success", "Password reset link sent to your email")
	case errors.Is(err, domain.ErrUserNotFound):
		respond(c, http.StatusBadRequest, "warning", "Email address not found")
	case errors.Is(err, domain.ErrDeliveryFailed):
		respond(c, http.StatusInternalServerError, "error", "Password reset request failed. Please try again")
	default:
		h.internalError(c, "passwordForgot", err)
	}
}

// PasswordReset handles POST /passwordReset
func (h *UserHandlers) PasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		missingFields(c)
		return
	}

	err := h.authSvc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	switch {
	case err == nil:
		respond(c, http.StatusOK, "success", "Password reset successful. Please sign in with your new password.")
	case errors.Is(err, domain.ErrResetTokenInvalid):
		respond(c, http.StatusBadRequest, "error", "Invalid or expired reset token. Please request a new one.")
	default:
		h.internalError(c, "passwordReset", err)
	}
}

// ProfileUpdate handles POST /userProfileUpdate/:id. The payload is decoded
// into a map so unknown keys can be rejected before any side effect.
func (h *UserHandlers) ProfileUpdate(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil || len(raw) == 0 {
		missingFields(c)
		return
	}

	updates := make(map[string]string, len(raw))
	for key, value := range raw {
		str, ok := value.(string)
		if !ok {
			respond(c, http.StatusBadRequest, "error", "Invalid update fields. Allowed: firstName, lastName, email, mobile")
			return
		}
		updates[key] = str
	}

	reverify, err := h.authSvc.UpdateProfile(c.Request.Context(), c.Param("id"), updates)
	switch {
	case err == nil && reverify:
		respond(c, http.StatusOK, "success", "Profile updated. Please verify your new email address.")
	case err == nil:
		respond(c, http.StatusOK, "success", "Profile updated successfully")
	case errors.Is(err, domain.ErrInvalidUpdateField):
		respond(c, http.StatusBadRequest, "error", "Invalid update fields. Allowed: firstName, lastName, email, mobile")
	case errors.Is(err, domain.ErrUserNotFound):
		respond(c, http.StatusNotFound, "error", "User not found")
	case errors.Is(err, domain.ErrEmailExists):
		respond(c, http.StatusBadRequest, "warning", "Email already exists")
	case errors.Is(err, domain.ErrDeliveryFailed):
		respond(c, http.StatusInternalServerError, "error", "Verification email sending failed. Please try again")
	default:
		h.internalError(c, "userProfileUpdate", err)
	}
}

// GetProfile handles GET /getUserProfile/:id
func (h *UserHandlers) GetProfile(c *gin.Context) {
	user, err := h.authSvc.GetProfile(c.Request.Context(), c.Param("id"))
	switch {
	case err == nil:
		respond(c, http.StatusOK, "success", gin.H{
			"id":              user.ID,
			"firstName":       user.FirstName,
			"lastName":        user.LastName,
			"email":           user.Email,
			"altEmail":        user.AltEmail,
			"photo":           user.Photo,
			"mobile":          user.Mobile,
			"isEmailVerified": user.IsEmailVerified,
			"role":            user.Role,
			"projects":        user.ProjectIDs,
			"createdAt":       user.CreatedAt,
			"updatedAt":       user.UpdatedAt,
		})
	case errors.Is(err, domain.ErrUserNotFound):
		respond(c, http.StatusNotFound, "error", "User not found")
	default:
		h.internalError(c, "getUserProfile", err)
	}
}
