package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xoventechdev/Task-Manager-Project/domain"
)

// AuthMW carries the token verification and role gating middleware
type AuthMW struct {
	tokenSvc   domain.TokenService
	authorizer domain.RoleAuthorizer
	logger     *zap.Logger
}

// NewAuthMW creates the auth middleware
func NewAuthMW(tokenSvc domain.TokenService, authorizer domain.RoleAuthorizer, logger *zap.Logger) *AuthMW {
	return &AuthMW{
		tokenSvc:   tokenSvc,
		authorizer: authorizer,
		logger:     logger.Named("AuthMW"),
	}
}

// WithJWT verifies the session token, reading the `token` header first and
// the `token` cookie second, and stores the decoded claims in the context.
func (mw *AuthMW) WithJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("token")
		if token == "" {
			token, _ = c.Cookie("token")
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "response": "Unauthorized: No token provided"})
			c.Abort()
			return
		}

		claims, err := mw.tokenSvc.Verify(token)
		if err != nil {
			mw.logger.Debug("token verification failed", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "response": "Unauthorized: Invalid token"})
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRoles gates a route on the static role table. An empty role list
// lets every authenticated request through.
func (mw *AuthMW) RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(roles) == 0 {
			c.Next()
			return
		}

		role := c.GetString("role")
		allowed, err := mw.authorizer.Authorize(role, roles)
		if err != nil {
			mw.logger.Error("authorization check failed", zap.String("role", role), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "response": "Authorization check failed"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"response": "Forbidden: Insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}
