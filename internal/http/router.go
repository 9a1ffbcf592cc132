package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xoventechdev/Task-Manager-Project/internal/http/handlers"
	"github.com/xoventechdev/Task-Manager-Project/internal/http/middleware"
)

// BuildRouter assembles the API surface under /api/v1. rateLimit may be nil
// when no limiter is wired (tests).
func BuildRouter(uh *handlers.UserHandlers, authMW *middleware.AuthMW, rateLimit gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if rateLimit != nil {
		r.Use(rateLimit)
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "success",
			"response": "The app is loaded successfully",
		})
	})

	api := r.Group("/api/v1")
	api.POST("/signup", uh.SignUp)
	api.POST("/signin", uh.SignIn)
	api.POST("/emailVerify", uh.EmailVerify)
	api.POST("/passwordForgot", uh.PasswordForgot)
	api.POST("/passwordReset", uh.PasswordReset)
	api.POST("/emailVerifyRequest", uh.EmailVerifyRequestNew)
	api.POST("/userProfileUpdate/:id", authMW.WithJWT(), authMW.RequireRoles(), uh.ProfileUpdate)
	api.GET("/getUserProfile/:id", uh.GetProfile)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "fail",
			"message": "Page not found",
		})
	})

	return r
}
