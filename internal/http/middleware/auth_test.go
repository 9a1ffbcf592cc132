package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/xoventechdev/Task-Manager-Project/domain"
	"github.com/xoventechdev/Task-Manager-Project/internal/mocks"
)

func newAuthTestRouter(t *testing.T, mw *AuthMW, roles ...string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", mw.WithJWT(), mw.RequireRoles(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": c.GetString("userId"),
			"role":   c.GetString("role"),
		})
	})
	return r
}

func TestAuthMW_WithJWT(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.VerifyFunc = func(token string) (*domain.TokenClaims, error) {
		if token != "good-token" {
			return nil, domain.ErrTokenInvalid
		}
		return &domain.TokenClaims{UserID: "u-1", Email: "test@example.com", Role: domain.RoleUser}, nil
	}

	mw := NewAuthMW(tokenSvc, mocks.NewMockRoleAuthorizer(), zap.NewNop())
	r := newAuthTestRouter(t, mw)

	t.Run("no token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"status":"error","response":"Unauthorized: No token provided"}`, w.Body.String())
	})

	t.Run("invalid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("token", "bad-token")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"status":"error","response":"Unauthorized: Invalid token"}`, w.Body.String())
	})

	t.Run("token from header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("token", "good-token")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"userId":"u-1","role":"user"}`, w.Body.String())
	})

	t.Run("token from cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: "good-token"})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("header wins over cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("token", "good-token")
		req.AddCookie(&http.Cookie{Name: "token", Value: "bad-token"})
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthMW_RequireRoles(t *testing.T) {
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.VerifyFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{UserID: "u-1", Email: "test@example.com", Role: token}, nil
	}

	authorizer := mocks.NewMockRoleAuthorizer()
	authorizer.AuthorizeFunc = func(role string, required []string) (bool, error) {
		for _, req := range required {
			if role == req {
				return true, nil
			}
		}
		return false, nil
	}

	mw := NewAuthMW(tokenSvc, authorizer, zap.NewNop())

	t.Run("denied role", func(t *testing.T) {
		r := newAuthTestRouter(t, mw, "admin")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("token", "user")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"response":"Forbidden: Insufficient permissions"}`, w.Body.String())
	})

	t.Run("allowed role", func(t *testing.T) {
		r := newAuthTestRouter(t, mw, "admin")
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("token", "admin")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("no required roles passes everyone", func(t *testing.T) {
		r := newAuthTestRouter(t, mw)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("token", "anything")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
