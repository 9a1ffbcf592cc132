package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/xoventechdev/Task-Manager-Project/internal/http/handlers"
	"github.com/xoventechdev/Task-Manager-Project/internal/http/middleware"
	"github.com/xoventechdev/Task-Manager-Project/internal/mocks"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	uh := handlers.NewUserHandlers(mocks.NewMockAuthService(), 3600, false, logger)
	mw := middleware.NewAuthMW(mocks.NewMockTokenService(), mocks.NewMockRoleAuthorizer(), logger)
	return BuildRouter(uh, mw, nil)
}

func TestRouter_Root(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","response":"The app is loaded successfully"}`, w.Body.String())
}

func TestRouter_NotFound(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no/such/route", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"status":"fail","message":"Page not found"}`, w.Body.String())
}

func TestRouter_ProtectedRouteNeedsToken(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/userProfileUpdate/u-1", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"status":"error","response":"Unauthorized: No token provided"}`, w.Body.String())
}
