package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xoventechdev/Task-Manager-Project/internal/config"
	httpx "github.com/xoventechdev/Task-Manager-Project/internal/http"
	"github.com/xoventechdev/Task-Manager-Project/internal/platform/logger"
)

// Run wires the application and serves until the listener fails.
func Run(cfg *config.Config) error {
	log, err := logger.New(cfg.GinMode)
	if err != nil {
		return err
	}
	defer log.Sync()

	gin.SetMode(cfg.GinMode)

	ctx := context.Background()
	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer c.Close(ctx)
	log.Info("database connected successfully")

	r := httpx.BuildRouter(c.UserHandlers, c.AuthMW, c.RateLimiter.Middleware())

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}
