package app

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/xoventechdev/Task-Manager-Project/domain"
	"github.com/xoventechdev/Task-Manager-Project/internal/config"
	"github.com/xoventechdev/Task-Manager-Project/internal/http/handlers"
	"github.com/xoventechdev/Task-Manager-Project/internal/http/middleware"
	"github.com/xoventechdev/Task-Manager-Project/internal/infrastructure/auth"
	"github.com/xoventechdev/Task-Manager-Project/internal/infrastructure/database"
	"github.com/xoventechdev/Task-Manager-Project/internal/infrastructure/notifications"
	"github.com/xoventechdev/Task-Manager-Project/internal/infrastructure/repositories"
	"github.com/xoventechdev/Task-Manager-Project/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	// Infrastructure
	MongoClient *mongo.Client
	DB          *mongo.Database
	Redis       *database.RedisClient

	// Repositories
	UserRepo     domain.UserRepository
	ProjectRepo  domain.ProjectRepository
	TaskRepo     domain.TaskRepository
	EmployeeRepo domain.EmployeeRepository

	// Services
	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	OTPSvc          domain.OTPService
	AuthSvc         domain.AuthService
	Authorizer      domain.RoleAuthorizer

	// HTTP
	UserHandlers *handlers.UserHandlers
	AuthMW       *middleware.AuthMW
	RateLimiter  *middleware.RateLimiter
}

// NewContainer creates and initializes all dependencies
func NewContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	client, db, err := database.OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}
	c.MongoClient = client
	c.DB = db
	if err := database.EnsureIndexes(ctx, db, logger); err != nil {
		logger.Warn("index setup incomplete", zap.Error(err))
	}

	c.Redis = database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := c.Redis.Ping(ctx); err != nil {
		return nil, err
	}

	c.UserRepo = repositories.NewUserRepository(db, logger)
	c.ProjectRepo = repositories.NewProjectRepository(db, logger)
	c.TaskRepo = repositories.NewTaskRepository(db, logger)
	c.EmployeeRepo = repositories.NewEmployeeRepository(db, logger)

	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	c.NotificationSvc = notifications.NewMailService(notifications.MailConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUser,
		Password:  cfg.SMTPPassword,
		From:      cfg.MailFrom,
		ClientURL: cfg.ClientURL,
		VerifyTTL: cfg.OTPVerifyTTL,
		ResetTTL:  cfg.OTPResetTTL,
	}, logger)

	c.OTPSvc = services.NewOTPService(c.NotificationSvc, c.UserRepo, services.OTPConfig{
		VerifyTTL: cfg.OTPVerifyTTL,
		ResetTTL:  cfg.OTPResetTTL,
	}, logger)
	c.AuthSvc = services.NewAuthService(c.UserRepo, c.PasswordSvc, c.TokenSvc, c.OTPSvc, cfg.TokenTTL, logger)

	authorizer, err := auth.NewCasbinAuthorizer()
	if err != nil {
		return nil, err
	}
	c.Authorizer = authorizer

	c.UserHandlers = handlers.NewUserHandlers(c.AuthSvc, int(cfg.TokenTTL.Seconds()), cfg.CookieSecure, logger)
	c.AuthMW = middleware.NewAuthMW(c.TokenSvc, c.Authorizer, logger)
	c.RateLimiter = middleware.NewRateLimiter(c.Redis.Client, cfg.RateLimitWindow, cfg.RateLimitMax, logger)

	return c, nil
}

// Close closes all connections
func (c *Container) Close(ctx context.Context) error {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.MongoClient != nil {
		return c.MongoClient.Disconnect(ctx)
	}
	return nil
}
