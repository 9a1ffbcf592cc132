package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
	TTL    string `yaml:"ttl"`
}

type OTPConfig struct {
	VerifyTTL string `yaml:"verify_ttl"`
	ResetTTL  string `yaml:"reset_ttl"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type CookieConfig struct {
	Secure bool `yaml:"secure"`
}

type RateLimitConfig struct {
	Window string `yaml:"window"`
	Max    int    `yaml:"max"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Mongo     MongoConfig     `yaml:"mongo"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	OTP       OTPConfig       `yaml:"otp"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Cookie    CookieConfig    `yaml:"cookie"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	ClientURL string          `yaml:"client_url"`
}

// Config is the immutable process configuration, read once at startup and
// injected into constructors.
type Config struct {
	Port            string
	GinMode         string
	MongoURI        string
	MongoDatabase   string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	JWTIssuer       string
	TokenTTL        time.Duration
	OTPVerifyTTL    time.Duration
	OTPResetTTL     time.Duration
	SMTPHost        string
	SMTPPort        int
	SMTPUser        string
	SMTPPassword    string
	MailFrom        string
	ClientURL       string
	CookieSecure    bool
	RateLimitWindow time.Duration
	RateLimitMax    int
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

// Load reads config/config.yml (path overridable via CONFIG_PATH), falling
// back to environment variables for everything the file omits. A missing file
// is not an error; secrets normally arrive through the environment anyway.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var file ConfigFile
	path := env("CONFIG_PATH", "config/config.yml")
	if bytes, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(bytes, &file); err != nil {
			return nil, fmt.Errorf("could not parse config yaml at %s: %w", path, err)
		}
	}

	port := file.App.Port
	if port == 0 {
		port = envInt("PORT", 8080)
	}

	tokenTTL, err := parseDuration(file.JWT.TTL, "JWT_TTL", time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid token TTL: %w", err)
	}
	verifyTTL, err := parseDuration(file.OTP.VerifyTTL, "OTP_VERIFY_TTL", 10*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP verify TTL: %w", err)
	}
	resetTTL, err := parseDuration(file.OTP.ResetTTL, "OTP_RESET_TTL", 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP reset TTL: %w", err)
	}
	rlWindow, err := parseDuration(file.RateLimit.Window, "RATE_LIMIT_WINDOW", 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit window: %w", err)
	}

	rlMax := file.RateLimit.Max
	if rlMax == 0 {
		rlMax = envInt("RATE_LIMIT_MAX", 100)
	}

	smtpPort := file.SMTP.Port
	if smtpPort == 0 {
		smtpPort = envInt("SMTP_PORT", 587)
	}

	cfg := &Config{
		Port:            strconv.Itoa(port),
		GinMode:         firstOf(file.App.GinMode, env("GIN_MODE", "release")),
		MongoURI:        firstOf(file.Mongo.URI, env("MONGODB", "mongodb://localhost:27017")),
		MongoDatabase:   firstOf(file.Mongo.Database, env("MONGODB_DATABASE", "taskmanager")),
		RedisAddr:       firstOf(file.Redis.Addr, env("REDIS_ADDR", "localhost:6379")),
		RedisPassword:   firstOf(file.Redis.Password, os.Getenv("REDIS_PASSWORD")),
		RedisDB:         file.Redis.DB,
		JWTSecret:       firstOf(file.JWT.Secret, os.Getenv("JWT_SECRET")),
		JWTIssuer:       firstOf(file.JWT.Issuer, env("JWT_ISSUER", "task-manager")),
		TokenTTL:        tokenTTL,
		OTPVerifyTTL:    verifyTTL,
		OTPResetTTL:     resetTTL,
		SMTPHost:        firstOf(file.SMTP.Host, os.Getenv("SMTP_HOST")),
		SMTPPort:        smtpPort,
		SMTPUser:        firstOf(file.SMTP.Username, os.Getenv("SMTP_USER")),
		SMTPPassword:    firstOf(file.SMTP.Password, os.Getenv("SMTP_PASSWORD")),
		MailFrom:        firstOf(file.SMTP.From, env("MAIL_FROM", "Task Manager <noreply@yourapp.com>")),
		ClientURL:       firstOf(file.ClientURL, env("CLIENT_URL", "http://localhost:3000")),
		CookieSecure:    file.Cookie.Secure || os.Getenv("COOKIE_SECURE") == "true",
		RateLimitWindow: rlWindow,
		RateLimitMax:    rlMax,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret is required (jwt.secret or JWT_SECRET)")
	}

	return cfg, nil
}

func parseDuration(fromFile, envKey string, def time.Duration) (time.Duration, error) {
	s := firstOf(fromFile, os.Getenv(envKey))
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

func firstOf(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
