package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Auth     AuthConfig
	Email    EmailConfig
	Notify   NotifyConfig
	CORS     CORSConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig with an empty URL selects the in-memory store.
type DatabaseConfig struct {
	URL         string
	MaxConns    int
	MinConns    int
	MaxLifetime time.Duration
}

type RedisConfig struct {
	URL string
}

type NATSConfig struct {
	URL string
}

type AuthConfig struct {
	JWTSecret         string
	SessionTTL        time.Duration
	AdminEmail        string
	AdminPasswordHash string
	AdminPassword     string
	LoginRateLimit    int
	LoginRateWindow   time.Duration
}

type EmailConfig struct {
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	SMTPFrom      string
	FromName      string
	MailerSendKey string
	DevMode       bool // log emails instead of sending
}

type NotifyConfig struct {
	AdminEmail string
	Timeout    time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level string
	File  string
}

func (c *Config) Production() bool { return c.AppEnv == "production" }

// Load reads the environment, after merging a .env file if one exists.
func Load() *Config {
	_ = godotenv.Load()

	smtpUser := getEnv("SMTP_USER", "")
	return &Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			URL:         getEnv("DATABASE_URL", ""),
			MaxConns:    getInt("DB_MAX_CONNS", 10),
			MinConns:    getInt("DB_MIN_CONNS", 1),
			MaxLifetime: getDuration("DB_MAX_LIFETIME", time.Hour),
		},
		Redis: RedisConfig{URL: getEnv("REDIS_URL", "")},
		NATS:  NATSConfig{URL: getEnv("NATS_URL", "")},
		Auth: AuthConfig{
			JWTSecret:         getEnv("JWT_SECRET", "dev-only-secret-change-in-prod"),
			SessionTTL:        getDuration("SESSION_TTL", 24*time.Hour),
			AdminEmail:        getEnv("ADMIN_EMAIL", "admin@sophies-tours.com"),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			AdminPassword:     getEnv("ADMIN_PASSWORD", "password"),
			LoginRateLimit:    getInt("LOGIN_RATE_LIMIT", 5),
			LoginRateWindow:   getDuration("LOGIN_RATE_WINDOW", 15*time.Minute),
		},
		Email: EmailConfig{
			SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:      getInt("SMTP_PORT", 587),
			SMTPUser:      smtpUser,
			SMTPPass:      getEnv("SMTP_PASS", ""),
			SMTPFrom:      getEnv("SMTP_FROM", smtpUser),
			FromName:      getEnv("MAILER_FROM_NAME", "Sophie's Tours"),
			MailerSendKey: getEnv("MAILERSEND_API_KEY", ""),
			DevMode:       getBool("EMAIL_DEV_MODE", false),
		},
		Notify: NotifyConfig{
			AdminEmail: getEnv("NOTIFY_ADMIN_EMAIL", "admin@sophies-tours.com"),
			Timeout:    getDuration("NOTIFY_TIMEOUT", 10*time.Second),
		},
		CORS: CORSConfig{
			AllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
