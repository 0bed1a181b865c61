package utils

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Email     EmailConfig
	Policy    PolicyConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name         string
	Port         string
	Debug        bool
	LogPath      string
	Timezone     string
	FrontendURL  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	AccessSecret        string
	AccessExpiryMinutes int
	RefreshSecret       string
	RefreshExpiryHours  int
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Enabled is false when no SMTP host is configured; mail is then only logged.
func (c EmailConfig) Enabled() bool {
	return c.Host != ""
}

type PolicyConfig struct {
	// CancellationRequireNotice re-applies the modification notice window
	// to cancellations.
	CancellationRequireNotice bool
	NoticeHours               int
	SlotMinutes               int
	VerifyTokenHours          int
	ResetTokenMinutes         int
}

type RateLimitConfig struct {
	LoginAttempts          int
	ForgotPasswordAttempts int
	WindowMinutes          int
}

func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowMinutes) * time.Minute
}

// Location resolves the clinic timezone used to interpret appointment
// dates and times.
func (c AppConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", c.Timezone, err)
	}
	return loc, nil
}

func LoadConfig(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "healthcare-booking")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("APP_TIMEZONE", "UTC")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("HTTP_READ_TIMEOUT_SECONDS", 15)
	v.SetDefault("HTTP_WRITE_TIMEOUT_SECONDS", 15)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_ACCESS_EXPIRY_MINUTES", 60)
	v.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 24*7)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("CANCELLATION_REQUIRE_NOTICE", false)
	v.SetDefault("NOTICE_HOURS", 24)
	v.SetDefault("SLOT_MINUTES", 30)
	v.SetDefault("VERIFY_TOKEN_HOURS", 24)
	v.SetDefault("RESET_TOKEN_MINUTES", 10)
	v.SetDefault("RATE_LIMIT_LOGIN", 5)
	v.SetDefault("RATE_LIMIT_FORGOT_PASSWORD", 3)
	v.SetDefault("RATE_LIMIT_WINDOW_MINUTES", 15)

	if err := v.ReadInConfig(); err != nil {
		// Plain environment variables are enough when there is no file.
		if !errors.Is(err, os.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config %s: %w", envFile, err)
			}
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:         v.GetString("APP_NAME"),
			Port:         v.GetString("PORT"),
			Debug:        v.GetBool("DEBUG"),
			LogPath:      v.GetString("LOG_PATH"),
			Timezone:     v.GetString("APP_TIMEZONE"),
			FrontendURL:  v.GetString("FRONTEND_URL"),
			ReadTimeout:  time.Duration(v.GetInt("HTTP_READ_TIMEOUT_SECONDS")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("HTTP_WRITE_TIMEOUT_SECONDS")) * time.Second,
			CORSOrigins:  v.GetStringSlice("CORS_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			AccessSecret:        v.GetString("JWT_SECRET"),
			AccessExpiryMinutes: v.GetInt("JWT_ACCESS_EXPIRY_MINUTES"),
			RefreshSecret:       v.GetString("JWT_REFRESH_SECRET"),
			RefreshExpiryHours:  v.GetInt("JWT_REFRESH_EXPIRY_HOURS"),
		},
		Email: EmailConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASS"),
			From:     v.GetString("EMAIL_FROM"),
		},
		Policy: PolicyConfig{
			CancellationRequireNotice: v.GetBool("CANCELLATION_REQUIRE_NOTICE"),
			NoticeHours:               v.GetInt("NOTICE_HOURS"),
			SlotMinutes:               v.GetInt("SLOT_MINUTES"),
			VerifyTokenHours:          v.GetInt("VERIFY_TOKEN_HOURS"),
			ResetTokenMinutes:         v.GetInt("RESET_TOKEN_MINUTES"),
		},
		RateLimit: RateLimitConfig{
			LoginAttempts:          v.GetInt("RATE_LIMIT_LOGIN"),
			ForgotPasswordAttempts: v.GetInt("RATE_LIMIT_FORGOT_PASSWORD"),
			WindowMinutes:          v.GetInt("RATE_LIMIT_WINDOW_MINUTES"),
		},
	}

	if config.JWT.AccessSecret == "" || config.JWT.RefreshSecret == "" {
		return nil, errors.New("JWT_SECRET and JWT_REFRESH_SECRET must be set")
	}

	return config, nil
}
