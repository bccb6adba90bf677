package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment string `env:"ENV" envDefault:"development"`
	Port        string `env:"API_PORT" envDefault:"8080"`
	LogFile     string `env:"LOG_FILE"`

	// CORS Configuration
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`

	// Networks whose forwarding headers (X-Real-IP, X-Forwarded-For)
	// are honored when resolving the client address. Empty keeps the
	// loopback/private-range default.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	// Process-wide HTTP throttle, across all callers
	GlobalRateRPS   int `env:"GLOBAL_RATE_RPS" envDefault:"10"`
	GlobalRateBurst int `env:"GLOBAL_RATE_BURST" envDefault:"20"`

	// Mail Relay Configuration
	// Credentials are passed through to the relay as-is; they are never
	// validated or logged here.
	SMTPHost     string        `env:"SMTP_HOST"`
	SMTPPort     int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string        `env:"SMTP_USERNAME"`
	SMTPPassword string        `env:"SMTP_PASSWORD"`
	MailFrom     string        `env:"MAIL_FROM" envDefault:"CTI Sourcing <noreply@ctisourcing.com>"`
	SalesEmail   string        `env:"SALES_EMAIL" envDefault:"sales@ctisourcing.com"`
	MailTimeout  time.Duration `env:"MAIL_TIMEOUT" envDefault:"10s"`

	// Inquiry Rate Limiting
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"3"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"60s"`

	// Redis Configuration (optional - enables shared rate limiting
	// across instances when set)
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Analytics Configuration
	GTMServerURL      string        `env:"GTM_SERVER_URL"`
	AnalyticsTimeout  time.Duration `env:"ANALYTICS_TIMEOUT" envDefault:"5s"`
	AnalyticsLogLocal bool          `env:"ANALYTICS_LOG_LOCAL" envDefault:"false"`
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	// Load .env file if it exists. A specific .env.<ENV> wins over the
	// plain .env; godotenv never overwrites variables already set.
	envLocations := []string{".env"}
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}
	for _, loc := range envLocations {
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.RateLimitMax <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", cfg.RateLimitMax)
	}
	if cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", cfg.RateLimitWindow)
	}
	if cfg.GlobalRateRPS <= 0 {
		return nil, fmt.Errorf("GLOBAL_RATE_RPS must be positive, got %d", cfg.GlobalRateRPS)
	}
	if cfg.GlobalRateBurst <= 0 {
		return nil, fmt.Errorf("GLOBAL_RATE_BURST must be positive, got %d", cfg.GlobalRateBurst)
	}

	// Set default log file if not set
	if cfg.LogFile == "" {
		if cfg.Environment == "production" {
			cfg.LogFile = "/app/logs/api.log"
		} else {
			cfg.LogFile = "./logs/api.log"
		}
	}

	// Ensure log directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	return cfg, nil
}

// SMTPAddr returns the host:port address of the mail relay
func (c *Config) SMTPAddr() string {
	return net.JoinHostPort(c.SMTPHost, strconv.Itoa(c.SMTPPort))
}

// RedisEnabled reports whether a Redis address has been configured
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}
