package config

import (
	"path/filepath"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LOG_FILE", filepath.Join(t.TempDir(), "api.log"))
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Environment)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.SMTPPort != 587 {
		t.Errorf("SMTPPort = %d, want 587", cfg.SMTPPort)
	}
	if cfg.RateLimitMax != 3 {
		t.Errorf("RateLimitMax = %d, want 3", cfg.RateLimitMax)
	}
	if cfg.RateLimitWindow != time.Minute {
		t.Errorf("RateLimitWindow = %s, want 1m", cfg.RateLimitWindow)
	}
	if cfg.SalesEmail != "sales@ctisourcing.com" {
		t.Errorf("SalesEmail = %q, want sales@ctisourcing.com", cfg.SalesEmail)
	}
	if cfg.MailTimeout != 10*time.Second {
		t.Errorf("MailTimeout = %s, want 10s", cfg.MailTimeout)
	}
	if cfg.RedisEnabled() {
		t.Error("RedisEnabled() = true with no REDIS_ADDR set")
	}
	if cfg.GlobalRateRPS != 10 || cfg.GlobalRateBurst != 20 {
		t.Errorf("global throttle = %d/%d, want 10/20", cfg.GlobalRateRPS, cfg.GlobalRateBurst)
	}
	if len(cfg.TrustedProxies) != 0 {
		t.Errorf("TrustedProxies = %v, want empty by default", cfg.TrustedProxies)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "2m")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("GLOBAL_RATE_RPS", "25")
	t.Setenv("GLOBAL_RATE_BURST", "50")
	t.Setenv("TRUSTED_PROXIES", "10.1.2.0/24,192.0.2.0/24")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if got := cfg.SMTPAddr(); got != "smtp.example.com:465" {
		t.Errorf("SMTPAddr() = %q, want smtp.example.com:465", got)
	}
	if cfg.RateLimitMax != 5 {
		t.Errorf("RateLimitMax = %d, want 5", cfg.RateLimitMax)
	}
	if cfg.RateLimitWindow != 2*time.Minute {
		t.Errorf("RateLimitWindow = %s, want 2m", cfg.RateLimitWindow)
	}
	if !cfg.RedisEnabled() {
		t.Error("RedisEnabled() = false with REDIS_ADDR set")
	}
	if cfg.GlobalRateRPS != 25 || cfg.GlobalRateBurst != 50 {
		t.Errorf("global throttle = %d/%d, want 25/50", cfg.GlobalRateRPS, cfg.GlobalRateBurst)
	}
	if len(cfg.TrustedProxies) != 2 || cfg.TrustedProxies[0] != "10.1.2.0/24" {
		t.Errorf("TrustedProxies = %v, want [10.1.2.0/24 192.0.2.0/24]", cfg.TrustedProxies)
	}
}

func TestLoadRejectsInvalidGlobalThrottle(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GLOBAL_RATE_RPS", "0")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted GLOBAL_RATE_RPS=0, want error")
	}
}

func TestLoadRejectsInvalidRateLimit(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RATE_LIMIT_MAX", "0")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted RATE_LIMIT_MAX=0, want error")
	}
}

func TestLoadRejectsInvalidWindow(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RATE_LIMIT_WINDOW", "-10s")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a negative RATE_LIMIT_WINDOW, want error")
	}
}
