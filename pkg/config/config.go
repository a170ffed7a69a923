package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// minSecretLen is the floor for JWT_SECRET. A short or guessable secret
// defeats the whole token scheme, so startup refuses it outright.
const minSecretLen = 32

// Config holds all runtime configuration for the service.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	JWTSecret    string `env:"JWT_SECRET,required"`
	JWTIssuer    string `env:"JWT_ISSUER" envDefault:"shop-backend"`
	JWTExpiresIn string `env:"JWT_EXPIRES_IN" envDefault:"7d"`

	// Optional Redis for distributed rate limiting; empty means the
	// in-memory limiter is used.
	RedisAddr string `env:"REDIS_ADDR"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"1"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"5"`

	tokenTTL time.Duration
}

// TokenTTL is the parsed JWT_EXPIRES_IN.
func (c *Config) TokenTTL() time.Duration { return c.tokenTTL }

// Load reads environment variables, optionally from a .env file if
// present, and validates the load-bearing ones. It fails fast on a
// misconfigured secret or lifetime rather than booting insecure.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if len(cfg.JWTSecret) < minSecretLen {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters, got %d", minSecretLen, len(cfg.JWTSecret))
	}

	ttl, err := ParseLifetime(cfg.JWTExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRES_IN must be positive, got %q", cfg.JWTExpiresIn)
	}
	cfg.tokenTTL = ttl

	return cfg, nil
}

// ParseLifetime parses a token lifetime string. On top of the stdlib
// duration units it accepts a "d" suffix for whole days ("7d"), the
// convention the API has always used for JWT_EXPIRES_IN.
func ParseLifetime(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutSuffix(s, "d"); ok {
		days, err := strconv.Atoi(rest)
		if err != nil {
			return 0, fmt.Errorf("invalid day lifetime %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid lifetime %q", s)
	}
	return d, nil
}
