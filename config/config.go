// Package config defines the runtime configuration for telnetlog and
// provides loading from defaults, a YAML file, environment variables,
// and CLI flags (lowest to highest precedence — the wiring lives in
// cmd).
package config

import (
	"fmt"
	"time"
)

// Config holds every tuneable for one honeypot process.
type Config struct {
	// ── Listener ─────────────────────────────────────────────────────
	Port        int
	IdleTimeout time.Duration

	// ── Session ──────────────────────────────────────────────────────
	MaxAttempts int
	RetryDelay  time.Duration

	// ── Sinks ────────────────────────────────────────────────────────
	Output       string // CSV destination; "" or "-" = stdout
	SQLitePath   string
	RedisAddr    string
	RedisPass    string
	RedisDB      int
	RedisChannel string

	// ── Observability ────────────────────────────────────────────────
	MetricsAddr string
	Verbose     int
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		Port:         DefaultPort,
		IdleTimeout:  DefaultIdleTimeout,
		MaxAttempts:  DefaultMaxAttempts,
		RetryDelay:   DefaultRetryDelay,
		RedisChannel: DefaultRedisChannel,
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}
	if c.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive, got %s", c.IdleTimeout)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay cannot be negative, got %s", c.RetryDelay)
	}
	if c.RedisAddr != "" && c.RedisChannel == "" {
		return fmt.Errorf("redis enabled but no channel configured")
	}
	return nil
}
