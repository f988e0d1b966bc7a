package config

// loader.go - configuration loading from a YAML file and from
// environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (LoadFromEnv)
//   3. YAML file  (LoadFile)
//   4. Defaults   (defaults.go)

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML schema.  Durations are plain seconds, and
// pointer fields distinguish "absent" from zero so the file only
// overrides what it mentions.
type fileConfig struct {
	Port         *int    `yaml:"port"`
	IdleTimeout  *int    `yaml:"idle_timeout_seconds"`
	MaxAttempts  *int    `yaml:"max_attempts"`
	RetryDelay   *int    `yaml:"retry_delay_seconds"`
	Output       *string `yaml:"output"`
	SQLite       *string `yaml:"sqlite"`
	Redis        *string `yaml:"redis"`
	RedisPass    *string `yaml:"redis_password"`
	RedisDB      *int    `yaml:"redis_db"`
	RedisChannel *string `yaml:"redis_channel"`
	Metrics      *string `yaml:"metrics"`
	Verbose      *int    `yaml:"verbose"`
}

// LoadFile overlays a YAML configuration file onto cfg.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Port != nil {
		cfg.Port = *fc.Port
	}
	if fc.IdleTimeout != nil {
		cfg.IdleTimeout = time.Duration(*fc.IdleTimeout) * time.Second
	}
	if fc.MaxAttempts != nil {
		cfg.MaxAttempts = *fc.MaxAttempts
	}
	if fc.RetryDelay != nil {
		cfg.RetryDelay = time.Duration(*fc.RetryDelay) * time.Second
	}
	if fc.Output != nil {
		cfg.Output = *fc.Output
	}
	if fc.SQLite != nil {
		cfg.SQLitePath = *fc.SQLite
	}
	if fc.Redis != nil {
		cfg.RedisAddr = *fc.Redis
	}
	if fc.RedisPass != nil {
		cfg.RedisPass = *fc.RedisPass
	}
	if fc.RedisDB != nil {
		cfg.RedisDB = *fc.RedisDB
	}
	if fc.RedisChannel != nil {
		cfg.RedisChannel = *fc.RedisChannel
	}
	if fc.Metrics != nil {
		cfg.MetricsAddr = *fc.Metrics
	}
	if fc.Verbose != nil {
		cfg.Verbose = *fc.Verbose
	}
	return nil
}

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the TELNETLOG_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive); durations accept
// anything time.ParseDuration does.

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  Call this BEFORE applying CLI
// flags so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := envInt("TELNETLOG_PORT"); v > 0 {
		cfg.Port = v
	}
	if v := envDuration("TELNETLOG_IDLE_TIMEOUT"); v > 0 {
		cfg.IdleTimeout = v
	}
	if v := envInt("TELNETLOG_MAX_ATTEMPTS"); v > 0 {
		cfg.MaxAttempts = v
	}
	if v, ok := envDurationOK("TELNETLOG_RETRY_DELAY"); ok {
		cfg.RetryDelay = v
	}

	// Sinks
	if v := os.Getenv("TELNETLOG_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("TELNETLOG_SQLITE"); v != "" {
		cfg.SQLitePath = v
	}
	if v := os.Getenv("TELNETLOG_REDIS"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("TELNETLOG_REDIS_PASSWORD"); v != "" {
		cfg.RedisPass = v
	}
	if v := envInt("TELNETLOG_REDIS_DB"); v > 0 {
		cfg.RedisDB = v
	}
	if v := os.Getenv("TELNETLOG_REDIS_CHANNEL"); v != "" {
		cfg.RedisChannel = v
	}

	// Observability
	if v := os.Getenv("TELNETLOG_METRICS"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := envInt("TELNETLOG_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envDuration(key string) time.Duration {
	d, _ := envDurationOK(key)
	return d
}

func envDurationOK(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	// Accept bare integers as seconds for operator convenience.
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, true
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return d, true
}
