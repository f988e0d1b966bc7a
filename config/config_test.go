package config

import (
	"strings"
	"testing"
	"time"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.IdleTimeout != DefaultIdleTimeout {
		t.Errorf("IdleTimeout = %v, want %v", cfg.IdleTimeout, DefaultIdleTimeout)
	}
	if cfg.MaxAttempts != DefaultMaxAttempts {
		t.Errorf("MaxAttempts = %d, want %d", cfg.MaxAttempts, DefaultMaxAttempts)
	}
	if cfg.RetryDelay != DefaultRetryDelay {
		t.Errorf("RetryDelay = %v, want %v", cfg.RetryDelay, DefaultRetryDelay)
	}
	if cfg.RedisChannel != DefaultRedisChannel {
		t.Errorf("RedisChannel = %q, want %q", cfg.RedisChannel, DefaultRedisChannel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults ok", func(c *Config) {}, ""},
		{"port zero", func(c *Config) { c.Port = 0 }, "port"},
		{"port too high", func(c *Config) { c.Port = 65536 }, "port"},
		{"negative idle", func(c *Config) { c.IdleTimeout = -time.Second }, "idle"},
		{"zero idle", func(c *Config) { c.IdleTimeout = 0 }, "idle"},
		{"zero attempts", func(c *Config) { c.MaxAttempts = 0 }, "attempts"},
		{"negative delay", func(c *Config) { c.RetryDelay = -time.Second }, "delay"},
		{"zero delay ok", func(c *Config) { c.RetryDelay = 0 }, ""},
		{"redis no channel", func(c *Config) {
			c.RedisAddr = "localhost:6379"
			c.RedisChannel = ""
		}, "channel"},
		{"redis with channel ok", func(c *Config) {
			c.RedisAddr = "localhost:6379"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}
