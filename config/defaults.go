package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags, config file parsing, and environment variable
// loading.

const (
	// DefaultPort is the standard telnet port.
	DefaultPort = 23

	// DefaultIdleTimeout bounds every receive; a silent peer is cut
	// off after this much inactivity.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultMaxAttempts is how many retries a peer gets after the
	// first rejected login; the session ends after MaxAttempts+1
	// recorded pairs.
	DefaultMaxAttempts = 5

	// DefaultRetryDelay throttles automated bruteforce between
	// rejected attempts.
	DefaultRetryDelay = 2 * time.Second

	// DefaultRedisChannel is the pub/sub channel for credential
	// events when Redis publishing is enabled.
	DefaultRedisChannel = "telnetlog.credentials"
)
