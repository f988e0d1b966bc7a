package report

// guard.go - a circuit breaker around a sink.  A sink that fails
// repeatedly (Redis gone, disk full) is suspended for a cooldown
// period instead of being hit on every captured credential; after the
// cooldown a few probe records decide whether it has recovered.

import (
	"fmt"
	"sync"
	"time"
)

type guardState int

const (
	guardClosed guardState = iota // normal operation
	guardOpen                     // sink suspended, records rejected
	guardProbing                  // letting a few records through
)

func (s guardState) String() string {
	switch s {
	case guardClosed:
		return "closed"
	case guardOpen:
		return "open"
	case guardProbing:
		return "probing"
	default:
		return "unknown"
	}
}

// GuardConfig tunes a [Guard].  The zero value gets defaults.
type GuardConfig struct {
	// MaxFailures is the number of consecutive Record failures before
	// the sink is suspended (default 5).
	MaxFailures int
	// Cooldown is how long the sink stays suspended before probing
	// resumes (default 30s).
	Cooldown time.Duration
	// Probes is the number of consecutive successes needed to lift
	// the suspension (default 2).
	Probes int
}

// Guard wraps a Sink and stops calling it after repeated failures.
// While suspended, Record returns an error without touching the
// underlying sink; the Reporter logs and counts it like any other
// sink failure.
type Guard struct {
	sink Sink

	mu          sync.Mutex
	state       guardState
	failures    int
	successes   int
	lastFailure time.Time

	maxFailures int
	cooldown    time.Duration
	probes      int
}

// NewGuard wraps sink with a circuit breaker.  cfg may be nil.
func NewGuard(sink Sink, cfg *GuardConfig) *Guard {
	g := &Guard{
		sink:        sink,
		maxFailures: 5,
		cooldown:    30 * time.Second,
		probes:      2,
	}
	if cfg != nil {
		if cfg.MaxFailures > 0 {
			g.maxFailures = cfg.MaxFailures
		}
		if cfg.Cooldown > 0 {
			g.cooldown = cfg.Cooldown
		}
		if cfg.Probes > 0 {
			g.probes = cfg.Probes
		}
	}
	return g
}

// Name reports the underlying sink's name so log lines and metrics
// keep their labels when a guard is inserted.
func (g *Guard) Name() string { return g.sink.Name() }

// Record forwards to the underlying sink unless it is suspended.
func (g *Guard) Record(peer string, username, password []byte) error {
	if err := g.admit(); err != nil {
		return err
	}
	err := g.sink.Record(peer, username, password)
	g.observe(err)
	return err
}

// Close always reaches the underlying sink, suspended or not.
func (g *Guard) Close() error { return g.sink.Close() }

func (g *Guard) admit() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case guardOpen:
		since := time.Since(g.lastFailure)
		if since <= g.cooldown {
			return fmt.Errorf("%s suspended after %d failures, retry in %v",
				g.sink.Name(), g.failures, (g.cooldown - since).Truncate(time.Second))
		}
		g.state = guardProbing
		g.successes = 0
	}
	return nil
}

func (g *Guard) observe(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err != nil {
		g.failures++
		g.successes = 0
		g.lastFailure = time.Now()
		// A failed probe re-suspends immediately.
		if g.state == guardProbing || g.failures >= g.maxFailures {
			g.state = guardOpen
		}
		return
	}

	g.successes++
	switch g.state {
	case guardProbing:
		if g.successes >= g.probes {
			g.state = guardClosed
			g.failures = 0
		}
	case guardClosed:
		g.failures = 0
	}
}
