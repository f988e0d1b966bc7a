// Package honeypot implements the listener and the per-connection
// workers.  The accept loop is strictly sequential; every accepted
// connection is handed to its own goroutine, which owns it until the
// session ends.  Workers never talk to each other — the only shared
// state is the reporting sink.
package honeypot

import (
	"context"

	"telnetlog/config"
	"telnetlog/internal/metrics"
	"telnetlog/internal/report"
	"telnetlog/util"
)

// Honeypot runs one listening service.
type Honeypot struct {
	Config *config.Config
	Sink   report.Sink
	Logger *util.Logger
}

// New returns a ready-to-run Honeypot.
func New(cfg *config.Config, sink report.Sink, logger *util.Logger) *Honeypot {
	return &Honeypot{Config: cfg, Sink: sink, Logger: logger}
}

// Run starts the optional metrics endpoint and blocks in the accept
// loop until the context ends or the listener fails.
func (h *Honeypot) Run(ctx context.Context) error {
	if h.Config.MetricsAddr != "" {
		h.Logger.Verbose("metrics on %s", h.Config.MetricsAddr)
		go metrics.Serve(h.Config.MetricsAddr, h.Logger)
	}
	return h.listenTCP(ctx)
}
