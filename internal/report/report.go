package report

import (
	"telnetlog/internal/metrics"
	"telnetlog/util"
)

// Sink receives one credential tuple per completed session.  Record is
// called concurrently from connection workers; implementations must
// serialize their own output.
type Sink interface {
	Name() string
	Record(peer string, username, password []byte) error
	Close() error
}

// Reporter applies the suppression rule and fans records out to every
// configured sink.  A failing sink is logged and counted but never
// fails the session or the other sinks.
type Reporter struct {
	sinks  []Sink
	logger *util.Logger
}

// NewReporter builds a Reporter over the given sinks.
func NewReporter(logger *util.Logger, sinks ...Sink) *Reporter {
	return &Reporter{sinks: sinks, logger: logger}
}

// Record forwards one credential tuple to every sink, unless the pair
// is a known benign artifact.
func (r *Reporter) Record(peer string, username, password []byte) error {
	if Suppressed(username, password) {
		metrics.CredentialsSuppressed.Inc()
		r.logger.Debug("suppressed artifact pair from %s", peer)
		return nil
	}
	metrics.CredentialsTotal.Inc()
	for _, s := range r.sinks {
		if err := s.Record(peer, username, password); err != nil {
			metrics.SinkErrors.WithLabelValues(s.Name()).Inc()
			r.logger.Error("sink %s: %v", s.Name(), err)
		}
	}
	return nil
}

// Name implements Sink.
func (r *Reporter) Name() string { return "reporter" }

// Close closes every sink, returning the first error encountered.
func (r *Reporter) Close() error {
	var first error
	for _, s := range r.sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
