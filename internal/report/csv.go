package report

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// CSVWriter emits one "address,username,password" line per record.
// The mutex is held for exactly one formatted line, so interleaved
// records from concurrent connections never garble the output.
type CSVWriter struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
}

// NewCSVWriter wraps an arbitrary writer (tests, stdout).
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: w}
}

// OpenCSV opens path for appending, creating it if needed.  An empty
// path or "-" selects stdout.
func OpenCSV(path string) (*CSVWriter, error) {
	if path == "" || path == "-" {
		return NewCSVWriter(os.Stdout), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", path, err)
	}
	return &CSVWriter{w: f, closer: f}, nil
}

// Name implements Sink.
func (c *CSVWriter) Name() string { return "csv" }

// Record writes one line atomically.
func (c *CSVWriter) Record(peer string, username, password []byte) error {
	line := fmt.Sprintf("%s,%s,%s\n", peer, Sanitize(username), Sanitize(password))

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := io.WriteString(c.w, line); err != nil {
		return fmt.Errorf("csv write: %w", err)
	}
	return nil
}

// Close closes the underlying file, if any.
func (c *CSVWriter) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
