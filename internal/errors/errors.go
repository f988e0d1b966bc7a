// Package errors provides domain-specific error types for telnetlog.
//
// These types carry structured context (operation, peer address) that
// lets the per-connection worker decide whether a failed session is
// worth logging and gives better diagnostics than plain string wrapping.
package errors

import (
	"errors"
	"fmt"
	"io"
	"net"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	// ErrConnectionClosed marks a peer that went away before sending
	// any data.  Sessions ending this way are not failures.
	ErrConnectionClosed = errors.New("connection closed by peer")

	// ErrDecoderState marks an NVT decoder that reached a state it has
	// no transition for.  The decoder resets itself before returning
	// this; the session treats it like any other connection error.
	ErrDecoderState = errors.New("telnet decoder in unknown state")
)

// ── Structured error types ───────────────────────────────────────────

// ConnError represents a failure on one peer connection.
type ConnError struct {
	Op   string // operation: "receive", "send", "accept"
	Peer string // textual peer address
	Err  error  // underlying error
}

func (e *ConnError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Peer, e.Err)
}

func (e *ConnError) Unwrap() error { return e.Err }

// Wrap creates a ConnError binding an operation and peer address to an
// underlying error.
func Wrap(op, peer string, err error) *ConnError {
	return &ConnError{Op: op, Peer: peer, Err: err}
}

// ── Classification helpers ───────────────────────────────────────────

// IsClosed reports whether err means the peer ended the connection
// cleanly rather than something going wrong on the wire.
func IsClosed(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrConnectionClosed) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, net.ErrClosed)
}

// IsTimeout reports whether err is an idle-receive deadline expiry.
func IsTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) {
		return ne.Timeout()
	}
	return false
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These let callers use telnetlog/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }
