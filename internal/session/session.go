// Package session drives the login dialogue on one accepted
// connection: prompt, username, password, rejection, bounded retries.
// It owns the decoder state for the lifetime of the connection and is
// the only place the echo-suppressed password variant is entered and
// left.
//
// Sessions never validate anything — every login attempt fails, and
// the only output is the credential tuple handed to the reporter.
package session

import (
	"io"
	"time"

	neterr "telnetlog/internal/errors"
	"telnetlog/internal/nvt"
	"telnetlog/internal/report"
	"telnetlog/util"
)

// The greeting carries just enough option negotiation to keep
// Mirai-family bots talking: WILL SUPPRESS-GO-AHEAD, WILL ECHO,
// DO NAWS, DO TERMINAL-TYPE.  Re-prompts after a failed attempt skip
// the negotiation.
const (
	greeting = "\xff\xfb\x03" +
		"\xff\xfb\x01" +
		"\xff\xfd\x1f" +
		"\xff\xfd\x18" +
		"\r\nlogin: "
	passwordPrompt = "\r\nPassword: "
	rejection      = "\r\nLogin incorrect\r\n"
	reprompt       = "\r\nlogin: "
)

// Session is the per-connection login state machine.  One worker owns
// it exclusively; nothing here is safe for concurrent use.
type Session struct {
	Conn   io.ReadWriter
	Peer   string
	Sink   report.Sink
	Logger *util.Logger

	// MaxAttempts bounds the retries granted after the first login
	// attempt, so a persistent peer records MaxAttempts+1 pairs.
	// RetryDelay throttles automated bruteforce between attempts.
	MaxAttempts int
	RetryDelay  time.Duration
}

// New returns a session with the standard attempt bound and throttle.
func New(conn io.ReadWriter, peer string, sink report.Sink, logger *util.Logger) *Session {
	return &Session{
		Conn:        conn,
		Peer:        peer,
		Sink:        sink,
		Logger:      logger,
		MaxAttempts: 5,
		RetryDelay:  2 * time.Second,
	}
}

// Run executes the login dialogue until the peer disconnects, errors,
// times out, or exhausts its attempts.  The returned error is nil for
// every normal ending, including a peer that simply went away; only
// genuine connection errors (timeouts included) propagate so the
// worker can log them.
func (s *Session) Run() error {
	userBuf := util.GetLineBuf()
	passBuf := util.GetLineBuf()
	defer util.PutLineBuf(userBuf)
	defer util.PutLineBuf(passBuf)

	st := nvt.StateData
	hello := greeting

	for tries := 0; ; {
		s.send(hello)

		un, nst, err := nvt.ReadLine(s.Conn, *userBuf, st)
		st = nst
		if err != nil || un == 0 {
			return s.finish(err, "username")
		}

		s.send(passwordPrompt)
		// Suppress echo for the password, unless a negotiation
		// sequence already bounced the decoder out of the initial
		// variant.
		if st == nvt.StateData {
			st = nvt.StateDataQuiet
		}

		pn, nst, err := nvt.ReadLine(s.Conn, *passBuf, st)
		st = nst
		if err != nil || pn == 0 {
			return s.finish(err, "password")
		}

		if err := s.Sink.Record(s.Peer, (*userBuf)[:un], (*passBuf)[:pn]); err != nil {
			s.Logger.Error("report %s: %v", s.Peer, err)
		}

		// Back to echo-active for the re-prompted username.  Exactly
		// once per retry iteration.
		if st == nvt.StateDataQuiet {
			st = nvt.StateData
		}
		s.send(rejection)

		tries++
		if tries > s.MaxAttempts {
			return nil
		}
		time.Sleep(s.RetryDelay)
		hello = reprompt
	}
}

// send writes best-effort; a peer that stopped reading shows up as a
// receive failure soon enough.
func (s *Session) send(msg string) {
	io.WriteString(s.Conn, msg) //nolint:errcheck
}

// finish classifies how a field read ended.  A cleanly closed peer or
// an empty field ends the session without an error; everything else is
// wrapped with the peer address.
func (s *Session) finish(err error, field string) error {
	if err == nil || neterr.IsClosed(err) {
		s.Logger.Verbose("%s: peer left during %s", s.Peer, field)
		return nil
	}
	return neterr.Wrap("receive", s.Peer, err)
}
