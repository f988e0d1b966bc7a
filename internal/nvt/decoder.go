// Package nvt implements the Telnet NVT (Network Virtual Terminal)
// line decoder used to pull username and password fields out of a raw
// peer byte stream.
//
// The decoder is a pure state machine: one input byte in, one event
// out, next state returned to the caller.  Because the transport may
// split the stream at any byte boundary, the state must be carried by
// the caller across reads — there is no hidden buffering here.  Only
// enough of RFC 854 is handled to keep scanning bots (Mirai and
// friends) talking: option negotiation is swallowed, never answered.
package nvt

import (
	neterr "telnetlog/internal/errors"
)

// Telnet protocol bytes (RFC 854).
const (
	SE   byte = 240 // subnegotiation end
	SB   byte = 250 // subnegotiation begin
	WILL byte = 251
	WONT byte = 252
	DO   byte = 253
	DONT byte = 254
	IAC  byte = 255 // Interpret As Command

	del = 0x7f
	etx = 0x03 // ctrl-C
	eot = 0x04 // ctrl-D
)

// State is the decoder position within the telnet byte stream.  The
// zero value is the initial state: plain data with local echo active.
type State uint8

const (
	// StateData consumes plain data bytes and echoes them back.
	StateData State = iota
	// StateDataQuiet consumes plain data without echoing (passwords).
	StateDataQuiet
	// StateIAC follows an unescaped 0xFF.
	StateIAC
	// StateWill … StateDont wait for the option code of a negotiation
	// verb.  The code is discarded; we never actually negotiate.
	StateWill
	StateWont
	StateDo
	StateDont
	// StateSubneg discards everything inside IAC SB … IAC SE.
	StateSubneg
	// StateSubnegIAC follows an IAC seen inside a subnegotiation.
	StateSubnegIAC
)

// EchoActive reports whether printable input is echoed to the peer.
func (s State) EchoActive() bool { return s == StateData }

// EventKind classifies the decoder's reaction to one byte.
type EventKind uint8

const (
	// EventNone means the byte belonged to the protocol layer and
	// contributes nothing to the line.
	EventNone EventKind = iota
	// EventByte accepts Byte as line data.
	EventByte
	// EventErase removes the most recently accepted byte, if any.
	EventErase
	// EventEndOfLine terminates the current line (carriage return).
	EventEndOfLine
)

// Event is the decoder's output for a single input byte.  Reply holds
// any bytes owed to the peer (echo, caret notation, erase sequence);
// the reader forwards them immediately so feedback has at most
// one-byte latency.
type Event struct {
	Kind     EventKind
	Byte     byte   // valid when Kind == EventByte
	Reply    []byte // bytes to send back, nil when echo is suppressed
	Terminal bool   // ctrl-C/ctrl-D: accept Byte, then end the line
}

var eraseSeq = []byte{'\b', ' ', '\b'}

// Feed advances the state machine by one byte.  A non-nil error means
// the decoder was in a state it has no transition for; the returned
// state is reset to StateData and the session should give up on the
// connection.
func Feed(s State, c byte) (Event, State, error) {
	switch s {
	case StateData, StateDataQuiet:
		return feedData(s, c)

	case StateIAC:
		switch c {
		case SB:
			return Event{}, StateSubneg, nil
		case WILL:
			return Event{}, StateWill, nil
		case WONT:
			return Event{}, StateWont, nil
		case DO:
			return Event{}, StateDo, nil
		case DONT:
			return Event{}, StateDont, nil
		case IAC:
			// Escaped 0xFF is a literal data byte.  Never echoed.
			return Event{Kind: EventByte, Byte: IAC}, StateData, nil
		default:
			return Event{}, StateData, nil
		}

	case StateWill, StateWont, StateDo, StateDont:
		// The option code itself.  Swallowed without an answer.
		return Event{}, StateData, nil

	case StateSubneg:
		if c == IAC {
			return Event{}, StateSubnegIAC, nil
		}
		return Event{}, StateSubneg, nil

	case StateSubnegIAC:
		if c == SE {
			return Event{}, StateData, nil
		}
		return Event{}, StateSubneg, nil

	default:
		return Event{}, StateData, neterr.ErrDecoderState
	}
}

func feedData(s State, c byte) (Event, State, error) {
	switch {
	case c == IAC:
		return Event{}, StateIAC, nil
	case c == 0 || c == '\n':
		return Event{}, s, nil
	case c == '\r':
		return Event{Kind: EventEndOfLine}, s, nil
	case c == del:
		ev := Event{Kind: EventErase}
		if s.EchoActive() {
			ev.Reply = eraseSeq
		}
		return ev, s, nil
	default:
		ev := Event{Kind: EventByte, Byte: c}
		if s.EchoActive() {
			if c <= 26 {
				// Control characters echo in caret notation: ^C, ^D, …
				ev.Reply = []byte{'^', c + 0x40}
			} else {
				ev.Reply = []byte{c}
			}
		}
		if c == etx || c == eot {
			ev.Terminal = true
		}
		return ev, s, nil
	}
}
