package nvt

import (
	"io"

	neterr "telnetlog/internal/errors"
)

// MaxLine is the line buffer capacity for one field (username or
// password).  Input beyond MaxLine-1 bytes is truncated, not an error.
const MaxLine = 256

// ReadLine receives bytes from rw one at a time, feeds them through the
// decoder, and assembles one NVT line into buf.  Echo and erase replies
// produced by the decoder are written back to rw immediately; send
// failures are ignored (a peer that stops reading is still allowed to
// finish typing).
//
// The returned count may be zero — an empty line is valid input.  The
// decoder state is threaded through and returned so the caller can
// resume across fields.  Errors:
//
//   - the peer closed before any byte was accepted: ErrConnectionClosed
//   - receive failed before any byte was accepted: the receive error
//   - receive failed or closed after bytes were accepted: nil, with
//     whatever was accumulated (best effort)
//   - the decoder lost its state: ErrDecoderState, state reset
func ReadLine(rw io.ReadWriter, buf []byte, st State) (int, State, error) {
	var one [1]byte
	n := 0

	for {
		rn, rerr := rw.Read(one[:])
		if rn <= 0 {
			if n > 0 {
				return n, st, nil
			}
			if rerr == nil || rerr == io.EOF {
				return 0, st, neterr.ErrConnectionClosed
			}
			return 0, st, rerr
		}

		ev, next, err := Feed(st, one[0])
		st = next
		if err != nil {
			return n, st, err
		}

		switch ev.Kind {
		case EventByte:
			full := false
			if n+1 < len(buf) {
				buf[n] = ev.Byte
				n++
			} else {
				full = true
			}
			if len(ev.Reply) > 0 {
				rw.Write(ev.Reply) //nolint:errcheck
			}
			if full || ev.Terminal {
				return n, st, nil
			}

		case EventErase:
			if n > 0 {
				n--
				if len(ev.Reply) > 0 {
					rw.Write(ev.Reply) //nolint:errcheck
				}
			}

		case EventEndOfLine:
			return n, st, nil
		}

		// Read may deliver a final byte and the stream error together.
		if rerr != nil {
			if n > 0 {
				return n, st, nil
			}
			if rerr == io.EOF {
				return 0, st, neterr.ErrConnectionClosed
			}
			return 0, st, rerr
		}
	}
}
