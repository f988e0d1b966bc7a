package nvt

import (
	"bytes"
	"errors"
	"io"
	"testing"

	neterr "telnetlog/internal/errors"
)

// fakeConn is a scripted peer: Read drains the input, Write collects
// everything sent back.  After the input is exhausted Read returns
// errAfter (io.EOF by default).
type fakeConn struct {
	in       *bytes.Reader
	sent     bytes.Buffer
	errAfter error
}

func newFakeConn(in []byte) *fakeConn {
	return &fakeConn{in: bytes.NewReader(in), errAfter: io.EOF}
}

func (f *fakeConn) Read(p []byte) (int, error) {
	n, err := f.in.Read(p)
	if err == io.EOF {
		return n, f.errAfter
	}
	return n, err
}

func (f *fakeConn) Write(p []byte) (int, error) {
	return f.sent.Write(p)
}

func TestReadLine(t *testing.T) {
	tests := []struct {
		name     string
		in       []byte
		st       State
		wantLine string
		wantSent string
	}{
		{
			name:     "plain line",
			in:       []byte("root\r\n"),
			st:       StateData,
			wantLine: "root",
			wantSent: "root",
		},
		{
			name:     "empty line",
			in:       []byte("\r"),
			st:       StateData,
			wantLine: "",
			wantSent: "",
		},
		{
			name:     "backspace edits",
			in:       []byte("roox\x7ft\r"),
			st:       StateData,
			wantLine: "root",
			wantSent: "roox\b \bt",
		},
		{
			name:     "backspace on empty line is a no-op",
			in:       []byte("\x7f\x7fab\r"),
			st:       StateData,
			wantLine: "ab",
			wantSent: "ab",
		},
		{
			name:     "quiet mode sends nothing",
			in:       []byte("hunter2\r"),
			st:       StateDataQuiet,
			wantLine: "hunter2",
			wantSent: "",
		},
		{
			name:     "negotiation stripped",
			in:       []byte{IAC, WILL, 0x01, 'o', 'k', '\r'},
			st:       StateData,
			wantLine: "ok",
			wantSent: "ok",
		},
		{
			name:     "ctrl-d ends the line and is kept",
			in:       []byte("ab\x04cd"),
			st:       StateData,
			wantLine: "ab\x04",
			wantSent: "ab^D",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := newFakeConn(tt.in)
			buf := make([]byte, MaxLine)
			n, _, err := ReadLine(conn, buf, tt.st)
			if err != nil {
				t.Fatalf("ReadLine: %v", err)
			}
			if got := string(buf[:n]); got != tt.wantLine {
				t.Errorf("line = %q, want %q", got, tt.wantLine)
			}
			if got := conn.sent.String(); got != tt.wantSent {
				t.Errorf("sent = %q, want %q", got, tt.wantSent)
			}
		})
	}
}

func TestReadLineStateThreading(t *testing.T) {
	// A negotiation split across two reads must resume cleanly: the
	// first read ends mid IAC WILL, so the option code only arrives
	// on the next call and must still be swallowed.
	buf := make([]byte, MaxLine)
	n, st, err := ReadLine(newFakeConn([]byte{'a', IAC, WILL}), buf, StateData)
	if err != nil || string(buf[:n]) != "a" {
		t.Fatalf("first read = %q, %v", buf[:n], err)
	}
	if st != StateWill {
		t.Fatalf("state = %v, want StateWill", st)
	}
	n, st, err = ReadLine(newFakeConn([]byte{0x01, 'b', '\r'}), buf, st)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if string(buf[:n]) != "b" {
		t.Errorf("second read = %q, want %q (option code leaked?)", buf[:n], "b")
	}
	if st != StateData {
		t.Errorf("state = %v, want StateData", st)
	}
}

func TestReadLineClosedBeforeData(t *testing.T) {
	conn := newFakeConn(nil)
	n, _, err := ReadLine(conn, make([]byte, MaxLine), StateData)
	if !neterr.Is(err, neterr.ErrConnectionClosed) {
		t.Fatalf("err = %v, want ErrConnectionClosed", err)
	}
	if n != 0 {
		t.Errorf("n = %d, want 0", n)
	}
}

func TestReadLineErrorBeforeData(t *testing.T) {
	boom := errors.New("connection reset")
	conn := newFakeConn(nil)
	conn.errAfter = boom
	_, _, err := ReadLine(conn, make([]byte, MaxLine), StateData)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestReadLineClosedAfterData(t *testing.T) {
	// No terminator before EOF: return what was accumulated.
	conn := newFakeConn([]byte("part"))
	buf := make([]byte, MaxLine)
	n, _, err := ReadLine(conn, buf, StateData)
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if string(buf[:n]) != "part" {
		t.Errorf("line = %q, want %q", buf[:n], "part")
	}
}

func TestReadLineErrorAfterData(t *testing.T) {
	conn := newFakeConn([]byte("part"))
	conn.errAfter = errors.New("timeout")
	buf := make([]byte, MaxLine)
	n, _, err := ReadLine(conn, buf, StateData)
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if string(buf[:n]) != "part" {
		t.Errorf("line = %q, want %q", buf[:n], "part")
	}
}

func TestReadLineTruncation(t *testing.T) {
	long := bytes.Repeat([]byte{'x'}, MaxLine+50)
	long = append(long, '\r')
	conn := newFakeConn(long)
	buf := make([]byte, MaxLine)
	n, _, err := ReadLine(conn, buf, StateDataQuiet)
	if err != nil {
		t.Fatalf("ReadLine: %v", err)
	}
	if n != MaxLine-1 {
		t.Errorf("n = %d, want %d", n, MaxLine-1)
	}
}

func TestReadLineDecoderStateError(t *testing.T) {
	conn := newFakeConn([]byte("x"))
	_, st, err := ReadLine(conn, make([]byte, MaxLine), State(42))
	if !neterr.Is(err, neterr.ErrDecoderState) {
		t.Fatalf("err = %v, want ErrDecoderState", err)
	}
	if st != StateData {
		t.Errorf("state = %v, want reset to StateData", st)
	}
}
