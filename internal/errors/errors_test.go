package errors

import (
	"fmt"
	"io"
	"net"
	"testing"
)

func TestConnError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  ConnError
		want string
	}{
		{
			name: "receive",
			err:  ConnError{Op: "receive", Peer: "203.0.113.9", Err: io.EOF},
			want: "receive 203.0.113.9: EOF",
		},
		{
			name: "send",
			err:  ConnError{Op: "send", Peer: "2001:db8::1", Err: fmt.Errorf("broken pipe")},
			want: "send 2001:db8::1: broken pipe",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConnError_Unwrap(t *testing.T) {
	err := Wrap("receive", "198.51.100.4", ErrConnectionClosed)
	if !Is(err, ErrConnectionClosed) {
		t.Error("should unwrap to ErrConnectionClosed")
	}
}

func TestIsClosed(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", ErrConnectionClosed, true},
		{"eof", io.EOF, true},
		{"net closed", net.ErrClosed, true},
		{"wrapped", Wrap("receive", "peer", io.EOF), true},
		{"other", fmt.Errorf("boom"), false},
		{"decoder", ErrDecoderState, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsClosed(tt.err); got != tt.want {
				t.Errorf("IsClosed(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

// timeoutErr implements net.Error with Timeout() == true.
type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestIsTimeout(t *testing.T) {
	if !IsTimeout(timeoutErr{}) {
		t.Error("plain timeout not detected")
	}
	if !IsTimeout(Wrap("receive", "peer", timeoutErr{})) {
		t.Error("wrapped timeout not detected")
	}
	opErr := &net.OpError{Op: "read", Err: timeoutErr{}}
	if !IsTimeout(opErr) {
		t.Error("net.OpError timeout not detected")
	}
	if IsTimeout(io.EOF) {
		t.Error("EOF misclassified as timeout")
	}
}
