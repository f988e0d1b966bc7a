package util

import (
	"net"
	"testing"

	"telnetlog/internal/nvt"
)

func TestStripMapped(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"::ffff:203.0.113.9", "203.0.113.9"},
		{"203.0.113.9", "203.0.113.9"},
		{"2001:db8::1", "2001:db8::1"},
		{"::1", "::1"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := StripMapped(tt.in); got != tt.want {
				t.Errorf("StripMapped(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPeerHost(t *testing.T) {
	tests := []struct {
		name string
		addr net.Addr
		want string
	}{
		{"ipv4", &net.TCPAddr{IP: net.ParseIP("198.51.100.7"), Port: 51234}, "198.51.100.7"},
		{"ipv6", &net.TCPAddr{IP: net.ParseIP("2001:db8::2"), Port: 9}, "2001:db8::2"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PeerHost(tt.addr); got != tt.want {
				t.Errorf("PeerHost = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFindFreePort(t *testing.T) {
	port, err := FindFreePort()
	if err != nil {
		t.Fatal(err)
	}
	if port < 1 || port > 65535 {
		t.Errorf("port %d out of range", port)
	}
}

func TestLineBufPoolRoundTrip(t *testing.T) {
	buf := GetLineBuf()
	if len(*buf) != nvt.MaxLine {
		t.Fatalf("len = %d, want the decoder line bound %d", len(*buf), nvt.MaxLine)
	}
	PutLineBuf(buf)
	PutLineBuf(nil) // must not panic
}
