package transport

import (
	"net"
	"testing"
	"time"

	neterr "telnetlog/internal/errors"
)

func TestReadArmsIdleDeadline(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	tc := New(server, 30*time.Millisecond)

	start := time.Now()
	_, err := tc.Read(make([]byte, 1))
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !neterr.IsTimeout(err) {
		t.Fatalf("err = %v, want timeout", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("deadline fired after %v", elapsed)
	}
}

func TestDeadlineRefreshedPerRead(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	tc := New(server, 80*time.Millisecond)

	// Keep the peer slower than the idle window but faster than any
	// cumulative interpretation of it: each read must get a fresh
	// deadline.
	go func() {
		for i := 0; i < 4; i++ {
			time.Sleep(40 * time.Millisecond)
			client.Write([]byte{'x'}) //nolint:errcheck
		}
	}()

	buf := make([]byte, 1)
	for i := 0; i < 4; i++ {
		if _, err := tc.Read(buf); err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
	}
}

func TestZeroTimeoutDisablesDeadline(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	tc := New(server, 0)

	go func() {
		time.Sleep(20 * time.Millisecond)
		client.Write([]byte{'y'}) //nolint:errcheck
	}()

	buf := make([]byte, 1)
	if _, err := tc.Read(buf); err != nil {
		t.Fatalf("read: %v", err)
	}
	if buf[0] != 'y' {
		t.Errorf("got %q", buf[0])
	}
}

func TestWritePassesThrough(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	tc := New(server, time.Second)

	got := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 16)
		n, _ := client.Read(buf)
		got <- buf[:n]
	}()

	if _, err := tc.Write([]byte("login: ")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if string(<-got) != "login: " {
		t.Error("payload mismatch")
	}
}
