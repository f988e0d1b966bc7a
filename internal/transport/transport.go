// Package transport provides the byte-stream boundary between the
// network and the NVT decoder.  The honeypot reads at most one byte
// per receive (simplicity over throughput — input arrives at bot
// speed), and every receive is bounded by an idle deadline so a silent
// peer cannot hold a worker forever.  Sends are best effort and carry
// no deadline.
package transport

import (
	"net"
	"time"
)

// Conn wraps a net.Conn, arming the idle-receive deadline before every
// read.  It satisfies io.ReadWriter so the decoder and session layers
// never touch the net package and can be tested against in-memory
// pipes.
type Conn struct {
	nc   net.Conn
	idle time.Duration
}

// New wraps nc with the given idle-receive timeout.  A zero or
// negative timeout disables the deadline.
func New(nc net.Conn, idle time.Duration) *Conn {
	return &Conn{nc: nc, idle: idle}
}

// Read receives from the peer, refreshing the idle deadline first.  An
// expired deadline surfaces as a timeout error from the net package.
func (c *Conn) Read(p []byte) (int, error) {
	if c.idle > 0 {
		c.nc.SetReadDeadline(time.Now().Add(c.idle)) //nolint:errcheck
	}
	return c.nc.Read(p)
}

// Write sends to the peer.  No deadline: a peer that stopped reading
// will eventually fail the connection on its own.
func (c *Conn) Write(p []byte) (int, error) {
	return c.nc.Write(p)
}
