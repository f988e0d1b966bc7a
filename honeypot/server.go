package honeypot

import (
	"context"
	"fmt"
	"net"
	"time"

	neterr "telnetlog/internal/errors"
	"telnetlog/internal/metrics"
	"telnetlog/internal/session"
	"telnetlog/internal/transport"
	"telnetlog/util"
)

func (h *Honeypot) listenTCP(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", h.Config.Port)
	// Binding the unspecified address yields a dual-stack socket on
	// every platform we care about; v4 peers show up with the mapped
	// ::ffff: prefix, stripped by util.PeerHost.
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	defer ln.Close()

	h.Logger.Info("listening on %s (telnet)", ln.Addr())

	// Shut the listener down when the context expires.
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				// A broken listening socket is fatal for the whole
				// process; per-connection trouble never lands here.
				return fmt.Errorf("accept: %w", err)
			}
		}
		go h.serveConn(conn)
	}
}

// serveConn owns one connection from accept to close.
func (h *Honeypot) serveConn(conn net.Conn) {
	defer conn.Close()

	peer := util.PeerHost(conn.RemoteAddr())
	h.Logger.Info("connect,%s", peer)

	metrics.ConnectionsTotal.Inc()
	metrics.ConnectionsActive.Inc()
	start := time.Now()
	defer func() {
		metrics.ConnectionsActive.Dec()
		metrics.SessionDuration.Observe(time.Since(start).Seconds())
		h.Logger.Info("close,%s", peer)
	}()

	s := session.New(transport.New(conn, h.Config.IdleTimeout), peer, h.Sink, h.Logger)
	s.MaxAttempts = h.Config.MaxAttempts
	s.RetryDelay = h.Config.RetryDelay

	if err := s.Run(); err != nil {
		metrics.SessionErrors.WithLabelValues(errorKind(err)).Inc()
		h.Logger.Error("recv,%s,%v", peer, err)
	}
}

func errorKind(err error) string {
	switch {
	case neterr.IsTimeout(err):
		return "timeout"
	case neterr.Is(err, neterr.ErrDecoderState):
		return "decoder"
	default:
		return "receive"
	}
}
