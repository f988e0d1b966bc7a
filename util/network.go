package util

import (
	"fmt"
	"net"
	"strings"
)

// mappedPrefix is the textual form of an IPv4 address seen through a
// dual-stack IPv6 listening socket.
const mappedPrefix = "::ffff:"

// PeerHost extracts the textual peer address from a net.Addr, without
// the port and with any IPv4-in-IPv6 mapped prefix stripped, so that
// 203.0.113.9 logs the same whether it arrived over v4 or v6.
func PeerHost(addr net.Addr) string {
	if addr == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(addr.String())
	if err != nil {
		host = addr.String()
	}
	return StripMapped(host)
}

// StripMapped removes the ::ffff: prefix from an IPv4-mapped IPv6
// address in text form.  Other addresses pass through unchanged.
func StripMapped(host string) string {
	return strings.TrimPrefix(host, mappedPrefix)
}

// FindFreePort returns an available TCP port on 127.0.0.1.
func FindFreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("finding free port: %w", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
