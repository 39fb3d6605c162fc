//go:build !unix

package tcp

import (
	"context"
	"fmt"
	"net"
	"net/netip"
)

// Listen binds an IPv4 TCP listener to host:port. The backlog is left to
// the operating system on this platform.
func Listen(host string, port, backlog int) (net.Listener, error) {
	addr, err := ParseIPv4(host)
	if err != nil {
		return nil, err
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(context.Background(), "tcp4", netip.AddrPortFrom(addr, uint16(port)).String())
	if err != nil {
		return nil, fmt.Errorf("listen failed: %w", err)
	}
	return listener, nil
}

func isInterrupted(err error) bool {
	return false
}
