//go:build unix

package tcp

import (
	"errors"
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// Listen binds an IPv4 TCP socket to host:port with SO_REUSEADDR set and
// starts listening with the given backlog.
func Listen(host string, port, backlog int) (net.Listener, error) {
	addr, err := ParseIPv4(host)
	if err != nil {
		return nil, err
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		return nil, fmt.Errorf("socket failed: %w", err)
	}
	unix.CloseOnExec(fd)

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("setsockopt failed: %w", err)
	}

	sa := &unix.SockaddrInet4{Port: port, Addr: addr.As4()}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("bind failed: %w", err)
	}

	if err := unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("listen failed: %w", err)
	}

	// net.FileListener dups fd, so the original is closed with f.
	f := os.NewFile(uintptr(fd), fmt.Sprintf("tcp:%s:%d", host, port))
	defer f.Close()

	listener, err := net.FileListener(f)
	if err != nil {
		return nil, fmt.Errorf("listen failed: %w", err)
	}
	return listener, nil
}

func isInterrupted(err error) bool {
	return errors.Is(err, unix.EINTR)
}
