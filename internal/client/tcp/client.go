// Package tcp provides a TCP client for the echo server.
package tcp

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"sync"

	"github.com/omochice/tcp-echo/internal/client"
	"github.com/omochice/tcp-echo/internal/echo"
	"github.com/omochice/tcp-echo/internal/transport/tcp"
)

// Client represents a TCP echo client
type Client struct {
	host string
	port int
	conn net.Conn
	buf  []byte
	mu   sync.RWMutex
}

// New creates a new Client instance
func New(host string, port int) *Client {
	return &Client{
		host: host,
		port: port,
		buf:  make([]byte, echo.BufferSize),
	}
}

// Connect resolves the server address and establishes a connection.
// A malformed address fails before any connection attempt.
func (c *Client) Connect(ctx context.Context) error {
	addr, err := tcp.ParseIPv4(c.host)
	if err != nil {
		return err
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("%w: port %d out of range", tcp.ErrInvalidAddress, c.port)
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp4", netip.AddrPortFrom(addr, uint16(c.port)).String())
	if err != nil {
		return fmt.Errorf("connect failed: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	return nil
}

// Disconnect closes the connection to the server
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

// IsConnected returns whether the client is connected
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn != nil
}

// Send writes data to the server
func (c *Client) Send(ctx context.Context, data []byte) error {
	conn, err := c.current()
	if err != nil {
		return err
	}

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("failed to send: %w", err)
	}
	return nil
}

// Receive performs one read of at most echo.BufferSize-1 bytes.
// The returned slice is reused by the next Receive.
func (c *Client) Receive(ctx context.Context) ([]byte, error) {
	conn, err := c.current()
	if err != nil {
		return nil, err
	}

	n, err := conn.Read(c.buf[:echo.BufferSize-1])
	if err != nil {
		return nil, err
	}
	return c.buf[:n], nil
}

func (c *Client) current() (net.Conn, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.conn == nil {
		return nil, client.ErrNotConnected
	}
	return c.conn, nil
}

var _ client.Client = (*Client)(nil)
