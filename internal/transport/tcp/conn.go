// Package tcp provides the TCP transport of the echo server.
package tcp

import (
	"context"
	"net"

	"github.com/omochice/tcp-echo/internal/echo"
)

// Conn adapts net.Conn to echo.Conn interface.
type Conn struct {
	conn net.Conn
	buf  []byte
}

// NewConn wraps a net.Conn.
func NewConn(conn net.Conn) *Conn {
	return &Conn{
		conn: conn,
		buf:  make([]byte, echo.BufferSize),
	}
}

// Read implements echo.Conn.
// Reads whatever bytes are available, up to echo.BufferSize, into a buffer
// that is reused by the next Read.
func (c *Conn) Read(ctx context.Context) ([]byte, error) {
	n, err := c.conn.Read(c.buf)
	if err != nil {
		return nil, err
	}
	return c.buf[:n], nil
}

// Write implements echo.Conn.
func (c *Conn) Write(ctx context.Context, data []byte) error {
	_, err := c.conn.Write(data)
	return err
}

// Close implements echo.Conn.
func (c *Conn) Close() error {
	return c.conn.Close()
}

// RemoteAddr implements echo.Conn.
func (c *Conn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
