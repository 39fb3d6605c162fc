// Package ws provides WebSocket transport implementation for the echo server.
package ws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync/atomic"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"github.com/omochice/tcp-echo/internal/echo"
)

// Conn adapts a server-side WebSocket connection to echo.Conn.
// Every data message is one chunk regardless of echo.BufferSize; replies
// reuse the opcode of the last message read.
type Conn struct {
	conn net.Conn
	op   ws.OpCode
	// peerClosed is set once the client's close frame has been answered.
	peerClosed atomic.Bool
}

// NewConn wraps a net.Conn whose WebSocket handshake has already completed.
func NewConn(conn net.Conn) *Conn {
	return &Conn{conn: conn, op: ws.OpBinary}
}

// Upgrade performs the server side of the WebSocket handshake on conn.
// It has the shape of tcp.Wrapper.
func Upgrade(conn net.Conn) (echo.Conn, error) {
	if _, err := ws.Upgrade(conn); err != nil {
		return nil, fmt.Errorf("websocket upgrade failed: %w", err)
	}
	return NewConn(conn), nil
}

// Read implements echo.Conn.
// A close frame from the client is reported as io.EOF.
func (c *Conn) Read(ctx context.Context) ([]byte, error) {
	data, op, err := wsutil.ReadClientData(c.conn)
	if err != nil {
		var closed wsutil.ClosedError
		if errors.As(err, &closed) {
			c.peerClosed.Store(true)
			return nil, io.EOF
		}
		return nil, err
	}
	c.op = op
	return data, nil
}

// Write implements echo.Conn.
func (c *Conn) Write(ctx context.Context, data []byte) error {
	return wsutil.WriteServerMessage(c.conn, c.op, data)
}

// Close implements echo.Conn.
func (c *Conn) Close() error {
	if c.peerClosed.Load() {
		return c.conn.Close()
	}
	_ = wsutil.WriteServerMessage(c.conn, ws.OpClose, ws.NewCloseFrameBody(ws.StatusNormalClosure, ""))
	return c.conn.Close()
}

// RemoteAddr implements echo.Conn.
func (c *Conn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}
