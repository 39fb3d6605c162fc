// Package ws provides a WebSocket client for the echo server.
package ws

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/netip"
	"net/url"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"github.com/omochice/tcp-echo/internal/client"
	"github.com/omochice/tcp-echo/internal/transport/tcp"
)

// Client represents a WebSocket echo client.
type Client struct {
	host string
	port int
	conn net.Conn
	br   *bufio.Reader
	mu   sync.RWMutex
}

// New creates a new WebSocket Client instance.
func New(host string, port int) *Client {
	return &Client{
		host: host,
		port: port,
	}
}

// URL returns the ws:// URL the client dials.
func (c *Client) URL() (string, error) {
	addr, err := tcp.ParseIPv4(c.host)
	if err != nil {
		return "", err
	}
	if c.port < 1 || c.port > 65535 {
		return "", fmt.Errorf("%w: port %d out of range", tcp.ErrInvalidAddress, c.port)
	}
	u := url.URL{
		Scheme: "ws",
		Host:   netip.AddrPortFrom(addr, uint16(c.port)).String(),
		Path:   "/",
	}
	return u.String(), nil
}

// Connect establishes a WebSocket connection to the server.
func (c *Client) Connect(ctx context.Context) error {
	u, err := c.URL()
	if err != nil {
		return err
	}

	conn, br, _, err := ws.Dial(ctx, u)
	if err != nil {
		return fmt.Errorf("connect failed: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.br = br
	c.mu.Unlock()

	return nil
}

// Disconnect sends a close frame and closes the connection.
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return
	}
	_ = wsutil.WriteClientMessage(c.conn, ws.OpClose, ws.NewCloseFrameBody(ws.StatusNormalClosure, ""))
	c.conn.Close()
	c.conn = nil
	if c.br != nil {
		ws.PutReader(c.br)
		c.br = nil
	}
}

// IsConnected returns whether the client is connected.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn != nil
}

// Send writes data as one binary frame.
func (c *Client) Send(ctx context.Context, data []byte) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return client.ErrNotConnected
	}

	if err := wsutil.WriteClientBinary(conn, data); err != nil {
		return fmt.Errorf("failed to send: %w", err)
	}
	return nil
}

// Receive reads one data frame. A close frame from the server is
// reported as io.EOF.
func (c *Client) Receive(ctx context.Context) ([]byte, error) {
	c.mu.RLock()
	conn, br := c.conn, c.br
	c.mu.RUnlock()

	if conn == nil {
		return nil, client.ErrNotConnected
	}

	var rw io.ReadWriter = conn
	if br != nil && br.Buffered() > 0 {
		rw = &bufferedConn{Conn: conn, reader: br}
	}

	data, _, err := wsutil.ReadServerData(rw)
	if err != nil {
		var closed wsutil.ClosedError
		if errors.As(err, &closed) {
			return nil, io.EOF
		}
		return nil, err
	}
	return data, nil
}

// bufferedConn drains frames the server sent along with the handshake
// response before reading from the connection itself.
type bufferedConn struct {
	net.Conn
	reader *bufio.Reader
}

func (bc *bufferedConn) Read(p []byte) (int, error) {
	return bc.reader.Read(p)
}

var _ client.Client = (*Client)(nil)
