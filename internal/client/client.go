// Package client defines the common interface for echo clients and the
// interactive loop that drives them.
package client

import (
	"context"
	"errors"
)

// ErrNotConnected is returned by Send and Receive before Connect or after Disconnect.
var ErrNotConnected = errors.New("not connected to server")

// Client defines the interface for echo clients.
// Both TCP and WebSocket implementations satisfy this interface.
type Client interface {
	Connect(ctx context.Context) error
	Disconnect()
	IsConnected() bool
	// Send writes data to the server as-is.
	Send(ctx context.Context, data []byte) error
	// Receive performs a single read and returns whatever arrived.
	// io.EOF means the server closed the connection.
	Receive(ctx context.Context) ([]byte, error)
}
