// Package echo provides the per-connection echo loop shared by all transports.
package echo

import "context"

// BufferSize is the capacity of one received chunk.
const BufferSize = 1024

// Conn abstracts a bidirectional connection for both TCP and WebSocket.
type Conn interface {
	// Read returns the next chunk received from the peer. Stream transports
	// bound a chunk by BufferSize; message transports return one message.
	// The slice is only valid until the next call to Read.
	// Returns io.EOF when the peer has closed the connection.
	Read(ctx context.Context) ([]byte, error)

	// Write sends data back to the peer.
	Write(ctx context.Context, data []byte) error

	// Close closes the connection.
	Close() error

	// RemoteAddr returns the remote address for logging.
	RemoteAddr() string
}
