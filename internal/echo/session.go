package echo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
)

// Serve echoes every chunk read from conn back to it until the peer
// disconnects or an I/O error occurs. A clean disconnect returns nil.
// Serve does not close conn.
func Serve(ctx context.Context, conn Conn) error {
	for {
		data, err := conn.Read(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("receive failed: %w", err)
		}

		log.Printf("Received: %s", data)

		if err := conn.Write(ctx, data); err != nil {
			return fmt.Errorf("send failed: %w", err)
		}
	}
}
