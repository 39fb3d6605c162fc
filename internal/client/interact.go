package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/omochice/tcp-echo/internal/echo"
)

// maxLine bounds one line read from input, leaving room for a terminator
// in a buffer of echo.BufferSize bytes. Longer lines are sent in pieces.
const maxLine = echo.BufferSize - 1

// Interact reads lines from in, sends each one (terminator included) to the
// server and prints the reply to out. Exactly one Receive is made per line,
// so a reply split by the transport is printed in pieces over later lines.
//
// End of input and a server-side close both end the loop with nil.
func Interact(ctx context.Context, c Client, in io.Reader, out io.Writer) error {
	reader := bufio.NewReaderSize(in, maxLine)

	for {
		line, readErr := readLine(reader)
		if len(line) == 0 {
			if readErr == nil || errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", readErr)
		}

		if err := c.Send(ctx, line); err != nil {
			return fmt.Errorf("failed to send: %w", err)
		}

		reply, err := c.Receive(ctx)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to receive: %w", err)
		}
		if len(reply) == 0 {
			fmt.Fprintln(out, "Server closed connection")
			return nil
		}

		fmt.Fprintf(out, "Echo: %s", reply)

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", readErr)
		}
	}
}

// readLine returns the next line including its terminator, or at most
// maxLine bytes of it. The returned slice is a copy.
func readLine(r *bufio.Reader) ([]byte, error) {
	line, err := r.ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		err = nil
	}
	return append([]byte(nil), line...), err
}
