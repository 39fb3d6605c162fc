package client_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/omochice/tcp-echo/internal/client"
)

// fakeClient echoes every Send on the following Receive.
type fakeClient struct {
	sent       [][]byte
	pending    []byte
	closeAfter int
	sendErr    error
	recvErr    error
}

func (f *fakeClient) Connect(ctx context.Context) error { return nil }
func (f *fakeClient) Disconnect()                       {}
func (f *fakeClient) IsConnected() bool                 { return true }

func (f *fakeClient) Send(ctx context.Context, data []byte) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, append([]byte(nil), data...))
	f.pending = data
	return nil
}

func (f *fakeClient) Receive(ctx context.Context) ([]byte, error) {
	if f.recvErr != nil {
		return nil, f.recvErr
	}
	if f.closeAfter > 0 && len(f.sent) >= f.closeAfter {
		return nil, io.EOF
	}
	return f.pending, nil
}

var _ client.Client = (*fakeClient)(nil)

func TestInteract_EchoesLines(t *testing.T) {
	fc := &fakeClient{}
	var out bytes.Buffer

	err := client.Interact(context.Background(), fc, strings.NewReader("hello\n\nworld\n"), &out)
	if err != nil {
		t.Fatalf("Interact() error = %v", err)
	}

	want := "Echo: hello\nEcho: \nEcho: world\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}

	wantSent := []string{"hello\n", "\n", "world\n"}
	if len(fc.sent) != len(wantSent) {
		t.Fatalf("sent %d lines, want %d", len(fc.sent), len(wantSent))
	}
	for i, s := range wantSent {
		if string(fc.sent[i]) != s {
			t.Errorf("sent[%d] = %q, want %q", i, fc.sent[i], s)
		}
	}
}

func TestInteract_EmptyInput(t *testing.T) {
	fc := &fakeClient{}
	var out bytes.Buffer

	if err := client.Interact(context.Background(), fc, strings.NewReader(""), &out); err != nil {
		t.Fatalf("Interact() error = %v", err)
	}
	if len(fc.sent) != 0 {
		t.Errorf("sent %d lines, want 0", len(fc.sent))
	}
	if out.Len() != 0 {
		t.Errorf("output = %q, want empty", out.String())
	}
}

func TestInteract_UnterminatedLastLine(t *testing.T) {
	fc := &fakeClient{}
	var out bytes.Buffer

	if err := client.Interact(context.Background(), fc, strings.NewReader("tail"), &out); err != nil {
		t.Fatalf("Interact() error = %v", err)
	}
	if len(fc.sent) != 1 || string(fc.sent[0]) != "tail" {
		t.Errorf("sent = %q, want [tail]", fc.sent)
	}
	if out.String() != "Echo: tail" {
		t.Errorf("output = %q, want %q", out.String(), "Echo: tail")
	}
}

func TestInteract_LongLineIsSentInPieces(t *testing.T) {
	fc := &fakeClient{}
	var out bytes.Buffer
	line := strings.Repeat("x", 1500) + "\n"

	if err := client.Interact(context.Background(), fc, strings.NewReader(line), &out); err != nil {
		t.Fatalf("Interact() error = %v", err)
	}
	if len(fc.sent) != 2 {
		t.Fatalf("sent %d pieces, want 2", len(fc.sent))
	}
	if len(fc.sent[0]) != 1023 {
		t.Errorf("first piece length = %d, want 1023", len(fc.sent[0]))
	}
	if got := string(fc.sent[0]) + string(fc.sent[1]); got != line {
		t.Error("pieces do not reassemble to the input line")
	}
}

func TestInteract_ServerClosed(t *testing.T) {
	fc := &fakeClient{closeAfter: 2}
	var out bytes.Buffer

	err := client.Interact(context.Background(), fc, strings.NewReader("one\ntwo\nthree\n"), &out)
	if err != nil {
		t.Fatalf("Interact() error = %v", err)
	}

	want := "Echo: one\nServer closed connection\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
	if len(fc.sent) != 2 {
		t.Errorf("sent %d lines, want 2", len(fc.sent))
	}
}

func TestInteract_SendError(t *testing.T) {
	sendErr := errors.New("broken pipe")
	fc := &fakeClient{sendErr: sendErr}

	err := client.Interact(context.Background(), fc, strings.NewReader("hello\n"), io.Discard)
	if !errors.Is(err, sendErr) {
		t.Errorf("Interact() error = %v, want %v", err, sendErr)
	}
}

func TestInteract_ReceiveError(t *testing.T) {
	recvErr := errors.New("connection reset")
	fc := &fakeClient{recvErr: recvErr}

	err := client.Interact(context.Background(), fc, strings.NewReader("hello\n"), io.Discard)
	if !errors.Is(err, recvErr) {
		t.Errorf("Interact() error = %v, want %v", err, recvErr)
	}
}
