package tcp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"

	"github.com/omochice/tcp-echo/internal/config"
	"github.com/omochice/tcp-echo/internal/echo"
)

// Wrapper turns an accepted connection into the echo.Conn that is served.
type Wrapper func(conn net.Conn) (echo.Conn, error)

// Option configures a Server.
type Option func(*Server)

// WithWrapper replaces the default raw TCP wrapper, e.g. with a WebSocket upgrade.
func WithWrapper(w Wrapper) Option {
	return func(s *Server) {
		s.wrap = w
	}
}

func wrapTCP(conn net.Conn) (echo.Conn, error) {
	return NewConn(conn), nil
}

// Server accepts TCP connections one at a time and echoes each of them
// to completion before accepting the next.
type Server struct {
	cfg      config.Server
	listener net.Listener
	hub      *echo.Hub
	wrap     Wrapper
	pending  net.Conn
	ctx      context.Context
	cancel   context.CancelFunc
	quit     chan struct{}
	stopOnce sync.Once
	mu       sync.RWMutex
}

// New creates a TCP server that records its sessions in the provided Hub.
func New(cfg config.Server, hub *echo.Hub, opts ...Option) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cfg:    cfg,
		hub:    hub,
		wrap:   wrapTCP,
		ctx:    ctx,
		cancel: cancel,
		quit:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Listen binds and starts listening on the configured address.
func (s *Server) Listen() error {
	listener, err := Listen(s.cfg.Host, s.cfg.Port, s.cfg.Backlog)
	if err != nil {
		return fmt.Errorf("failed to start TCP server: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	log.Printf("Server listening on %s", listener.Addr().String())
	return nil
}

// Serve runs the accept loop. Interrupted accepts are retried; any other
// accept failure ends the loop and is returned. Serve returns nil once
// Stop has been called.
func (s *Server) Serve() error {
	s.mu.RLock()
	listener := s.listener
	s.mu.RUnlock()

	if listener == nil {
		return errors.New("server is not listening")
	}
	return s.serveListener(listener)
}

func (s *Server) serveListener(listener net.Listener) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-s.quit:
				return nil
			default:
			}
			if isInterrupted(err) {
				continue
			}
			return fmt.Errorf("accept failed: %w", err)
		}

		s.handleConn(conn)
	}
}

// Start listens and then serves until Stop is called or accept fails.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Stop closes the listener and the connection being served.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		s.cancel()

		s.mu.RLock()
		if s.listener != nil {
			s.listener.Close()
		}
		// A connection still inside the wrapper is not in the hub yet.
		if s.pending != nil {
			s.pending.Close()
		}
		s.mu.RUnlock()

		s.hub.CloseAll()
	})
}

// Addr returns the listening address.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}

// Port returns the bound port, or 0 before Listen.
func (s *Server) Port() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.listener == nil {
		return 0
	}
	if addr, ok := s.listener.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

func (s *Server) handleConn(conn net.Conn) {
	remote := conn.RemoteAddr().String()
	log.Printf("Client connected: %s", remote)

	if !s.trackPending(conn) {
		conn.Close()
		log.Printf("Client disconnected: %s", remote)
		return
	}
	c, err := s.wrap(conn)
	s.clearPending()
	if err != nil {
		log.Printf("Failed to set up connection from %s: %v", remote, err)
		conn.Close()
		log.Printf("Client disconnected: %s", remote)
		return
	}

	s.hub.Register(c)
	defer func() {
		s.hub.Unregister(c)
		c.Close()
		log.Printf("Client disconnected: %s", remote)
	}()

	// Stop may have run between Accept and Register.
	select {
	case <-s.quit:
		return
	default:
	}

	if err := echo.Serve(s.ctx, c); err != nil {
		log.Printf("Session with %s ended: %v", remote, err)
	}
}

// trackPending records the connection being wrapped so Stop can close it.
// It reports false when Stop has already run.
func (s *Server) trackPending(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.quit:
		return false
	default:
	}
	s.pending = conn
	return true
}

func (s *Server) clearPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}
