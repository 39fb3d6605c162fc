package echo

import (
	"log"
	"sync"
)

// Hub keeps track of sessions that are currently being served.
type Hub struct {
	conns  map[Conn]bool
	served int
	mu     sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		conns: make(map[Conn]bool),
	}
}

// Register marks conn as active.
func (h *Hub) Register(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = true
}

// Unregister removes conn and counts its session as served.
func (h *Hub) Unregister(conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn]; !ok {
		return
	}
	delete(h.conns, conn)
	h.served++
}

// ClientCount returns number of active sessions.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Served returns the number of sessions that have ended.
func (h *Hub) Served() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.served
}

// CloseAll closes every active connection, unblocking their sessions.
// Close runs outside the lock so a connection may unregister itself.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	conns := make([]Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.Close(); err != nil {
			log.Printf("Failed to close connection %s: %v", conn.RemoteAddr(), err)
		}
	}
}
