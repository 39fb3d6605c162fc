package tcp

import "net"

// ServeListener runs the accept loop on an arbitrary listener.
func (s *Server) ServeListener(listener net.Listener) error {
	return s.serveListener(listener)
}
