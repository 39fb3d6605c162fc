// Package config holds the server and client settings and their validation.
package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Defaults for the echo pair.
const (
	DefaultServerHost = "0.0.0.0"
	DefaultClientHost = "127.0.0.1"
	DefaultPort       = 9000
	DefaultBacklog    = 5
)

var validate = validator.New()

// Server configures the listening side.
type Server struct {
	Host    string `validate:"required,ipv4"`
	Port    int    `validate:"min=0,max=65535"`
	Backlog int    `validate:"min=1"`
	// WebSocket upgrades every accepted connection before echoing.
	WebSocket bool
}

// DefaultServer returns the server configuration used when no flags are given.
func DefaultServer() Server {
	return Server{
		Host:    DefaultServerHost,
		Port:    DefaultPort,
		Backlog: DefaultBacklog,
	}
}

// Validate reports the first invalid field.
func (s Server) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}
	return nil
}

// Address returns host:port.
func (s Server) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Client configures the connecting side.
type Client struct {
	Host string `validate:"required,ipv4"`
	Port int    `validate:"min=1,max=65535"`
}

// DefaultClient returns the client configuration used when no flags are given.
func DefaultClient() Client {
	return Client{
		Host: DefaultClientHost,
		Port: DefaultPort,
	}
}

// Validate reports the first invalid field.
func (c Client) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid client config: %w", err)
	}
	return nil
}

// Address returns host:port.
func (c Client) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
