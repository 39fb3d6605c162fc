package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/omochice/tcp-echo/internal/config"
	"github.com/omochice/tcp-echo/internal/echo"
	"github.com/omochice/tcp-echo/internal/transport/tcp"
	"github.com/omochice/tcp-echo/internal/transport/ws"
)

func main() {
	cfg := config.DefaultServer()

	// Parse command-line flags
	flag.StringVar(&cfg.Host, "host", cfg.Host, "IPv4 address to bind")
	flag.IntVar(&cfg.Port, "port", cfg.Port, "Port to listen on")
	flag.IntVar(&cfg.Backlog, "backlog", cfg.Backlog, "Maximum number of pending connections")
	flag.BoolVar(&cfg.WebSocket, "ws", cfg.WebSocket, "Upgrade every connection to WebSocket before echoing")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	var opts []tcp.Option
	if cfg.WebSocket {
		opts = append(opts, tcp.WithWrapper(ws.Upgrade))
	}

	srv := tcp.New(cfg, echo.NewHub(), opts...)
	if err := srv.Listen(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Serve()
	}()

	// Wait for either the accept loop to end or a shutdown signal
	select {
	case err := <-errChan:
		if err != nil {
			log.Printf("Accept loop ended: %v", err)
		}
		srv.Stop()
	case sig := <-sigChan:
		log.Printf("Received signal %v, shutting down...", sig)
		srv.Stop()
		<-errChan
	}

	log.Println("Server stopped")
}
