package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/omochice/tcp-echo/internal/client"
	"github.com/omochice/tcp-echo/internal/client/tcp"
	"github.com/omochice/tcp-echo/internal/config"
)

func main() {
	cfg := config.DefaultClient()

	// Parse command-line flags
	flag.StringVar(&cfg.Host, "host", cfg.Host, "Server IPv4 address")
	flag.IntVar(&cfg.Port, "port", cfg.Port, "Server port")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	c := tcp.New(cfg.Host, cfg.Port)

	// Connect to server
	if err := c.Connect(context.Background()); err != nil {
		log.Fatalf("Failed to connect to server: %v", err)
	}
	defer c.Disconnect()

	fmt.Printf("Connected to %s\n", cfg.Address())
	fmt.Println("Type messages, Ctrl+D to quit.")

	if err := client.Interact(context.Background(), c, os.Stdin, os.Stdout); err != nil {
		log.Printf("Session ended: %v", err)
	}
}
