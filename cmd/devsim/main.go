package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/devsim/devsim/pkg/cli"
)

// Set with -ldflags "-X main.version=..."
var version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.ExecuteWithVersion(ctx, version); err != nil {
		stop()
		os.Exit(1)
	}
}
