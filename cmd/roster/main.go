package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

const (
	appName    = "nba-roster-service"
	appVersion = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
