package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"presskit/demo/cli"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
