package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"enterprise-registry/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewApp().Execute(ctx, os.Args[1:])
}
