package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"swgapi/internal/cli"
)

// Version information populated at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.New(version, commit, date).Run(ctx, os.Args[1:])
	cancel()
	os.Exit(code)
}
