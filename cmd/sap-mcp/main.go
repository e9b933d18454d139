package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sapmcp "github.com/viant/sap-mcp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := sapmcp.Run(ctx, os.Args[1:]); err != nil {
		slog.Error("fatal error", "error", err)
		stop()
		os.Exit(1)
	}
}
