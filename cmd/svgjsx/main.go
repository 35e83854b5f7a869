package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"svgjsx/internal/logging"
)

func main() {
	logging.InitFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		logging.L().Error("svgjsx failed", "err", err)
		os.Exit(1)
	}
}
