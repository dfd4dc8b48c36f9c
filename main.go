package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/samzong/quickcommit/cmd"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cmd.Execute(ctx); err != nil {
		if ctx.Err() != nil {
			os.Exit(130) // Standard exit code for SIGINT
		}
		os.Exit(1)
	}
}
