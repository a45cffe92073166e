package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"mini_casino/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.NewApp().Run(ctx); err != nil {
		log.Fatalf("failed to run app: %v", err)
	}
}
