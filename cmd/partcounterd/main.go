package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vsinha/partcounter/pkg/infrastructure/config"
	"github.com/vsinha/partcounter/pkg/infrastructure/logger"
	"github.com/vsinha/partcounter/pkg/interfaces/cli/commands"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := commands.NewServeCommand(cfg, log).Execute(ctx); err != nil {
		log.Error("partcounter stopped", "error", err)
		log.Sync()
		os.Exit(1)
	}
}
