package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/XXS1337/rentease/internal/buildinfo"
	"github.com/XXS1337/rentease/internal/client/cli"
	"github.com/XXS1337/rentease/internal/client/config"
	"github.com/XXS1337/rentease/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger := logging.NewTextLogger(os.Stderr, cfg.Verbose)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
