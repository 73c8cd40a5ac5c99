package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/biteboxd/internal/buildinfo"
	"github.com/dmitrijs2005/biteboxd/internal/client/cli"
	"github.com/dmitrijs2005/biteboxd/internal/client/config"
	"github.com/dmitrijs2005/biteboxd/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel, logging.Format(cfg.LogFormat))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)

}
