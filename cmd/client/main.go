package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/openticket/openticket/internal/buildinfo"
	"github.com/openticket/openticket/internal/client/cli"
	"github.com/openticket/openticket/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}

}
