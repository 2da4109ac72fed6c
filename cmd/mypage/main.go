package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/mypage/internal/buildinfo"
	"github.com/dmitrijs2005/mypage/internal/client/cli"
	"github.com/dmitrijs2005/mypage/internal/client/config"
	"github.com/dmitrijs2005/mypage/internal/logging"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		stop()
		log.Fatalf("%v", err)
	}

	// Run closes the app on return.
	app.Run(ctx)
}
