package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/mypage/internal/buildinfo"
	"github.com/dmitrijs2005/mypage/internal/logging"
	"github.com/dmitrijs2005/mypage/internal/server"
	"github.com/dmitrijs2005/mypage/internal/server/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	app, err := server.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}
