package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	_ "fxdesk/internal/api/docs"
	"fxdesk/internal/config"
)

// @title fxdesk API
// @version 1.0
// @description Exchange-rate dashboard: live quotes from Alpha Vantage, stored history and a news proxy.
// @BasePath /
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	sugar := zapLogger.Sugar()

	modes := cfg.Modes()
	sugar.Infow("Starting fxdesk",
		"port", cfg.Server.Port,
		"storage", modes.Storage,
		"ingest", modes.Ingest,
		"provider", modes.Provider.String(),
		"news", modes.News.String(),
		"pages", modes.Pages.String(),
	)

	app, err := NewApp(cfg, sugar)
	if err != nil {
		sugar.Fatalw("Failed to initialize app", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		sugar.Fatalw("Application error", "error", err)
	}
}
