// Command stub-backend runs a local stand-in for the statement analysis
// service on STUB_PORT (default 8000).
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ledger/internal/analytics"
	"ledger/internal/stub"
	"ledger/pkg/config"
	"ledger/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	appLogger := logger.Named("stub")

	port := os.Getenv("STUB_PORT")
	if port == "" {
		port = "8000"
	}

	app := stub.NewApp(stub.Options{
		MaxSizeMB: cfg.Upload.MaxSizeMB,
		Analytics: analytics.Options{SafetyBufferPct: cfg.Analytics.SafetyBufferPct},
	}, appLogger)

	go func() {
		appLogger.Info("Stub backend listening", zap.String("port", port))
		if err := app.Listen(":" + port); err != nil {
			appLogger.Fatal("Stub backend failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := app.Shutdown(); err != nil {
		appLogger.Error("Stub backend shutdown error", zap.Error(err))
	}
}
