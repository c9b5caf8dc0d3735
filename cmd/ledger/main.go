package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ledger/internal/analytics"
	"ledger/internal/api"
	"ledger/internal/api/handlers"
	"ledger/internal/backend"
	"ledger/internal/service"
	"ledger/pkg/auth"
	"ledger/pkg/config"
	"ledger/pkg/logger"

	"go.uber.org/zap"
)

// @title Ledger API
// @version 2.0.0
// @description Bank statement upload, staged progress and financial dashboard. Zero data retention.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Ledger service",
		zap.String("backend_url", cfg.Backend.URL),
		zap.Duration("parsing_min", cfg.Pacing.ParsingMin),
		zap.Duration("classifying_min", cfg.Pacing.ClassifyingMin),
		zap.Bool("pdf_preflight", cfg.Upload.Preflight),
	)

	analyticsOpts := analytics.Options{SafetyBufferPct: cfg.Analytics.SafetyBufferPct}

	// Backend client
	backendClient := backend.NewClient(&cfg.Backend, logger.Named("backend"))

	// Sessions and services
	tokens := auth.NewTokenManager(cfg.Session.SecretKey, cfg.Session.TTL)
	sessions := service.NewSessionStore(cfg.Session.TTL, logger.Named("sessions"))

	var pages service.PageCounter
	if cfg.Upload.Preflight {
		pages = service.FitzPageCounter{}
	}
	validator := service.NewValidator(&cfg.Upload, pages, logger.Named("validator"))
	uploadService := service.NewUploadService(sessions, backendClient, validator, cfg.Pacing, cfg.Backend.Timeout, logger.Named("upload"))
	dashboardService := service.NewDashboardService(analyticsOpts, logger.Named("dashboard"))

	// Initialize handlers
	h := api.Handlers{
		Session:   handlers.NewSessionHandler(uploadService, sessions, appLogger),
		Dashboard: handlers.NewDashboardHandler(dashboardService, sessions, appLogger),
		Health:    handlers.NewHealthHandler(backendClient, cfg.Backend.URL, appLogger),
	}

	// Setup router
	app := api.SetupRouter(cfg, h, tokens, sessions, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
	// let in-flight analyses finish so no run is cut mid-stage
	uploadService.Wait()
}
