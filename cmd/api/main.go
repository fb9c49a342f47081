package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timmy/promptforge/internal/api"
	"github.com/timmy/promptforge/internal/api/middleware"
	"github.com/timmy/promptforge/internal/config"
	"github.com/timmy/promptforge/internal/kb"
	"github.com/timmy/promptforge/internal/logger"
	"github.com/timmy/promptforge/internal/repository"
	"github.com/timmy/promptforge/internal/service"
)

func main() {
	// Initialize logger from environment
	appLogger := logger.NewDefault()
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	// Initialize repositories
	annotationRepo := repository.NewAnnotationRepository(db)

	// Load knowledge base artifact produced by the analyze command
	doc, err := kb.Load(cfg.KnowledgeBase.Path)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load knowledge base")
	}
	if doc.Metadata.TotalRecords == 0 {
		appLogger.WithField("path", cfg.KnowledgeBase.Path).
			Warn("Knowledge base is empty, run the analyze command first")
	}

	// Initialize expansion service
	cfg.Expansion.ResolveEnvVars()
	if err := cfg.Expansion.Validate(); err != nil {
		appLogger.WithError(err).Fatal("Invalid expansion config")
	}
	expansionService := service.NewExpansionService(&service.ExpansionConfig{
		Enabled:        cfg.Expansion.Enabled,
		Model:          cfg.Expansion.Model,
		APIKey:         cfg.Expansion.APIKey,
		BaseURL:        cfg.Expansion.BaseURL,
		TimeoutSeconds: cfg.Expansion.TimeoutSeconds,
	})
	if expansionService.IsEnabled() {
		appLogger.WithField(logger.FieldModel, cfg.Expansion.Model).
			Info("Prompt expansion enabled")
	}

	generatorService := service.NewGeneratorService(
		doc,
		expansionService,
		cfg.Synthesis.DefaultCount,
		cfg.Synthesis.MaxCount,
	)

	// Setup router
	router := api.SetupRouter(
		doc,
		annotationRepo,
		generatorService,
		appLogger,
		cfg.Server.Mode,
		middleware.CORSConfig{
			AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
			AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
		},
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
