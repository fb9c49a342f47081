package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/timmy/promptforge/internal/analyzer"
	"github.com/timmy/promptforge/internal/config"
	"github.com/timmy/promptforge/internal/corpus"
	"github.com/timmy/promptforge/internal/kb"
	"github.com/timmy/promptforge/internal/logger"
	"github.com/timmy/promptforge/internal/repository"
)

func main() {
	// Initialize logger first (with defaults)
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "promptforge-analyze",
	})
	logger.SetDefaultLogger(appLogger)

	// Parse command line flags
	input := flag.String("input", "", "Path to the corpus JSON file (overrides config)")
	output := flag.String("output", "", "Path to write the knowledge base JSON (overrides config)")
	skipDB := flag.Bool("skip-db", false, "Skip persisting annotations to the database")
	batchSize := flag.Int("batch-size", 100, "Database upsert batch size")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	inputPath := cfg.Corpus.Path
	if *input != "" {
		inputPath = *input
	}
	outputPath := cfg.KnowledgeBase.Path
	if *output != "" {
		outputPath = *output
	}

	appLogger.WithFields(logger.Fields{
		"input":   inputPath,
		"output":  outputPath,
		"skip_db": *skipDB,
	}).Info("Starting corpus analysis")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Info("Received shutdown signal, canceling...")
		cancel()
	}()

	// Load corpus
	records, err := corpus.Load(inputPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load corpus")
	}
	if len(records) == 0 {
		appLogger.WithField("input", inputPath).Warn("Corpus is empty, knowledge base will carry zero aggregates")
	}

	// Run categorization and aggregation
	result := analyzer.Analyze(records)
	doc := kb.FromResult(result)

	ctx = logger.SetRunID(ctx, doc.Metadata.RunID)
	logger.With(logger.Fields{
		"total":        result.TotalRecords,
		"with_prompts": result.WithPrompts,
		"loras":        len(result.Stats.LoRAs.Counts),
	}).Info(ctx, "Analysis completed")

	// Write knowledge base artifact
	if err := kb.Save(outputPath, doc); err != nil {
		appLogger.WithError(err).Fatal("Failed to write knowledge base")
	}
	logger.CtxInfo(ctx, "Knowledge base written to %s", outputPath)

	if *skipDB {
		return
	}

	// Persist annotations for the API layer
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	repo := repository.NewAnnotationRepository(db)
	if err := repo.UpsertBatch(ctx, result.Annotations, *batchSize); err != nil {
		appLogger.WithError(err).Fatal("Failed to persist annotations")
	}

	logger.With(logger.Fields{
		"count": len(result.Annotations),
	}).Info(ctx, "Annotations persisted")
}
