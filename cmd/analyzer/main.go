package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/qepting91/subreddit-analyzer/internal/analyzer"
	"github.com/qepting91/subreddit-analyzer/internal/collector"
	"github.com/qepting91/subreddit-analyzer/internal/config"
	"github.com/qepting91/subreddit-analyzer/internal/dashboard"
	"github.com/qepting91/subreddit-analyzer/internal/ingest"
)

func main() {
	// 1. Setup
	godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Suggestions are optional
	suggestions, err := ingest.LoadSuggestions(cfg.SuggestionsFile)
	if err != nil {
		logger.Warn("No subreddit suggestions loaded", "file", cfg.SuggestionsFile, "error", err)
	}

	// 3. Initialize Client (Using Factory)
	client, err := collector.NewCollector(cfg)
	if err != nil {
		logger.Error("Failed to initialize collector", "error", err)
		os.Exit(1)
	}
	logger.Info("Collector initialized", "mode", cfg.CollectorMode)

	// 4. Runs outlive the request that starts them and stop only on shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pipeline := analyzer.NewPipeline(client, logger)
	svc := analyzer.NewService(ctx, pipeline, analyzer.NewStore())

	// 5. Serve until a signal arrives
	server := dashboard.NewServer(svc, suggestions, logger)
	if err := server.Run(ctx, ":"+cfg.Port); err != nil {
		logger.Error("Dashboard failed", "err", err)
		os.Exit(1)
	}

	svc.Wait()
	logger.Info("Shutdown complete")
}
