package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/bookparse/internal/api"
	"github.com/dgallion1/bookparse/internal/config"
	"github.com/dgallion1/bookparse/internal/metrics"
	"github.com/dgallion1/bookparse/internal/parser"
	"github.com/dgallion1/bookparse/internal/pipeline"
	"github.com/dgallion1/bookparse/internal/registry"
	"github.com/dgallion1/bookparse/internal/segment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Book registry and indexer.
	books := registry.NewStore(cfg.MaxBooks, cfg.BookTTL)
	indexer := pipeline.NewIndexer(books, metrics.NewBuildStats(cfg.StatsWindow), pipeline.IndexerConfig{
		Segment: segment.Config{ExtraAbbreviations: cfg.ExtraAbbreviations},
		Parser:  parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext},
		Dedup:   cfg.DedupUploads,
	}, log)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(pipeline.OrchestratorConfig{
		WorkerCount:     cfg.WorkerCount,
		MaxQueueSize:    cfg.MaxQueueSize,
		JobTTL:          cfg.JobTTL,
		CleanupInterval: cfg.CleanupInterval,
	}, indexer, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
		books.Close()
	}()

	log.Info("starting bookparse",
		"port", cfg.Port,
		"max_books", cfg.MaxBooks,
		"book_ttl", cfg.BookTTL,
		"workers", cfg.WorkerCount,
	)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
