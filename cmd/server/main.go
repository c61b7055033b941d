package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iconidentify/vidgrab/internal/api"
	"github.com/iconidentify/vidgrab/internal/api/handler"
	"github.com/iconidentify/vidgrab/internal/config"
	"github.com/iconidentify/vidgrab/internal/downloader"
	"github.com/iconidentify/vidgrab/internal/platform"
	"github.com/iconidentify/vidgrab/internal/repository"
	"github.com/iconidentify/vidgrab/internal/service"
	"github.com/iconidentify/vidgrab/internal/worker"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse flags
	configPath := flag.String("config", "", "Path to config file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("vidgrab %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	// Bootstrap logger until configuration is known
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	configured, err := newLogger(cfg.Log, os.Stdout)
	if err != nil {
		logger.Error("failed to configure logger", "error", err)
		os.Exit(1)
	}
	logger = configured
	slog.SetDefault(logger)

	logger.Info("starting vidgrab",
		"version", Version,
		"build_time", BuildTime,
	)

	// Ensure the downloads directory exists
	if err := os.MkdirAll(cfg.Storage.DownloadsPath, 0755); err != nil {
		logger.Error("failed to create downloads directory", "error", err)
		os.Exit(1)
	}

	// Initialize dependencies
	classifier, err := platform.NewClassifier(cfg.Platforms)
	if err != nil {
		logger.Error("failed to build platform classifier", "error", err)
		os.Exit(1)
	}
	historyRepo := repository.NewInMemoryHistoryRepository(cfg.History.Capacity)
	dl := downloader.NewYTDLP(cfg.Downloader, logger.With("component", "downloader"))

	versionCtx, cancelVersion := context.WithTimeout(context.Background(), 15*time.Second)
	if version, err := dl.Version(versionCtx); err != nil {
		logger.Warn("downloader unavailable, responses will use fallback data",
			"command", cfg.Downloader.Command,
			"error", err,
		)
	} else {
		logger.Info("downloader available", "command", cfg.Downloader.Command, "version", version)
	}
	cancelVersion()

	// Initialize services
	videoSvc := service.NewVideoService(
		classifier,
		dl,
		historyRepo,
		cfg.Storage,
		cfg.Fallback,
		logger,
	)

	// Initialize handlers
	videoHandler := handler.NewVideoHandler(videoSvc, logger)
	healthHandler := handler.NewHealthHandler(videoSvc)
	uiHandler := handler.NewUIHandler()

	// Setup router
	router := api.NewRouter(videoHandler, healthHandler, uiHandler, logger)

	// Start janitor for files orphaned by crashes
	janitor := worker.NewJanitor(
		worker.Config{
			Dir:      cfg.Storage.DownloadsPath,
			TTL:      cfg.Storage.OrphanTTL,
			Interval: cfg.Storage.SweepInterval,
		},
		logger.With("component", "janitor"),
	)
	if cfg.Storage.OrphanTTL > 0 {
		janitor.Start()
	}

	// Setup HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop accepting new requests
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if cfg.Storage.OrphanTTL > 0 {
		if err := janitor.Stop(5 * time.Second); err != nil {
			logger.Error("janitor shutdown error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
