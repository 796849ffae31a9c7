// relay serves collaborative editing sessions over WebSocket.
// Usage: go run ./cmd/relay --config configs/relay.example.yaml
//
// A .env file in the working directory is loaded before the config is
// parsed, so ${VAR} references in the YAML can be set there.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/code-ea/codeEditor-Live/internal/config"
	"github.com/code-ea/codeEditor-Live/internal/logging"
	"github.com/code-ea/codeEditor-Live/internal/metrics"
	"github.com/code-ea/codeEditor-Live/internal/relay"
	"github.com/code-ea/codeEditor-Live/internal/room"
	"github.com/code-ea/codeEditor-Live/internal/server"
	"github.com/code-ea/codeEditor-Live/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults only when empty)")
	envFile := flag.String("env-file", ".env", "dotenv file loaded before the config")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load env file", "path", *envFile, "error", err)
	}

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Set up structured logging
	logger, err := logging.New(cfg.Logging, os.Stdout)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	logger.Info("starting relay",
		"version", version.String(),
		"config", *configPath,
		"listen_addr", cfg.Server.ListenAddr,
	)

	var m *metrics.Metrics
	if !cfg.Metrics.Disabled {
		m = metrics.New()
	}

	hub := relay.NewHub(relay.Config{
		Rooms: room.Config{KeepEmpty: cfg.Rooms.KeepEmpty},
	}, m, logger)

	srv := server.New(cfg, hub, m, logger)
	httpServer := &http.Server{
		Addr:              cfg.Server.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", "addr", cfg.Server.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Hijacked WebSocket connections are not tracked by http.Server, so
		// the hub closes them itself.
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http server shutdown failed", "error", err)
		}
		if err := hub.Shutdown(shutdownCtx); err != nil {
			logger.Warn("hub shutdown incomplete", "error", err)
		}
		return nil
	})

	start := time.Now()
	if err := g.Wait(); err != nil {
		logger.Error("relay failed", "error", err)
		os.Exit(1)
	}

	logger.Info("relay stopped", "uptime", time.Since(start).Round(time.Second))
}
