package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brandsift/brandsift/api"
	"github.com/brandsift/brandsift/config"
	"github.com/brandsift/brandsift/enhance"
	"github.com/brandsift/brandsift/scraper"
	"github.com/brandsift/brandsift/store"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("brandsift starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
	)

	// ── 3. Connect to the database and migrate ──────────────────────
	db, err := store.Open(context.Background(), cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := store.RunMigrations(db, slog.Default()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	brands := store.NewBrandRepository(db, slog.Default())

	// ── 4. Initialise the engines ───────────────────────────────────
	// The extractor launches a fresh browser per request; nothing heavy
	// happens here.
	extractor := scraper.NewExtractor(cfg.Browser, cfg.Scraper)

	enhancer := enhance.New(cfg.Enhancer)
	status := enhancer.Status()
	slog.Info("enhancement engine ready",
		"enabled", status.Enabled,
		"model", status.Model,
		"fallbackMode", status.FallbackMode,
	)

	// ── 5. Setup router and HTTP server ─────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(extractor, enhancer, brands, db, cfg, startTime)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 6. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 10 seconds to complete; each holds its own
	// browser process, which its teardown defers will reap.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("brandsift stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
