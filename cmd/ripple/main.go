// Copyright (c) 2026 Ripple. All rights reserved.
// Author: vu.tranle.dev@gmail.com

// Command ripple runs the client core as a standalone process.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Wire the application root (session, feed, interactions).
//  4. Rehydrate the session and load the feed.
//  5. Refresh periodically until an OS signal arrives.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/levutran/ripple/internal/app"
	"github.com/levutran/ripple/internal/platform/config"
)

// refreshInterval paces the background feed refresh loop.
const refreshInterval = 30 * time.Second

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "ripple"))
	slog.SetDefault(log)

	log.Info("[Ripple] client_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "ripple"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("session_path", cfg.SessionPath),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Application Root ───────────────────────────────────────────────
	application, err := app.New(startupCtx, cfg, log)
	must(log, err, "wire application")
	defer func() {
		log.Info("closing application")
		if cerr := application.Close(); cerr != nil {
			log.Error("close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Session Rehydration + Initial Load ─────────────────────────────
	must(log, application.Start(startupCtx), "start application")

	state := application.Session.Snapshot()
	log.Info("client_started",
		slog.Bool("authenticated", state.IsAuthenticated),
		slog.Int("feed_posts", len(application.Feed.Posts())),
	)

	// ── 5. Refresh Loop + Graceful Shutdown ───────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case sig := <-quit:
			log.Info("shutdown signal received", slog.String("signal", sig.String()))
			log.Info("client stopped cleanly")
			return
		case <-ticker.C:
			refreshCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := application.Feed.Refresh(refreshCtx); err != nil {
				log.Warn("feed refresh failed", slog.Any("error", err))
			}
			cancel()
		}
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
