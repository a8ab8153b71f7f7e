// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

// Package main is the entry point for the Reelist server.
//
// Reelist is a self-hosted movie watchlist backend. Users register
// accounts, curate public or private watchlists, and rate and comment on
// a shared movie catalog. Private lists are invisible to everyone but
// their owner; mutations are always owner-only.
//
// The server initializes components in the following order:
//
//  1. Configuration: settings from environment variables and config files (Koanf v2)
//  2. Database: DuckDB storage with versioned schema migrations
//  3. Authentication: opaque bearer tokens, JWT, or no-auth mode
//  4. HTTP server: REST API under /api/v1 with Prometheus metrics at /metrics
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables (REELIST_* prefix), config file
// (config.yaml), built-in defaults.
//
// The server handles graceful shutdown on SIGINT and SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/reelist/internal/access"
	"github.com/tomtom215/reelist/internal/api"
	"github.com/tomtom215/reelist/internal/auth"
	"github.com/tomtom215/reelist/internal/config"
	"github.com/tomtom215/reelist/internal/database"
	"github.com/tomtom215/reelist/internal/logging"
	"github.com/tomtom215/reelist/internal/metrics"
)

// tokenJanitorInterval is how often expired auth tokens are purged.
const tokenJanitorInterval = 1 * time.Hour

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("auth_mode", cfg.Security.AuthMode).
		Msg("Starting Reelist server")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}()

	if version, err := db.GetCurrentSchemaVersion(); err == nil {
		logging.Info().Int("schema_version", version).Msg("Database ready")
	}

	authSvc, err := auth.NewService(&cfg.Security, db)
	if err != nil {
		return fmt.Errorf("failed to initialize authentication: %w", err)
	}
	accessSvc := access.NewService(db)

	handler := api.NewHandler(accessSvc, authSvc, db, cfg)
	router := api.NewRouter(handler, &cfg.Security)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background purge of expired bearer tokens. Only meaningful in token
	// mode but harmless otherwise.
	go runTokenJanitor(ctx, db)

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logging.Info().Msg("Server stopped")
	return nil
}

// runTokenJanitor periodically deletes expired auth tokens until ctx is
// cancelled.
func runTokenJanitor(ctx context.Context, db *database.DB) {
	ticker := time.NewTicker(tokenJanitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := db.DeleteExpiredAuthTokens(ctx, time.Now().UTC())
			if err != nil {
				logging.Error().Err(err).Msg("Token janitor sweep failed")
				continue
			}
			if removed > 0 {
				metrics.RecordExpiredTokensPurged(removed)
				logging.Info().Int64("removed", removed).Msg("Purged expired auth tokens")
			}
		}
	}
}
