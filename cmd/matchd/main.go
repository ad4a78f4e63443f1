// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

// Package main is the entry point for the SkillSync matching daemon.
//
// SkillSync pairs mentors with mentees by scoring profile compatibility
// through pluggable similarity strategies, collaborative filtering over
// historical match outcomes, and a hybrid recommender that blends both.
//
// # Application Architecture
//
// The daemon initializes components in the following order:
//
//  1. Configuration: layered load from defaults, config file, and environment (Koanf v2)
//  2. Store: in-memory or embedded DuckDB, selected by DATABASE_BACKEND
//  3. Engines: weighted matching, collaborative filtering, hybrid recommender
//  4. Supervisor tree: cache refresh service and ops HTTP endpoints (suture v4)
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables with the SKILLSYNC_ prefix ("__" nests keys)
//   - Config file (config.yaml, or the path in SKILLSYNC_CONFIG)
//   - Built-in defaults
//
// # Signal Handling
//
// The daemon shuts down gracefully on SIGINT and SIGTERM: the supervisor
// tree stops its services, and any service that fails to stop within the
// shutdown timeout is reported before exit.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/manlikeHB/skillsync/internal/cache"
	"github.com/manlikeHB/skillsync/internal/collab"
	"github.com/manlikeHB/skillsync/internal/config"
	"github.com/manlikeHB/skillsync/internal/hybrid"
	"github.com/manlikeHB/skillsync/internal/logging"
	"github.com/manlikeHB/skillsync/internal/match"
	"github.com/manlikeHB/skillsync/internal/similarity"
	"github.com/manlikeHB/skillsync/internal/store/duck"
	"github.com/manlikeHB/skillsync/internal/store/memory"
	"github.com/manlikeHB/skillsync/internal/supervisor"
	"github.com/manlikeHB/skillsync/internal/supervisor/services"
)

// store is the persistence surface the engines share. Both backends,
// memory and DuckDB, satisfy it.
type store interface {
	match.ProfileStore
	match.ResultSink
	collab.HistoryStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging.ToLogging())
	logger := logging.Logger()

	logging.Info().
		Str("backend", cfg.Database.Backend).
		Str("log_level", cfg.Logging.Level).
		Msg("Starting SkillSync")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		st         store
		closeStore func() error
	)
	switch cfg.Database.Backend {
	case "duckdb":
		ds, err := duck.Open(ctx, cfg.Database.Duck)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Database.Duck.Path).Msg("Failed to open database")
		}
		st = ds
		closeStore = ds.Close
		logging.Info().Str("path", cfg.Database.Duck.Path).Msg("DuckDB store initialized")
	default:
		st = memory.New()
		logging.Info().Msg("In-memory store initialized")
	}
	if closeStore != nil {
		defer func() {
			if err := closeStore(); err != nil {
				logging.Error().Err(err).Msg("Failed to close database")
			}
		}()
	}

	// === ENGINE WIRING ===

	registry := similarity.DefaultRegistry()
	matchEngine := match.NewEngine(st, st, registry, logger,
		match.WithConcurrency(cfg.Engine.Concurrency))

	simCache := cache.NewTTL(cfg.Collab.SimilarityCacheTTL, nil)
	cfEngine := collab.NewEngine(st, st, simCache, logger, nil)

	combiner := hybrid.NewCombiner(cfEngine, st, st, cfg.Hybrid, logger, nil)

	logging.Info().
		Strs("strategies", registry.Names()).
		Float64("cf_weight", cfg.Hybrid.CFWeight).
		Msg("Engines initialized")

	// === SUPERVISOR TREE ===

	slogLogger := logging.NewSlogLogger()
	tree := supervisor.NewTree(slogLogger, supervisor.DefaultTreeConfig())

	tree.AddEngineService(services.NewMatchService(matchEngine, combiner, st, services.MatchServiceConfig{
		RunOnStartup: cfg.Engine.PassOnStartup,
		Interval:     cfg.Engine.PassInterval,
		Algorithm:    cfg.Engine.Algorithm,
	}, logger))
	logging.Info().
		Str("algorithm", cfg.Engine.Algorithm).
		Dur("interval", cfg.Engine.PassInterval).
		Msg("Match service added")

	if cfg.Refresh.Enabled {
		tree.AddEngineService(services.NewRefreshService(cfEngine, services.RefreshServiceConfig{
			Interval: cfg.Refresh.Interval,
		}, logger))
		logging.Info().Dur("interval", cfg.Refresh.Interval).Msg("Cache refresh service added")
	}

	tree.AddOpsService(services.NewOpsService(services.OpsServiceConfig{
		Host:    cfg.Server.Host,
		Port:    cfg.Server.Port,
		Timeout: cfg.Server.Timeout,
	}, logger))
	logging.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Msg("Ops HTTP service added")

	// === START ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor closes the channel.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("SkillSync stopped gracefully")
}
