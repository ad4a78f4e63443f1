// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

// Package services provides suture service wrappers for the long-running
// SkillSync components.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CacheClearer is the collaborative engine surface the refresh service
// needs. Defined here so the service carries no engine dependency.
type CacheClearer interface {
	// ClearCache drops all cached user similarities.
	ClearCache()
}

// RefreshServiceConfig holds refresh loop configuration.
type RefreshServiceConfig struct {
	// Interval is how often the similarity cache is dropped so new
	// feedback influences rankings. Default: 1h.
	Interval time.Duration
}

// RefreshService periodically clears the collaborative-filtering
// similarity cache. Entries also expire individually by TTL; the
// periodic wholesale clear bounds how stale the cache can get after
// bursts of new feedback.
type RefreshService struct {
	engine CacheClearer
	config RefreshServiceConfig
	logger zerolog.Logger
}

// NewRefreshService creates the refresh service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefreshService(engine CacheClearer, cfg RefreshServiceConfig, logger zerolog.Logger) *RefreshService {
	return &RefreshService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "refresh").Logger(),
	}
}

// Serve implements suture.Service.
func (s *RefreshService) Serve(ctx context.Context) error {
	interval := s.config.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	s.logger.Info().Dur("interval", interval).Msg("refresh service starting")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("refresh service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.engine.ClearCache()
			s.logger.Debug().Msg("similarity cache cleared")
		}
	}
}
