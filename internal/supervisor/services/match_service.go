// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/manlikeHB/skillsync/internal/collab"
	"github.com/manlikeHB/skillsync/internal/match"
	"github.com/manlikeHB/skillsync/internal/profile"
)

// Matcher runs one weighted matching pass for a profile.
type Matcher interface {
	FindMatches(ctx context.Context, req match.Request, algorithm string) (*match.Response, error)
}

// Recommender produces hybrid recommendations for a profile.
type Recommender interface {
	Recommend(ctx context.Context, req collab.Request) ([]match.Result, error)
}

// ProfileLister enumerates the active profiles a pass visits.
type ProfileLister interface {
	ListActiveCandidates(ctx context.Context, excludeUserID string, limit int) ([]*profile.Profile, error)
}

// MatchServiceConfig holds configuration for the matching pass service.
type MatchServiceConfig struct {
	// RunOnStartup triggers a pass when the service starts.
	RunOnStartup bool

	// Interval is how often to rerun the pass. Default 1h.
	Interval time.Duration

	// Algorithm names the similarity strategy for the weighted pass.
	Algorithm string

	// PoolLimit caps how many active profiles one pass visits.
	PoolLimit int

	// PassTimeout bounds one full pass. Default 10m.
	PassTimeout time.Duration
}

// MatchService periodically recomputes matches and hybrid recommendations
// for every active profile, persisting results through the engines' sinks.
// It manages the pass lifecycle under Suture supervision.
type MatchService struct {
	matcher     Matcher
	recommender Recommender
	profiles    ProfileLister
	config      MatchServiceConfig
	logger      zerolog.Logger
	name        string
}

// NewMatchService creates a new matching pass service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMatchService(matcher Matcher, recommender Recommender, profiles ProfileLister, cfg MatchServiceConfig, logger zerolog.Logger) *MatchService {
	return &MatchService{
		matcher:     matcher,
		recommender: recommender,
		profiles:    profiles,
		config:      cfg,
		logger:      logger.With().Str("service", "match").Logger(),
		name:        "match-service",
	}
}

// Serve implements the suture.Service interface.
func (s *MatchService) Serve(ctx context.Context) error {
	if s.config.Interval <= 0 {
		s.config.Interval = time.Hour
	}
	if s.config.PoolLimit <= 0 {
		s.config.PoolLimit = 500
	}
	if s.config.PassTimeout <= 0 {
		s.config.PassTimeout = 10 * time.Minute
	}
	if s.config.Algorithm == "" {
		s.config.Algorithm = "cosine"
	}

	s.logger.Info().
		Bool("run_on_startup", s.config.RunOnStartup).
		Dur("interval", s.config.Interval).
		Str("algorithm", s.config.Algorithm).
		Msg("match service starting")

	if s.config.RunOnStartup {
		if err := s.pass(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("initial matching pass failed (will retry on schedule)")
		}
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("match service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.logger.Debug().Msg("scheduled matching pass triggered")
			if err := s.pass(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled matching pass failed")
			}
		}
	}
}

// pass visits every active profile once. Per-profile failures are logged
// and skipped so one bad profile cannot starve the rest of the pass.
func (s *MatchService) pass(ctx context.Context) error {
	passCtx, cancel := context.WithTimeout(ctx, s.config.PassTimeout)
	defer cancel()

	start := time.Now()

	profiles, err := s.profiles.ListActiveCandidates(passCtx, "", s.config.PoolLimit)
	if err != nil {
		return err
	}

	var matched, recommended, failed int
	for _, p := range profiles {
		if passCtx.Err() != nil {
			return passCtx.Err()
		}

		if _, err := s.matcher.FindMatches(passCtx, match.Request{UserID: p.UserID}, s.config.Algorithm); err != nil {
			failed++
			s.logger.Warn().Err(err).Str("user_id", p.UserID).Msg("weighted matching failed")
		} else {
			matched++
		}

		if _, err := s.recommender.Recommend(passCtx, collab.Request{UserID: p.UserID, Type: p.Type}); err != nil {
			failed++
			s.logger.Warn().Err(err).Str("user_id", p.UserID).Msg("hybrid recommendation failed")
		} else {
			recommended++
		}
	}

	s.logger.Info().
		Int("profiles", len(profiles)).
		Int("matched", matched).
		Int("recommended", recommended).
		Int("failed", failed).
		Dur("duration", time.Since(start)).
		Msg("matching pass complete")

	return nil
}

// String returns the service name for logging.
func (s *MatchService) String() string {
	return s.name
}
