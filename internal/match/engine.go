// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package match

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/manlikeHB/skillsync/internal/metrics"
	"github.com/manlikeHB/skillsync/internal/profile"
	"github.com/manlikeHB/skillsync/internal/similarity"
	"github.com/manlikeHB/skillsync/internal/validation"
)

const (
	// DefaultLimit caps returned matches when the request leaves it unset.
	DefaultLimit = 50

	// DefaultThreshold drops low-scoring results when the request leaves
	// it unset.
	DefaultThreshold = 0.1

	// candidateMultiplier oversamples the candidate pool relative to the
	// requested limit so thresholding and filtering still leave enough
	// results to fill the response.
	candidateMultiplier = 3

	// defaultConcurrency bounds parallel candidate scoring.
	defaultConcurrency = 8
)

// ProfileStore is the external profile collaborator. Implemented by the
// store packages; defined here so the engine carries no storage dependency.
type ProfileStore interface {
	// GetProfile returns the profile for userID, or ErrNotFound.
	GetProfile(ctx context.Context, userID string) (*profile.Profile, error)

	// ListActiveCandidates returns up to limit active profiles excluding
	// excludeUserID, most-recently-updated first.
	ListActiveCandidates(ctx context.Context, excludeUserID string, limit int) ([]*profile.Profile, error)

	// UpsertProfile creates or replaces a profile.
	UpsertProfile(ctx context.Context, p *profile.Profile) error
}

// ResultSink persists computed matches for audit and override.
type ResultSink interface {
	// SaveMatchResults persists a batch of results from one run.
	SaveMatchResults(ctx context.Context, results []Result) error

	// GetMatchResult returns a persisted result by ID, or ErrNotFound.
	GetMatchResult(ctx context.Context, id string) (*Result, error)

	// SaveManualOverride persists an administrator override.
	SaveManualOverride(ctx context.Context, o Override) error

	// MarkOverridden atomically transitions a result from not-overridden
	// to overridden. Returns ErrConflict if the result is already
	// overridden and ErrNotFound if it does not exist. The check and the
	// write must not interleave with concurrent calls for the same id.
	MarkOverridden(ctx context.Context, matchResultID string, ref OverrideRef) error
}

// Engine orchestrates matching runs. Safe for concurrent use.
type Engine struct {
	profiles   ProfileStore
	sink       ResultSink
	registry   *similarity.Registry
	extractor  *profile.Extractor
	logger     zerolog.Logger
	now        func() time.Time
	concurrent int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithConcurrency bounds parallel candidate scoring.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrent = n
		}
	}
}

// WithExtractor overrides the feature-vector extractor, e.g. to install a
// different missing-value policy.
func WithExtractor(ex *profile.Extractor) Option {
	return func(e *Engine) { e.extractor = ex }
}

// NewEngine creates a matching engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(profiles ProfileStore, sink ResultSink, registry *similarity.Registry, logger zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{
		profiles:   profiles,
		sink:       sink,
		registry:   registry,
		extractor:  profile.NewExtractor(nil),
		logger:     logger.With().Str("component", "match").Logger(),
		now:        time.Now,
		concurrent: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FindMatches runs one matching pass: resolve the named strategy, load the
// source profile, score filtered active candidates pairwise, keep results
// at or above the threshold, sort, truncate, and persist.
func (e *Engine) FindMatches(ctx context.Context, req Request, algorithm string) (*Response, error) {
	start := e.now()

	if err := validation.Struct(req); err != nil {
		metrics.MatchErrors.WithLabelValues(algorithm, "invalid_request").Inc()
		return nil, fmt.Errorf("%w: %s", ErrInvalidArgument, err)
	}

	strategy, err := e.registry.Resolve(algorithm)
	if err != nil {
		metrics.MatchErrors.WithLabelValues(algorithm, "unknown_algorithm").Inc()
		return nil, fmt.Errorf("%w: algorithm %q", ErrNotFound, algorithm)
	}

	req = applyDefaults(req)
	logger := e.logger.With().
		Str("user_id", req.UserID).
		Str("algorithm", algorithm).
		Logger()

	source, err := e.profiles.GetProfile(ctx, req.UserID)
	if err != nil {
		metrics.MatchErrors.WithLabelValues(algorithm, "source_not_found").Inc()
		return nil, fmt.Errorf("load source profile: %w", err)
	}

	candidates, err := e.profiles.ListActiveCandidates(ctx, req.UserID, req.Limit*candidateMultiplier)
	if err != nil {
		metrics.MatchErrors.WithLabelValues(algorithm, "candidate_load").Inc()
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	criteria := buildCriteria(req, source)
	sourceVec := e.extractor.Vector(source, criteria.Keys)
	filters := effectiveFilters(req, source)

	results, processed, err := e.scoreCandidates(ctx, strategy, source, sourceVec, candidates, criteria, filters, req.Threshold)
	if err != nil {
		metrics.MatchErrors.WithLabelValues(algorithm, "scoring").Inc()
		return nil, err
	}

	// Sort non-increasing by score; stable so equal scores keep candidate
	// recency order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > req.Limit {
		results = results[:req.Limit]
	}

	if len(results) > 0 {
		if err := e.sink.SaveMatchResults(ctx, results); err != nil {
			metrics.MatchErrors.WithLabelValues(algorithm, "persist").Inc()
			return nil, fmt.Errorf("persist match results: %w", err)
		}
	}

	elapsed := e.now().Sub(start)
	metrics.ObserveMatchRun(algorithm, processed, len(results), elapsed)

	logger.Debug().
		Int("processed", processed).
		Int("returned", len(results)).
		Int64("elapsed_ms", elapsed.Milliseconds()).
		Msg("matching run complete")

	return &Response{
		Matches:         results,
		TotalProcessed:  processed,
		ExecutionTimeMs: elapsed.Milliseconds(),
		Algorithm:       algorithm,
	}, nil
}

// scoreCandidates fans candidate scoring out across a bounded worker group.
// Completion order is irrelevant: results are collected and sorted by the
// caller.
func (e *Engine) scoreCandidates(
	ctx context.Context,
	strategy similarity.Strategy,
	source *profile.Profile,
	sourceVec []float64,
	candidates []*profile.Profile,
	criteria similarity.Criteria,
	filters map[string]profile.Filter,
	threshold float64,
) ([]Result, int, error) {
	var (
		mu        sync.Mutex
		results   []Result
		processed int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrent)

	for _, cand := range candidates {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			if !passesFilters(cand, filters) {
				return nil
			}

			candVec := e.extractor.Vector(cand, criteria.Keys)
			res, err := strategy.Score(sourceVec, candVec, criteria)
			if err != nil {
				return fmt.Errorf("score candidate %s: %w", cand.UserID, err)
			}

			mu.Lock()
			processed++
			if res.Score >= threshold {
				results = append(results, Result{
					ID:           uuid.NewString(),
					SourceUserID: source.UserID,
					TargetUserID: cand.UserID,
					Score:        res.Score,
					Confidence:   res.Confidence,
					Algorithm:    strategy.Name(),
					Reasons:      res.Reasons,
					Metadata:     res.Metadata,
					CreatedAt:    e.now(),
				})
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return results, processed, nil
}

// passesFilters applies every filter predicate to the candidate. A
// candidate failing any filter is dropped.
func passesFilters(cand *profile.Profile, filters map[string]profile.Filter) bool {
	for key, f := range filters {
		if !f.Matches(cand.Attributes[key]) {
			return false
		}
	}
	return true
}

// effectiveFilters prefers request filters; when the request carries none,
// the source profile's own filters apply.
func effectiveFilters(req Request, source *profile.Profile) map[string]profile.Filter {
	if len(req.Filters) > 0 {
		return req.Filters
	}
	return source.Filters
}

// buildCriteria derives the ordered key set and weights for this run.
// Keys come from the request's preference map, or the source profile's
// when the request carries none (sorted for a deterministic coordinate
// order); weights fall back the same way.
func buildCriteria(req Request, source *profile.Profile) similarity.Criteria {
	prefs := req.Preferences
	if len(prefs) == 0 {
		prefs = source.Preferences
	}
	keys := make([]string, 0, len(prefs))
	for k := range prefs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	weights := req.Weights
	if len(weights) == 0 {
		weights = source.Weights
	}
	return similarity.Criteria{Keys: keys, Weights: weights}
}

// applyDefaults fills unset request fields.
func applyDefaults(req Request) Request {
	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	}
	if req.Threshold <= 0 {
		req.Threshold = DefaultThreshold
	}
	return req
}

// CreateProfile stamps the update time and hands the profile to the
// store. Validation beyond the identifier lives with the caller.
func (e *Engine) CreateProfile(ctx context.Context, p *profile.Profile) error {
	if p.UserID == "" {
		return fmt.Errorf("%w: profile user id is required", ErrInvalidArgument)
	}
	p.UpdatedAt = e.now()
	return e.profiles.UpsertProfile(ctx, p)
}

// UpdateProfile delegates a profile update to the profile store.
func (e *Engine) UpdateProfile(ctx context.Context, p *profile.Profile) error {
	return e.CreateProfile(ctx, p)
}
