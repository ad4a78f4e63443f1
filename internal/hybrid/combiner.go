// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

// Package hybrid blends the collaborative-filtering engine's output with
// a light content-based pass into one ranked, deduplicated, persisted
// recommendation list.
package hybrid

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/manlikeHB/skillsync/internal/cache"
	"github.com/manlikeHB/skillsync/internal/collab"
	"github.com/manlikeHB/skillsync/internal/match"
	"github.com/manlikeHB/skillsync/internal/profile"
)

const (
	// DefaultCFWeight weighs the collaborative contribution.
	DefaultCFWeight = 0.6

	// DefaultContentWeight weighs the content-based contribution.
	DefaultContentWeight = 0.4

	// DefaultMinConfidence drops weakly supported merged results.
	DefaultMinConfidence = 0.3

	// contentOnlyConfidence applies to candidates with no collaborative
	// signal backing them.
	contentOnlyConfidence = 0.5

	// defaultLimit caps results when the request leaves it unset.
	defaultLimit = 20

	// candidatePoolLimit bounds the content pass's candidate listing.
	candidatePoolLimit = 500

	// algorithmName labels persisted results from this combiner.
	algorithmName = "hybrid"
)

// Config tunes the combiner. Zero values take the defaults.
type Config struct {
	CFWeight      float64 `koanf:"cf_weight" validate:"min=0,max=1"`
	ContentWeight float64 `koanf:"content_weight" validate:"min=0,max=1"`
	MinConfidence float64 `koanf:"min_confidence" validate:"min=0,max=1"`
}

func (c Config) withDefaults() Config {
	if c.CFWeight == 0 && c.ContentWeight == 0 {
		c.CFWeight = DefaultCFWeight
		c.ContentWeight = DefaultContentWeight
	}
	if c.MinConfidence == 0 {
		c.MinConfidence = DefaultMinConfidence
	}
	return c
}

// Recommender is the collaborative source the combiner draws from.
// Implemented by collab.Engine; narrowed here for testability.
type Recommender interface {
	Recommend(ctx context.Context, req collab.Request) ([]collab.Recommendation, error)
}

// Combiner merges collaborative and content-based recommendations.
type Combiner struct {
	cf       Recommender
	profiles match.ProfileStore
	sink     match.ResultSink
	cfg      Config
	logger   zerolog.Logger
	clock    cache.Clock
}

// NewCombiner creates a hybrid combiner. A nil clock defaults to
// RealClock.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCombiner(cf Recommender, profiles match.ProfileStore, sink match.ResultSink, cfg Config, logger zerolog.Logger, clock cache.Clock) *Combiner {
	if clock == nil {
		clock = cache.RealClock{}
	}
	return &Combiner{
		cf:       cf,
		profiles: profiles,
		sink:     sink,
		cfg:      cfg.withDefaults(),
		logger:   logger.With().Str("component", "hybrid").Logger(),
		clock:    clock,
	}
}

// merged is one candidate's combined state during the merge.
type merged struct {
	candidateID string
	score       float64
	confidence  float64
	reasons     []string
}

// Recommend produces the blended ranked list for the subject and persists
// it through the result sink.
func (c *Combiner) Recommend(ctx context.Context, req collab.Request) ([]match.Result, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	subject, err := c.profiles.GetProfile(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load subject profile: %w", err)
	}

	// Oversample the collaborative source so merging and confidence
	// filtering still fill the response. Capped at the collaborative
	// engine's admissible maximum.
	cfReq := req
	cfReq.Limit = limit * 2
	if cfReq.Limit > collab.MaxLimit {
		cfReq.Limit = collab.MaxLimit
	}
	cfRecs, err := c.cf.Recommend(ctx, cfReq)
	if err != nil {
		return nil, fmt.Errorf("collaborative pass: %w", err)
	}

	contentScores, err := c.contentPass(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("content pass: %w", err)
	}

	results := c.merge(cfRecs, contentScores)

	filtered := results[:0]
	for _, m := range results {
		if m.confidence >= c.cfg.MinConfidence {
			filtered = append(filtered, m)
		}
	}
	results = filtered

	sort.SliceStable(results, func(i, j int) bool { return results[i].score > results[j].score })
	if len(results) > limit {
		results = results[:limit]
	}

	out := c.toMatchResults(subject.UserID, results)
	if len(out) > 0 {
		if err := c.sink.SaveMatchResults(ctx, out); err != nil {
			return nil, fmt.Errorf("persist results: %w", err)
		}
	}

	c.logger.Info().
		Str("user_id", req.UserID).
		Int("cf_candidates", len(cfRecs)).
		Int("content_candidates", len(contentScores)).
		Int("results", len(out)).
		Msg("hybrid recommendation complete")

	return out, nil
}

// contentPass scores every active opposite-type candidate on the cheap
// content factors.
func (c *Combiner) contentPass(ctx context.Context, subject *profile.Profile) ([]contentScore, error) {
	candidates, err := c.profiles.ListActiveCandidates(ctx, subject.UserID, candidatePoolLimit)
	if err != nil {
		return nil, err
	}

	var scores []contentScore
	for _, candidate := range candidates {
		if candidate.Type != subject.Type.Opposite() {
			continue
		}
		if cs := scoreContent(subject, candidate); cs.score > 0 {
			scores = append(scores, cs)
		}
	}
	return scores, nil
}

// merge combines the two passes by candidate id. A candidate present in
// both sums the weighted contributions and keeps the richer reason list;
// a candidate present in one keeps that single contribution.
func (c *Combiner) merge(cfRecs []collab.Recommendation, contentScores []contentScore) []merged {
	byID := make(map[string]merged, len(cfRecs)+len(contentScores))

	for _, rec := range cfRecs {
		byID[rec.CandidateID] = merged{
			candidateID: rec.CandidateID,
			score:       rec.Score * c.cfg.CFWeight,
			confidence:  rec.Confidence,
			reasons:     rec.Reasons,
		}
	}

	for _, cs := range contentScores {
		contribution := (cs.score / 100) * c.cfg.ContentWeight
		if cur, ok := byID[cs.candidateID]; ok {
			cur.score += contribution
			if len(cs.reasons) > len(cur.reasons) {
				cur.reasons = cs.reasons
			}
			byID[cs.candidateID] = cur
			continue
		}
		byID[cs.candidateID] = merged{
			candidateID: cs.candidateID,
			score:       contribution,
			confidence:  contentOnlyConfidence,
			reasons:     cs.reasons,
		}
	}

	out := make([]merged, 0, len(byID))
	for _, m := range byID {
		out = append(out, m)
	}
	return out
}

func (c *Combiner) toMatchResults(sourceUserID string, results []merged) []match.Result {
	now := c.clock.Now()
	out := make([]match.Result, len(results))
	for i, m := range results {
		out[i] = match.Result{
			ID:           uuid.NewString(),
			SourceUserID: sourceUserID,
			TargetUserID: m.candidateID,
			Score:        round2(m.score),
			Confidence:   round2(m.confidence),
			Algorithm:    algorithmName,
			Reasons:      m.reasons,
			CreatedAt:    now,
		}
	}
	return out
}

// round2 rounds to 2 decimal places. Persisted results carry rounded
// scores regardless of which engine produced them.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
