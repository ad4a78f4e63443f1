// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package collab

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/manlikeHB/skillsync/internal/cache"
	"github.com/manlikeHB/skillsync/internal/match"
	"github.com/manlikeHB/skillsync/internal/metrics"
	"github.com/manlikeHB/skillsync/internal/profile"
	"github.com/manlikeHB/skillsync/internal/validation"
)

const (
	// DefaultLimit caps recommendations when the request leaves it unset.
	DefaultLimit = 20

	// MaxLimit is the largest admissible request limit, matching the
	// Request validation bound.
	MaxLimit = 200

	// similarUserPool bounds the similar-user neighborhood considered by
	// the user-based strategy.
	similarUserPool = 20

	// candidatePoolLimit bounds the active-profile listing per run.
	candidatePoolLimit = 500

	// Hybrid blend weights.
	hybridUserWeight = 0.6
	hybridItemWeight = 0.4
)

// Engine is the collaborative-filtering recommendation engine. It rebuilds
// the interaction matrix from the history store on every run; pairwise
// user similarities are the expensive part and are cached per subject for
// the cache's TTL window.
type Engine struct {
	profiles match.ProfileStore
	history  HistoryStore
	simCache *cache.TTL
	logger   zerolog.Logger
	clock    cache.Clock
}

// NewEngine creates a collaborative-filtering engine. A nil simCache
// disables caching rather than failing; a nil clock defaults to RealClock.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(profiles match.ProfileStore, history HistoryStore, simCache *cache.TTL, logger zerolog.Logger, clock cache.Clock) *Engine {
	if clock == nil {
		clock = cache.RealClock{}
	}
	return &Engine{
		profiles: profiles,
		history:  history,
		simCache: simCache,
		logger:   logger.With().Str("component", "collab").Logger(),
		clock:    clock,
	}
}

// ClearCache drops all cached user similarities. Called by the refresh
// service after new feedback lands.
func (e *Engine) ClearCache() {
	if e.simCache != nil {
		e.simCache.Clear()
	}
}

// Recommend produces collaborative-filtering recommendations for the
// subject described by req. Results are sorted by score descending and
// truncated to the limit.
func (e *Engine) Recommend(ctx context.Context, req Request) ([]Recommendation, error) {
	if err := validation.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", match.ErrInvalidArgument, err)
	}
	strategy := req.Strategy
	if strategy == "" {
		strategy = StrategyHybrid
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	start := e.clock.Now()

	subject, err := e.profiles.GetProfile(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load subject profile: %w", err)
	}

	matches, err := e.history.ListCompletedMatches(ctx, "", "")
	if err != nil {
		return nil, fmt.Errorf("list completed matches: %w", err)
	}
	matrix := buildMatrix(matches)

	peers, candidates, err := e.loadPopulations(ctx, subject)
	if err != nil {
		return nil, err
	}

	var recs []Recommendation
	switch strategy {
	case StrategyUserBased:
		recs = e.userBased(subject, peers, matrix)
	case StrategyItemBased:
		recs = e.itemBased(subject, candidates, matrix)
	case StrategyHybrid:
		recs = e.hybrid(subject, peers, candidates, matrix)
	default:
		return nil, fmt.Errorf("%w: unknown strategy %q", match.ErrInvalidArgument, strategy)
	}

	// Never recommend users the subject has already been matched with.
	seen := matrix.counterparts(subject.UserID)
	filtered := recs[:0]
	for _, r := range recs {
		if _, ok := seen[r.CandidateID]; ok {
			continue
		}
		filtered = append(filtered, r)
	}
	recs = filtered

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Score > recs[j].Score })
	if len(recs) > limit {
		recs = recs[:limit]
	}

	metrics.CFRecommendationRuns.WithLabelValues(string(strategy)).Inc()
	e.logger.Info().
		Str("user_id", req.UserID).
		Str("strategy", string(strategy)).
		Int("recommendations", len(recs)).
		Int("history_size", len(matches)).
		Dur("elapsed", e.clock.Now().Sub(start)).
		Msg("recommendation run complete")

	return recs, nil
}

// rankSimilar scores every peer against the subject, discarding negligible
// similarities, ranked descending.
func (e *Engine) rankSimilar(subject *profile.Profile, peers []*profile.Profile, matrix *interactionMatrix) []UserSimilarity {
	sims := make([]UserSimilarity, 0, len(peers))
	for _, peer := range peers {
		if peer.UserID == subject.UserID {
			continue
		}
		metrics.CFSimilarityComputations.Inc()
		sim := userSimilarity(subject, peer, matrix)
		if sim < minSimilarity {
			continue
		}
		sims = append(sims, UserSimilarity{
			UserID:            peer.UserID,
			Similarity:        sim,
			CommonMatches:     matrix.commonMatches(subject.UserID, peer.UserID),
			SharedPreferences: sharedPreferences(subject, peer),
		})
	}
	sort.SliceStable(sims, func(i, j int) bool { return sims[i].Similarity > sims[j].Similarity })
	return sims
}

// userBased recommends the successful-match counterparts of the subject's
// most similar peers. When several similar users point at the same
// candidate, the strongest recommendation wins.
func (e *Engine) userBased(subject *profile.Profile, peers []*profile.Profile, matrix *interactionMatrix) []Recommendation {
	sims := e.similarFromPool(subject, peers, matrix)
	if len(sims) > similarUserPool {
		sims = sims[:similarUserPool]
	}

	best := make(map[string]Recommendation)
	for _, sim := range sims {
		for _, in := range matrix.successfulInteractions(sim.UserID) {
			score := math.Min(1,
				sim.Similarity+
					0.3*in.algorithmScore+
					math.Min(0.1*float64(sim.CommonMatches), 0.2)+
					0.2*sim.SharedPreferences)

			rec := Recommendation{
				CandidateID: in.counterpartID,
				Score:       score,
				Confidence:  confidence(sim.Similarity, in.algorithmScore, in.successRate),
				Similarity:  sim.Similarity,
				Reasons: []string{
					fmt.Sprintf("Users similar to you (%.0f%% match) had successful mentorships with this candidate", sim.Similarity*100),
					fmt.Sprintf("Historical match scored %.2f with an average rating of %.1f/5", in.algorithmScore, in.avgRating),
				},
				Strategy: StrategyUserBased,
			}
			if cur, ok := best[rec.CandidateID]; !ok || rec.Score > cur.Score {
				best[rec.CandidateID] = rec
			}
		}
	}
	return mapValues(best)
}

// itemBased recommends candidates similar to the counterparts of the
// subject's own successful matches.
func (e *Engine) itemBased(subject *profile.Profile, candidates []*profile.Profile, matrix *interactionMatrix) []Recommendation {
	byID := make(map[string]*profile.Profile, len(candidates))
	for _, c := range candidates {
		byID[c.UserID] = c
	}

	best := make(map[string]Recommendation)
	for _, in := range matrix.successfulInteractions(subject.UserID) {
		counterpart, ok := byID[in.counterpartID]
		if !ok {
			continue
		}
		for _, sim := range e.rankSimilar(counterpart, candidates, matrix) {
			candidate, ok := byID[sim.UserID]
			if !ok || candidate.UserID == counterpart.UserID {
				continue
			}
			score := math.Min(1,
				sim.Similarity+
					0.4*in.algorithmScore+
					0.3*sharedPreferences(subject, candidate))

			rec := Recommendation{
				CandidateID: sim.UserID,
				Score:       score,
				Confidence:  confidence(sim.Similarity, in.algorithmScore, in.successRate),
				Similarity:  sim.Similarity,
				Reasons: []string{
					fmt.Sprintf("%.0f%% similar to a mentor/mentee you had a successful match with", sim.Similarity*100),
					fmt.Sprintf("That match scored %.2f with an average rating of %.1f/5", in.algorithmScore, in.avgRating),
				},
				Strategy: StrategyItemBased,
			}
			if cur, ok := best[rec.CandidateID]; !ok || rec.Score > cur.Score {
				best[rec.CandidateID] = rec
			}
		}
	}
	return mapValues(best)
}

// hybrid blends the two strategies per candidate: 0.6 user-based plus 0.4
// item-based, with reasons concatenated and similarities averaged. A
// candidate surfaced by only one strategy keeps that strategy's weighted
// contribution.
func (e *Engine) hybrid(subject *profile.Profile, peers, candidates []*profile.Profile, matrix *interactionMatrix) []Recommendation {
	merged := make(map[string]Recommendation)

	for _, rec := range e.userBased(subject, peers, matrix) {
		rec.Score *= hybridUserWeight
		rec.Strategy = StrategyHybrid
		merged[rec.CandidateID] = rec
	}

	for _, rec := range e.itemBased(subject, candidates, matrix) {
		weighted := rec.Score * hybridItemWeight
		if cur, ok := merged[rec.CandidateID]; ok {
			cur.Score = math.Min(1, cur.Score+weighted)
			cur.Similarity = (cur.Similarity + rec.Similarity) / 2
			cur.Confidence = math.Max(cur.Confidence, rec.Confidence)
			cur.Reasons = append(cur.Reasons, rec.Reasons...)
			merged[rec.CandidateID] = cur
			continue
		}
		rec.Score = weighted
		rec.Strategy = StrategyHybrid
		merged[rec.CandidateID] = rec
	}
	return mapValues(merged)
}

// similarFromPool ranks the already-loaded peer pool, bypassing the cache
// only when no cache is configured. Cached entries computed from a
// different pool are still valid for the TTL window.
func (e *Engine) similarFromPool(subject *profile.Profile, peers []*profile.Profile, matrix *interactionMatrix) []UserSimilarity {
	if e.simCache != nil {
		key := fmt.Sprintf("%s:%s", subject.UserID, subject.Type)
		if v, ok := e.simCache.Get(key); ok {
			metrics.CFCacheHits.Inc()
			return v.([]UserSimilarity)
		}
		metrics.CFCacheMisses.Inc()
	}
	sims := e.rankSimilar(subject, peers, matrix)
	if e.simCache != nil {
		e.simCache.Set(fmt.Sprintf("%s:%s", subject.UserID, subject.Type), sims)
	}
	return sims
}

// loadPopulations loads the subject's own population (peers) and the
// opposite population (candidates) in one candidate listing.
func (e *Engine) loadPopulations(ctx context.Context, subject *profile.Profile) (peers, candidates []*profile.Profile, err error) {
	all, err := e.profiles.ListActiveCandidates(ctx, subject.UserID, candidatePoolLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("list active profiles: %w", err)
	}
	for _, p := range all {
		if p.Type == subject.Type {
			peers = append(peers, p)
		} else {
			candidates = append(candidates, p)
		}
	}
	return peers, candidates, nil
}

// confidence blends similarity, historical match quality, and feedback
// success rate, clamped to [0,1].
func confidence(sim, matchScore, successRate float64) float64 {
	c := 0.4*sim + 0.3*matchScore + 0.3*successRate
	return math.Max(0, math.Min(1, c))
}

func mapValues(m map[string]Recommendation) []Recommendation {
	out := make([]Recommendation, 0, len(m))
	for _, rec := range m {
		out = append(out, rec)
	}
	return out
}
