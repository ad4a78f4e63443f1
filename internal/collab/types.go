// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

// Package collab implements the collaborative-filtering engine. It learns
// from historical mentorship outcomes - completed matches joined with
// their feedback ratings - and recommends candidates via user-based,
// item-based, or hybrid strategies.
package collab

import (
	"context"
	"time"

	"github.com/manlikeHB/skillsync/internal/profile"
)

// Strategy selects the recommendation approach.
type Strategy string

const (
	// StrategyUserBased recommends counterparts of similar users'
	// successful matches.
	StrategyUserBased Strategy = "user_based"

	// StrategyItemBased recommends users similar to the subject's own
	// successful match counterparts.
	StrategyItemBased Strategy = "item_based"

	// StrategyHybrid blends both, 0.6 user-based / 0.4 item-based.
	StrategyHybrid Strategy = "hybrid"
)

// Feedback is one rating left for a historical match.
type Feedback struct {
	// Rating is a 1-5 score.
	Rating int `json:"rating"`

	// Tags categorize the feedback.
	Tags []string `json:"tags,omitempty"`

	// SpecificFeedback is free text.
	SpecificFeedback string `json:"specific_feedback,omitempty"`
}

// HistoricalMatch is a completed mentor/mentee pairing with its outcome.
type HistoricalMatch struct {
	ID             string     `json:"id"`
	MentorID       string     `json:"mentor_id"`
	MenteeID       string     `json:"mentee_id"`
	AlgorithmScore float64    `json:"algorithm_score"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        time.Time  `json:"end_date"`
	Feedback       []Feedback `json:"feedback,omitempty"`
}

// HistoryStore is the interaction-history collaborator. userID and ptype
// narrow the listing when non-empty; the engine rebuilds its interaction
// matrix from the full listing on every invocation.
type HistoryStore interface {
	ListCompletedMatches(ctx context.Context, userID string, ptype profile.Type) ([]HistoricalMatch, error)
}

// UserSimilarity is one similar-user entry, cached per subject.
type UserSimilarity struct {
	// UserID is the similar user.
	UserID string `json:"user_id"`

	// Similarity is the weighted blend in [0,1].
	Similarity float64 `json:"similarity"`

	// CommonMatches counts counterpart users both subjects have been
	// matched with.
	CommonMatches int `json:"common_matches"`

	// SharedPreferences is the Jaccard overlap of preference keys.
	SharedPreferences float64 `json:"shared_preferences"`
}

// Recommendation is one scored candidate from a collaborative run.
type Recommendation struct {
	// CandidateID is the recommended user.
	CandidateID string `json:"candidate_id"`

	// Score is the recommendation strength in [0,1].
	Score float64 `json:"score"`

	// Confidence blends similarity, historical match score, and success
	// rate, in [0,1].
	Confidence float64 `json:"confidence"`

	// Similarity is the underlying user similarity that produced the
	// recommendation (averaged when strategies merge).
	Similarity float64 `json:"similarity"`

	// Reasons are ordered human-readable explanations.
	Reasons []string `json:"reasons"`

	// Strategy names the producing strategy.
	Strategy Strategy `json:"strategy"`
}

// Request describes one collaborative-filtering run.
type Request struct {
	// UserID is the subject to recommend for.
	UserID string `validate:"required"`

	// Type is the subject's population; recommendations come from the
	// opposite population.
	Type profile.Type `validate:"required,oneof=mentor mentee"`

	// Strategy picks the approach. Default: hybrid.
	Strategy Strategy `validate:"omitempty,oneof=user_based item_based hybrid"`

	// Limit caps recommendations. Default 20.
	Limit int `validate:"min=0,max=200"`
}
