// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

// Package match implements the matching engine: it orchestrates profile
// loading, candidate filtering, pairwise similarity scoring, thresholding,
// and persistence of ranked match results, plus the manual-override
// workflow for administrators.
package match

import (
	"errors"
	"time"

	"github.com/manlikeHB/skillsync/internal/profile"
)

var (
	// ErrNotFound indicates an unknown profile, match result, or
	// algorithm reference. Surfaced to the caller, never retried.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates an attempt to override an already-overridden
	// match result. Rejected with no partial mutation.
	ErrConflict = errors.New("conflict")

	// ErrInvalidArgument indicates malformed input (scores outside [0,1],
	// missing admin identifier). Rejected before any side effect.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Result is one computed source/target match. Immutable once created,
// except for the one-way override transition.
type Result struct {
	// ID uniquely identifies this result for later override reference.
	ID string `json:"id"`

	// SourceUserID is the profile the matching run was requested for.
	SourceUserID string `json:"source_user_id"`

	// TargetUserID is the matched candidate.
	TargetUserID string `json:"target_user_id"`

	// Score is the compatibility score in [0,1], 2-decimal rounded.
	Score float64 `json:"score"`

	// Confidence estimates data backing for the score, in [0,1],
	// 2-decimal rounded.
	Confidence float64 `json:"confidence"`

	// Algorithm names the strategy that produced the result.
	Algorithm string `json:"algorithm"`

	// Reasons are ordered human-readable explanations.
	Reasons []string `json:"reasons"`

	// Metadata holds algorithm-specific numeric diagnostics.
	Metadata map[string]float64 `json:"metadata,omitempty"`

	// Override references the manual override superseding this result.
	// nil means not overridden; the transition nil -> non-nil happens at
	// most once, enforced by the result sink's check-and-set.
	Override *OverrideRef `json:"override,omitempty"`

	// CreatedAt is when the matching run produced this result.
	CreatedAt time.Time `json:"created_at"`
}

// IsOverridden reports whether a manual override superseded this result.
func (r *Result) IsOverridden() bool {
	return r.Override != nil
}

// OverrideRef links a match result to the override that superseded it.
type OverrideRef struct {
	// OverrideID is the manual override's identifier.
	OverrideID string `json:"override_id"`

	// AdminID is the administrator who issued the override.
	AdminID string `json:"admin_id"`

	// AppliedAt is when the override took effect.
	AppliedAt time.Time `json:"applied_at"`
}

// Override is an administrator-issued replacement for an algorithmic
// match result.
type Override struct {
	// ID uniquely identifies the override.
	ID string `json:"id"`

	SourceUserID string `json:"source_user_id"`
	TargetUserID string `json:"target_user_id"`

	// OverrideScore and OverrideConfidence replace the algorithmic
	// values; both must lie in [0,1].
	OverrideScore      float64 `json:"override_score"`
	OverrideConfidence float64 `json:"override_confidence"`

	// Reason is the administrator's justification.
	Reason string `json:"reason"`

	// AdminID identifies the issuing administrator. Required.
	AdminID string `json:"admin_id"`

	// OriginalMatchID back-references the superseded result, if any.
	OriginalMatchID string `json:"original_match_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Request describes one matching run.
type Request struct {
	// UserID is the source profile to match from.
	UserID string `validate:"required"`

	// Preferences determines the attribute key set (and therefore vector
	// length and coordinate order) for this run.
	Preferences map[string]profile.Value

	// Weights maps attribute keys to positive weights; unlisted keys
	// weigh 1.0.
	Weights map[string]float64

	// Filters restricts candidates; when empty, the source profile's own
	// filters apply.
	Filters map[string]profile.Filter

	// Limit caps returned matches. Default 50.
	Limit int `validate:"min=0,max=500"`

	// Threshold drops results scoring below it. Default 0.1.
	Threshold float64 `validate:"min=0,max=1"`
}

// Response is the outcome of one matching run.
type Response struct {
	// Matches are the kept results, sorted non-increasing by score.
	Matches []Result `json:"matches"`

	// TotalProcessed counts candidates scored before thresholding.
	TotalProcessed int `json:"total_processed"`

	// ExecutionTimeMs is the wall-clock duration of the run.
	ExecutionTimeMs int64 `json:"execution_time_ms"`

	// Algorithm names the strategy used.
	Algorithm string `json:"algorithm"`
}
