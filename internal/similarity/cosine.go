// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package similarity

import (
	"fmt"
	"math"
)

// highWeightThreshold marks attributes important enough for per-attribute
// reason call-outs.
const highWeightThreshold = 1.5

// closeValueDelta is the numeric distance under which two attribute values
// are called out as closely aligned.
const closeValueDelta = 0.2

// Cosine scores profile pairs by the cosine of the angle between their
// feature vectors:
//
//	similarity = dot(a,b) / (|a| * |b|)
//
// defined as 0 when either magnitude is 0. The raw similarity is multiplied
// by the average criteria weight and clamped to [0,1].
//
// Confidence is a data-completeness heuristic: the fraction of non-zero
// coordinates across both vectors. Sparse vectors (mostly missing
// attributes) produce low confidence even when the angle is small.
type Cosine struct{}

// NewCosine creates the cosine strategy.
func NewCosine() *Cosine { return &Cosine{} }

// Name returns "cosine".
func (*Cosine) Name() string { return "cosine" }

// Score implements Strategy.
func (c *Cosine) Score(source, target []float64, criteria Criteria) (Result, error) {
	if err := checkLengths(source, target, criteria); err != nil {
		return Result{}, err
	}

	raw := cosine(source, target)
	avgWeight := criteria.averageWeight()
	score := clamp01(raw * avgWeight)

	reasons := []string{bandReason(score)}
	reasons = append(reasons, c.attributeCallouts(source, target, criteria)...)

	return Result{
		Score:      round2(score),
		Confidence: round2(completeness(source, target)),
		Reasons:    reasons,
		Metadata: map[string]float64{
			"raw_similarity": raw,
			"avg_weight":     avgWeight,
		},
	}, nil
}

// attributeCallouts emits per-attribute reasons for heavily weighted keys
// whose values are identical or numerically close.
func (c *Cosine) attributeCallouts(source, target []float64, criteria Criteria) []string {
	if len(criteria.Keys) != len(source) {
		return nil
	}

	var callouts []string
	for i, key := range criteria.Keys {
		if criteria.weight(key) <= highWeightThreshold {
			continue
		}
		switch delta := math.Abs(source[i] - target[i]); {
		case delta == 0:
			callouts = append(callouts, fmt.Sprintf("Identical values for highly weighted attribute %q", key))
		case delta < closeValueDelta:
			callouts = append(callouts, fmt.Sprintf("Close alignment on highly weighted attribute %q", key))
		}
	}
	return callouts
}

// cosine computes the unweighted cosine similarity of two equal-length
// vectors, 0 if either has zero magnitude.
func cosine(a, b []float64) float64 {
	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// completeness returns the fraction of non-zero coordinates across both
// vectors, clamped to [0,1].
func completeness(a, b []float64) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 0
	}
	nonZero := 0
	for _, v := range a {
		if v != 0 {
			nonZero++
		}
	}
	for _, v := range b {
		if v != 0 {
			nonZero++
		}
	}
	return clamp01(float64(nonZero) / float64(total))
}
