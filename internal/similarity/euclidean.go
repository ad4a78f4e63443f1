// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package similarity

import "math"

// minEuclideanConfidence floors the variance-based confidence estimate.
const minEuclideanConfidence = 0.1

// Euclidean scores profile pairs by distance in feature space:
//
//	distance   = sqrt(sum((a_i - b_i)^2))
//	similarity = 1 / (1 + distance)
//
// so identical vectors score 1 and similarity decays smoothly with
// distance. The same average-weight multiplier and [0,1] clamp as Cosine
// apply.
//
// Confidence is max(0.1, 1 - variance(a UNION b)): widely spread coordinate
// values suggest noisy inputs and lower the estimate, floored so a result
// is never reported with zero confidence.
type Euclidean struct{}

// NewEuclidean creates the euclidean strategy.
func NewEuclidean() *Euclidean { return &Euclidean{} }

// Name returns "euclidean".
func (*Euclidean) Name() string { return "euclidean" }

// Score implements Strategy.
func (e *Euclidean) Score(source, target []float64, criteria Criteria) (Result, error) {
	if err := checkLengths(source, target, criteria); err != nil {
		return Result{}, err
	}

	var sumSq float64
	for i := range source {
		d := source[i] - target[i]
		sumSq += d * d
	}
	distance := math.Sqrt(sumSq)
	raw := 1 / (1 + distance)

	avgWeight := criteria.averageWeight()
	score := clamp01(raw * avgWeight)

	confidence := 1 - variance(source, target)
	if confidence < minEuclideanConfidence {
		confidence = minEuclideanConfidence
	}

	return Result{
		Score:      round2(score),
		Confidence: round2(clamp01(confidence)),
		Reasons:    []string{bandReason(score)},
		Metadata: map[string]float64{
			"distance":       distance,
			"raw_similarity": raw,
			"avg_weight":     avgWeight,
		},
	}, nil
}

// variance computes the population variance over the union of both
// vectors' coordinates.
func variance(a, b []float64) float64 {
	n := len(a) + len(b)
	if n == 0 {
		return 0
	}

	var sum float64
	for _, v := range a {
		sum += v
	}
	for _, v := range b {
		sum += v
	}
	mean := sum / float64(n)

	var sumSq float64
	for _, v := range a {
		sumSq += (v - mean) * (v - mean)
	}
	for _, v := range b {
		sumSq += (v - mean) * (v - mean)
	}
	return sumSq / float64(n)
}
