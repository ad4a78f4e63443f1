// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

// Package similarity implements the interchangeable feature-vector
// similarity strategies used by the matching engine, plus the string
// distance primitives shared with the collaborative-filtering engine and
// the approximate-matching benchmark.
package similarity

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

var (
	// ErrUnknownStrategy is returned when resolving a strategy name that
	// was never registered.
	ErrUnknownStrategy = errors.New("unknown similarity strategy")

	// ErrVectorLength is returned when two vectors of different lengths
	// are compared. This indicates a caller bug (vectors must come from
	// the same request key set), not a data problem.
	ErrVectorLength = errors.New("vectors differ in length")
)

// Criteria carries the request-scoped inputs a strategy needs beyond the
// two vectors: the ordered attribute keys the vectors were extracted over
// and the per-key weights.
type Criteria struct {
	// Keys is the ordered attribute key set; Keys[i] names coordinate i.
	Keys []string

	// Weights maps attribute keys to positive weights. Missing keys
	// count as 1.0.
	Weights map[string]float64
}

// weight returns the weight for a key, defaulting to 1.0.
func (c Criteria) weight(key string) float64 {
	if w, ok := c.Weights[key]; ok && w > 0 {
		return w
	}
	return 1.0
}

// averageWeight returns the mean weight over the key set.
//
// Both strategies multiply their raw similarity by this average rather
// than computing a true weighted inner product. The simplification is
// preserved deliberately: a single very high weight inflates all scores
// uniformly, and downstream consumers calibrated against that behavior.
func (c Criteria) averageWeight() float64 {
	if len(c.Keys) == 0 {
		return 1.0
	}
	sum := 0.0
	for _, k := range c.Keys {
		sum += c.weight(k)
	}
	return sum / float64(len(c.Keys))
}

// Result is the outcome of scoring one source/target pair.
type Result struct {
	// Score is the bounded compatibility score, rounded to 2 decimals.
	Score float64 `json:"score"`

	// Confidence estimates how much data backed the score, in [0,1],
	// rounded to 2 decimals. It is distinct from the score itself.
	Confidence float64 `json:"confidence"`

	// Reasons are ordered human-readable explanations.
	Reasons []string `json:"reasons"`

	// Metadata holds algorithm-specific numeric diagnostics.
	Metadata map[string]float64 `json:"metadata,omitempty"`
}

// Strategy scores a source vector against a target vector under request
// criteria. Implementations must be safe for concurrent use.
type Strategy interface {
	// Name returns the strategy identifier used for registry lookup and
	// result attribution.
	Name() string

	// Score computes the similarity result for one pair. Both vectors
	// must have the same length as criteria.Keys.
	Score(source, target []float64, criteria Criteria) (Result, error)
}

// Registry resolves strategies by name. Safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]Strategy)}
}

// DefaultRegistry returns a registry with the built-in strategies.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewCosine())
	r.Register(NewEuclidean())
	return r
}

// Register adds a strategy, replacing any previous one with the same name.
func (r *Registry) Register(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[s.Name()] = s
}

// Resolve returns the strategy registered under name.
func (r *Registry) Resolve(name string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return s, nil
}

// Names returns the registered strategy names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.strategies))
	for n := range r.strategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// checkLengths validates that both vectors match the criteria key set.
func checkLengths(source, target []float64, criteria Criteria) error {
	if len(source) != len(target) {
		return fmt.Errorf("%w: source %d, target %d", ErrVectorLength, len(source), len(target))
	}
	if len(criteria.Keys) != 0 && len(criteria.Keys) != len(source) {
		return fmt.Errorf("%w: vectors %d, criteria keys %d", ErrVectorLength, len(source), len(criteria.Keys))
	}
	return nil
}

// bandReason maps a final score to its fixed explanation band.
func bandReason(score float64) string {
	switch {
	case score > 0.8:
		return "High compatibility - profiles are a very close match"
	case score > 0.6:
		return "Good compatibility across compared attributes"
	case score > 0.4:
		return "Moderate compatibility across compared attributes"
	default:
		return "Significant differences between profiles"
	}
}

// clamp01 bounds v to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
