// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package similarity

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"
)

func TestCosine_IdenticalVectors(t *testing.T) {
	c := NewCosine()
	criteria := Criteria{
		Keys:    []string{"a", "b"},
		Weights: map[string]float64{"a": 1, "b": 1},
	}

	res, err := c.Score([]float64{0.5, 1.0}, []float64{0.5, 1.0}, criteria)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.Score != 1.0 {
		t.Errorf("Score = %f, want 1.0", res.Score)
	}
	if len(res.Reasons) == 0 || !strings.Contains(res.Reasons[0], "very close match") {
		t.Errorf("Reasons = %v, want very-close-match band", res.Reasons)
	}
	if res.Confidence != 1.0 {
		t.Errorf("Confidence = %f, want 1.0 (all coordinates non-zero)", res.Confidence)
	}
}

func TestCosine_ZeroMagnitudeIsZero(t *testing.T) {
	c := NewCosine()
	res, err := c.Score([]float64{0, 0}, []float64{0.3, 0.7}, Criteria{})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.Score != 0 {
		t.Errorf("Score = %f, want 0 for zero-magnitude source", res.Score)
	}
}

func TestCosine_RawBoundsAndFinalClamp(t *testing.T) {
	c := NewCosine()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		n := 1 + rng.Intn(8)
		a, b := make([]float64, n), make([]float64, n)
		for j := 0; j < n; j++ {
			a[j] = rng.Float64()
			b[j] = rng.Float64()
		}
		weights := map[string]float64{}
		keys := make([]string, n)
		for j := range keys {
			keys[j] = string(rune('a' + j))
			weights[keys[j]] = rng.Float64() * 3
		}

		raw := cosine(a, b)
		if raw < -1.0000001 || raw > 1.0000001 {
			t.Fatalf("raw cosine %f out of [-1,1]", raw)
		}

		res, err := c.Score(a, b, Criteria{Keys: keys, Weights: weights})
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if res.Score < 0 || res.Score > 1 {
			t.Fatalf("final score %f out of [0,1]", res.Score)
		}
		if res.Confidence < 0 || res.Confidence > 1 {
			t.Fatalf("confidence %f out of [0,1]", res.Confidence)
		}
	}
}

func TestCosine_WeightingIsMonotonic(t *testing.T) {
	// With average weight >= 1, the weighted score can never drop below
	// the unweighted score.
	c := NewCosine()
	a := []float64{0.2, 0.5, 0.9}
	b := []float64{0.3, 0.4, 0.8}
	keys := []string{"x", "y", "z"}

	base, err := c.Score(a, b, Criteria{Keys: keys})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	boosted, err := c.Score(a, b, Criteria{
		Keys:    keys,
		Weights: map[string]float64{"x": 2.0, "y": 1.0, "z": 1.0},
	})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	if boosted.Score < base.Score {
		t.Errorf("weighted score %f < unweighted %f", boosted.Score, base.Score)
	}
}

func TestCosine_HighWeightCallouts(t *testing.T) {
	c := NewCosine()
	criteria := Criteria{
		Keys:    []string{"skills_overlap", "age"},
		Weights: map[string]float64{"skills_overlap": 2.0, "age": 1.0},
	}

	res, err := c.Score([]float64{0.8, 0.5}, []float64{0.8, 0.1}, criteria)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}

	found := false
	for _, r := range res.Reasons {
		if strings.Contains(r, "skills_overlap") && strings.Contains(r, "Identical") {
			found = true
		}
		if strings.Contains(r, `"age"`) {
			t.Errorf("unexpected callout for weight-1 attribute: %q", r)
		}
	}
	if !found {
		t.Errorf("missing identical-value callout, reasons = %v", res.Reasons)
	}
}

func TestEuclidean_SelfSimilarityIsOne(t *testing.T) {
	e := NewEuclidean()
	vecs := [][]float64{
		{0.5},
		{0.1, 0.9, 0.4},
		{1, 1, 1, 1},
	}

	for _, v := range vecs {
		res, err := e.Score(v, v, Criteria{})
		if err != nil {
			t.Fatalf("Score: %v", err)
		}
		if res.Score != 1.0 {
			t.Errorf("Score(v, v) = %f, want 1.0", res.Score)
		}
	}
}

func TestEuclidean_DecaysWithDistance(t *testing.T) {
	e := NewEuclidean()

	near, _ := e.Score([]float64{0.5, 0.5}, []float64{0.6, 0.5}, Criteria{})
	far, _ := e.Score([]float64{0.5, 0.5}, []float64{1.0, 0.0}, Criteria{})

	if near.Score <= far.Score {
		t.Errorf("near %f should exceed far %f", near.Score, far.Score)
	}
}

func TestEuclidean_ConfidenceFloor(t *testing.T) {
	e := NewEuclidean()

	// Extreme spread maximizes variance; confidence must still be >= 0.1.
	res, err := e.Score([]float64{0, 1, 0, 1}, []float64{1, 0, 1, 0}, Criteria{})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.Confidence < 0.1 {
		t.Errorf("Confidence = %f, want >= 0.1", res.Confidence)
	}
}

func TestStrategies_RejectMismatchedLengths(t *testing.T) {
	for _, s := range []Strategy{NewCosine(), NewEuclidean()} {
		t.Run(s.Name(), func(t *testing.T) {
			_, err := s.Score([]float64{1, 2}, []float64{1}, Criteria{})
			if !errors.Is(err, ErrVectorLength) {
				t.Errorf("err = %v, want ErrVectorLength", err)
			}

			_, err = s.Score([]float64{1, 2}, []float64{1, 2}, Criteria{Keys: []string{"only-one"}})
			if !errors.Is(err, ErrVectorLength) {
				t.Errorf("criteria mismatch err = %v, want ErrVectorLength", err)
			}
		})
	}
}

func TestRegistry_ResolveAndUnknown(t *testing.T) {
	r := DefaultRegistry()

	for _, name := range []string{"cosine", "euclidean"} {
		s, err := r.Resolve(name)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", name, err)
		}
		if s.Name() != name {
			t.Errorf("Name() = %q, want %q", s.Name(), name)
		}
	}

	if _, err := r.Resolve("manhattan"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("err = %v, want ErrUnknownStrategy", err)
	}

	names := r.Names()
	if len(names) != 2 || names[0] != "cosine" || names[1] != "euclidean" {
		t.Errorf("Names() = %v", names)
	}
}

func TestBandReason(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.95, "very close match"},
		{0.7, "Good compatibility"},
		{0.5, "Moderate compatibility"},
		{0.2, "Significant differences"},
	}
	for _, tt := range tests {
		if got := bandReason(tt.score); !strings.Contains(got, tt.want) {
			t.Errorf("bandReason(%f) = %q, want contains %q", tt.score, got, tt.want)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
		{"alexsmith1", "alexsmith2", 1},
	}
	for _, tt := range tests {
		if got := Levenshtein(tt.a, tt.b); got != tt.want {
			t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLevenshteinSimilarity(t *testing.T) {
	if got := LevenshteinSimilarity("", ""); got != 1 {
		t.Errorf("empty/empty = %f, want 1", got)
	}
	if got := LevenshteinSimilarity("abcdefghij", "abcdefghiX"); math.Abs(got-0.9) > 1e-9 {
		t.Errorf("one edit over ten chars = %f, want 0.9", got)
	}
	if got := LevenshteinSimilarity("abc", "xyz"); got != 0 {
		t.Errorf("disjoint = %f, want 0", got)
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"disjoint", []string{"go"}, []string{"rust"}, 0},
		{"identical", []string{"go", "sql"}, []string{"go", "sql"}, 1},
		{"half overlap", []string{"go", "sql"}, []string{"go", "rust"}, 1.0 / 3.0},
		{"case insensitive", []string{"Go"}, []string{"go"}, 1},
		{"both empty", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Jaccard(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Jaccard = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestTokenJaccard(t *testing.T) {
	got := TokenJaccard("machine learning, fintech", "Fintech and machine learning")
	if got <= 0.5 {
		t.Errorf("TokenJaccard = %f, want substantial overlap", got)
	}
	if TokenJaccard("", "") != 0 {
		t.Error("two empty texts should score 0")
	}
}
