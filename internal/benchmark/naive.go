// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package benchmark

import (
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/manlikeHB/skillsync/internal/similarity"
)

// NaiveMatcher is the exact O(n*m) baseline: every source record is
// compared against every target record on the edit distance of their
// JSON serializations.
type NaiveMatcher struct{}

// Name implements Matcher.
func (NaiveMatcher) Name() string { return "naive" }

// Match reports all pairs whose JSON-level similarity exceeds the
// threshold.
func (NaiveMatcher) Match(source, target []Record) ([]Pair, error) {
	targetJSON := make([]string, len(target))
	for i, t := range target {
		b, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("serialize target %s: %w", t.ID, err)
		}
		targetJSON[i] = string(b)
	}

	var pairs []Pair
	for _, s := range source {
		b, err := json.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("serialize source %s: %w", s.ID, err)
		}
		sj := string(b)

		for i, t := range target {
			score := similarity.LevenshteinSimilarity(sj, targetJSON[i])
			if score > matchThreshold {
				pairs = append(pairs, Pair{SourceID: s.ID, TargetID: t.ID, Score: score})
			}
		}
	}
	return pairs, nil
}
