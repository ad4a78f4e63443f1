// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package benchmark

import (
	"github.com/manlikeHB/skillsync/internal/cache"
)

// BloomMatcher screens source records through a Bloom filter built over
// target blocking keys. A source record whose key passes the filter is a
// candidate; candidates are then verified against every target record,
// not just same-bucket ones. Full-set verification defeats the filter's
// pruning at scale; it is kept so the harness can measure that exact
// trade-off against the hash matcher.
//
// False positives from the filter are rejected during verification.
// False negatives are impossible: build and query hash the same key
// extraction with the same seeds.
type BloomMatcher struct{}

// Name implements Matcher.
func (BloomMatcher) Name() string { return "bloom" }

// Match screens sources through the filter and verifies candidates.
func (BloomMatcher) Match(source, target []Record) ([]Pair, error) {
	filter := cache.NewBloomFilter(len(target))
	for _, t := range target {
		filter.Add(t.blockingKey())
	}

	var pairs []Pair
	for _, s := range source {
		if !filter.Test(s.blockingKey()) {
			continue
		}
		for _, t := range target {
			score := fieldSimilarity(s, t)
			if score > matchThreshold {
				pairs = append(pairs, Pair{SourceID: s.ID, TargetID: t.ID, Score: score})
			}
		}
	}
	return pairs, nil
}
