// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package benchmark

import (
	"strconv"

	"github.com/manlikeHB/skillsync/internal/similarity"
)

// fieldMatchThreshold is the string-similarity floor for a fractional
// field match during verification.
const fieldMatchThreshold = 0.8

// HashMatcher buckets target records by blocking key, then verifies only
// same-key candidates with a field-level similarity.
type HashMatcher struct{}

// Name implements Matcher.
func (HashMatcher) Name() string { return "hash" }

// Match looks up each source record's bucket and verifies its candidates.
func (HashMatcher) Match(source, target []Record) ([]Pair, error) {
	buckets := make(map[string][]Record, len(target))
	for _, t := range target {
		key := t.blockingKey()
		buckets[key] = append(buckets[key], t)
	}

	var pairs []Pair
	for _, s := range source {
		for _, t := range buckets[s.blockingKey()] {
			score := fieldSimilarity(s, t)
			if score > matchThreshold {
				pairs = append(pairs, Pair{SourceID: s.ID, TargetID: t.ID, Score: score})
			}
		}
	}
	return pairs, nil
}

// fieldSimilarity compares two records field by field: an exact match
// counts 1, a close string match counts its similarity fractionally, and
// the sum is divided by the field count.
func fieldSimilarity(a, b Record) float64 {
	fieldsA := recordFields(a)
	fieldsB := recordFields(b)

	total := 0.0
	for key, va := range fieldsA {
		vb := fieldsB[key]
		if va == vb {
			total++
			continue
		}
		if sim := similarity.LevenshteinSimilarity(va, vb); sim > fieldMatchThreshold {
			total += sim
		}
	}
	return total / float64(len(fieldsA))
}

// recordFields flattens a record into comparable string fields.
func recordFields(r Record) map[string]string {
	return map[string]string{
		"id":     r.ID,
		"name":   r.Name,
		"email":  r.Email,
		"age":    strconv.Itoa(r.Age),
		"salary": strconv.FormatFloat(r.Salary, 'f', 2, 64),
		"city":   r.City,
	}
}
