// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package similarity

import "strings"

// Levenshtein returns the edit distance between two strings: the minimum
// number of single-character insertions, deletions, and substitutions
// turning a into b. Uses the two-row dynamic programming formulation,
// O(len(a)*len(b)) time and O(len(b)) space.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min3(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// LevenshteinSimilarity normalizes edit distance into a [0,1] similarity:
// 1 - distance/max(len(a), len(b)). Two empty strings are identical (1).
func LevenshteinSimilarity(a, b string) float64 {
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(Levenshtein(a, b))/float64(longest)
}

// Jaccard returns |A INTERSECT B| / |A UNION B| over two string slices,
// case-insensitive. Two empty sets have similarity 0 (no evidence either
// way, so no credit).
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	union := make(map[string]struct{}, len(a)+len(b))
	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		k := strings.ToLower(strings.TrimSpace(s))
		setA[k] = struct{}{}
		union[k] = struct{}{}
	}

	intersection := 0
	seen := make(map[string]struct{}, len(b))
	for _, s := range b {
		k := strings.ToLower(strings.TrimSpace(s))
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := setA[k]; ok {
			intersection++
		}
		union[k] = struct{}{}
	}

	if len(union) == 0 {
		return 0
	}
	return float64(intersection) / float64(len(union))
}

// TokenJaccard computes Jaccard similarity over the whitespace-delimited
// tokens of two free-text strings. Used as a lightweight industry/domain
// proxy when profiles only carry descriptive text.
func TokenJaccard(a, b string) float64 {
	return Jaccard(tokenize(a), tokenize(b))
}

// tokenize lowercases and splits on whitespace, dropping short tokens
// that carry no signal.
func tokenize(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	tokens := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?()[]\"'")
		if len(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
