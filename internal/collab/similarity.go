// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package collab

import (
	"math"

	"github.com/manlikeHB/skillsync/internal/profile"
	"github.com/manlikeHB/skillsync/internal/similarity"
)

// Weighted blend of the user-similarity signals. The weights sum to 1.
const (
	skillsWeight       = 0.4
	experienceWeight   = 0.2
	industryWeight     = 0.15
	availabilityWeight = 0.1
	ratingWeight       = 0.15
)

// minSimilarity discards candidates with negligible blended similarity.
const minSimilarity = 0.1

// maxRating is the rating scale ceiling, used to normalize closeness.
const maxRating = 5.0

// userSimilarity computes the weighted pairwise similarity of two users:
// skills Jaccard, experience closeness via reputation-score relative
// difference, free-text token overlap as an industry proxy, availability
// exact match, and historical-rating closeness from the interaction matrix.
func userSimilarity(a, b *profile.Profile, matrix *interactionMatrix) float64 {
	skills := similarity.Jaccard(listAttr(a, "skills"), listAttr(b, "skills"))
	experience := experienceCloseness(numAttr(a, "reputation_score"), numAttr(b, "reputation_score"))
	industry := similarity.TokenJaccard(textAttr(a), textAttr(b))
	availability := availabilityMatch(a, b)
	rating := ratingCloseness(matrix.averageRating(a.UserID), matrix.averageRating(b.UserID))

	return skills*skillsWeight +
		experience*experienceWeight +
		industry*industryWeight +
		availability*availabilityWeight +
		rating*ratingWeight
}

// sharedPreferences is the Jaccard overlap of the two users' preference
// key sets.
func sharedPreferences(a, b *profile.Profile) float64 {
	keysA := make([]string, 0, len(a.Preferences))
	for k := range a.Preferences {
		keysA = append(keysA, k)
	}
	keysB := make([]string, 0, len(b.Preferences))
	for k := range b.Preferences {
		keysB = append(keysB, k)
	}
	return similarity.Jaccard(keysA, keysB)
}

// experienceCloseness maps the relative difference of two reputation
// scores to [0,1]. Two zero scores are treated as identical.
func experienceCloseness(a, b float64) float64 {
	denom := math.Max(a, b)
	if denom == 0 {
		return 1
	}
	return 1 - math.Abs(a-b)/denom
}

// ratingCloseness maps the absolute difference of two average ratings to
// [0,1] over the rating scale.
func ratingCloseness(a, b float64) float64 {
	return 1 - math.Abs(a-b)/maxRating
}

// availabilityMatch is 1 for an exact availability-string match, else 0.
func availabilityMatch(a, b *profile.Profile) float64 {
	sa, okA := a.Attributes["availability"].Str()
	sb, okB := b.Attributes["availability"].Str()
	if okA && okB && sa == sb {
		return 1
	}
	return 0
}

// listAttr returns a list attribute, nil when absent or mistyped.
func listAttr(p *profile.Profile, key string) []string {
	items, _ := p.Attributes[key].List()
	return items
}

// numAttr returns a numeric attribute, 0 when absent or mistyped.
func numAttr(p *profile.Profile, key string) float64 {
	n, _ := p.Attributes[key].Number()
	return n
}

// textAttr returns the profile's industry text, falling back to the bio.
func textAttr(p *profile.Profile) string {
	if s, ok := p.Attributes["industry"].Str(); ok {
		return s
	}
	s, _ := p.Attributes["bio"].Str()
	return s
}
