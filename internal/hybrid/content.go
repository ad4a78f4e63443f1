// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package hybrid

import (
	"fmt"
	"strings"

	"github.com/manlikeHB/skillsync/internal/profile"
	"github.com/manlikeHB/skillsync/internal/similarity"
)

// Content-pass factor weights, on a 0-100 scale. This is a deliberately
// light per-record heuristic, not the vector strategies used by the main
// matching engine.
const (
	skillsFactor       = 40.0
	industryFactor     = 20.0
	experienceFactor   = 15.0
	locationFactor     = 15.0
	availabilityFactor = 10.0
)

// Mentorship works best when the mentor is meaningfully, but not
// overwhelmingly, more experienced than the mentee.
const (
	minIdealGapYears = 2.0
	maxIdealGapYears = 15.0
)

// contentScore is one candidate's content-based evaluation.
type contentScore struct {
	candidateID string
	score       float64 // 0-100
	reasons     []string
}

// scoreContent evaluates a candidate against the subject on the cheap
// per-record factors. Both orderings of (mentor, mentee) are accepted;
// the experience factor orients itself from the profile types.
func scoreContent(subject, candidate *profile.Profile) contentScore {
	cs := contentScore{candidateID: candidate.UserID}

	subjectSkills, _ := subject.Attributes["skills"].List()
	candidateSkills, _ := candidate.Attributes["skills"].List()
	if overlap := similarity.Jaccard(subjectSkills, candidateSkills); overlap > 0 {
		cs.score += overlap * skillsFactor
		cs.reasons = append(cs.reasons,
			fmt.Sprintf("Skills overlap at %.0f%%", overlap*100))
	}

	if sim := industrySimilarity(subject, candidate); sim > 0 {
		cs.score += sim * industryFactor
		if sim == 1 {
			cs.reasons = append(cs.reasons, "Same industry")
		} else {
			cs.reasons = append(cs.reasons, "Related industries")
		}
	}

	if fit := experienceFit(subject, candidate); fit > 0 {
		cs.score += fit * experienceFactor
		cs.reasons = append(cs.reasons, "Experience gap suits mentorship")
	}

	if sameStringAttr(subject, candidate, "location") {
		cs.score += locationFactor
		cs.reasons = append(cs.reasons, "Same location")
	}

	if sameStringAttr(subject, candidate, "availability") {
		cs.score += availabilityFactor
		cs.reasons = append(cs.reasons, "Matching availability")
	}

	return cs
}

// industrySimilarity is 1 for an exact (case-insensitive) industry match
// and the token overlap otherwise.
func industrySimilarity(a, b *profile.Profile) float64 {
	ia, okA := a.Attributes["industry"].Str()
	ib, okB := b.Attributes["industry"].Str()
	if !okA || !okB {
		return 0
	}
	if strings.EqualFold(ia, ib) {
		return 1
	}
	return similarity.TokenJaccard(ia, ib)
}

// experienceFit scores the mentor-over-mentee experience gap: full credit
// inside the ideal band, half credit just outside it, nothing when the
// mentor has no edge at all.
func experienceFit(subject, candidate *profile.Profile) float64 {
	mentor, mentee := subject, candidate
	if subject.Type == profile.TypeMentee {
		mentor, mentee = candidate, subject
	}
	mentorYears, okM := mentor.Attributes["experience_years"].Number()
	menteeYears, okE := mentee.Attributes["experience_years"].Number()
	if !okM || !okE {
		return 0
	}

	gap := mentorYears - menteeYears
	switch {
	case gap >= minIdealGapYears && gap <= maxIdealGapYears:
		return 1
	case gap > 0:
		return 0.5
	default:
		return 0
	}
}

func sameStringAttr(a, b *profile.Profile, key string) bool {
	sa, okA := a.Attributes[key].Str()
	sb, okB := b.Attributes[key].Str()
	return okA && okB && strings.EqualFold(sa, sb)
}
