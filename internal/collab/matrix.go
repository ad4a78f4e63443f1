// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package collab

import "time"

const (
	// neutralRating substitutes for matches with no feedback.
	neutralRating = 3.0

	// defaultDurationDays substitutes when start or end dates are missing.
	defaultDurationDays = 30

	// successRatingThreshold marks a match successful when the average
	// feedback rating reaches it.
	successRatingThreshold = 4.0
)

// interaction is one user's view of a completed match: derived outcome
// metrics joined from the match record and its feedback. Never persisted;
// the matrix is rebuilt from scratch each run.
type interaction struct {
	matchID        string
	counterpartID  string
	algorithmScore float64
	avgRating      float64
	feedbackCount  int
	durationDays   int
	success        bool
	successRate    float64 // fraction of feedback entries rating >= 4
}

// interactionMatrix indexes interactions by user; each completed match
// contributes one entry for the mentor and one for the mentee.
type interactionMatrix struct {
	byUser map[string][]interaction
}

// buildMatrix derives the interaction matrix from completed matches.
func buildMatrix(matches []HistoricalMatch) *interactionMatrix {
	m := &interactionMatrix{byUser: make(map[string][]interaction, len(matches)*2)}

	for _, hm := range matches {
		avg, count, successRate := summarizeFeedback(hm.Feedback)

		base := interaction{
			matchID:        hm.ID,
			algorithmScore: hm.AlgorithmScore,
			avgRating:      avg,
			feedbackCount:  count,
			durationDays:   durationDays(hm.StartDate, hm.EndDate),
			success:        avg >= successRatingThreshold,
			successRate:    successRate,
		}

		mentorView := base
		mentorView.counterpartID = hm.MenteeID
		m.byUser[hm.MentorID] = append(m.byUser[hm.MentorID], mentorView)

		menteeView := base
		menteeView.counterpartID = hm.MentorID
		m.byUser[hm.MenteeID] = append(m.byUser[hm.MenteeID], menteeView)
	}
	return m
}

// interactions returns a user's derived interactions.
func (m *interactionMatrix) interactions(userID string) []interaction {
	return m.byUser[userID]
}

// successfulInteractions returns only the user's successful matches.
func (m *interactionMatrix) successfulInteractions(userID string) []interaction {
	var out []interaction
	for _, in := range m.byUser[userID] {
		if in.success {
			out = append(out, in)
		}
	}
	return out
}

// averageRating returns the user's mean rating across all interactions,
// neutral when the user has no history.
func (m *interactionMatrix) averageRating(userID string) float64 {
	ins := m.byUser[userID]
	if len(ins) == 0 {
		return neutralRating
	}
	sum := 0.0
	for _, in := range ins {
		sum += in.avgRating
	}
	return sum / float64(len(ins))
}

// counterparts returns the set of users this user has been matched with.
func (m *interactionMatrix) counterparts(userID string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, in := range m.byUser[userID] {
		set[in.counterpartID] = struct{}{}
	}
	return set
}

// commonMatches counts counterpart users shared by two subjects.
func (m *interactionMatrix) commonMatches(a, b string) int {
	setA := m.counterparts(a)
	count := 0
	for c := range m.counterparts(b) {
		if _, ok := setA[c]; ok {
			count++
		}
	}
	return count
}

// summarizeFeedback computes the mean rating (neutral 3 when empty), the
// entry count, and the fraction of entries rating at least 4.
func summarizeFeedback(fb []Feedback) (avg float64, count int, successRate float64) {
	if len(fb) == 0 {
		return neutralRating, 0, 0
	}

	sum, successes := 0, 0
	for _, f := range fb {
		sum += f.Rating
		if float64(f.Rating) >= successRatingThreshold {
			successes++
		}
	}
	return float64(sum) / float64(len(fb)), len(fb), float64(successes) / float64(len(fb))
}

// durationDays computes the match duration, defaulting when either
// boundary is missing.
func durationDays(start, end time.Time) int {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return defaultDurationDays
	}
	return int(end.Sub(start).Hours() / 24)
}
