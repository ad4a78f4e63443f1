// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package hybrid

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/manlikeHB/skillsync/internal/collab"
	"github.com/manlikeHB/skillsync/internal/match"
	"github.com/manlikeHB/skillsync/internal/profile"
)

type fakeRecommender struct {
	recs     []collab.Recommendation
	err      error
	gotLimit int
}

func (f *fakeRecommender) Recommend(_ context.Context, req collab.Request) ([]collab.Recommendation, error) {
	f.gotLimit = req.Limit
	return f.recs, f.err
}

type fakeProfiles struct {
	profiles map[string]*profile.Profile
}

func (f *fakeProfiles) GetProfile(_ context.Context, userID string) (*profile.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, match.ErrNotFound
	}
	return p, nil
}

func (f *fakeProfiles) ListActiveCandidates(_ context.Context, excludeUserID string, limit int) ([]*profile.Profile, error) {
	var out []*profile.Profile
	for _, p := range f.profiles {
		if p.UserID == excludeUserID || !p.IsActive {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeProfiles) UpsertProfile(_ context.Context, p *profile.Profile) error {
	f.profiles[p.UserID] = p
	return nil
}

type fakeSink struct {
	saved []match.Result
	err   error
}

func (f *fakeSink) SaveMatchResults(_ context.Context, results []match.Result) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, results...)
	return nil
}

func (f *fakeSink) GetMatchResult(_ context.Context, _ string) (*match.Result, error) {
	return nil, match.ErrNotFound
}

func (f *fakeSink) SaveManualOverride(_ context.Context, _ match.Override) error { return nil }

func (f *fakeSink) MarkOverridden(_ context.Context, _ string, _ match.OverrideRef) error {
	return nil
}

func testProfile(id string, ptype profile.Type, attrs map[string]profile.Value) *profile.Profile {
	if attrs == nil {
		attrs = map[string]profile.Value{}
	}
	return &profile.Profile{UserID: id, Type: ptype, Attributes: attrs, IsActive: true}
}

func newTestCombiner(cf Recommender, profiles *fakeProfiles, sink *fakeSink, cfg Config) *Combiner {
	return NewCombiner(cf, profiles, sink, cfg, zerolog.Nop(), fixedClock{})
}

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

func TestScoreContent_AllFactors(t *testing.T) {
	subject := testProfile("mentee", profile.TypeMentee, map[string]profile.Value{
		"skills":           profile.List("go", "sql"),
		"industry":         profile.String("Fintech"),
		"experience_years": profile.Number(2),
		"location":         profile.String("Lagos"),
		"availability":     profile.String("weekly"),
	})
	candidate := testProfile("mentor", profile.TypeMentor, map[string]profile.Value{
		"skills":           profile.List("go", "sql"),
		"industry":         profile.String("fintech"),
		"experience_years": profile.Number(10),
		"location":         profile.String("lagos"),
		"availability":     profile.String("weekly"),
	})

	cs := scoreContent(subject, candidate)
	if !closeTo(cs.score, 100) {
		t.Errorf("score = %v, want 100", cs.score)
	}
	if len(cs.reasons) != 5 {
		t.Errorf("reasons = %d, want 5: %v", len(cs.reasons), cs.reasons)
	}
}

func TestScoreContent_NoOverlap(t *testing.T) {
	subject := testProfile("mentee", profile.TypeMentee, map[string]profile.Value{
		"skills": profile.List("go"),
	})
	candidate := testProfile("mentor", profile.TypeMentor, map[string]profile.Value{
		"skills": profile.List("painting"),
	})

	cs := scoreContent(subject, candidate)
	if cs.score != 0 {
		t.Errorf("score = %v, want 0", cs.score)
	}
	if len(cs.reasons) != 0 {
		t.Errorf("reasons = %v, want none", cs.reasons)
	}
}

func TestExperienceFit(t *testing.T) {
	tests := []struct {
		name        string
		mentorYears float64
		menteeYears float64
		want        float64
	}{
		{"ideal gap", 8, 2, 1},
		{"narrow gap", 3, 2, 0.5},
		{"huge gap", 25, 2, 0.5},
		{"no edge", 2, 5, 0},
		{"equal", 4, 4, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mentor := testProfile("mentor", profile.TypeMentor, map[string]profile.Value{
				"experience_years": profile.Number(tc.mentorYears),
			})
			mentee := testProfile("mentee", profile.TypeMentee, map[string]profile.Value{
				"experience_years": profile.Number(tc.menteeYears),
			})
			// Orientation holds from either side.
			if got := experienceFit(mentee, mentor); got != tc.want {
				t.Errorf("experienceFit(mentee, mentor) = %v, want %v", got, tc.want)
			}
			if got := experienceFit(mentor, mentee); got != tc.want {
				t.Errorf("experienceFit(mentor, mentee) = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRecommend_MergesBothPasses(t *testing.T) {
	subject := testProfile("mentee-1", profile.TypeMentee, map[string]profile.Value{
		"skills": profile.List("go", "sql"),
	})
	// mentor-1 appears in both passes, mentor-2 only in CF, mentor-3 only
	// in the content pass.
	mentor1 := testProfile("mentor-1", profile.TypeMentor, map[string]profile.Value{
		"skills": profile.List("go", "sql"),
	})
	mentor3 := testProfile("mentor-3", profile.TypeMentor, map[string]profile.Value{
		"skills": profile.List("go", "sql"),
	})
	profiles := &fakeProfiles{profiles: map[string]*profile.Profile{
		"mentee-1": subject, "mentor-1": mentor1, "mentor-3": mentor3,
	}}
	cf := &fakeRecommender{recs: []collab.Recommendation{
		{CandidateID: "mentor-1", Score: 0.9, Confidence: 0.8, Reasons: []string{"cf reason"}},
		{CandidateID: "mentor-2", Score: 0.7, Confidence: 0.6, Reasons: []string{"cf reason"}},
	}}
	sink := &fakeSink{}
	combiner := newTestCombiner(cf, profiles, sink, Config{})

	results, err := combiner.Recommend(context.Background(), collab.Request{
		UserID: "mentee-1", Type: profile.TypeMentee, Limit: 10,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	if cf.gotLimit != 20 {
		t.Errorf("CF oversample limit = %d, want 2x requested (20)", cf.gotLimit)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}

	byTarget := make(map[string]match.Result)
	for _, r := range results {
		byTarget[r.TargetUserID] = r
	}

	// Both skills match exactly: content score 40/100. Merged mentor-1:
	// 0.9*0.6 + 0.4*0.4 = 0.70.
	if got := byTarget["mentor-1"].Score; !closeTo(got, 0.70) {
		t.Errorf("merged score = %v, want 0.70", got)
	}
	// CF-only mentor-2: 0.7*0.6 = 0.42.
	if got := byTarget["mentor-2"].Score; !closeTo(got, 0.42) {
		t.Errorf("cf-only score = %v, want 0.42", got)
	}
	// Content-only mentor-3: 0.4*0.4 = 0.16, confidence 0.5.
	m3 := byTarget["mentor-3"]
	if !closeTo(m3.Score, 0.16) {
		t.Errorf("content-only score = %v, want 0.16", m3.Score)
	}
	if m3.Confidence != contentOnlyConfidence {
		t.Errorf("content-only confidence = %v, want %v", m3.Confidence, contentOnlyConfidence)
	}

	// Sorted descending and persisted.
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Fatalf("results not sorted descending at %d", i)
		}
	}
	if len(sink.saved) != 3 {
		t.Errorf("persisted = %d, want 3", len(sink.saved))
	}
	for _, r := range results {
		if r.Algorithm != "hybrid" {
			t.Errorf("algorithm = %q, want hybrid", r.Algorithm)
		}
		if r.ID == "" {
			t.Error("persisted result missing id")
		}
	}
}

func TestRecommend_PersistsRoundedScores(t *testing.T) {
	subject := testProfile("mentee-1", profile.TypeMentee, nil)
	profiles := &fakeProfiles{profiles: map[string]*profile.Profile{"mentee-1": subject}}
	// 0.437*0.6 = 0.2622; the persisted result must carry 0.26, not the
	// raw blended sum.
	cf := &fakeRecommender{recs: []collab.Recommendation{
		{CandidateID: "mentor-x", Score: 0.437, Confidence: 0.555},
	}}
	sink := &fakeSink{}
	combiner := newTestCombiner(cf, profiles, sink, Config{})

	results, err := combiner.Recommend(context.Background(), collab.Request{
		UserID: "mentee-1", Type: profile.TypeMentee,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if got := results[0].Score; !closeTo(got, 0.26) {
		t.Errorf("Score = %v, want 0.26 (2-decimal rounded)", got)
	}
	if got := results[0].Confidence; !closeTo(got, 0.56) {
		t.Errorf("Confidence = %v, want 0.56 (2-decimal rounded)", got)
	}
	if len(sink.saved) != 1 || !closeTo(sink.saved[0].Score, 0.26) {
		t.Errorf("persisted = %+v, want one result with rounded score", sink.saved)
	}
}

func TestRecommend_ConfidenceFilter(t *testing.T) {
	subject := testProfile("mentee-1", profile.TypeMentee, nil)
	profiles := &fakeProfiles{profiles: map[string]*profile.Profile{"mentee-1": subject}}
	cf := &fakeRecommender{recs: []collab.Recommendation{
		{CandidateID: "mentor-1", Score: 0.9, Confidence: 0.25},
		{CandidateID: "mentor-2", Score: 0.5, Confidence: 0.35},
	}}
	sink := &fakeSink{}
	combiner := newTestCombiner(cf, profiles, sink, Config{})

	results, err := combiner.Recommend(context.Background(), collab.Request{
		UserID: "mentee-1", Type: profile.TypeMentee,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(results) != 1 || results[0].TargetUserID != "mentor-2" {
		t.Fatalf("results = %+v, want only mentor-2 (confidence above threshold)", results)
	}
}

func TestRecommend_LimitAndTruncate(t *testing.T) {
	subject := testProfile("mentee-1", profile.TypeMentee, nil)
	profiles := &fakeProfiles{profiles: map[string]*profile.Profile{"mentee-1": subject}}
	cf := &fakeRecommender{recs: []collab.Recommendation{
		{CandidateID: "mentor-1", Score: 0.9, Confidence: 0.9},
		{CandidateID: "mentor-2", Score: 0.8, Confidence: 0.9},
		{CandidateID: "mentor-3", Score: 0.7, Confidence: 0.9},
	}}
	combiner := newTestCombiner(cf, profiles, &fakeSink{}, Config{})

	results, err := combiner.Recommend(context.Background(), collab.Request{
		UserID: "mentee-1", Type: profile.TypeMentee, Limit: 2,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].TargetUserID != "mentor-1" || results[1].TargetUserID != "mentor-2" {
		t.Errorf("wrong truncation order: %q, %q", results[0].TargetUserID, results[1].TargetUserID)
	}
}

func TestRecommend_CustomWeights(t *testing.T) {
	subject := testProfile("mentee-1", profile.TypeMentee, nil)
	profiles := &fakeProfiles{profiles: map[string]*profile.Profile{"mentee-1": subject}}
	cf := &fakeRecommender{recs: []collab.Recommendation{
		{CandidateID: "mentor-1", Score: 1.0, Confidence: 0.9},
	}}
	combiner := newTestCombiner(cf, profiles, &fakeSink{}, Config{CFWeight: 0.8, ContentWeight: 0.2})

	results, err := combiner.Recommend(context.Background(), collab.Request{
		UserID: "mentee-1", Type: profile.TypeMentee,
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(results) != 1 || !closeTo(results[0].Score, 0.8) {
		t.Fatalf("results = %+v, want one score 0.8", results)
	}
}

func TestRecommend_CFError(t *testing.T) {
	subject := testProfile("mentee-1", profile.TypeMentee, nil)
	profiles := &fakeProfiles{profiles: map[string]*profile.Profile{"mentee-1": subject}}
	cf := &fakeRecommender{err: errors.New("cf down")}
	combiner := newTestCombiner(cf, profiles, &fakeSink{}, Config{})

	if _, err := combiner.Recommend(context.Background(), collab.Request{
		UserID: "mentee-1", Type: profile.TypeMentee,
	}); err == nil {
		t.Fatal("expected collaborative error to propagate")
	}
}

func TestRecommend_UnknownSubject(t *testing.T) {
	profiles := &fakeProfiles{profiles: map[string]*profile.Profile{}}
	combiner := newTestCombiner(&fakeRecommender{}, profiles, &fakeSink{}, Config{})

	_, err := combiner.Recommend(context.Background(), collab.Request{UserID: "ghost"})
	if !errors.Is(err, match.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func closeTo(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}
