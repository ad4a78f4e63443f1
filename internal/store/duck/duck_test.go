// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package duck

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/manlikeHB/skillsync/internal/collab"
	"github.com/manlikeHB/skillsync/internal/match"
	"github.com/manlikeHB/skillsync/internal/profile"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("open in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestProfileRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if _, err := s.GetProfile(ctx, "nobody"); !errors.Is(err, match.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	minAge := 25.0
	p := &profile.Profile{
		UserID: "u-1",
		Type:   profile.TypeMentor,
		Attributes: map[string]profile.Value{
			"skills":           profile.List("go", "sql"),
			"reputation_score": profile.Number(4.5),
			"remote":           profile.Bool(true),
			"city":             profile.String("lagos"),
		},
		Preferences: map[string]profile.Value{
			"focus_area": profile.String("backend"),
		},
		Weights: map[string]float64{"skills": 2.0},
		Filters: map[string]profile.Filter{
			"age": {Min: &minAge},
		},
		IsActive:  true,
		UpdatedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := s.UpsertProfile(ctx, p); err != nil {
		t.Fatalf("UpsertProfile: %v", err)
	}

	got, err := s.GetProfile(ctx, "u-1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.Type != profile.TypeMentor || !got.IsActive {
		t.Errorf("profile = %+v", got)
	}
	if skills, _ := got.Attributes["skills"].List(); len(skills) != 2 {
		t.Errorf("skills = %v, want 2 entries", skills)
	}
	if n, ok := got.Attributes["reputation_score"].Number(); !ok || n != 4.5 {
		t.Errorf("reputation_score = %v", n)
	}
	if got.Weight("skills") != 2.0 {
		t.Errorf("weight = %v, want 2.0", got.Weight("skills"))
	}
	if f, ok := got.Filters["age"]; !ok || f.Min == nil || *f.Min != 25 {
		t.Errorf("filter = %+v", f)
	}

	// Upsert replaces.
	p.IsActive = false
	if err := s.UpsertProfile(ctx, p); err != nil {
		t.Fatalf("re-upsert: %v", err)
	}
	again, _ := s.GetProfile(ctx, "u-1")
	if again.IsActive {
		t.Error("upsert did not replace is_active")
	}
}

func TestListActiveCandidates(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i, spec := range []struct {
		id     string
		active bool
	}{
		{"old", true},
		{"new", true},
		{"inactive", false},
	} {
		err := s.UpsertProfile(ctx, &profile.Profile{
			UserID:      spec.id,
			Type:        profile.TypeMentor,
			Attributes:  map[string]profile.Value{},
			Preferences: map[string]profile.Value{},
			IsActive:    spec.active,
			UpdatedAt:   base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("seed %s: %v", spec.id, err)
		}
	}

	got, err := s.ListActiveCandidates(ctx, "", 10)
	if err != nil {
		t.Fatalf("ListActiveCandidates: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("candidates = %d, want 2", len(got))
	}
	if got[0].UserID != "new" {
		t.Errorf("first = %s, want most recent", got[0].UserID)
	}

	excluded, _ := s.ListActiveCandidates(ctx, "new", 10)
	if len(excluded) != 1 || excluded[0].UserID != "old" {
		t.Errorf("excluded listing = %+v", excluded)
	}
}

func TestMatchResultsAndOverride(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	created := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	results := []match.Result{
		{
			ID: "mr-1", SourceUserID: "u-1", TargetUserID: "u-2",
			Score: 0.86, Confidence: 0.7, Algorithm: "cosine",
			Reasons:   []string{"High compatibility - profiles are a very close match"},
			Metadata:  map[string]float64{"raw_similarity": 0.86},
			CreatedAt: created,
		},
		{
			ID: "mr-2", SourceUserID: "u-1", TargetUserID: "u-3",
			Score: 0.41, Confidence: 0.5, Algorithm: "cosine",
			Reasons:   []string{"Moderate compatibility - some shared traits"},
			CreatedAt: created,
		},
	}
	if err := s.SaveMatchResults(ctx, results); err != nil {
		t.Fatalf("SaveMatchResults: %v", err)
	}

	got, err := s.GetMatchResult(ctx, "mr-1")
	if err != nil {
		t.Fatalf("GetMatchResult: %v", err)
	}
	if got.Score != 0.86 || got.IsOverridden() {
		t.Errorf("result = %+v", got)
	}
	if got.Metadata["raw_similarity"] != 0.86 {
		t.Errorf("metadata = %v", got.Metadata)
	}

	ref := match.OverrideRef{OverrideID: "ov-1", AdminID: "admin-1", AppliedAt: created}
	if err := s.MarkOverridden(ctx, "mr-1", ref); err != nil {
		t.Fatalf("MarkOverridden: %v", err)
	}

	err = s.MarkOverridden(ctx, "mr-1", match.OverrideRef{OverrideID: "ov-2", AdminID: "admin-2"})
	if !errors.Is(err, match.ErrConflict) {
		t.Fatalf("second MarkOverridden err = %v, want ErrConflict", err)
	}
	if err := s.MarkOverridden(ctx, "ghost", ref); !errors.Is(err, match.ErrNotFound) {
		t.Fatalf("unknown result err = %v, want ErrNotFound", err)
	}

	overridden, _ := s.GetMatchResult(ctx, "mr-1")
	if !overridden.IsOverridden() || overridden.Override.OverrideID != "ov-1" {
		t.Errorf("override = %+v, want ov-1 kept", overridden.Override)
	}

	o := match.Override{
		ID: "ov-1", SourceUserID: "u-1", TargetUserID: "u-2",
		OverrideScore: 0.99, OverrideConfidence: 1.0,
		Reason: "long-standing working relationship", AdminID: "admin-1",
		OriginalMatchID: "mr-1", CreatedAt: created,
	}
	if err := s.SaveManualOverride(ctx, o); err != nil {
		t.Fatalf("SaveManualOverride: %v", err)
	}
}

func TestCompletedMatches(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	seed := []collab.HistoricalMatch{
		{
			ID: "hm-1", MentorID: "m-1", MenteeID: "e-1", AlgorithmScore: 0.8,
			StartDate: start, EndDate: start.AddDate(0, 3, 0),
			Feedback: []collab.Feedback{{Rating: 5, Tags: []string{"helpful"}}},
		},
		{ID: "hm-2", MentorID: "m-2", MenteeID: "e-1", AlgorithmScore: 0.6},
	}
	for _, hm := range seed {
		if err := s.AddCompletedMatch(ctx, hm); err != nil {
			t.Fatalf("AddCompletedMatch: %v", err)
		}
	}

	all, err := s.ListCompletedMatches(ctx, "", "")
	if err != nil {
		t.Fatalf("ListCompletedMatches: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all = %d, want 2", len(all))
	}

	mentorSide, _ := s.ListCompletedMatches(ctx, "m-1", profile.TypeMentor)
	if len(mentorSide) != 1 || mentorSide[0].ID != "hm-1" {
		t.Fatalf("mentor side = %+v", mentorSide)
	}
	if len(mentorSide[0].Feedback) != 1 || mentorSide[0].Feedback[0].Rating != 5 {
		t.Errorf("feedback = %+v", mentorSide[0].Feedback)
	}

	menteeSide, _ := s.ListCompletedMatches(ctx, "e-1", "")
	if len(menteeSide) != 2 {
		t.Errorf("mentee any-side = %d, want 2", len(menteeSide))
	}
}
