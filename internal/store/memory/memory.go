// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

// Package memory is the in-process store used by tests, the benchmark
// tool, and single-node deployments that do not need durable storage. It
// implements the profile store, result sink, and interaction-history
// store contracts.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/manlikeHB/skillsync/internal/collab"
	"github.com/manlikeHB/skillsync/internal/match"
	"github.com/manlikeHB/skillsync/internal/profile"
)

// Store holds all state behind one mutex. Operations are short map
// touches; contention is not a concern at this store's intended scale.
type Store struct {
	mu        sync.Mutex
	profiles  map[string]*profile.Profile
	results   map[string]*match.Result
	overrides map[string]match.Override
	history   []collab.HistoricalMatch
}

// New creates an empty store.
func New() *Store {
	return &Store{
		profiles:  make(map[string]*profile.Profile),
		results:   make(map[string]*match.Result),
		overrides: make(map[string]match.Override),
	}
}

// GetProfile implements match.ProfileStore.
func (s *Store) GetProfile(_ context.Context, userID string) (*profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", userID, match.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

// ListActiveCandidates implements match.ProfileStore. Results are ordered
// most-recently-updated first.
func (s *Store) ListActiveCandidates(_ context.Context, excludeUserID string, limit int) ([]*profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*profile.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		if p.UserID == excludeUserID || !p.IsActive {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// UpsertProfile implements match.ProfileStore.
func (s *Store) UpsertProfile(_ context.Context, p *profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.profiles[p.UserID] = &cp
	return nil
}

// SaveMatchResults implements match.ResultSink.
func (s *Store) SaveMatchResults(_ context.Context, results []match.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range results {
		cp := results[i]
		s.results[cp.ID] = &cp
	}
	return nil
}

// GetMatchResult implements match.ResultSink.
func (s *Store) GetMatchResult(_ context.Context, id string) (*match.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.results[id]
	if !ok {
		return nil, fmt.Errorf("match result %s: %w", id, match.ErrNotFound)
	}
	cp := *r
	return &cp, nil
}

// SaveManualOverride implements match.ResultSink.
func (s *Store) SaveManualOverride(_ context.Context, o match.Override) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[o.ID] = o
	return nil
}

// MarkOverridden implements match.ResultSink. The check and the write
// happen under one lock, so two concurrent overrides of the same result
// cannot both succeed.
func (s *Store) MarkOverridden(_ context.Context, matchResultID string, ref match.OverrideRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.results[matchResultID]
	if !ok {
		return fmt.Errorf("match result %s: %w", matchResultID, match.ErrNotFound)
	}
	if r.Override != nil {
		return fmt.Errorf("match result %s already overridden by %s: %w",
			matchResultID, r.Override.OverrideID, match.ErrConflict)
	}
	refCopy := ref
	r.Override = &refCopy
	return nil
}

// GetManualOverride returns a stored override by id.
func (s *Store) GetManualOverride(_ context.Context, id string) (match.Override, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.overrides[id]
	if !ok {
		return match.Override{}, fmt.Errorf("override %s: %w", id, match.ErrNotFound)
	}
	return o, nil
}

// AddCompletedMatch records one historical match for the collaborative
// engine.
func (s *Store) AddCompletedMatch(_ context.Context, hm collab.HistoricalMatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, hm)
	return nil
}

// ListCompletedMatches implements collab.HistoryStore. An empty userID
// returns everything; a non-empty userID narrows to matches involving
// that user, on the side named by ptype when it is set.
func (s *Store) ListCompletedMatches(_ context.Context, userID string, ptype profile.Type) ([]collab.HistoricalMatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]collab.HistoricalMatch, 0, len(s.history))
	for _, hm := range s.history {
		if !historyMatches(hm, userID, ptype) {
			continue
		}
		out = append(out, hm)
	}
	return out, nil
}

func historyMatches(hm collab.HistoricalMatch, userID string, ptype profile.Type) bool {
	if userID == "" {
		return true
	}
	switch ptype {
	case profile.TypeMentor:
		return hm.MentorID == userID
	case profile.TypeMentee:
		return hm.MenteeID == userID
	default:
		return hm.MentorID == userID || hm.MenteeID == userID
	}
}
