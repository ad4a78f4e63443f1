// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

// Package profile defines the profile data model shared by the matching
// engines and the feature-vector extraction used by vector similarity.
package profile

import "time"

// Type distinguishes the two matched populations.
type Type string

const (
	// TypeMentor identifies mentor profiles.
	TypeMentor Type = "mentor"
	// TypeMentee identifies mentee profiles.
	TypeMentee Type = "mentee"
)

// Opposite returns the counterpart population type.
func (t Type) Opposite() Type {
	if t == TypeMentor {
		return TypeMentee
	}
	return TypeMentor
}

// Profile is a user's attribute/preference record used as similarity input.
// It is owned and mutated by the profile store; the engines treat it as
// read-mostly input.
type Profile struct {
	// UserID is the opaque unique identifier.
	UserID string `json:"user_id"`

	// Type is the population the profile belongs to.
	Type Type `json:"type"`

	// Attributes is the open key->value map the feature extractor reads.
	Attributes map[string]Value `json:"attributes"`

	// Preferences is the key->value map a matching request derives its
	// attribute key set from.
	Preferences map[string]Value `json:"preferences"`

	// Weights maps attribute keys to positive weights. Missing keys
	// default to 1.0.
	Weights map[string]float64 `json:"weights,omitempty"`

	// Filters restricts which candidates this profile may match.
	Filters map[string]Filter `json:"filters,omitempty"`

	// IsActive marks profiles eligible as matching candidates.
	IsActive bool `json:"is_active"`

	// UpdatedAt orders candidates most-recently-updated first.
	UpdatedAt time.Time `json:"updated_at"`
}

// Weight returns the weight for an attribute key, defaulting to 1.0.
func (p *Profile) Weight(key string) float64 {
	if w, ok := p.Weights[key]; ok && w > 0 {
		return w
	}
	return 1.0
}

// Filter constrains one candidate attribute. Exactly one of the three
// forms is set: an exact value, a numeric {min,max} range, or a set of
// admissible strings.
type Filter struct {
	// Exact requires the candidate attribute to equal this value.
	Exact *Value `json:"exact,omitempty"`

	// Min/Max bound a numeric attribute inclusively. Either side may be
	// nil for a half-open range.
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`

	// Set requires a string attribute to be one of these values.
	Set []string `json:"set,omitempty"`
}

// Matches reports whether an attribute value satisfies the filter.
// A null value never satisfies a filter.
func (f Filter) Matches(v Value) bool {
	switch {
	case f.Min != nil || f.Max != nil:
		n, ok := v.Number()
		if !ok {
			return false
		}
		if f.Min != nil && n < *f.Min {
			return false
		}
		if f.Max != nil && n > *f.Max {
			return false
		}
		return true

	case len(f.Set) > 0:
		s, ok := v.Str()
		if !ok {
			return false
		}
		for _, allowed := range f.Set {
			if s == allowed {
				return true
			}
		}
		return false

	case f.Exact != nil:
		return v.Equal(*f.Exact)

	default:
		// An empty filter constrains nothing.
		return true
	}
}
