// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package validation

import (
	"errors"
	"strings"
	"testing"
)

type sampleRequest struct {
	UserID    string  `validate:"required"`
	Limit     int     `validate:"min=1,max=500"`
	Threshold float64 `validate:"min=0,max=1"`
	Strategy  string  `validate:"oneof=user_based item_based hybrid"`
}

func validSample() sampleRequest {
	return sampleRequest{UserID: "u1", Limit: 50, Threshold: 0.1, Strategy: "hybrid"}
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(validSample()); err != nil {
		t.Errorf("Struct() = %v, want nil", err)
	}
}

func TestStruct_CollectsAllFailures(t *testing.T) {
	req := sampleRequest{Limit: 0, Threshold: 2, Strategy: "bogus"}

	err := Struct(req)
	if err == nil {
		t.Fatal("Struct() = nil, want errors")
	}

	var verrs *Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("error type %T, want *Errors", err)
	}
	if len(verrs.Fields()) != 4 {
		t.Errorf("field errors = %d, want 4 (%v)", len(verrs.Fields()), verrs)
	}
}

func TestStruct_Messages(t *testing.T) {
	tests := []struct {
		name string
		req  sampleRequest
		want string
	}{
		{"required", func() sampleRequest { r := validSample(); r.UserID = ""; return r }(), "UserID is required"},
		{"min", func() sampleRequest { r := validSample(); r.Limit = 0; return r }(), "Limit must be at least 1"},
		{"max", func() sampleRequest { r := validSample(); r.Threshold = 1.5; return r }(), "Threshold must be at most 1"},
		{"oneof", func() sampleRequest { r := validSample(); r.Strategy = "x"; return r }(), "Strategy must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.req)
			if err == nil {
				t.Fatal("want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("message %q, want contains %q", err.Error(), tt.want)
			}
		})
	}
}
