// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package profile

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestExtractor_Vector(t *testing.T) {
	p := &Profile{
		UserID: "u1",
		Attributes: map[string]Value{
			"age":           Number(49),    // (49-18)/(80-18) = 0.5
			"rating":        Number(4.0),   // 4/5 = 0.8
			"remote":        Bool(true),    // 1
			"onsite":        Bool(false),   // 0
			"skills":        List("go", "sql", "duckdb"), // 3/10
			"custom_metric": Number(50),    // fallback range: 50/100
			"bio":           String("long-time gopher"),  // unusable -> 0
		},
	}

	tests := []struct {
		name string
		keys []string
		want []float64
	}{
		{
			name: "numeric normalization with known ranges",
			keys: []string{"age", "rating"},
			want: []float64{0.5, 0.8},
		},
		{
			name: "booleans and lists",
			keys: []string{"remote", "onsite", "skills"},
			want: []float64{1, 0, 0.3},
		},
		{
			name: "fallback range for unknown numeric key",
			keys: []string{"custom_metric"},
			want: []float64{0.5},
		},
		{
			name: "missing and non-numeric degrade to zero",
			keys: []string{"nonexistent", "bio"},
			want: []float64{0, 0},
		},
		{
			name: "vector length follows request key order",
			keys: []string{"rating", "age", "rating"},
			want: []float64{0.8, 0.5, 0.8},
		},
	}

	ex := NewExtractor(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ex.Vector(p, tt.keys)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !almostEqual(got[i], tt.want[i]) {
					t.Errorf("coord[%d] (%s) = %f, want %f", i, tt.keys[i], got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractor_ClipsOutOfRange(t *testing.T) {
	p := &Profile{Attributes: map[string]Value{
		"age":    Number(200),
		"rating": Number(-3),
	}}

	got := NewExtractor(nil).Vector(p, []string{"age", "rating"})
	if got[0] != 1 {
		t.Errorf("over-range age = %f, want 1", got[0])
	}
	if got[1] != 0 {
		t.Errorf("under-range rating = %f, want 0", got[1])
	}
}

func TestExtractor_ListLengthSaturates(t *testing.T) {
	items := make([]string, 25)
	for i := range items {
		items[i] = "skill"
	}
	p := &Profile{Attributes: map[string]Value{"skills": List(items...)}}

	got := NewExtractor(nil).Vector(p, []string{"skills"})
	if got[0] != 1 {
		t.Errorf("saturated list = %f, want 1", got[0])
	}
}

func TestExtractor_MissingValuePolicy(t *testing.T) {
	p := &Profile{Attributes: map[string]Value{}}

	ex := NewExtractor(ConstantMissing{Value: 0.5})
	got := ex.Vector(p, []string{"age", "skills"})
	for i, c := range got {
		if !almostEqual(c, 0.5) {
			t.Errorf("coord[%d] = %f, want 0.5 from policy", i, c)
		}
	}
}

func TestExtractor_EqualLengthForSameRequest(t *testing.T) {
	a := &Profile{Attributes: map[string]Value{"age": Number(30)}}
	b := &Profile{Attributes: map[string]Value{"skills": List("go")}}
	keys := []string{"age", "skills", "rating", "whatever"}

	ex := NewExtractor(nil)
	va, vb := ex.Vector(a, keys), ex.Vector(b, keys)
	if len(va) != len(vb) || len(va) != len(keys) {
		t.Errorf("lengths %d/%d, want both %d", len(va), len(vb), len(keys))
	}
}

func TestFilter_Matches(t *testing.T) {
	minAge, maxAge := 25.0, 40.0
	exact := String("engineering")

	tests := []struct {
		name   string
		filter Filter
		value  Value
		want   bool
	}{
		{"range inside", Filter{Min: &minAge, Max: &maxAge}, Number(30), true},
		{"range at bound", Filter{Min: &minAge, Max: &maxAge}, Number(25), true},
		{"range below", Filter{Min: &minAge, Max: &maxAge}, Number(20), false},
		{"range above", Filter{Min: &minAge, Max: &maxAge}, Number(55), false},
		{"range non-numeric", Filter{Min: &minAge}, String("30"), false},
		{"set member", Filter{Set: []string{"remote", "hybrid"}}, String("hybrid"), true},
		{"set non-member", Filter{Set: []string{"remote", "hybrid"}}, String("onsite"), false},
		{"exact match", Filter{Exact: &exact}, String("engineering"), true},
		{"exact mismatch", Filter{Exact: &exact}, String("sales"), false},
		{"null never matches exact", Filter{Exact: &exact}, Null(), false},
		{"empty filter matches all", Filter{}, Null(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.value); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValue_JSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    Value
	}{
		{"number", Number(3.5)},
		{"bool", Bool(true)},
		{"string", String("golang")},
		{"list", List("a", "b")},
		{"null", Null()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.v.MarshalJSON()
			if err != nil {
				t.Fatalf("MarshalJSON: %v", err)
			}
			var back Value
			if err := back.UnmarshalJSON(data); err != nil {
				t.Fatalf("UnmarshalJSON(%s): %v", data, err)
			}
			if !back.Equal(tt.v) {
				t.Errorf("round trip %s -> %v, want %v", data, back, tt.v)
			}
		})
	}
}

func TestType_Opposite(t *testing.T) {
	if TypeMentor.Opposite() != TypeMentee {
		t.Error("mentor opposite should be mentee")
	}
	if TypeMentee.Opposite() != TypeMentor {
		t.Error("mentee opposite should be mentor")
	}
}
