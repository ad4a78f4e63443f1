// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package profile

// numericRange is a known min/max normalization range for an attribute key.
type numericRange struct {
	min float64
	max float64
}

// knownRanges maps attribute keys to their normalization ranges. Keys not
// listed here fall back to [0, 100].
var knownRanges = map[string]numericRange{
	"age":              {18, 80},
	"income":           {0, 500000},
	"salary":           {0, 500000},
	"rating":           {0, 5},
	"reputation_score": {0, 5},
	"experience_years": {0, 40},
}

// fallbackRange is used for numeric attributes with no known range.
var fallbackRange = numericRange{0, 100}

// listLengthCap is the list length at which the length heuristic saturates.
const listLengthCap = 10.0

// MissingValuePolicy decides the vector coordinate for an attribute that is
// absent from a profile (or present with an unusable type).
//
// The default policy maps absence to 0, which deliberately conflates
// "attribute is genuinely zero" with "attribute is missing" - scores degrade
// rather than erroring. Callers that need to distinguish the two can supply
// their own policy.
type MissingValuePolicy interface {
	// MissingValue returns the coordinate for the missing attribute key.
	MissingValue(key string) float64
}

// ZeroMissing is the default MissingValuePolicy: absent attributes
// contribute 0.
type ZeroMissing struct{}

// MissingValue returns 0 for every key.
func (ZeroMissing) MissingValue(string) float64 { return 0 }

// ConstantMissing maps every absent attribute to a fixed coordinate,
// e.g. 0.5 to keep missing data score-neutral.
type ConstantMissing struct {
	Value float64
}

// MissingValue returns the configured constant.
func (c ConstantMissing) MissingValue(string) float64 { return c.Value }

// Extractor turns a profile's attribute map into a fixed-order numeric
// vector for a requested set of attribute keys. Vector length and coordinate
// order are determined by the request's key set, not by the profile, so two
// profiles extracted under the same request always yield equal-length vectors.
type Extractor struct {
	missing MissingValuePolicy
}

// NewExtractor creates an extractor. A nil policy defaults to ZeroMissing.
func NewExtractor(missing MissingValuePolicy) *Extractor {
	if missing == nil {
		missing = ZeroMissing{}
	}
	return &Extractor{missing: missing}
}

// Vector encodes the profile over the ordered key set. Per key:
//
//   - numeric attributes are min/max-normalized over the key's known range
//     (fallback [0,100]) and clipped to [0,1]
//   - booleans map to {0, 1}
//   - lists map to min(len/10, 1)
//   - anything else, including missing keys, defers to the missing-value
//     policy
func (e *Extractor) Vector(p *Profile, keys []string) []float64 {
	vec := make([]float64, len(keys))
	for i, key := range keys {
		vec[i] = e.coordinate(p, key)
	}
	return vec
}

// coordinate computes a single vector coordinate.
func (e *Extractor) coordinate(p *Profile, key string) float64 {
	v, ok := p.Attributes[key]
	if !ok {
		return e.missing.MissingValue(key)
	}

	switch v.Kind() {
	case KindNumber:
		n, _ := v.Number()
		return normalize(key, n)
	case KindBool:
		b, _ := v.Bool()
		if b {
			return 1
		}
		return 0
	case KindList:
		items, _ := v.List()
		l := float64(len(items)) / listLengthCap
		if l > 1 {
			return 1
		}
		return l
	default:
		return e.missing.MissingValue(key)
	}
}

// normalize min/max-normalizes a numeric attribute and clips to [0,1].
func normalize(key string, n float64) float64 {
	r, ok := knownRanges[key]
	if !ok {
		r = fallbackRange
	}

	span := r.max - r.min
	if span <= 0 {
		return 0
	}

	scaled := (n - r.min) / span
	if scaled < 0 {
		return 0
	}
	if scaled > 1 {
		return 1
	}
	return scaled
}
