// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

// Package anonymize applies privacy transformations to profile attribute
// maps before they leave the matching core, e.g. for analytics exports
// or benchmark dataset seeding.
package anonymize

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/manlikeHB/skillsync/internal/match"
	"github.com/manlikeHB/skillsync/internal/profile"
)

// Technique names one anonymization transformation.
type Technique string

const (
	// TechniqueMasking replaces the middle of a string value with
	// asterisks, keeping a short prefix and suffix.
	TechniqueMasking Technique = "masking"

	// TechniqueGeneralization rounds numeric values down to a bucket
	// boundary.
	TechniqueGeneralization Technique = "generalization"

	// TechniqueSuppression removes the attribute entirely.
	TechniqueSuppression Technique = "suppression"
)

// Defaults for masking and generalization parameters.
const (
	defaultVisibleChars = 2
	defaultBucketSize   = 10
)

// Rule binds one attribute to one technique.
type Rule struct {
	// Field is the attribute key the rule applies to.
	Field string `koanf:"field" validate:"required"`

	// Technique selects the transformation.
	Technique Technique `koanf:"technique" validate:"required,oneof=masking generalization suppression"`

	// VisibleChars is the prefix/suffix length kept by masking.
	// Defaults to 2.
	VisibleChars int `koanf:"visible_chars" validate:"min=0"`

	// BucketSize is the generalization granularity. Defaults to 10.
	BucketSize float64 `koanf:"bucket_size" validate:"min=0"`
}

// Config is the set of rules applied to each record.
type Config struct {
	Rules []Rule `koanf:"rules"`
}

// Validate rejects malformed configuration before any record is touched.
func (c Config) Validate() error {
	for i, r := range c.Rules {
		if r.Field == "" {
			return fmt.Errorf("%w: rule %d has no field", match.ErrInvalidArgument, i)
		}
		switch r.Technique {
		case TechniqueMasking, TechniqueGeneralization, TechniqueSuppression:
		default:
			return fmt.Errorf("%w: rule %d has unknown technique %q", match.ErrInvalidArgument, i, r.Technique)
		}
		if r.VisibleChars < 0 {
			return fmt.Errorf("%w: rule %d has negative visible_chars", match.ErrInvalidArgument, i)
		}
		if r.BucketSize < 0 {
			return fmt.Errorf("%w: rule %d has negative bucket_size", match.ErrInvalidArgument, i)
		}
	}
	return nil
}

// Anonymizer applies a validated rule set to attribute maps.
type Anonymizer struct {
	logger zerolog.Logger
}

// New creates an Anonymizer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(logger zerolog.Logger) *Anonymizer {
	return &Anonymizer{logger: logger.With().Str("component", "anonymize").Logger()}
}

// AnonymizeData transforms one attribute map. An empty input yields an
// empty result without error regardless of which rules are enabled. The
// input map is not mutated.
func (a *Anonymizer) AnonymizeData(data map[string]profile.Value, cfg Config, _ profile.Type) (map[string]profile.Value, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := make(map[string]profile.Value, len(data))
	for k, v := range data {
		out[k] = v
	}

	for _, rule := range cfg.Rules {
		v, ok := out[rule.Field]
		if !ok {
			continue
		}
		if v.IsNull() {
			return nil, fmt.Errorf("%w: field %q is null and cannot be anonymized", match.ErrInvalidArgument, rule.Field)
		}
		switch rule.Technique {
		case TechniqueSuppression:
			delete(out, rule.Field)
		case TechniqueMasking:
			out[rule.Field] = maskValue(v, rule.VisibleChars)
		case TechniqueGeneralization:
			out[rule.Field] = generalizeValue(v, rule.BucketSize)
		}
	}
	return out, nil
}

// RecordError marks one failed record inside a batch.
type RecordError struct {
	Index int
	Err   error
}

// BatchResult separates the records that anonymized cleanly from those
// that failed. Failures are isolated; they never abort the batch.
type BatchResult struct {
	Anonymized []map[string]profile.Value
	Failed     []RecordError
}

// AnonymizeBatch applies the rules to every record. Configuration errors
// reject the whole batch up front; per-record failures are collected and
// the remaining records still complete.
func (a *Anonymizer) AnonymizeBatch(records []map[string]profile.Value, cfg Config, ptype profile.Type) (BatchResult, error) {
	if err := cfg.Validate(); err != nil {
		return BatchResult{}, err
	}

	var result BatchResult
	for i, record := range records {
		out, err := a.AnonymizeData(record, cfg, ptype)
		if err != nil {
			result.Failed = append(result.Failed, RecordError{Index: i, Err: err})
			a.logger.Warn().Err(err).Int("record", i).Msg("record failed anonymization")
			continue
		}
		result.Anonymized = append(result.Anonymized, out)
	}
	return result, nil
}

// maskValue masks string content; lists are masked element-wise. Numeric
// and boolean values pass through untouched since masking is a string
// transformation.
func maskValue(v profile.Value, visible int) profile.Value {
	if visible <= 0 {
		visible = defaultVisibleChars
	}
	if s, ok := v.Str(); ok {
		return profile.String(maskString(s, visible))
	}
	if items, ok := v.List(); ok {
		masked := make([]string, len(items))
		for i, item := range items {
			masked[i] = maskString(item, visible)
		}
		return profile.List(masked...)
	}
	return v
}

func maskString(s string, visible int) string {
	if len(s) <= visible*2 {
		return strings.Repeat("*", len(s))
	}
	return s[:visible] + strings.Repeat("*", len(s)-visible*2) + s[len(s)-visible:]
}

// generalizeValue floors numbers to a bucket boundary. Non-numeric values
// pass through untouched.
func generalizeValue(v profile.Value, bucket float64) profile.Value {
	if bucket <= 0 {
		bucket = defaultBucketSize
	}
	if n, ok := v.Number(); ok {
		return profile.Number(math.Floor(n/bucket) * bucket)
	}
	return v
}
