// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package benchmark

import (
	"fmt"
	"math/rand"
)

// nearDuplicateRate is the fixed fraction of targets built as jittered
// copies of source records.
const nearDuplicateRate = 0.3

var firstNames = []string{
	"alex", "jordan", "taylor", "morgan", "casey", "riley", "avery",
	"quinn", "dakota", "reese", "emerson", "finley", "hayden", "rowan",
}

var lastNames = []string{
	"smith", "johnson", "williams", "brown", "jones", "garcia", "miller",
	"davis", "martinez", "lopez", "wilson", "anderson", "thomas", "moore",
}

var emailDomains = []string{
	"example.com", "mail.test", "inbox.dev", "post.example.org",
}

var cities = []string{
	"lagos", "nairobi", "accra", "cape town", "london", "berlin",
	"austin", "toronto",
}

// GeneratorConfig controls synthetic dataset shape.
type GeneratorConfig struct {
	// SourceSize is the number of source records; the target set is
	// built to the same size.
	SourceSize int `koanf:"source_size" validate:"min=1"`

	// DuplicateRate is the fraction of targets that are exact copies of
	// source records.
	DuplicateRate float64 `koanf:"duplicate_rate" validate:"min=0,max=1"`

	// NoiseLevel is the per-character probability of corruption applied
	// to near-duplicate names and emails.
	NoiseLevel float64 `koanf:"noise_level" validate:"min=0,max=1"`

	// Seed makes generation reproducible.
	Seed int64 `koanf:"seed"`
}

// Dataset is one generated benchmark input.
type Dataset struct {
	Source []Record
	Target []Record

	// ExpectedMatches counts the exact and near duplicates planted in
	// the target set.
	ExpectedMatches int
}

// Generator produces synthetic record sets with controlled duplication
// and noise.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// NewGenerator creates a generator from cfg.
func NewGenerator(cfg GeneratorConfig) *Generator {
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// Generate builds a source set and a same-sized target set from three
// buckets: exact duplicates, jittered near-duplicates, and random filler.
func (g *Generator) Generate() Dataset {
	source := make([]Record, g.cfg.SourceSize)
	for i := range source {
		source[i] = g.randomRecord(fmt.Sprintf("src-%d", i))
	}

	exactCount := int(float64(g.cfg.SourceSize) * g.cfg.DuplicateRate)
	nearCount := int(float64(g.cfg.SourceSize) * nearDuplicateRate)
	if exactCount+nearCount > g.cfg.SourceSize {
		nearCount = g.cfg.SourceSize - exactCount
	}

	target := make([]Record, 0, g.cfg.SourceSize)
	for i := 0; i < exactCount; i++ {
		target = append(target, source[i])
	}
	for i := 0; i < nearCount; i++ {
		target = append(target, g.nearDuplicate(source[exactCount+i]))
	}
	for i := len(target); i < g.cfg.SourceSize; i++ {
		target = append(target, g.randomRecord(fmt.Sprintf("fill-%d", i)))
	}

	return Dataset{
		Source:          source,
		Target:          target,
		ExpectedMatches: exactCount + nearCount,
	}
}

func (g *Generator) randomRecord(id string) Record {
	first := firstNames[g.rng.Intn(len(firstNames))]
	last := lastNames[g.rng.Intn(len(lastNames))]
	domain := emailDomains[g.rng.Intn(len(emailDomains))]
	return Record{
		ID:     id,
		Name:   first + " " + last,
		Email:  fmt.Sprintf("%s.%s%d@%s", first, last, g.rng.Intn(100), domain),
		Age:    18 + g.rng.Intn(50),
		Salary: float64(30000 + g.rng.Intn(120000)),
		City:   cities[g.rng.Intn(len(cities))],
	}
}

// nearDuplicate copies a record with small numeric jitter and optional
// character noise in the name and email.
func (g *Generator) nearDuplicate(r Record) Record {
	dup := r
	dup.Age += g.rng.Intn(3) - 1
	dup.Salary += float64(g.rng.Intn(10001) - 5000)
	dup.Name = g.noisy(dup.Name)
	dup.Email = g.noisy(dup.Email)
	return dup
}

// noisy corrupts each character with NoiseLevel probability via
// substitution, insertion, or deletion.
func (g *Generator) noisy(s string) string {
	if g.cfg.NoiseLevel <= 0 {
		return s
	}
	out := make([]byte, 0, len(s)+2)
	for i := 0; i < len(s); i++ {
		if g.rng.Float64() >= g.cfg.NoiseLevel {
			out = append(out, s[i])
			continue
		}
		switch g.rng.Intn(3) {
		case 0: // substitution
			out = append(out, byte('a'+g.rng.Intn(26)))
		case 1: // insertion
			out = append(out, s[i], byte('a'+g.rng.Intn(26)))
		default: // deletion
		}
	}
	return string(out)
}
