// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

// Package benchmark compares exact all-pairs record matching against
// hash-blocked and Bloom-filter-accelerated matching over synthetic data
// with controlled duplication and noise. It is an offline harness,
// independent of the live matching path.
package benchmark

import (
	"strings"
	"time"
)

// matchThreshold is the minimum similarity for a reported pair.
const matchThreshold = 0.7

// Record is one synthetic profile used by the matchers.
type Record struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Age    int     `json:"age"`
	Salary float64 `json:"salary"`
	City   string  `json:"city"`
}

// blockingKey is the cheap lossy key used to bucket records before
// pairwise comparison.
func (r Record) blockingKey() string {
	return strings.ToLower(r.Name + "_" + r.Email + "_" + r.ID)
}

// Pair is one reported match between a source and a target record.
type Pair struct {
	SourceID string  `json:"source_id"`
	TargetID string  `json:"target_id"`
	Score    float64 `json:"score"`
}

// Matcher is the common contract all three algorithms implement.
type Matcher interface {
	// Name identifies the algorithm in run results and metrics.
	Name() string

	// Match reports source-target pairs scoring above the threshold.
	Match(source, target []Record) ([]Pair, error)
}

// RunResult captures one sampled matcher invocation.
type RunResult struct {
	Algorithm        string        `json:"algorithm"`
	DataSize         int           `json:"data_size"`
	DuplicateRate    float64       `json:"duplicate_rate"`
	NoiseLevel       float64       `json:"noise_level"`
	ExecutionTime    time.Duration `json:"execution_time"`
	MemoryDeltaBytes int64         `json:"memory_delta_bytes"`
	MatchesFound     int           `json:"matches_found"`
	ExpectedMatches  int           `json:"expected_matches"`
	MeanScore        float64       `json:"mean_score"`
	Accuracy         float64       `json:"accuracy"`
	Throughput       float64       `json:"throughput"` // records per second
}

// AlgorithmSummary aggregates a matcher's runs across all scenarios.
type AlgorithmSummary struct {
	Algorithm      string        `json:"algorithm"`
	Runs           int           `json:"runs"`
	AvgTime        time.Duration `json:"avg_time"`
	AvgMemoryBytes int64         `json:"avg_memory_bytes"`
	AvgAccuracy    float64       `json:"avg_accuracy"`
	AvgThroughput  float64       `json:"avg_throughput"`

	// Scalability is (lastExecTime/firstExecTime) divided by
	// (lastDataSize/firstDataSize) over size-sorted runs. Closer to 1
	// means closer to linear scaling; lower is better.
	Scalability float64 `json:"scalability"`
}

// Summary is the cross-algorithm report of a full harness run.
type Summary struct {
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Runs       []RunResult        `json:"runs"`
	Algorithms []AlgorithmSummary `json:"algorithms"`
}
