// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package benchmark

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/manlikeHB/skillsync/internal/metrics"
)

// Accuracy blend weights: recall of planted duplicates vs mean reported
// score.
const (
	accuracyRecallWeight = 0.6
	accuracyScoreWeight  = 0.4
)

// Scenario is one dataset shape to benchmark every matcher against.
type Scenario struct {
	SourceSize    int     `koanf:"source_size" validate:"min=1"`
	DuplicateRate float64 `koanf:"duplicate_rate" validate:"min=0,max=1"`
	NoiseLevel    float64 `koanf:"noise_level" validate:"min=0,max=1"`
}

// Harness runs every matcher over every scenario, sequentially, with an
// inter-run pause so one run's allocation residue does not skew the next
// run's measurements.
type Harness struct {
	matchers []Matcher
	pause    time.Duration
	seed     int64
	logger   zerolog.Logger
	sleep    func(context.Context, time.Duration) error
}

// HarnessOption configures a Harness.
type HarnessOption func(*Harness)

// WithPause sets the inter-run pause. Default one second.
func WithPause(d time.Duration) HarnessOption {
	return func(h *Harness) { h.pause = d }
}

// WithSeed fixes dataset generation for reproducible runs.
func WithSeed(seed int64) HarnessOption {
	return func(h *Harness) { h.seed = seed }
}

// withSleep replaces the pause implementation. Used by tests.
func withSleep(fn func(context.Context, time.Duration) error) HarnessOption {
	return func(h *Harness) { h.sleep = fn }
}

// NewHarness creates a harness over the given matchers. With no matchers
// supplied it runs the full built-in set.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHarness(logger zerolog.Logger, matchers []Matcher, opts ...HarnessOption) *Harness {
	if len(matchers) == 0 {
		matchers = []Matcher{NaiveMatcher{}, HashMatcher{}, BloomMatcher{}}
	}
	h := &Harness{
		matchers: matchers,
		pause:    time.Second,
		logger:   logger.With().Str("component", "benchmark").Logger(),
		sleep:    contextSleep,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes every matcher against every scenario and aggregates the
// results. Runs are strictly sequential.
func (h *Harness) Run(ctx context.Context, scenarios []Scenario) (*Summary, error) {
	summary := &Summary{StartedAt: time.Now()}

	for i, sc := range scenarios {
		dataset := NewGenerator(GeneratorConfig{
			SourceSize:    sc.SourceSize,
			DuplicateRate: sc.DuplicateRate,
			NoiseLevel:    sc.NoiseLevel,
			Seed:          h.seed + int64(i),
		}).Generate()

		for _, m := range h.matchers {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			run, err := h.runOne(m, sc, dataset)
			if err != nil {
				return nil, fmt.Errorf("%s on size %d: %w", m.Name(), sc.SourceSize, err)
			}
			summary.Runs = append(summary.Runs, run)
			metrics.BenchmarkRuns.WithLabelValues(m.Name()).Inc()

			h.logger.Info().
				Str("algorithm", run.Algorithm).
				Int("data_size", run.DataSize).
				Int("matches", run.MatchesFound).
				Dur("elapsed", run.ExecutionTime).
				Float64("accuracy", run.Accuracy).
				Msg("benchmark run complete")

			if err := h.sleep(ctx, h.pause); err != nil {
				return nil, err
			}
		}
	}

	summary.Algorithms = summarize(summary.Runs)
	summary.FinishedAt = time.Now()
	return summary, nil
}

// runOne samples a single matcher invocation: wall-clock time and heap
// delta around the call.
func (h *Harness) runOne(m Matcher, sc Scenario, dataset Dataset) (RunResult, error) {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	start := time.Now()
	pairs, err := m.Match(dataset.Source, dataset.Target)
	elapsed := time.Since(start)

	runtime.ReadMemStats(&after)
	if err != nil {
		return RunResult{}, err
	}

	meanScore := 0.0
	for _, p := range pairs {
		meanScore += p.Score
	}
	if len(pairs) > 0 {
		meanScore /= float64(len(pairs))
	}

	run := RunResult{
		Algorithm:        m.Name(),
		DataSize:         sc.SourceSize,
		DuplicateRate:    sc.DuplicateRate,
		NoiseLevel:       sc.NoiseLevel,
		ExecutionTime:    elapsed,
		MemoryDeltaBytes: int64(after.HeapAlloc) - int64(before.HeapAlloc),
		MatchesFound:     len(pairs),
		ExpectedMatches:  dataset.ExpectedMatches,
		MeanScore:        meanScore,
		Accuracy:         accuracy(len(pairs), dataset.ExpectedMatches, meanScore),
		Throughput:       throughput(sc.SourceSize, elapsed),
	}
	return run, nil
}

// accuracy blends recall of the planted duplicates with the mean score of
// the reported pairs.
func accuracy(actual, expected int, meanScore float64) float64 {
	recall := 1.0
	if expected > 0 {
		recall = float64(actual) / float64(expected)
		if recall > 1 {
			recall = 1
		}
	}
	return accuracyRecallWeight*recall + accuracyScoreWeight*meanScore
}

func throughput(records int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(records) / elapsed.Seconds()
}

// summarize aggregates per-algorithm averages and the scalability ratio
// over size-sorted runs.
func summarize(runs []RunResult) []AlgorithmSummary {
	byAlgo := make(map[string][]RunResult)
	var order []string
	for _, run := range runs {
		if _, seen := byAlgo[run.Algorithm]; !seen {
			order = append(order, run.Algorithm)
		}
		byAlgo[run.Algorithm] = append(byAlgo[run.Algorithm], run)
	}

	out := make([]AlgorithmSummary, 0, len(order))
	for _, name := range order {
		algoRuns := byAlgo[name]
		s := AlgorithmSummary{Algorithm: name, Runs: len(algoRuns)}

		var totalTime time.Duration
		var totalMem int64
		for _, run := range algoRuns {
			totalTime += run.ExecutionTime
			totalMem += run.MemoryDeltaBytes
			s.AvgAccuracy += run.Accuracy
			s.AvgThroughput += run.Throughput
		}
		n := float64(len(algoRuns))
		s.AvgTime = time.Duration(float64(totalTime) / n)
		s.AvgMemoryBytes = int64(float64(totalMem) / n)
		s.AvgAccuracy /= n
		s.AvgThroughput /= n
		s.Scalability = scalability(algoRuns)

		out = append(out, s)
	}
	return out
}

// scalability is the time-growth to size-growth ratio between the
// smallest and largest runs. Sub-linear algorithms score below 1.
func scalability(runs []RunResult) float64 {
	if len(runs) < 2 {
		return 1
	}
	sorted := make([]RunResult, len(runs))
	copy(sorted, runs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].DataSize < sorted[j].DataSize })

	first, last := sorted[0], sorted[len(sorted)-1]
	if first.ExecutionTime <= 0 || last.ExecutionTime <= 0 ||
		first.DataSize <= 0 || last.DataSize == first.DataSize {
		return 1
	}
	timeRatio := float64(last.ExecutionTime) / float64(first.ExecutionTime)
	sizeRatio := float64(last.DataSize) / float64(first.DataSize)
	return timeRatio / sizeRatio
}

// contextSleep pauses for d or until the context is canceled.
func contextSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
