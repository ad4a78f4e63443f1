// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

// Package main drives the matching-algorithm benchmark harness from the
// command line. It generates synthetic profile datasets with known
// duplicates, runs every matcher over every requested size, and prints
// the summary as JSON.
//
// Usage:
//
//	matchbench -size 100 -size 1000 -dup 0.2 -noise 0.1 -seed 42
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	json "github.com/goccy/go-json"

	"github.com/manlikeHB/skillsync/internal/benchmark"
	"github.com/manlikeHB/skillsync/internal/logging"
)

type sizeList []int

func (l *sizeList) String() string {
	parts := make([]string, len(*l))
	for i, n := range *l {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func (l *sizeList) Set(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid size %q: %w", v, err)
	}
	if n < 1 {
		return fmt.Errorf("size must be positive, got %d", n)
	}
	*l = append(*l, n)
	return nil
}

func main() {
	var sizes sizeList
	var (
		dupRate  = flag.Float64("dup", 0.2, "fraction of source records duplicated into the target set")
		noise    = flag.Float64("noise", 0.1, "per-character corruption probability for near-duplicates")
		seed     = flag.Int64("seed", 42, "base RNG seed; each scenario offsets it for reproducibility")
		pause    = flag.Duration("pause", time.Second, "pause between runs so allocation residue settles")
		logLevel = flag.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	)
	flag.Var(&sizes, "size", "source dataset size (repeatable)")
	flag.Parse()

	if len(sizes) == 0 {
		sizes = sizeList{100, 500, 1000}
	}
	if *dupRate < 0 || *dupRate > 1 {
		fmt.Fprintf(os.Stderr, "dup must be in [0,1], got %g\n", *dupRate)
		os.Exit(2)
	}
	if *noise < 0 || *noise > 1 {
		fmt.Fprintf(os.Stderr, "noise must be in [0,1], got %g\n", *noise)
		os.Exit(2)
	}

	logging.Init(logging.Config{Level: *logLevel, Format: "console"})
	logger := logging.Logger()

	scenarios := make([]benchmark.Scenario, len(sizes))
	for i, n := range sizes {
		scenarios[i] = benchmark.Scenario{
			SourceSize:    n,
			DuplicateRate: *dupRate,
			NoiseLevel:    *noise,
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	harness := benchmark.NewHarness(logger, nil,
		benchmark.WithSeed(*seed),
		benchmark.WithPause(*pause))

	summary, err := harness.Run(ctx, scenarios)
	if err != nil {
		logging.Fatal().Err(err).Msg("Benchmark run failed")
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to encode summary")
	}
	fmt.Println(string(out))
}
