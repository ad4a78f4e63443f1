// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging defaults = %+v", cfg.Logging)
	}
	if cfg.Database.Backend != "memory" {
		t.Errorf("backend = %q, want memory", cfg.Database.Backend)
	}
	if cfg.Engine.DefaultLimit != 50 || cfg.Engine.DefaultThreshold != 0.1 {
		t.Errorf("engine defaults = %+v", cfg.Engine)
	}
	if cfg.Collab.SimilarityCacheTTL != time.Hour {
		t.Errorf("cache ttl = %v, want 1h", cfg.Collab.SimilarityCacheTTL)
	}
	if cfg.Hybrid.CFWeight != 0.6 || cfg.Hybrid.ContentWeight != 0.4 {
		t.Errorf("hybrid defaults = %+v", cfg.Hybrid)
	}
	if cfg.Server.Port != 8642 {
		t.Errorf("port = %d, want 8642", cfg.Server.Port)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SKILLSYNC_LOGGING__LEVEL", "debug")
	t.Setenv("SKILLSYNC_SERVER__PORT", "9000")
	t.Setenv("SKILLSYNC_DATABASE__BACKEND", "duckdb")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Database.Backend != "duckdb" {
		t.Errorf("backend = %q, want duckdb", cfg.Database.Backend)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := []byte("engine:\n  default_limit: 25\ncollab:\n  similarity_cache_ttl: 30m\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.DefaultLimit != 25 {
		t.Errorf("limit = %d, want 25 from file", cfg.Engine.DefaultLimit)
	}
	if cfg.Collab.SimilarityCacheTTL != 30*time.Minute {
		t.Errorf("ttl = %v, want 30m from file", cfg.Collab.SimilarityCacheTTL)
	}
	// File overrides leave unrelated defaults intact.
	if cfg.Server.Port != 8642 {
		t.Errorf("port = %d, want default", cfg.Server.Port)
	}
}

func TestEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 7000\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("SKILLSYNC_SERVER__PORT", "7500")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7500 {
		t.Errorf("port = %d, want env to beat file", cfg.Server.Port)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad log level", "SKILLSYNC_LOGGING__LEVEL", "verbose"},
		{"bad backend", "SKILLSYNC_DATABASE__BACKEND", "postgres"},
		{"port out of range", "SKILLSYNC_SERVER__PORT", "99999"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := Load(); err == nil {
				t.Fatalf("Load accepted %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestHybridWeightSumRejected(t *testing.T) {
	t.Setenv("SKILLSYNC_HYBRID__CF_WEIGHT", "0.9")
	t.Setenv("SKILLSYNC_HYBRID__CONTENT_WEIGHT", "0.5")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted hybrid weights summing over 1")
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SKILLSYNC_LOGGING__LEVEL", "logging.level"},
		{"SKILLSYNC_DATABASE__DUCKDB__PATH", "database.duckdb.path"},
		{"SKILLSYNC_ENGINE__DEFAULT_LIMIT", "engine.default_limit"},
	}
	for _, tc := range tests {
		if got := envTransform(tc.in); got != tc.want {
			t.Errorf("envTransform(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
