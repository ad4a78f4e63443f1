// SkillSync - Mentorship Matching and Recommendation Engine
// Copyright 2026 Yusuf HB (manlikeHB)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/manlikeHB/skillsync

// Package config loads layered SkillSync configuration: built-in
// defaults, then an optional YAML file, then environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/manlikeHB/skillsync/internal/hybrid"
	"github.com/manlikeHB/skillsync/internal/logging"
	"github.com/manlikeHB/skillsync/internal/store/duck"
	"github.com/manlikeHB/skillsync/internal/validation"
)

// DefaultConfigPaths lists where config files are searched, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/skillsync/config.yaml",
	"/etc/skillsync/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "SKILLSYNC_CONFIG"

// envPrefix namespaces SkillSync environment variables. Nested paths use
// a double underscore: SKILLSYNC_SERVER__PORT -> server.port.
const envPrefix = "SKILLSYNC_"

// Config is the full runtime configuration.
type Config struct {
	Logging  LoggingConfig  `koanf:"logging"`
	Database DatabaseConfig `koanf:"database"`
	Engine   EngineConfig   `koanf:"engine"`
	Collab   CollabConfig   `koanf:"collab"`
	Hybrid   hybrid.Config  `koanf:"hybrid"`
	Server   ServerConfig   `koanf:"server"`
	Refresh  RefreshConfig  `koanf:"refresh"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"required,oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"required,oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// ToLogging converts to the logging package's config, which additionally
// carries the output writer.
func (c LoggingConfig) ToLogging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Level
	cfg.Format = c.Format
	cfg.Caller = c.Caller
	return cfg
}

// DatabaseConfig selects and configures the store backend.
type DatabaseConfig struct {
	// Backend is "memory" or "duckdb".
	Backend string `koanf:"backend" validate:"required,oneof=memory duckdb"`

	Duck duck.Config `koanf:"duckdb"`
}

// EngineConfig tunes the vector matching engine.
type EngineConfig struct {
	// DefaultLimit caps results when a request leaves it unset.
	DefaultLimit int `koanf:"default_limit" validate:"min=1,max=500"`

	// DefaultThreshold drops low-scoring results.
	DefaultThreshold float64 `koanf:"default_threshold" validate:"min=0,max=1"`

	// Concurrency bounds parallel candidate scoring.
	Concurrency int `koanf:"concurrency" validate:"min=1,max=128"`

	// Algorithm names the similarity strategy the periodic matching pass
	// uses.
	Algorithm string `koanf:"algorithm" validate:"required,oneof=cosine euclidean"`

	// PassInterval is how often the matching pass reruns.
	PassInterval time.Duration `koanf:"pass_interval" validate:"min=0"`

	// PassOnStartup triggers a matching pass when the daemon starts.
	PassOnStartup bool `koanf:"pass_on_startup"`
}

// CollabConfig tunes the collaborative-filtering engine.
type CollabConfig struct {
	// SimilarityCacheTTL bounds how long per-subject similarity rankings
	// are reused.
	SimilarityCacheTTL time.Duration `koanf:"similarity_cache_ttl" validate:"min=0"`
}

// ServerConfig configures the operational HTTP endpoints.
type ServerConfig struct {
	Host    string        `koanf:"host" validate:"required"`
	Port    int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout time.Duration `koanf:"timeout" validate:"min=0"`
}

// RefreshConfig configures the periodic cache refresh service.
type RefreshConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval" validate:"min=0"`
}

func defaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Database: DatabaseConfig{
			Backend: "memory",
			Duck: duck.Config{
				Path:         "/data/skillsync.duckdb",
				MaxOpenConns: 4,
			},
		},
		Engine: EngineConfig{
			DefaultLimit:     50,
			DefaultThreshold: 0.1,
			Concurrency:      8,
			Algorithm:        "cosine",
			PassInterval:     time.Hour,
			PassOnStartup:    true,
		},
		Collab: CollabConfig{
			SimilarityCacheTTL: time.Hour,
		},
		Hybrid: hybrid.Config{
			CFWeight:      hybrid.DefaultCFWeight,
			ContentWeight: hybrid.DefaultContentWeight,
			MinConfidence: hybrid.DefaultMinConfidence,
		},
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8642,
			Timeout: 30 * time.Second,
		},
		Refresh: RefreshConfig{
			Enabled:  true,
			Interval: time.Hour,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// SKILLSYNC_-prefixed environment variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section's constraints.
func (c *Config) Validate() error {
	if errs := validation.Struct(c); errs != nil {
		return fmt.Errorf("configuration validation: %w", errs)
	}
	if c.Hybrid.CFWeight+c.Hybrid.ContentWeight > 1.0001 {
		return fmt.Errorf("configuration validation: hybrid weights sum to more than 1")
	}
	return nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransform maps SKILLSYNC_SECTION__KEY to section.key.
func envTransform(key string) string {
	key = strings.TrimPrefix(key, envPrefix)
	key = strings.ToLower(key)
	return strings.ReplaceAll(key, "__", ".")
}
