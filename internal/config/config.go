// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

// Package config loads the application configuration with Koanf v2,
// layering struct defaults, an optional YAML file, and
// MODELGRID_-prefixed environment variables, in that order of
// precedence (later wins).
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the full application configuration tree.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Storage   StorageConfig   `koanf:"storage"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// TrackRateLimit bounds tracking writes per client IP per minute.
	TrackRateLimit int `koanf:"track_rate_limit" validate:"min=1"`

	// ReadRateLimit bounds read endpoints per client IP per minute.
	ReadRateLimit int `koanf:"read_rate_limit" validate:"min=1"`
}

// LoggingConfig configures the zerolog global logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// StorageConfig configures the Badger store backing the event log.
type StorageConfig struct {
	// Path is the Badger directory. Ignored when InMemory is set.
	Path string `koanf:"path"`

	// InMemory runs Badger without touching disk; useful for tests and
	// demos.
	InMemory bool `koanf:"in_memory"`

	// GCInterval is how often the value-log GC loop runs.
	GCInterval time.Duration `koanf:"gc_interval"`

	// Breaker tunes the circuit breaker around the KV port.
	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig tunes the KV circuit breaker.
type BreakerConfig struct {
	FailureThreshold uint32        `koanf:"failure_threshold"`
	Timeout          time.Duration `koanf:"timeout"`
}

// CatalogConfig configures catalog seeding.
type CatalogConfig struct {
	// SeedPath is an optional JSON file of models loaded at startup.
	// Empty means start with an empty catalog and wait for UpdateModels.
	SeedPath string `koanf:"seed_path"`
}

// RecommendConfig configures the recommendation engine.
type RecommendConfig struct {
	CategoryWeight  float64 `koanf:"category_weight" validate:"min=0"`
	TagsWeight      float64 `koanf:"tags_weight" validate:"min=0"`
	FrameworkWeight float64 `koanf:"framework_weight" validate:"min=0"`
	ModelSizeWeight float64 `koanf:"model_size_weight" validate:"min=0"`

	TrendingWindow    time.Duration `koanf:"trending_window"`
	TrendingThreshold int           `koanf:"trending_threshold" validate:"min=0"`
	SessionWindow     time.Duration `koanf:"session_window"`

	CacheTTL        time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries int           `koanf:"cache_max_entries" validate:"min=1"`

	DiversityFactor float64 `koanf:"diversity_factor" validate:"min=0"`
	DefaultLimit    int     `koanf:"default_limit" validate:"min=1"`

	// Algorithms is the default algorithm set. Removing "trending" or
	// "personalized" disables that strategy for requests that don't ask
	// for it explicitly.
	Algorithms []string `koanf:"algorithms"`

	// InteractionCapacity is the FIFO bound on the event log.
	InteractionCapacity int `koanf:"interaction_capacity" validate:"min=1"`
}

// DefaultConfig returns the full default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			TrackRateLimit:  600,
			ReadRateLimit:   300,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Storage: StorageConfig{
			Path:       "/data/modelgrid",
			InMemory:   false,
			GCInterval: 5 * time.Minute,
			Breaker: BreakerConfig{
				FailureThreshold: 5,
				Timeout:          30 * time.Second,
			},
		},
		Catalog: CatalogConfig{
			SeedPath: "",
		},
		Recommend: RecommendConfig{
			CategoryWeight:      0.40,
			TagsWeight:          0.30,
			FrameworkWeight:     0.15,
			ModelSizeWeight:     0.15,
			TrendingWindow:      7 * 24 * time.Hour,
			TrendingThreshold:   5,
			SessionWindow:       30 * time.Minute,
			CacheTTL:            5 * time.Minute,
			CacheMaxEntries:     100,
			DiversityFactor:     0.3,
			DefaultLimit:        10,
			Algorithms:          []string{"content-based", "collaborative", "trending", "personalized"},
			InteractionCapacity: 100,
		},
	}
}

// Validate checks the configuration, combining struct-tag validation
// with checks tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if !c.Storage.InMemory && c.Storage.Path == "" {
		return fmt.Errorf("storage path required unless in-memory storage is enabled")
	}
	if c.Storage.GCInterval <= 0 {
		return fmt.Errorf("storage gc interval must be positive, got %s", c.Storage.GCInterval)
	}
	if c.Recommend.TrendingWindow <= 0 {
		return fmt.Errorf("trending window must be positive, got %s", c.Recommend.TrendingWindow)
	}
	if c.Recommend.SessionWindow <= 0 {
		return fmt.Errorf("session window must be positive, got %s", c.Recommend.SessionWindow)
	}
	if c.Recommend.CacheTTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.Recommend.CacheTTL)
	}
	for _, a := range c.Recommend.Algorithms {
		switch a {
		case "content-based", "collaborative", "trending", "personalized":
		default:
			return fmt.Errorf("unknown algorithm %q in recommend.algorithms", a)
		}
	}
	return nil
}
