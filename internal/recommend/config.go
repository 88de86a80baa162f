// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package recommend

import (
	"fmt"
	"time"
)

// Weights are the similarity attribute weights. They usually sum to 1
// so similarity lands in [0,100]; other sums are allowed and simply
// rescale the range.
type Weights struct {
	Category  float64 `json:"category"`
	Tags      float64 `json:"tags"`
	Framework float64 `json:"framework"`
	ModelSize float64 `json:"model_size"`
}

// DefaultWeights returns the production similarity weights.
func DefaultWeights() Weights {
	return Weights{
		Category:  0.40,
		Tags:      0.30,
		Framework: 0.15,
		ModelSize: 0.15,
	}
}

// Config holds the engine tunables.
type Config struct {
	// Weights are the similarity attribute weights.
	Weights Weights `json:"weights"`

	// TrendingWindow is the event window trending looks at.
	// Default: 7 days.
	TrendingWindow time.Duration `json:"trending_window"`

	// TrendingThreshold is the minimum in-window sales+inferences a
	// model needs to appear in trending at all. Default: 5.
	TrendingThreshold int `json:"trending_threshold"`

	// SessionWindow is the co-view proximity used by the collaborative
	// fallback. Default: 30 minutes.
	SessionWindow time.Duration `json:"session_window"`

	// CacheTTL is the recommendation cache entry lifetime. Default: 5m.
	CacheTTL time.Duration `json:"cache_ttl"`

	// CacheMaxEntries bounds the cache; overflow evicts the single
	// oldest-created entry. Default: 100.
	CacheMaxEntries int `json:"cache_max_entries"`

	// DiversityFactor scales the per-repeat category penalty in
	// personalized scoring. Default: 0.3.
	DiversityFactor float64 `json:"diversity_factor"`

	// Algorithms is the default algorithm set applied when a request
	// names none. Default: all four, canonical order.
	Algorithms []Algorithm `json:"algorithms"`

	// DefaultLimit applies when a request asks for zero results.
	// Default: 10.
	DefaultLimit int `json:"default_limit"`
}

// DefaultConfig returns the production engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Weights:           DefaultWeights(),
		TrendingWindow:    7 * 24 * time.Hour,
		TrendingThreshold: 5,
		SessionWindow:     30 * time.Minute,
		CacheTTL:          5 * time.Minute,
		CacheMaxEntries:   100,
		DiversityFactor:   0.3,
		Algorithms:        DefaultAlgorithms(),
		DefaultLimit:      10,
	}
}

// Validate checks the configuration for values the engine cannot run
// with.
func (c *Config) Validate() error {
	if c.TrendingWindow <= 0 {
		return fmt.Errorf("trending window must be positive, got %s", c.TrendingWindow)
	}
	if c.TrendingThreshold < 0 {
		return fmt.Errorf("trending threshold must be >= 0, got %d", c.TrendingThreshold)
	}
	if c.SessionWindow <= 0 {
		return fmt.Errorf("session window must be positive, got %s", c.SessionWindow)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %s", c.CacheTTL)
	}
	if c.CacheMaxEntries <= 0 {
		return fmt.Errorf("cache max entries must be positive, got %d", c.CacheMaxEntries)
	}
	if c.DiversityFactor < 0 {
		return fmt.Errorf("diversity factor must be >= 0, got %v", c.DiversityFactor)
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default limit must be positive, got %d", c.DefaultLimit)
	}
	for _, w := range []struct {
		name  string
		value float64
	}{
		{"category", c.Weights.Category},
		{"tags", c.Weights.Tags},
		{"framework", c.Weights.Framework},
		{"model_size", c.Weights.ModelSize},
	} {
		if w.value < 0 {
			return fmt.Errorf("similarity weight %s must be >= 0, got %v", w.name, w.value)
		}
	}
	for _, a := range c.Algorithms {
		switch a {
		case AlgorithmContentBased, AlgorithmCollaborative, AlgorithmTrending, AlgorithmPersonalized:
		default:
			return fmt.Errorf("unknown algorithm %q", a)
		}
	}
	return nil
}

// Clone returns a deep copy so callers can mutate independently.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Algorithms = make([]Algorithm, len(c.Algorithms))
	copy(clone.Algorithms, c.Algorithms)
	return &clone
}
