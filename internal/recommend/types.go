// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

// Package recommend ranks marketplace models: attribute similarity,
// time-decayed trending, purchase-graph collaboration, and per-user
// personalization, merged into one bounded, diversity-adjusted, cached
// result set.
package recommend

import (
	"time"

	"github.com/modelgrid/modelgrid/internal/catalog"
)

// Algorithm identifies one recommendation strategy.
type Algorithm string

// Recommendation algorithms. DefaultAlgorithms order is also the
// tie-break order when two algorithms give a model equal scores.
const (
	AlgorithmContentBased  Algorithm = "content-based"
	AlgorithmCollaborative Algorithm = "collaborative"
	AlgorithmTrending      Algorithm = "trending"
	AlgorithmPersonalized  Algorithm = "personalized"
)

// DefaultAlgorithms returns the default algorithm set in its canonical
// order.
func DefaultAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmContentBased,
		AlgorithmCollaborative,
		AlgorithmTrending,
		AlgorithmPersonalized,
	}
}

// Representative scores attached to candidates from algorithms that do
// not compute a per-model score of their own. Personalized candidates
// carry their computed score instead.
const (
	scoreContentBased  = 85.0
	scoreCollaborative = 80.0
	scoreTrending      = 75.0
)

// Fixed per-algorithm reason strings surfaced with each candidate.
const (
	reasonContentBased  = "Similar to the model you are viewing"
	reasonCollaborative = "Users who bought this also bought"
	reasonTrending      = "Trending in the marketplace"
	reasonPersonalized  = "Based on your activity"
)

// Context describes one recommendation request. Algorithms missing
// their required context (model ID for content-based and collaborative,
// user ID for personalized) are skipped, not failed.
type Context struct {
	ModelID    string      `json:"model_id,omitempty"`
	UserID     string      `json:"user_id,omitempty"`
	Algorithms []Algorithm `json:"algorithms,omitempty"`
	Limit      int         `json:"limit,omitempty"`
	MinScore   *float64    `json:"min_score,omitempty"`
	Exclude    []string    `json:"exclude,omitempty"`
}

// Score is one recommended model with its winning score and the
// algorithm that produced it.
type Score struct {
	ModelID   string    `json:"model_id"`
	Score     float64   `json:"score"`
	Reason    string    `json:"reason"`
	Algorithm Algorithm `json:"algorithm"`
}

// Result is a completed recommendation response. Cached results are
// returned unchanged, including the original Elapsed measurement.
type Result struct {
	Scores          []Score       `json:"scores"`
	Context         Context       `json:"context"`
	TotalCandidates int           `json:"total_candidates"`
	Elapsed         time.Duration `json:"elapsed"`
	AlgorithmsUsed  []Algorithm   `json:"algorithms_used"`
}

// TrendScore is the demand summary computed for one model over the
// trending window.
type TrendScore struct {
	ModelID    string  `json:"model_id"`
	Score      float64 `json:"score"`
	Velocity   float64 `json:"velocity"`
	Momentum   float64 `json:"momentum"`
	Sales      int     `json:"sales"`
	Inferences int     `json:"inferences"`
}

// Statistics is the engine's observable state counters.
type Statistics struct {
	TotalItems  int   `json:"total_items"`
	ActiveItems int   `json:"active_items"`
	CacheSize   int   `json:"cache_size"`
	Requests    int64 `json:"requests"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
}

// modelsByScore pairs a model with a computed score for stable ranking.
type scoredModel struct {
	model catalog.Model
	score float64
}
