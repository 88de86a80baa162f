// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package recommend

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/modelgrid/modelgrid/internal/catalog"
	"github.com/modelgrid/modelgrid/internal/interactions"
	"github.com/modelgrid/modelgrid/internal/metrics"
)

// Engine merges the recommendation algorithms over one catalog
// snapshot and one interaction store. All methods are safe for
// concurrent use: the snapshot swaps atomically under a read-write
// mutex and scoring never mutates shared state.
type Engine struct {
	mu       sync.RWMutex
	snapshot *catalog.Snapshot

	config   *Config
	store    *interactions.Store
	profiles *interactions.ProfileBuilder
	cache    *resultCache
	logger   zerolog.Logger
	now      func() time.Time

	requests    atomic.Int64
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
}

// NewEngine creates an engine over the given catalog models and store.
// A nil config uses DefaultConfig.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewEngine(models []catalog.Model, cfg *Config, store *interactions.Store, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}

	e := &Engine{
		snapshot: catalog.NewSnapshot(models),
		config:   cfg.Clone(),
		store:    store,
		profiles: interactions.NewProfileBuilder(store),
		logger:   logger.With().Str("component", "recommend").Logger(),
		now:      time.Now,
	}
	e.cache = newResultCache(cfg.CacheTTL, cfg.CacheMaxEntries, func() time.Time { return e.now() })
	return e, nil
}

// currentSnapshot returns the snapshot under the read lock.
func (e *Engine) currentSnapshot() *catalog.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}

// TrackView records a model view. An empty user ID records as
// anonymous.
func (e *Engine) TrackView(modelID, userID string, meta *interactions.Meta) {
	e.store.TrackView(modelID, userID, meta)
}

// TrackPurchase records a purchase.
func (e *Engine) TrackPurchase(modelID, userID string) {
	e.store.TrackPurchase(modelID, userID)
}

// TrackInference records an inference call.
func (e *Engine) TrackInference(modelID, userID string) {
	e.store.TrackInference(modelID, userID)
}

// Recommendations runs the requested algorithms and returns the
// merged, diversity-adjusted, bounded result. No input is an error:
// missing context skips algorithms, and the worst case is an empty
// result.
func (e *Engine) Recommendations(rc Context) *Result {
	start := e.now()
	e.requests.Add(1)
	metrics.RecommendationRequests.Inc()

	if rc.Limit <= 0 {
		rc.Limit = e.config.DefaultLimit
	}
	if len(rc.Algorithms) == 0 {
		rc.Algorithms = e.config.Algorithms
	}

	key := cacheKey(rc)
	if cached := e.cache.get(key); cached != nil {
		e.cacheHits.Add(1)
		metrics.CacheHits.Inc()
		return cached
	}
	e.cacheMisses.Add(1)
	metrics.CacheMisses.Inc()

	snap := e.currentSnapshot()

	// Gather candidates per algorithm, over-fetching so that exclusion
	// filtering and the diversity pass still have material to work with.
	fetch := rc.Limit * 2

	var (
		collected      []Score
		algorithmsUsed []Algorithm
	)
	for _, alg := range rc.Algorithms {
		candidates := e.runAlgorithm(alg, rc, snap, fetch)
		if len(candidates) == 0 {
			continue
		}
		algorithmsUsed = append(algorithmsUsed, alg)
		collected = append(collected, candidates...)
	}
	totalCandidates := len(collected)

	excluded := make(map[string]bool, len(rc.Exclude))
	for _, id := range rc.Exclude {
		excluded[id] = true
	}

	// Merge by model ID keeping the highest score. A strictly-greater
	// comparison keeps the first-seen algorithm on ties, and first-seen
	// order follows the request's algorithm order.
	mergedIDs := make([]string, 0, len(collected))
	merged := make(map[string]Score, len(collected))
	for _, s := range collected {
		if excluded[s.ModelID] {
			continue
		}
		if rc.MinScore != nil && s.Score < *rc.MinScore {
			continue
		}
		existing, ok := merged[s.ModelID]
		if !ok {
			mergedIDs = append(mergedIDs, s.ModelID)
			merged[s.ModelID] = s
			continue
		}
		if s.Score > existing.Score {
			merged[s.ModelID] = s
		}
	}

	ranked := make([]Score, 0, len(mergedIDs))
	for _, id := range mergedIDs {
		ranked = append(ranked, merged[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	final := diversify(ranked, snap, rc.Limit)

	result := &Result{
		Scores:          final,
		Context:         rc,
		TotalCandidates: totalCandidates,
		Elapsed:         e.now().Sub(start),
		AlgorithmsUsed:  algorithmsUsed,
	}
	e.cache.put(key, result)
	metrics.RecommendationDuration.Observe(result.Elapsed.Seconds())

	e.logger.Debug().
		Str("model_id", rc.ModelID).
		Str("user_id", rc.UserID).
		Int("candidates", totalCandidates).
		Int("returned", len(final)).
		Msg("recommendations computed")

	return result
}

// runAlgorithm produces the raw candidate list for one algorithm, or
// nil when the request lacks the context the algorithm needs.
func (e *Engine) runAlgorithm(alg Algorithm, rc Context, snap *catalog.Snapshot, limit int) []Score {
	switch alg {
	case AlgorithmContentBased:
		if rc.ModelID == "" {
			return nil
		}
		models := SimilarModels(rc.ModelID, snap, e.config.Weights, limit)
		return fixedScores(models, scoreContentBased, reasonContentBased, AlgorithmContentBased)

	case AlgorithmCollaborative:
		if rc.ModelID == "" {
			return nil
		}
		models := e.alsoBought(rc.ModelID, snap, limit)
		return fixedScores(models, scoreCollaborative, reasonCollaborative, AlgorithmCollaborative)

	case AlgorithmTrending:
		models := e.trending(snap, e.config.TrendingWindow, limit)
		return fixedScores(models, scoreTrending, reasonTrending, AlgorithmTrending)

	case AlgorithmPersonalized:
		if rc.UserID == "" || rc.UserID == interactions.AnonymousUser {
			return nil
		}
		return e.personalizedScores(rc.UserID, snap, limit)
	}
	return nil
}

func fixedScores(models []catalog.Model, score float64, reason string, alg Algorithm) []Score {
	out := make([]Score, 0, len(models))
	for _, m := range models {
		out = append(out, Score{
			ModelID:   m.ID,
			Score:     score,
			Reason:    reason,
			Algorithm: alg,
		})
	}
	return out
}

// cacheKey builds the deterministic cache key: the algorithm list is
// sorted so the same set requested in a different order hits the same
// entry.
func cacheKey(rc Context) string {
	algs := make([]string, len(rc.Algorithms))
	for i, a := range rc.Algorithms {
		algs[i] = string(a)
	}
	sort.Strings(algs)
	return fmt.Sprintf("rec:%s:%s:%s:%d", rc.ModelID, rc.UserID, strings.Join(algs, ","), rc.Limit)
}

// SimilarModels ranks active models most similar to modelID.
func (e *Engine) SimilarModels(modelID string, limit int) []catalog.Model {
	return SimilarModels(modelID, e.currentSnapshot(), e.config.Weights, limit)
}

// Trending returns the active models trending over window, which
// defaults to the configured window when non-positive.
func (e *Engine) Trending(window time.Duration, limit int) []catalog.Model {
	if window <= 0 {
		window = e.config.TrendingWindow
	}
	return e.trending(e.currentSnapshot(), window, limit)
}

// TrendingScores returns the full trend summaries over window.
func (e *Engine) TrendingScores(window time.Duration, limit int) []TrendScore {
	if window <= 0 {
		window = e.config.TrendingWindow
	}
	return trendScores(e.currentSnapshot(), e.store.All(), window,
		e.config.TrendingThreshold, e.now(), limit)
}

func (e *Engine) trending(snap *catalog.Snapshot, window time.Duration, limit int) []catalog.Model {
	scores := trendScores(snap, e.store.All(), window, e.config.TrendingThreshold, e.now(), limit)
	out := make([]catalog.Model, 0, len(scores))
	for _, ts := range scores {
		if m, ok := snap.Get(ts.ModelID); ok {
			out = append(out, m)
		}
	}
	return out
}

// AlsoBought returns what purchasers of modelID also purchased, by
// purchase frequency, falling back to view co-occurrence when nobody
// has purchased the model yet.
func (e *Engine) AlsoBought(modelID string, limit int) []catalog.Model {
	return e.alsoBought(modelID, e.currentSnapshot(), limit)
}

// Personalized ranks active, not-yet-purchased models against the
// user's derived profile.
func (e *Engine) Personalized(userID string, limit int) []catalog.Model {
	snap := e.currentSnapshot()
	scores := e.personalizedScores(userID, snap, limit)
	out := make([]catalog.Model, 0, len(scores))
	for _, s := range scores {
		if m, ok := snap.Get(s.ModelID); ok {
			out = append(out, m)
		}
	}
	return out
}

// CategoryRecommendations returns the active models of a category
// ranked by aggregate demand (purchases weighted double).
func (e *Engine) CategoryRecommendations(category catalog.Category, limit int) []catalog.Model {
	snap := e.currentSnapshot()

	var out []catalog.Model
	for _, m := range snap.Models() {
		if m.Active && m.Category == category {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Popularity() > out[j].Popularity()
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// UpdateModels replaces the catalog snapshot and always clears the
// cache, even when the new snapshot looks identical: scores derived
// from the old snapshot are stale by definition.
func (e *Engine) UpdateModels(models []catalog.Model) {
	snap := catalog.NewSnapshot(models)

	e.mu.Lock()
	e.snapshot = snap
	e.mu.Unlock()

	e.cache.clear()
	e.logger.Info().
		Int("models", snap.Len()).
		Int("active", snap.ActiveCount()).
		Msg("catalog snapshot replaced, cache cleared")
}

// ClearCache drops all cached results.
func (e *Engine) ClearCache() {
	e.cache.clear()
}

// Statistics reports the engine's observable counters.
func (e *Engine) Statistics() Statistics {
	snap := e.currentSnapshot()
	return Statistics{
		TotalItems:  snap.Len(),
		ActiveItems: snap.ActiveCount(),
		CacheSize:   e.cache.size(),
		Requests:    e.requests.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
	}
}

// Store exposes the underlying interaction store for export/import and
// history management.
func (e *Engine) Store() *interactions.Store { return e.store }
