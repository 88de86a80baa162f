// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package recommend

import (
	"math"
	"sort"

	"github.com/modelgrid/modelgrid/internal/catalog"
	"github.com/modelgrid/modelgrid/internal/interactions"
)

// Personalized scoring weights: category affinity dominates, tag
// affinity is capped so a long tag history cannot drown the rest.
const (
	categoryWeight  = 40.0
	tagWeight       = 20.0
	tagCap          = 30.0
	frameworkWeight = 15.0
	priceBonus      = 15.0
)

// personalizedScores ranks active, not-yet-purchased models against
// the user's profile. The returned scores carry the computed value,
// not a representative constant.
func (e *Engine) personalizedScores(userID string, snap *catalog.Snapshot, limit int) []Score {
	attrs := make(map[string]catalog.Model, snap.Len())
	for _, m := range snap.Models() {
		attrs[m.ID] = m
	}
	profile := e.profiles.Build(userID, attrs)

	purchased := make(map[string]bool)
	for _, ev := range e.store.All() {
		if ev.UserID == userID && ev.Kind == interactions.KindPurchase {
			purchased[ev.ModelID] = true
		}
	}

	var ranked []Score
	for _, m := range snap.Models() {
		if !m.Active || purchased[m.ID] {
			continue
		}
		ranked = append(ranked, Score{
			ModelID:   m.ID,
			Score:     scoreAgainstProfile(m, profile),
			Reason:    reasonPersonalized,
			Algorithm: AlgorithmPersonalized,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	// Penalize category repetition down the ranked list, then re-rank.
	// Repeat counts come from pre-penalty order, matching how a reader
	// scans the list top to bottom.
	seen := make(map[catalog.Category]int)
	for i := range ranked {
		m, ok := snap.Get(ranked[i].ModelID)
		if !ok {
			continue
		}
		repeats := seen[m.Category]
		seen[m.Category]++
		if repeats > 0 {
			ranked[i].Score *= math.Pow(0.9, float64(repeats)*e.config.DiversityFactor)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// scoreAgainstProfile computes the raw affinity of one model to a
// profile. The price bonus window is half the cheapest to twice the
// most expensive past purchase; a purchase-free profile has a {0,0}
// range, so only free models collect the bonus there.
func scoreAgainstProfile(m catalog.Model, p *interactions.Profile) float64 {
	score := categoryWeight * float64(p.Categories.Count(string(m.Category)))

	tagOverlap := 0.0
	for _, tag := range m.Tags {
		tagOverlap += float64(p.Tags.Count(tag))
	}
	score += math.Min(tagCap, tagWeight*tagOverlap)

	score += frameworkWeight * float64(p.Frameworks.Count(m.Framework))

	if m.BasePrice >= 0.5*p.PriceRange.Min && m.BasePrice <= 2*p.PriceRange.Max {
		score += priceBonus
	}
	return score
}
