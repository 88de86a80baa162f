// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package recommend

import (
	"math"
	"sort"

	"github.com/modelgrid/modelgrid/internal/catalog"
)

// jaccard computes |A∩B| / |A∪B| over two tag sets. An empty union
// scores 0, not 1: two untagged models share no evidence of similarity.
func jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	setA := make(map[string]bool, len(a))
	for _, t := range a {
		setA[t] = true
	}
	setB := make(map[string]bool, len(b))
	for _, t := range b {
		setB[t] = true
	}

	intersection := 0
	union := len(setA)
	for t := range setB {
		if setA[t] {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// sizeAdjacency scores how close two size classes are on the tier
// axis: 1 for equal, decreasing by 0.25 per step, floor 0. Unknown
// classes on either side score 0.
func sizeAdjacency(a, b catalog.SizeClass) float64 {
	ai, ok := a.Index()
	if !ok {
		return 0
	}
	bi, ok := b.Index()
	if !ok {
		return 0
	}
	d := math.Abs(float64(ai - bi))
	return math.Max(0, 1-0.25*d)
}

// Similarity computes the weighted attribute similarity of two models
// on a 0-100 scale (for default weights): exact category match, tag
// Jaccard overlap, case-sensitive framework match, and size-class
// adjacency.
func Similarity(a, b catalog.Model, w Weights) float64 {
	score := 0.0
	if a.Category == b.Category {
		score += w.Category * 100
	}
	score += jaccard(a.Tags, b.Tags) * w.Tags * 100
	if a.Framework != "" && a.Framework == b.Framework {
		score += w.Framework * 100
	}
	score += sizeAdjacency(a.SizeClass, b.SizeClass) * w.ModelSize * 100
	return score
}

// SimilarModels ranks the active models most similar to targetID,
// excluding the target itself. A missing target yields nil. Equal
// scores keep snapshot order.
func SimilarModels(targetID string, snap *catalog.Snapshot, w Weights, limit int) []catalog.Model {
	target, ok := snap.Get(targetID)
	if !ok {
		return nil
	}

	var ranked []scoredModel
	for _, m := range snap.Models() {
		if m.ID == targetID || !m.Active {
			continue
		}
		ranked = append(ranked, scoredModel{model: m, score: Similarity(target, m, w)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]catalog.Model, len(ranked))
	for i, r := range ranked {
		out[i] = r.model
	}
	return out
}
