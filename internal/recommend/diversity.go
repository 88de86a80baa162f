// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package recommend

import "github.com/modelgrid/modelgrid/internal/catalog"

// maxCategoryRepeats caps how many models of one category the first
// pass admits once the list is reasonably full.
const maxCategoryRepeats = 3

// fillRatio is the portion of the requested limit below which the
// category cap is suspended, so small result sets are never starved in
// a single-category catalog.
const fillRatio = 0.7

// diversify applies the final category-spread pass over a merged,
// score-descending candidate list. First pass: admit each candidate if
// its category has been seen fewer than three times or the list is
// still under 70% of the limit. Second pass: backfill remaining slots
// in score order ignoring the cap, so the list always reaches the
// limit when enough candidates exist.
func diversify(ranked []Score, snap *catalog.Snapshot, limit int) []Score {
	if limit <= 0 || len(ranked) == 0 {
		return nil
	}

	out := make([]Score, 0, limit)
	included := make(map[string]bool, limit)
	categorySeen := make(map[catalog.Category]int)

	for _, s := range ranked {
		if len(out) >= limit {
			break
		}
		category := catalog.CategoryOther
		if m, ok := snap.Get(s.ModelID); ok {
			category = m.Category
		}
		underfilled := float64(len(out)) < fillRatio*float64(limit)
		if categorySeen[category] < maxCategoryRepeats || underfilled {
			out = append(out, s)
			included[s.ModelID] = true
			categorySeen[category]++
		}
	}

	for _, s := range ranked {
		if len(out) >= limit {
			break
		}
		if !included[s.ModelID] {
			out = append(out, s)
			included[s.ModelID] = true
		}
	}

	return out
}
