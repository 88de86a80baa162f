// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package recommend

import (
	"github.com/modelgrid/modelgrid/internal/catalog"
	"github.com/modelgrid/modelgrid/internal/interactions"
)

// alsoBought implements the purchase-graph walk: find everyone who
// purchased modelID, count their other purchases, rank by count. With
// no purchasers at all it degrades to view co-occurrence within the
// configured session window, so fresh listings still get collaborative
// candidates.
func (e *Engine) alsoBought(modelID string, snap *catalog.Snapshot, limit int) []catalog.Model {
	events := e.store.All()

	purchasers := make(map[string]bool)
	for _, ev := range events {
		if ev.Kind == interactions.KindPurchase && ev.ModelID == modelID {
			purchasers[ev.UserID] = true
		}
	}

	counts := interactions.NewCounter()
	if len(purchasers) == 0 {
		counts = e.store.CoOccurring(modelID, e.config.SessionWindow)
	} else {
		for _, ev := range events {
			if ev.Kind != interactions.KindPurchase || ev.ModelID == modelID {
				continue
			}
			if purchasers[ev.UserID] {
				counts.Add(ev.ModelID)
			}
		}
	}

	var out []catalog.Model
	for _, id := range counts.Top(0) {
		m, ok := snap.Get(id)
		if !ok || !m.Active {
			continue
		}
		out = append(out, m)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
