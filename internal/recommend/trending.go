// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package recommend

import (
	"sort"
	"time"

	"github.com/modelgrid/modelgrid/internal/catalog"
	"github.com/modelgrid/modelgrid/internal/interactions"
)

// momentumWindow is fixed at 7 days regardless of the configured
// trending window: momentum always means "fraction of lifetime volume
// in the last week".
const momentumWindow = 7 * 24 * time.Hour

// recencyWindow is the 24h band whose event count boosts the trend
// score.
const recencyWindow = 24 * time.Hour

// trendCounts is the per-model event tally over one pass of the log.
type trendCounts struct {
	sales      int
	inferences int
	last24h    int
	last7d     int
	total      int
}

// trendScores computes the trend summary for every active model with
// at least threshold in-window transactions, ranked by trend score
// descending. Equal scores keep snapshot order.
func trendScores(snap *catalog.Snapshot, events []interactions.Event,
	window time.Duration, threshold int, now time.Time, limit int) []TrendScore {
	windowCutoff := now.Add(-window)
	dayCutoff := now.Add(-recencyWindow)
	weekCutoff := now.Add(-momentumWindow)

	counts := make(map[string]*trendCounts)
	tally := func(id string) *trendCounts {
		c, ok := counts[id]
		if !ok {
			c = &trendCounts{}
			counts[id] = c
		}
		return c
	}

	for _, e := range events {
		c := tally(e.ModelID)
		c.total++
		if !e.Timestamp.Before(weekCutoff) {
			c.last7d++
		}
		if !e.Timestamp.Before(dayCutoff) {
			c.last24h++
		}
		if e.Timestamp.Before(windowCutoff) {
			continue
		}
		switch e.Kind {
		case interactions.KindPurchase:
			c.sales++
		case interactions.KindInference:
			c.inferences++
		}
	}

	var out []TrendScore
	for _, m := range snap.Models() {
		if !m.Active {
			continue
		}
		c, ok := counts[m.ID]
		if !ok || c.sales+c.inferences < threshold {
			continue
		}

		days := now.Sub(m.ListedAt).Hours() / 24
		if days < 1 {
			days = 1
		}
		recentWeight := 1 + 0.5*float64(c.last24h)

		out = append(out, TrendScore{
			ModelID:    m.ID,
			Score:      (2*float64(c.sales) + float64(c.inferences)) / days * recentWeight,
			Velocity:   float64(c.sales+c.inferences) / days,
			Momentum:   float64(c.last7d) / float64(maxInt(c.total, 1)),
			Sales:      c.sales,
			Inferences: c.inferences,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
