// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package recommend

import (
	"fmt"
	"testing"

	"github.com/modelgrid/modelgrid/internal/catalog"
)

func rankedScores(n int, startScore float64) []Score {
	out := make([]Score, n)
	for i := range out {
		out[i] = Score{ModelID: fmt.Sprintf("m%d", i), Score: startScore - float64(i)}
	}
	return out
}

func TestDiversifyCapsCategoryRepeats(t *testing.T) {
	// Ten language models outscore two image models; the cap must pull
	// the image models in once three language models are seated and
	// the list has passed 70% of the limit.
	var models []catalog.Model
	var ranked []Score
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("lang%d", i)
		models = append(models, catalog.Model{ID: id, Category: catalog.CategoryLanguageModel, Active: true})
		ranked = append(ranked, Score{ModelID: id, Score: 100 - float64(i)})
	}
	for i := 0; i < 2; i++ {
		id := fmt.Sprintf("img%d", i)
		models = append(models, catalog.Model{ID: id, Category: catalog.CategoryImageGeneration, Active: true})
		ranked = append(ranked, Score{ModelID: id, Score: 50 - float64(i)})
	}
	snap := catalog.NewSnapshot(models)

	got := diversify(ranked, snap, 5)
	if len(got) != 5 {
		t.Fatalf("returned %d scores, want 5", len(got))
	}

	langCount := 0
	for _, s := range got {
		m, _ := snap.Get(s.ModelID)
		if m.Category == catalog.CategoryLanguageModel {
			langCount++
		}
	}
	// First pass admits lang0-2 (cap not hit) and lang3 while under
	// 70% fill, then caps; img0 fills the last diverse slot.
	if langCount >= 5 {
		t.Errorf("category cap never applied: %d language models of 5", langCount)
	}
	found := false
	for _, s := range got {
		if s.ModelID == "img0" {
			found = true
		}
	}
	if !found {
		t.Error("img0 should be admitted by the diversity pass")
	}
}

func TestDiversifyBackfillsWhenCapStarves(t *testing.T) {
	// Single-category catalog: the cap alone would leave slots empty,
	// so backfill must top the list up in score order.
	var models []catalog.Model
	for i := 0; i < 10; i++ {
		models = append(models, catalog.Model{
			ID: fmt.Sprintf("m%d", i), Category: catalog.CategoryEmbedding, Active: true,
		})
	}
	snap := catalog.NewSnapshot(models)

	got := diversify(rankedScores(10, 100), snap, 8)
	if len(got) != 8 {
		t.Fatalf("returned %d scores, want full 8 via backfill", len(got))
	}
	for i := 0; i < 8; i++ {
		if got[i].ModelID != fmt.Sprintf("m%d", i) {
			t.Errorf("position %d = %s, want m%d (score order)", i, got[i].ModelID, i)
		}
	}
}

func TestDiversifyRespectsLimit(t *testing.T) {
	snap := catalog.NewSnapshot(nil)
	got := diversify(rankedScores(20, 100), snap, 3)
	if len(got) != 3 {
		t.Errorf("returned %d scores, want 3", len(got))
	}
}

func TestDiversifyEmptyInput(t *testing.T) {
	snap := catalog.NewSnapshot(nil)
	if got := diversify(nil, snap, 5); got != nil {
		t.Errorf("diversify(nil) = %v, want nil", got)
	}
}
