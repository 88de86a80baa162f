// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package recommend

import (
	"math"
	"testing"

	"github.com/modelgrid/modelgrid/internal/catalog"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool { return math.Abs(a-b) < epsilon }

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want float64
	}{
		{"both empty", nil, nil, 0},
		{"one empty", []string{"x"}, nil, 0},
		{"identical", []string{"x", "y"}, []string{"x", "y"}, 1},
		{"disjoint", []string{"x"}, []string{"y"}, 0},
		{"one third", []string{"x", "y"}, []string{"y", "z"}, 1.0 / 3.0},
		{"duplicates collapse", []string{"x", "x"}, []string{"x"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jaccard(tt.a, tt.b); !almostEqual(got, tt.want) {
				t.Errorf("jaccard(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestJaccardSymmetric(t *testing.T) {
	a := []string{"chat", "english", "code"}
	b := []string{"code", "vision"}
	if jaccard(a, b) != jaccard(b, a) {
		t.Errorf("jaccard not symmetric: %v vs %v", jaccard(a, b), jaccard(b, a))
	}
}

func TestSizeAdjacency(t *testing.T) {
	tests := []struct {
		a, b catalog.SizeClass
		want float64
	}{
		{catalog.SizeMedium, catalog.SizeMedium, 1},
		{catalog.SizeSmall, catalog.SizeMedium, 0.75},
		{catalog.SizeTiny, catalog.SizeMedium, 0.5},
		{catalog.SizeTiny, catalog.SizeLarge, 0.25},
		{catalog.SizeTiny, catalog.SizeXLarge, 0},
		{"", catalog.SizeMedium, 0},
		{catalog.SizeMedium, "unknown", 0},
	}

	for _, tt := range tests {
		if got := sizeAdjacency(tt.a, tt.b); !almostEqual(got, tt.want) {
			t.Errorf("sizeAdjacency(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilarityIdenticalModels(t *testing.T) {
	m := catalog.Model{
		ID: "a", Category: catalog.CategoryLanguageModel,
		Tags: []string{"chat"}, Framework: "pytorch", SizeClass: catalog.SizeLarge,
	}
	if got := Similarity(m, m, DefaultWeights()); !almostEqual(got, 100) {
		t.Errorf("Similarity(m, m) = %v, want 100", got)
	}
}

func TestSimilarityBounds(t *testing.T) {
	a := catalog.Model{Category: catalog.CategoryLanguageModel, Tags: []string{"x"}}
	b := catalog.Model{Category: catalog.CategoryEmbedding, Tags: []string{"y"}, Framework: "onnx"}
	got := Similarity(a, b, DefaultWeights())
	if got < 0 || got > 100 {
		t.Errorf("Similarity out of [0,100]: %v", got)
	}
}

func TestSimilarityExactFifty(t *testing.T) {
	// Category match (40) plus a 1/3 tag Jaccard (10): exactly 50 with
	// different frameworks and no size information.
	a := catalog.Model{
		Category: catalog.CategoryLanguageModel,
		Tags:     []string{"chat", "english"}, Framework: "pytorch",
	}
	b := catalog.Model{
		Category: catalog.CategoryLanguageModel,
		Tags:     []string{"english", "code"}, Framework: "onnx",
	}
	if got := Similarity(a, b, DefaultWeights()); !almostEqual(got, 50) {
		t.Errorf("Similarity = %v, want exactly 50", got)
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	a := catalog.Model{
		Category: catalog.CategoryLanguageModel,
		Tags:     []string{"chat"}, Framework: "pytorch", SizeClass: catalog.SizeSmall,
	}
	b := catalog.Model{
		Category: catalog.CategoryEmbedding,
		Tags:     []string{"chat", "fast"}, Framework: "pytorch", SizeClass: catalog.SizeLarge,
	}
	w := DefaultWeights()
	if Similarity(a, b, w) != Similarity(b, a, w) {
		t.Error("Similarity not symmetric")
	}
}

func TestSimilarModelsExcludesTargetAndInactive(t *testing.T) {
	snap := catalog.NewSnapshot([]catalog.Model{
		{ID: "target", Category: catalog.CategoryLanguageModel, Active: true},
		{ID: "twin", Category: catalog.CategoryLanguageModel, Active: true},
		{ID: "inactive-twin", Category: catalog.CategoryLanguageModel, Active: false},
		{ID: "far", Category: catalog.CategoryImageGeneration, Active: true},
	})

	got := SimilarModels("target", snap, DefaultWeights(), 10)

	if len(got) != 2 {
		t.Fatalf("returned %d models, want 2", len(got))
	}
	for _, m := range got {
		if m.ID == "target" {
			t.Error("target must be excluded")
		}
		if m.ID == "inactive-twin" {
			t.Error("inactive models must be excluded")
		}
	}
	if got[0].ID != "twin" {
		t.Errorf("best match = %s, want twin", got[0].ID)
	}
}

func TestSimilarModelsMissingTarget(t *testing.T) {
	snap := catalog.NewSnapshot([]catalog.Model{{ID: "a", Active: true}})
	if got := SimilarModels("ghost", snap, DefaultWeights(), 10); got != nil {
		t.Errorf("missing target should yield nil, got %v", got)
	}
}

func TestSimilarModelsTiesKeepSnapshotOrder(t *testing.T) {
	// Three equally similar candidates: ranking must keep their
	// snapshot positions.
	snap := catalog.NewSnapshot([]catalog.Model{
		{ID: "target", Category: catalog.CategoryEmbedding, Active: true},
		{ID: "c1", Category: catalog.CategoryEmbedding, Active: true},
		{ID: "c2", Category: catalog.CategoryEmbedding, Active: true},
		{ID: "c3", Category: catalog.CategoryEmbedding, Active: true},
	})

	got := SimilarModels("target", snap, DefaultWeights(), 2)
	if len(got) != 2 || got[0].ID != "c1" || got[1].ID != "c2" {
		t.Errorf("tie order wrong: %v", ids(got))
	}
}

func ids(models []catalog.Model) []string {
	out := make([]string, len(models))
	for i, m := range models {
		out[i] = m.ID
	}
	return out
}
