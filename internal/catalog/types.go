// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

// Package catalog defines the marketplace catalog types: the model listing,
// its category and size-class enumerations, and an immutable snapshot that
// the recommendation engine reads from.
package catalog

import "time"

// Category classifies a model listing by task family.
type Category string

// Model categories recognized by the marketplace.
const (
	CategoryLanguageModel       Category = "language-model"
	CategoryImageGeneration     Category = "image-generation"
	CategoryImageClassification Category = "image-classification"
	CategoryAudioProcessing     Category = "audio-processing"
	CategoryVideoProcessing     Category = "video-processing"
	CategoryEmbedding           Category = "embedding"
	CategoryObjectDetection     Category = "object-detection"
	CategoryTextToSpeech        Category = "text-to-speech"
	CategorySpeechToText        Category = "speech-to-text"
	CategoryTranslation         Category = "translation"
	CategoryOther               Category = "other"
)

// knownCategories is the closed set used by ParseCategory.
var knownCategories = map[Category]bool{
	CategoryLanguageModel:       true,
	CategoryImageGeneration:     true,
	CategoryImageClassification: true,
	CategoryAudioProcessing:     true,
	CategoryVideoProcessing:     true,
	CategoryEmbedding:           true,
	CategoryObjectDetection:     true,
	CategoryTextToSpeech:        true,
	CategorySpeechToText:        true,
	CategoryTranslation:         true,
	CategoryOther:               true,
}

// ParseCategory maps a raw string to a known category, falling back to
// CategoryOther for anything unrecognized.
func ParseCategory(s string) Category {
	c := Category(s)
	if knownCategories[c] {
		return c
	}
	return CategoryOther
}

// String returns the wire representation of the category.
func (c Category) String() string { return string(c) }

// SizeClass is the ordered parameter-count tier of a model.
// Ordering matters: similarity treats adjacent tiers as closer than
// distant ones.
type SizeClass string

// Size classes from smallest to largest.
const (
	SizeTiny   SizeClass = "tiny"
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
	SizeXLarge SizeClass = "xlarge"
)

// sizeOrder assigns each known size class its position on the tier axis.
var sizeOrder = map[SizeClass]int{
	SizeTiny:   0,
	SizeSmall:  1,
	SizeMedium: 2,
	SizeLarge:  3,
	SizeXLarge: 4,
}

// Index returns the tier position of the size class and whether the
// class is known. Unknown classes carry no position and score zero in
// size-adjacency comparisons.
func (s SizeClass) Index() (int, bool) {
	i, ok := sizeOrder[s]
	return i, ok
}

// Model is one catalog listing. Instances are treated as immutable once
// handed to a snapshot; updates arrive as whole replacement snapshots.
type Model struct {
	ID              string    `json:"id"`
	Name            string    `json:"name,omitempty"`
	Category        Category  `json:"category"`
	Tags            []string  `json:"tags,omitempty"`
	Framework       string    `json:"framework,omitempty"`
	SizeClass       SizeClass `json:"size_class,omitempty"`
	BasePrice       float64   `json:"base_price"`
	ListedAt        time.Time `json:"listed_at"`
	Active          bool      `json:"active"`
	TotalSales      int64     `json:"total_sales"`
	TotalInferences int64     `json:"total_inferences"`
}

// Popularity is the aggregate demand signal used for category ranking:
// purchases weighted double over inference calls.
func (m Model) Popularity() int64 {
	return 2*m.TotalSales + m.TotalInferences
}
