// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

// Package interactions records marketplace user activity (views,
// purchases, inference calls) in a bounded in-memory log persisted
// through a pluggable key-value port, and derives per-user profiles
// from it.
package interactions

import "time"

// AnonymousUser is the sentinel user ID recorded when no user is known.
const AnonymousUser = "anonymous"

// Kind is the interaction event type.
type Kind string

// Event kinds.
const (
	KindView      Kind = "view"
	KindPurchase  Kind = "purchase"
	KindInference Kind = "inference"
)

// Valid reports whether the kind is one of the recognized event types.
func (k Kind) Valid() bool {
	switch k {
	case KindView, KindPurchase, KindInference:
		return true
	}
	return false
}

// Meta carries optional view context captured at tracking time.
type Meta struct {
	ViewDuration time.Duration `json:"view_duration,omitempty"`
	FromSearch   bool          `json:"from_search,omitempty"`
	SearchQuery  string        `json:"search_query,omitempty"`
}

// Event is one immutable interaction. Events are never edited after
// recording; corrections happen by appending new events.
type Event struct {
	UserID    string    `json:"user_id"`
	ModelID   string    `json:"model_id"`
	Kind      Kind      `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	Meta      *Meta     `json:"meta,omitempty"`
}

// Valid reports whether the event passes shape validation: a model ID,
// a recognized kind, and a timestamp. Events failing this check are
// dropped on read, which is how corrupted persisted state degrades.
func (e Event) Valid() bool {
	return e.ModelID != "" && e.Kind.Valid() && !e.Timestamp.IsZero()
}
