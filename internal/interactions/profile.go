// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package interactions

import (
	"time"

	"github.com/modelgrid/modelgrid/internal/catalog"
)

// RecentEventLimit bounds the Recent slice on a profile.
const RecentEventLimit = 20

// PriceRange is the purchase-price envelope of a user. Both bounds are
// zero for users with no purchases; scoring treats that case specially.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Profile is a per-user preference summary derived on demand from the
// event log joined to catalog attributes. Profiles are never stored;
// they are rebuilt from whatever events survive the FIFO bound.
type Profile struct {
	UserID         string
	Categories     *Counter
	Tags           *Counter
	Frameworks     *Counter
	PriceRange     PriceRange
	FirstSeen      time.Time
	LastSeen       time.Time
	PurchaseCount  int
	InferenceCount int
	Recent         []Event
}

// HasPurchases reports whether the profile saw at least one purchase.
func (p *Profile) HasPurchases() bool { return p.PurchaseCount > 0 }

// ProfileBuilder derives user profiles from an interaction store.
type ProfileBuilder struct {
	store *Store
}

// NewProfileBuilder creates a builder over store.
func NewProfileBuilder(store *Store) *ProfileBuilder {
	return &ProfileBuilder{store: store}
}

// Build derives the profile for userID. Events referencing models
// absent from attrs still count toward timestamps and event counters
// but contribute no attribute frequencies. The price range covers
// purchase events only, priced at the model's base price at build time.
func (b *ProfileBuilder) Build(userID string, attrs map[string]catalog.Model) *Profile {
	p := &Profile{
		UserID:     userID,
		Categories: NewCounter(),
		Tags:       NewCounter(),
		Frameworks: NewCounter(),
	}

	var userEvents []Event
	pricedPurchases := 0
	for _, e := range b.store.All() {
		if e.UserID != userID {
			continue
		}
		userEvents = append(userEvents, e)

		if p.FirstSeen.IsZero() || e.Timestamp.Before(p.FirstSeen) {
			p.FirstSeen = e.Timestamp
		}
		if e.Timestamp.After(p.LastSeen) {
			p.LastSeen = e.Timestamp
		}

		switch e.Kind {
		case KindPurchase:
			p.PurchaseCount++
		case KindInference:
			p.InferenceCount++
		}

		model, ok := attrs[e.ModelID]
		if !ok {
			continue
		}

		p.Categories.Add(string(model.Category))
		for _, tag := range model.Tags {
			p.Tags.Add(tag)
		}
		if model.Framework != "" {
			p.Frameworks.Add(model.Framework)
		}

		if e.Kind == KindPurchase {
			price := model.BasePrice
			pricedPurchases++
			if pricedPurchases == 1 {
				p.PriceRange = PriceRange{Min: price, Max: price}
			} else {
				if price < p.PriceRange.Min {
					p.PriceRange.Min = price
				}
				if price > p.PriceRange.Max {
					p.PriceRange.Max = price
				}
			}
		}
	}

	if len(userEvents) > RecentEventLimit {
		userEvents = userEvents[len(userEvents)-RecentEventLimit:]
	}
	p.Recent = userEvents

	return p
}
