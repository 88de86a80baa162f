// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package catalog

// Snapshot is an immutable, ordered view of the catalog. The order is
// the order models were supplied in, and it is the tie-break order for
// every equal-score ranking downstream, so it must be stable.
type Snapshot struct {
	models []Model
	byID   map[string]Model
}

// NewSnapshot builds a snapshot preserving the supplied order. When the
// same ID appears more than once the last occurrence wins for lookups
// but the first occurrence keeps its position in iteration order.
func NewSnapshot(models []Model) *Snapshot {
	s := &Snapshot{
		models: make([]Model, 0, len(models)),
		byID:   make(map[string]Model, len(models)),
	}
	seen := make(map[string]bool, len(models))
	for _, m := range models {
		if !seen[m.ID] {
			s.models = append(s.models, m)
			seen[m.ID] = true
		}
		s.byID[m.ID] = m
	}
	return s
}

// Get returns the model with the given ID.
func (s *Snapshot) Get(id string) (Model, bool) {
	m, ok := s.byID[id]
	return m, ok
}

// Models returns the snapshot contents in insertion order. Callers must
// not mutate the returned slice.
func (s *Snapshot) Models() []Model { return s.models }

// Len returns the number of models in the snapshot.
func (s *Snapshot) Len() int { return len(s.models) }

// ActiveCount returns how many models are currently listed as active.
func (s *Snapshot) ActiveCount() int {
	n := 0
	for _, m := range s.models {
		if m.Active {
			n++
		}
	}
	return n
}
