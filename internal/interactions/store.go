// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package interactions

import (
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/modelgrid/modelgrid/internal/metrics"
)

// DefaultCapacity is the maximum number of events retained in the log.
const DefaultCapacity = 100

// DefaultStorageKey is the well-known KV key the whole log is persisted
// under.
const DefaultStorageKey = "modelgrid:interactions"

// StoreConfig configures the interaction store.
type StoreConfig struct {
	// Capacity is the FIFO bound on the event log. Default: 100.
	Capacity int

	// StorageKey is the KV key the log is persisted under.
	// Default: "modelgrid:interactions".
	StorageKey string
}

// logEnvelope is the persisted shape of the event log.
type logEnvelope struct {
	Events []Event `json:"events"`
}

// Store is the append-only, FIFO-bounded interaction log. All mutation
// happens under a single mutex; scoring code works on snapshot copies
// returned by All and never holds the lock.
//
// Persistence is best-effort: every mutation rewrites the whole log to
// the KV port, and any failure there is logged and swallowed. Losing
// recommendation signal is acceptable; breaking tracking is not.
type Store struct {
	mu       sync.Mutex
	events   []Event
	capacity int
	key      string
	kv       KV
	logger   zerolog.Logger
	now      func() time.Time
}

// NewStore creates a store and loads any previously persisted log from
// kv. A missing, unreadable, or corrupt value starts the store empty.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewStore(kv KV, cfg StoreConfig, logger zerolog.Logger) *Store {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = DefaultStorageKey
	}

	s := &Store{
		capacity: cfg.Capacity,
		key:      cfg.StorageKey,
		kv:       kv,
		logger:   logger.With().Str("component", "interactions").Logger(),
		now:      time.Now,
	}
	s.load()
	return s
}

// load restores the persisted log. Failures degrade to an empty log.
func (s *Store) load() {
	if s.kv == nil {
		return
	}

	raw, found, err := s.kv.Get(s.key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).
			Msg("failed to load interaction log, starting empty")
		return
	}
	if !found {
		return
	}

	var env logEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).
			Msg("corrupt interaction log, starting empty")
		return
	}

	s.events = env.Events
	if len(s.events) > s.capacity {
		s.events = s.events[len(s.events)-s.capacity:]
	}
	s.logger.Debug().Int("events", len(s.events)).Msg("interaction log restored")
}

// TrackView records a model view for userID (empty means anonymous).
func (s *Store) TrackView(modelID, userID string, meta *Meta) {
	s.Record(Event{
		UserID:    normalizeUser(userID),
		ModelID:   modelID,
		Kind:      KindView,
		Timestamp: s.now(),
		Meta:      meta,
	})
}

// TrackPurchase records a purchase of modelID by userID.
func (s *Store) TrackPurchase(modelID, userID string) {
	s.Record(Event{
		UserID:    normalizeUser(userID),
		ModelID:   modelID,
		Kind:      KindPurchase,
		Timestamp: s.now(),
	})
}

// TrackInference records an inference call against modelID.
func (s *Store) TrackInference(modelID, userID string) {
	s.Record(Event{
		UserID:    normalizeUser(userID),
		ModelID:   modelID,
		Kind:      KindInference,
		Timestamp: s.now(),
	})
}

func normalizeUser(userID string) string {
	if userID == "" {
		return AnonymousUser
	}
	return userID
}

// Record appends an event, trims to capacity, and persists. Storage
// failures never propagate to the caller.
func (s *Store) Record(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, event)
	if len(s.events) > s.capacity {
		s.events = s.events[len(s.events)-s.capacity:]
	}
	s.persistLocked()

	metrics.InteractionsTracked.WithLabelValues(string(event.Kind)).Inc()
}

// persistLocked writes the whole log to the KV port. Caller holds mu.
func (s *Store) persistLocked() {
	if s.kv == nil {
		return
	}

	raw, err := json.Marshal(logEnvelope{Events: s.events})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode interaction log")
		metrics.InteractionPersistFailures.Inc()
		return
	}
	if err := s.kv.Set(s.key, raw); err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).
			Msg("failed to persist interaction log")
		metrics.InteractionPersistFailures.Inc()
	}
}

// All returns a copy of the log in recording order, dropping events
// that fail shape validation. Malformed persisted state degrades to
// fewer events, never to an error.
func (s *Store) All() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Event, 0, len(s.events))
	for _, e := range s.events {
		if e.Valid() {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the raw log length including events that would fail
// validation on read.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

// RecentByWindow returns valid events with Timestamp >= now-window,
// optionally restricted to the given kinds.
func (s *Store) RecentByWindow(window time.Duration, kinds ...Kind) []Event {
	cutoff := s.now().Add(-window)

	var out []Event
	for _, e := range s.All() {
		if e.Timestamp.Before(cutoff) {
			continue
		}
		if len(kinds) > 0 && !kindIn(e.Kind, kinds) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func kindIn(k Kind, kinds []Kind) bool {
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

// CoOccurring counts, for every view of modelID, the other models
// viewed by any user within ±sessionWindow of that view. The count is
// per event pair, so models repeatedly co-viewed rank higher. Order is
// first-encounter order over the log scan, making results
// deterministic.
func (s *Store) CoOccurring(modelID string, sessionWindow time.Duration) *Counter {
	events := s.All()
	counts := NewCounter()

	for _, anchor := range events {
		if anchor.ModelID != modelID || anchor.Kind != KindView {
			continue
		}
		for _, other := range events {
			if other.Kind != KindView || other.ModelID == modelID {
				continue
			}
			delta := other.Timestamp.Sub(anchor.Timestamp)
			if delta < 0 {
				delta = -delta
			}
			if delta <= sessionWindow {
				counts.Add(other.ModelID)
			}
		}
	}
	return counts
}

// ClearHistory empties the log and removes the persisted value. As
// with Record, storage failures are logged and swallowed.
func (s *Store) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = nil
	if s.kv == nil {
		return
	}
	if err := s.kv.Remove(s.key); err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).
			Msg("failed to clear persisted interaction log")
		metrics.InteractionPersistFailures.Inc()
	}
}
