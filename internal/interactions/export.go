// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package interactions

import (
	"time"

	"github.com/goccy/go-json"
)

// ExportData is the portable JSON shape produced by Export and accepted
// by Import.
type ExportData struct {
	ExportedAt time.Time `json:"exported_at"`
	Events     []Event   `json:"events"`
}

// ImportResult reports the outcome of an Import. Validation failures
// are data, not Go errors: callers surface them to the end user.
type ImportResult struct {
	Success  bool   `json:"success"`
	Imported int    `json:"imported"`
	Error    string `json:"error,omitempty"`
}

// Export serializes the current valid events to JSON.
func (s *Store) Export() (string, error) {
	data := ExportData{
		ExportedAt: s.now(),
		Events:     s.All(),
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Import replaces the log with the events from a previous Export. The
// payload must be valid JSON with a top-level "events" array; anything
// else is rejected without touching the current log. Imported events
// beyond capacity are trimmed oldest-first, matching Record.
func (s *Store) Import(payload string) ImportResult {
	var data struct {
		Events *[]Event `json:"events"`
	}
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return ImportResult{Error: "invalid JSON: " + err.Error()}
	}
	if data.Events == nil {
		return ImportResult{Error: "missing events array"}
	}

	events := *data.Events

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = events
	if len(s.events) > s.capacity {
		s.events = s.events[len(s.events)-s.capacity:]
	}
	s.persistLocked()

	return ImportResult{Success: true, Imported: len(events)}
}
