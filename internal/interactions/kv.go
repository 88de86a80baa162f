// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package interactions

// KV is the persistence port the store writes its event log through.
// The store treats it as best-effort: Set failures are logged and
// swallowed so tracking never blocks on a broken disk or a full quota.
type KV interface {
	// Get returns the value for key and whether the key exists.
	Get(key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
}
