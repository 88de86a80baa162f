// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package interactions

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// BreakerKVConfig tunes the circuit breaker around a KV backend.
type BreakerKVConfig struct {
	// Name labels the breaker in logs. Default: "interactions-kv".
	Name string

	// FailureThreshold is the consecutive-failure count that opens the
	// breaker. Default: 5.
	FailureThreshold uint32

	// Timeout is how long the breaker stays open before probing the
	// backend again. Default: 30s.
	Timeout time.Duration

	// MaxRequests is the number of probe requests allowed while
	// half-open. Default: 1.
	MaxRequests uint32
}

// DefaultBreakerKVConfig returns production defaults.
func DefaultBreakerKVConfig() BreakerKVConfig {
	return BreakerKVConfig{
		Name:             "interactions-kv",
		FailureThreshold: 5,
		Timeout:          30 * time.Second,
		MaxRequests:      1,
	}
}

// kvResult carries a Get result through the generic breaker.
type kvResult struct {
	value []byte
	found bool
}

// BreakerKV decorates a KV backend with a circuit breaker so that a
// persistently failing backend fails fast instead of paying the full
// backend latency on every tracked event. The store already swallows
// Set errors; the breaker keeps that swallowing cheap.
type BreakerKV struct {
	inner KV
	cb    *gobreaker.CircuitBreaker[kvResult]
}

// NewBreakerKV wraps inner with a circuit breaker.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewBreakerKV(inner KV, cfg BreakerKVConfig, logger zerolog.Logger) *BreakerKV {
	def := DefaultBreakerKVConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = def.MaxRequests
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("interaction KV circuit breaker state change")
		},
	}

	return &BreakerKV{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[kvResult](settings),
	}
}

// Get reads through the breaker. An open breaker surfaces as an error,
// which the store treats the same as a backend read failure.
func (b *BreakerKV) Get(key string) ([]byte, bool, error) {
	res, err := b.cb.Execute(func() (kvResult, error) {
		value, found, err := b.inner.Get(key)
		return kvResult{value: value, found: found}, err
	})
	if err != nil {
		return nil, false, err
	}
	return res.value, res.found, nil
}

// Set writes through the breaker.
func (b *BreakerKV) Set(key string, value []byte) error {
	_, err := b.cb.Execute(func() (kvResult, error) {
		return kvResult{}, b.inner.Set(key, value)
	})
	return err
}

// Remove deletes through the breaker.
func (b *BreakerKV) Remove(key string) error {
	_, err := b.cb.Execute(func() (kvResult, error) {
		return kvResult{}, b.inner.Remove(key)
	})
	return err
}
