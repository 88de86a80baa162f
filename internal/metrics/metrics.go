// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

// Package metrics exposes Prometheus instruments for the recommendation
// engine and its HTTP surface. All instruments register on the default
// registry via promauto and are served by promhttp in cmd/server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InteractionsTracked counts tracked events by kind.
	InteractionsTracked = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "modelgrid",
		Subsystem: "interactions",
		Name:      "tracked_total",
		Help:      "Interaction events tracked, by kind.",
	}, []string{"kind"})

	// InteractionPersistFailures counts swallowed event-log persistence
	// failures. A rising rate means the KV backend is unhealthy even
	// though tracking still succeeds.
	InteractionPersistFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "modelgrid",
		Subsystem: "interactions",
		Name:      "persist_failures_total",
		Help:      "Event log persistence failures (logged and swallowed).",
	})

	// RecommendationRequests counts calls into the engine.
	RecommendationRequests = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "modelgrid",
		Subsystem: "recommend",
		Name:      "requests_total",
		Help:      "Recommendation requests served by the engine.",
	})

	// RecommendationDuration observes engine latency per request.
	RecommendationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "modelgrid",
		Subsystem: "recommend",
		Name:      "duration_seconds",
		Help:      "Recommendation request duration.",
		Buckets:   prometheus.DefBuckets,
	})

	// CacheHits counts recommendation cache hits.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "modelgrid",
		Subsystem: "recommend",
		Name:      "cache_hits_total",
		Help:      "Recommendation cache hits.",
	})

	// CacheMisses counts recommendation cache misses.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "modelgrid",
		Subsystem: "recommend",
		Name:      "cache_misses_total",
		Help:      "Recommendation cache misses.",
	})

	// CacheEntries tracks the current recommendation cache size.
	CacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "modelgrid",
		Subsystem: "recommend",
		Name:      "cache_entries",
		Help:      "Entries currently held by the recommendation cache.",
	})

	// HTTPRequests counts API requests by route pattern, method, and
	// status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "modelgrid",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by route, method, and status.",
	}, []string{"route", "method", "status"})

	// HTTPDuration observes API latency by route pattern.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "modelgrid",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)
