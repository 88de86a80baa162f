// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig tunes the HTTP surface.
type RouterConfig struct {
	// TrackRateLimit bounds tracking writes per client IP per minute.
	TrackRateLimit int

	// ReadRateLimit bounds read endpoints per client IP per minute.
	ReadRateLimit int
}

// NewRouter wires the full route tree: tracking writes and reads rate
// limited separately, health and metrics unthrottled.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	if cfg.TrackRateLimit <= 0 {
		cfg.TrackRateLimit = 600
	}
	if cfg.ReadRateLimit <= 0 {
		cfg.ReadRateLimit = 300
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(instrument)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(cfg.TrackRateLimit, time.Minute))
			r.Post("/track/view", h.TrackView)
			r.Post("/track/purchase", h.TrackPurchase)
			r.Post("/track/inference", h.TrackInference)
		})

		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(cfg.ReadRateLimit, time.Minute))
			r.Get("/recommendations", h.Recommendations)
			r.Get("/models/{id}/similar", h.SimilarModels)
			r.Get("/models/{id}/also-bought", h.AlsoBought)
			r.Get("/trending", h.Trending)
			r.Get("/categories/{category}", h.CategoryRecommendations)
			r.Get("/users/{id}/recommendations", h.Personalized)
			r.Get("/stats", h.Stats)
			r.Get("/userdata/export", h.ExportUserData)
		})

		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(cfg.ReadRateLimit, time.Minute))
			r.Put("/models", h.UpdateModels)
			r.Post("/cache/clear", h.ClearCache)
			r.Post("/history/clear", h.ClearHistory)
			r.Post("/userdata/import", h.ImportUserData)
		})

		r.Get("/health/live", h.HealthLive)
		r.Get("/health/ready", h.HealthReady)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
