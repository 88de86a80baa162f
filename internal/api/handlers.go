// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

// Package api exposes the recommendation engine's public method set
// over HTTP: event tracking, the merged recommendation endpoint, the
// single-algorithm endpoints, catalog updates, cache and history
// management, and user-data export/import.
package api

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/modelgrid/modelgrid/internal/catalog"
	"github.com/modelgrid/modelgrid/internal/interactions"
	"github.com/modelgrid/modelgrid/internal/recommend"
)

// maxImportBytes bounds user-data import payloads.
const maxImportBytes = 4 << 20

// Handler serves the recommendation API.
type Handler struct {
	engine  *recommend.Engine
	started time.Time
}

// NewHandler creates the API handler over an engine.
func NewHandler(engine *recommend.Engine) *Handler {
	return &Handler{engine: engine, started: time.Now()}
}

// trackRequest is the JSON body of all three tracking endpoints.
type trackRequest struct {
	ModelID        string `json:"model_id" validate:"required"`
	UserID         string `json:"user_id,omitempty"`
	ViewDurationMS int64  `json:"view_duration_ms,omitempty" validate:"min=0"`
	FromSearch     bool   `json:"from_search,omitempty"`
	SearchQuery    string `json:"search_query,omitempty"`
}

// TrackView handles POST /track/view.
func (h *Handler) TrackView(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req trackRequest
	if apiErr := decodeJSONBody(r, &req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	var meta *interactions.Meta
	if req.ViewDurationMS > 0 || req.FromSearch || req.SearchQuery != "" {
		meta = &interactions.Meta{
			ViewDuration: time.Duration(req.ViewDurationMS) * time.Millisecond,
			FromSearch:   req.FromSearch,
			SearchQuery:  req.SearchQuery,
		}
	}
	h.engine.TrackView(req.ModelID, req.UserID, meta)
	respondOK(w, r, map[string]string{"tracked": "view"}, start)
}

// TrackPurchase handles POST /track/purchase.
func (h *Handler) TrackPurchase(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req trackRequest
	if apiErr := decodeJSONBody(r, &req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	h.engine.TrackPurchase(req.ModelID, req.UserID)
	respondOK(w, r, map[string]string{"tracked": "purchase"}, start)
}

// TrackInference handles POST /track/inference.
func (h *Handler) TrackInference(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req trackRequest
	if apiErr := decodeJSONBody(r, &req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	h.engine.TrackInference(req.ModelID, req.UserID)
	respondOK(w, r, map[string]string{"tracked": "inference"}, start)
}

// Recommendations handles GET /recommendations. All parameters are
// optional query values; unusable ones fall back to defaults rather
// than failing the request.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var algorithms []recommend.Algorithm
	for _, a := range parseCommaSeparated(r.URL.Query().Get("algorithms")) {
		algorithms = append(algorithms, recommend.Algorithm(a))
	}

	result := h.engine.Recommendations(recommend.Context{
		ModelID:    r.URL.Query().Get("model_id"),
		UserID:     r.URL.Query().Get("user_id"),
		Algorithms: algorithms,
		Limit:      getIntParam(r, "limit", 0),
		MinScore:   getFloatParam(r, "min_score"),
		Exclude:    parseCommaSeparated(r.URL.Query().Get("exclude")),
	})
	respondOK(w, r, result, start)
}

// SimilarModels handles GET /models/{id}/similar.
func (h *Handler) SimilarModels(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")
	limit := getIntParam(r, "limit", 10)
	respondOK(w, r, h.engine.SimilarModels(id, limit), start)
}

// AlsoBought handles GET /models/{id}/also-bought.
func (h *Handler) AlsoBought(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := chi.URLParam(r, "id")
	limit := getIntParam(r, "limit", 10)
	respondOK(w, r, h.engine.AlsoBought(id, limit), start)
}

// Trending handles GET /trending. The window accepts Go duration
// syntax, e.g. ?window=168h.
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	window := getDurationParam(r, "window", 0)
	limit := getIntParam(r, "limit", 10)
	if r.URL.Query().Get("detailed") == "true" {
		respondOK(w, r, h.engine.TrendingScores(window, limit), start)
		return
	}
	respondOK(w, r, h.engine.Trending(window, limit), start)
}

// CategoryRecommendations handles GET /categories/{category}.
func (h *Handler) CategoryRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	category := catalog.ParseCategory(chi.URLParam(r, "category"))
	limit := getIntParam(r, "limit", 10)
	respondOK(w, r, h.engine.CategoryRecommendations(category, limit), start)
}

// Personalized handles GET /users/{id}/recommendations.
func (h *Handler) Personalized(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	userID := chi.URLParam(r, "id")
	limit := getIntParam(r, "limit", 10)
	respondOK(w, r, h.engine.Personalized(userID, limit), start)
}

// UpdateModels handles PUT /models: full catalog snapshot replacement.
func (h *Handler) UpdateModels(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var body struct {
		Models []catalog.Model `json:"models" validate:"required"`
	}
	if apiErr := decodeJSONBody(r, &body); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	h.engine.UpdateModels(body.Models)
	respondOK(w, r, map[string]int{"models": len(body.Models)}, start)
}

// ClearCache handles POST /cache/clear.
func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	h.engine.ClearCache()
	respondOK(w, r, map[string]string{"cache": "cleared"}, start)
}

// Stats handles GET /stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondOK(w, r, h.engine.Statistics(), start)
}

// ClearHistory handles POST /history/clear.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	h.engine.Store().ClearHistory()
	respondOK(w, r, map[string]string{"history": "cleared"}, start)
}

// ExportUserData handles GET /userdata/export.
func (h *Handler) ExportUserData(w http.ResponseWriter, r *http.Request) {
	payload, err := h.engine.Store().Export()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "EXPORT_FAILED",
			"failed to export interaction data", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="modelgrid-userdata.json"`)
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, payload); err != nil {
		respondError(w, http.StatusInternalServerError, "EXPORT_FAILED",
			"failed to write export", err)
	}
}

// ImportUserData handles POST /userdata/import. Validation failures
// come back as a structured result with HTTP 200: a rejected import is
// an outcome, not a transport error.
func (h *Handler) ImportUserData(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY",
			"failed to read request body", err)
		return
	}
	respondOK(w, r, h.engine.Store().Import(string(payload)), start)
}

// HealthLive handles GET /health/live.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondOK(w, r, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.started).String(),
	}, start)
}

// HealthReady handles GET /health/ready. The engine has no external
// startup dependency, so readiness follows liveness; the split exists
// for deployment symmetry.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	stats := h.engine.Statistics()
	respondOK(w, r, map[string]interface{}{
		"status":       "ok",
		"total_items":  stats.TotalItems,
		"active_items": stats.ActiveItems,
	}, start)
}
