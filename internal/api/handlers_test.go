// ModelGrid - AI Model Marketplace Ranking and Recommendations
// Copyright 2026 ModelGrid Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/modelgrid/modelgrid

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/modelgrid/modelgrid/internal/catalog"
	"github.com/modelgrid/modelgrid/internal/interactions"
	"github.com/modelgrid/modelgrid/internal/models"
	"github.com/modelgrid/modelgrid/internal/recommend"
)

func newTestRouter(t *testing.T) (http.Handler, *recommend.Engine) {
	t.Helper()
	store := interactions.NewStore(nil, interactions.StoreConfig{}, zerolog.Nop())

	listed := time.Now().Add(-10 * 24 * time.Hour)
	engine, err := recommend.NewEngine([]catalog.Model{
		{ID: "llm-a", Category: catalog.CategoryLanguageModel, Tags: []string{"chat"},
			Framework: "pytorch", BasePrice: 10, ListedAt: listed, Active: true},
		{ID: "llm-b", Category: catalog.CategoryLanguageModel, Tags: []string{"chat"},
			Framework: "pytorch", BasePrice: 12, ListedAt: listed, Active: true},
		{ID: "img-a", Category: catalog.CategoryImageGeneration, Tags: []string{"diffusion"},
			Framework: "onnx", BasePrice: 25, ListedAt: listed, Active: true},
	}, nil, store, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	return NewRouter(NewHandler(engine), RouterConfig{}), engine
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) *models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	return &resp
}

func TestTrackViewEndpoint(t *testing.T) {
	router, engine := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/track/view", map[string]interface{}{
		"model_id":         "llm-a",
		"user_id":          "user-1",
		"view_duration_ms": 1500,
		"from_search":      true,
		"search_query":     "chat llm",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if resp := decodeEnvelope(t, rec); resp.Status != "success" {
		t.Errorf("Status = %q, want success", resp.Status)
	}

	events := engine.Store().All()
	if len(events) != 1 {
		t.Fatalf("store has %d events, want 1", len(events))
	}
	e := events[0]
	if e.ModelID != "llm-a" || e.UserID != "user-1" || e.Kind != interactions.KindView {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.Meta == nil || e.Meta.ViewDuration != 1500*time.Millisecond || !e.Meta.FromSearch {
		t.Errorf("metadata lost: %+v", e.Meta)
	}
}

func TestTrackRejectsMissingModelID(t *testing.T) {
	router, engine := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/track/purchase",
		map[string]string{"user_id": "user-1"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", resp.Error)
	}
	if len(engine.Store().All()) != 0 {
		t.Error("rejected request must not record an event")
	}
}

func TestTrackRejectsMalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/track/inference",
		strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRecommendationsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet,
		"/api/v1/recommendations?model_id=llm-a&limit=5&algorithms=content-based&exclude=img-a", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeEnvelope(t, rec)

	raw, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatal(err)
	}
	var result recommend.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}

	if result.Context.ModelID != "llm-a" || result.Context.Limit != 5 {
		t.Errorf("context echo wrong: %+v", result.Context)
	}
	for _, s := range result.Scores {
		if s.ModelID == "img-a" {
			t.Error("excluded model in response")
		}
		if s.Algorithm != recommend.AlgorithmContentBased {
			t.Errorf("unexpected algorithm %s", s.Algorithm)
		}
	}
	if len(result.Scores) == 0 {
		t.Error("expected similar models for llm-a")
	}
}

func TestSimilarModelsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/models/llm-a/similar?limit=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)

	raw, _ := json.Marshal(resp.Data)
	var got []catalog.Model
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "llm-b" {
		t.Errorf("similar = %+v, want [llm-b]", got)
	}
}

func TestUpdateModelsEndpointClearsState(t *testing.T) {
	router, engine := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPut, "/api/v1/models", map[string]interface{}{
		"models": []catalog.Model{
			{ID: "new-1", Category: catalog.CategoryEmbedding, Active: true},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	stats := engine.Statistics()
	if stats.TotalItems != 1 {
		t.Errorf("TotalItems = %d, want 1 after replacement", stats.TotalItems)
	}
	if stats.CacheSize != 0 {
		t.Errorf("CacheSize = %d, want 0 after replacement", stats.CacheSize)
	}
}

func TestStatsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/stats", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)

	raw, _ := json.Marshal(resp.Data)
	var stats recommend.Statistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		t.Fatal(err)
	}
	if stats.TotalItems != 3 || stats.ActiveItems != 3 {
		t.Errorf("stats = %+v, want 3 total, 3 active", stats)
	}
}

func TestUserDataExportImportEndpoints(t *testing.T) {
	router, engine := newTestRouter(t)
	engine.TrackPurchase("llm-a", "user-1")

	rec := doJSON(t, router, http.MethodGet, "/api/v1/userdata/export", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d", rec.Code)
	}
	exported := rec.Body.String()

	engine.Store().ClearHistory()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/userdata/import",
		strings.NewReader(exported))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("import status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decodeEnvelope(t, rec)
	raw, _ := json.Marshal(resp.Data)
	var result interactions.ImportResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatal(err)
	}
	if !result.Success || result.Imported != 1 {
		t.Errorf("import result = %+v, want success with 1 event", result)
	}
	if len(engine.Store().All()) != 1 {
		t.Error("imported event missing from store")
	}
}

func TestImportRejectionIsStructuredNotHTTPError(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/userdata/import",
		strings.NewReader(`{"no_events": true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with structured failure", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	raw, _ := json.Marshal(resp.Data)
	var result interactions.ImportResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatal(err)
	}
	if result.Success || result.Error == "" {
		t.Errorf("result = %+v, want structured failure", result)
	}
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/api/v1/health/live", "/api/v1/health/ready"} {
		rec := doJSON(t, router, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "modelgrid_") {
		t.Error("expected modelgrid instruments in metrics output")
	}
}

func TestRequestIDPropagated(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "req-42" {
		t.Errorf("X-Request-ID = %q, want req-42", got)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Metadata.RequestID != "req-42" {
		t.Errorf("metadata request ID = %q, want req-42", resp.Metadata.RequestID)
	}
}
