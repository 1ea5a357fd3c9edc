// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/models"
)

func f(v float64) *float64 { return &v }

func testSnapshot() *Snapshot {
	return &Snapshot{
		RunID:       "run-1",
		GeneratedAt: time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC),
		Records:     3,
		Expanded:    5,
		Tables: models.Tables{
			YearlyTrend: []models.YearlyTrendRow{
				{Year: 2021, Kind: models.KindFilm, TitleCount: 2, AverageRating: f(7)},
				{Year: 2022, Kind: models.KindSeries, TitleCount: 1},
			},
			LanguageCoverage: []models.LanguageCoverageRow{
				{Language: "en", TitleCount: 2, AveragePopularity: f(10)},
				{Language: "fr", TitleCount: 1},
				{Language: "ko", TitleCount: 1},
			},
			Recommendations: models.RecommendationSet{
				Rows:      []models.RecommendationRow{{Language: "en", AverageSentiment: f(0.3), SampleSize: 2}},
				Rule:      "fallback-top-8",
				Threshold: 0,
			},
		},
	}
}

func newTestRouter(snap *Snapshot) http.Handler {
	return NewRouter(NewHandler(snap), MiddlewareConfig{})
}

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func do(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Code != http.StatusNotModified && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s: %v\n%s", target, err, rec.Body.String())
		}
	}
	return rec, env
}

func TestTable_Served(t *testing.T) {
	h := newTestRouter(testSnapshot())

	rec, env := do(t, h, "/api/v1/tables/language_coverage")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if env.Status != "success" || env.Metadata.RunID != "run-1" || env.Metadata.Rows != 3 {
		t.Errorf("unexpected envelope: %+v", env)
	}

	var rows []models.LanguageCoverageRow
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[0].Language != "en" || *rows[0].AveragePopularity != 10 {
		t.Errorf("rows = %+v", rows)
	}
	if rows[1].AveragePopularity != nil {
		t.Error("missing value should decode as null")
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("expected ETag header")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers")
	}
}

func TestTable_EmptyTableIsArray(t *testing.T) {
	h := newTestRouter(testSnapshot())
	rec, env := do(t, h, "/api/v1/tables/top_categories")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if string(env.Data) != "[]" {
		t.Errorf("data = %s, want []", env.Data)
	}
}

func TestTable_Unknown(t *testing.T) {
	h := newTestRouter(testSnapshot())
	rec, env := do(t, h, "/api/v1/tables/users")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Errorf("error = %+v", env.Error)
	}
}

func TestTable_Limit(t *testing.T) {
	h := newTestRouter(testSnapshot())

	tests := []struct {
		query    string
		wantCode int
		wantRows int
	}{
		{"?limit=2", http.StatusOK, 2},
		{"?limit=0", http.StatusOK, 3},
		{"?limit=50", http.StatusOK, 3},
		{"?limit=-1", http.StatusBadRequest, 0},
		{"?limit=20000", http.StatusBadRequest, 0},
		{"?limit=abc", http.StatusBadRequest, 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec, env := do(t, h, "/api/v1/tables/language_coverage"+tt.query)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode != http.StatusOK {
				if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
					t.Errorf("error = %+v", env.Error)
				}
				return
			}
			if env.Metadata.Rows != tt.wantRows {
				t.Errorf("rows = %d, want %d", env.Metadata.Rows, tt.wantRows)
			}
		})
	}
}

func TestTable_NotModified(t *testing.T) {
	h := newTestRouter(testSnapshot())
	first, _ := do(t, h, "/api/v1/tables/yearly_trend")
	etag := first.Header().Get("ETag")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tables/yearly_trend", nil)
	req.Header.Set("If-None-Match", etag)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotModified {
		t.Errorf("status = %d, want 304", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Error("304 response must not carry a body")
	}
}

func TestRecommendations(t *testing.T) {
	h := newTestRouter(testSnapshot())
	rec, env := do(t, h, "/api/v1/recommendations")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var set models.RecommendationSet
	if err := json.Unmarshal(env.Data, &set); err != nil {
		t.Fatal(err)
	}
	if set.Rule != "fallback-top-8" || len(set.Rows) != 1 || set.Rows[0].Language != "en" {
		t.Errorf("set = %+v", set)
	}
}

func TestHealth(t *testing.T) {
	h := newTestRouter(testSnapshot())
	rec, env := do(t, h, "/api/v1/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var health HealthStatus
	if err := json.Unmarshal(env.Data, &health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "healthy" || health.Records != 3 || health.Tables["yearly_trend"] != 2 {
		t.Errorf("health = %+v", health)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestNoSnapshot(t *testing.T) {
	h := newTestRouter(nil)

	rec, env := do(t, h, "/api/v1/tables/yearly_trend")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "NOT_READY" {
		t.Errorf("error = %+v", env.Error)
	}

	_, env = do(t, h, "/api/v1/health")
	var health HealthStatus
	if err := json.Unmarshal(env.Data, &health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "degraded" {
		t.Errorf("status = %q, want degraded", health.Status)
	}
}

func TestSetSnapshot(t *testing.T) {
	handler := NewHandler(nil)
	router := NewRouter(handler, MiddlewareConfig{})
	handler.SetSnapshot(testSnapshot())

	rec, _ := do(t, router, "/api/v1/recommendations")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d after SetSnapshot", rec.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	h := newTestRouter(testSnapshot())
	rec, env := do(t, h, "/api/v2/nothing")
	if rec.Code != http.StatusNotFound || env.Error == nil {
		t.Errorf("status = %d, error = %+v", rec.Code, env.Error)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want 405", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestRouter(testSnapshot())
	do(t, h, "/api/v1/tables/yearly_trend")

	got := testutil.ToFloat64(metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/tables/{name}", "200"))
	if got < 1 {
		t.Errorf("api request counter = %v, want >= 1", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "marquee_api_requests_total") {
		t.Error("exposition missing marquee_api_requests_total")
	}
}

func TestRateLimit(t *testing.T) {
	h := NewRouter(NewHandler(testSnapshot()), MiddlewareConfig{RateLimitRequests: 1, RateLimitWindow: time.Minute})

	first, _ := do(t, h, "/api/v1/health")
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}
	second, env := do(t, h, "/api/v1/health")
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want 429", second.Code)
	}
	if env.Error == nil || env.Error.Code != "RATE_LIMIT_EXCEEDED" {
		t.Errorf("error = %+v", env.Error)
	}
}

func TestSanitizeLogValue(t *testing.T) {
	if got := sanitizeLogValue("a\nb\x7f"); got != `a\x0ab\x7f` {
		t.Errorf("sanitizeLogValue() = %q", got)
	}
}
