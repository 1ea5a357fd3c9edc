// Marquee - Content Catalogue Analytics and Investment Insights
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/export"
	"github.com/tomtom215/marquee/internal/models"
)

// Snapshot is the result of one analysis run as served by the API.
type Snapshot struct {
	RunID       string
	GeneratedAt time.Time
	Records     int
	Expanded    int
	Tables      models.Tables
}

// Handler serves a Snapshot. It is safe for concurrent use.
type Handler struct {
	snapshot atomic.Pointer[Snapshot]
	started  time.Time
}

// NewHandler creates a Handler serving snap.
func NewHandler(snap *Snapshot) *Handler {
	h := &Handler{started: time.Now()}
	h.snapshot.Store(snap)
	return h
}

// SetSnapshot replaces the served snapshot.
func (h *Handler) SetSnapshot(snap *Snapshot) {
	h.snapshot.Store(snap)
}

// TableQuery holds the query parameters of the tables endpoint.
type TableQuery struct {
	Limit int `query:"limit" validate:"min=0,max=10000"`
}

// HealthStatus is the payload of the health endpoint.
type HealthStatus struct {
	Status      string         `json:"status"`
	RunID       string         `json:"run_id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Uptime      float64        `json:"uptime_seconds"`
	Records     int            `json:"records"`
	Expanded    int            `json:"expanded_rows"`
	Tables      map[string]int `json:"tables"`
}

// Health reports the served run and the size of every table.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot.Load()
	health := HealthStatus{
		Status: "healthy",
		Uptime: time.Since(h.started).Seconds(),
		Tables: map[string]int{},
	}
	if snap == nil {
		health.Status = "degraded"
	} else {
		health.RunID = snap.RunID
		health.GeneratedAt = snap.GeneratedAt
		health.Records = snap.Records
		health.Expanded = snap.Expanded
		for _, name := range export.TableNames {
			health.Tables[name] = tableLen(snap.Tables, name)
		}
	}

	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     health,
		Metadata: h.metadata(snap, 0),
	})
}

// Table serves one table by name.
func (h *Handler) Table(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot.Load()
	if snap == nil {
		respondError(w, r, http.StatusServiceUnavailable,
			&models.APIError{Code: "NOT_READY", Message: "No analysis run available"}, nil)
		return
	}

	name := chi.URLParam(r, "name")
	if _, ok := export.Headers[name]; !ok {
		respondError(w, r, http.StatusNotFound, &models.APIError{
			Code:    "NOT_FOUND",
			Message: "Unknown table: " + name,
			Details: map[string]interface{}{"tables": export.TableNames},
		}, nil)
		return
	}

	limit, err := parseIntQuery(r, "limit", 0)
	if err != nil {
		respondError(w, r, http.StatusBadRequest,
			&models.APIError{Code: "VALIDATION_ERROR", Message: err.Error()}, nil)
		return
	}
	q := TableQuery{Limit: limit}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondError(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	data, rows := tableData(snap.Tables, name, q.Limit)
	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: h.metadata(snap, rows),
	})
}

// Recommendations serves the recommendation set including the rule that fired.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot.Load()
	if snap == nil {
		respondError(w, r, http.StatusServiceUnavailable,
			&models.APIError{Code: "NOT_READY", Message: "No analysis run available"}, nil)
		return
	}
	rec := snap.Tables.Recommendations
	if rec.Rows == nil {
		rec.Rows = []models.RecommendationRow{}
	}
	respondJSON(w, r, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     rec,
		Metadata: h.metadata(snap, len(rec.Rows)),
	})
}

func (h *Handler) metadata(snap *Snapshot, rows int) models.Metadata {
	md := models.Metadata{Timestamp: time.Now().UTC(), Rows: rows}
	if snap != nil {
		md.RunID = snap.RunID
		md.GeneratedAt = snap.GeneratedAt
	}
	return md
}

func tableLen(t models.Tables, name string) int {
	switch name {
	case export.TableYearlyTrend:
		return len(t.YearlyTrend)
	case export.TableLanguageCoverage:
		return len(t.LanguageCoverage)
	case export.TableTopCategories:
		return len(t.TopCategories)
	case export.TableRecommendations:
		return len(t.Recommendations.Rows)
	}
	return 0
}

// tableData returns the rows of a table truncated to limit (0 keeps all), never nil.
func tableData(t models.Tables, name string, limit int) (interface{}, int) {
	switch name {
	case export.TableYearlyTrend:
		rows := truncate(t.YearlyTrend, limit)
		return rows, len(rows)
	case export.TableLanguageCoverage:
		rows := truncate(t.LanguageCoverage, limit)
		return rows, len(rows)
	case export.TableTopCategories:
		rows := truncate(t.TopCategories, limit)
		return rows, len(rows)
	case export.TableRecommendations:
		rows := truncate(t.Recommendations.Rows, limit)
		return rows, len(rows)
	}
	return []struct{}{}, 0
}

func truncate[T any](rows []T, limit int) []T {
	if rows == nil {
		return []T{}
	}
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
