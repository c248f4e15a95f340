// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON HTTP API for content tooling.
package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocms-content/internal/cache"
	"github.com/olegiv/ocms-content/internal/localization"
	"github.com/olegiv/ocms-content/internal/lostfiles"
	"github.com/olegiv/ocms-content/internal/refindex"
	"github.com/olegiv/ocms-content/internal/scheduler"
	"github.com/olegiv/ocms-content/internal/store"
	"github.com/olegiv/ocms-content/internal/version"
)

// Deps are the services the API exposes.
type Deps struct {
	DB       *sql.DB
	Engine   *localization.Engine
	Detector *lostfiles.Detector
	Updater  *refindex.Updater
	Excludes []string // always applied to lost file scans
	Logger   *slog.Logger

	Scheduler    *scheduler.Scheduler // nil disables the jobs endpoints
	Cache        cache.Cacher         // reported by Health when set
	CacheBackend string
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db       *sql.DB
	queries  *store.Queries
	engine   *localization.Engine
	detector *lostfiles.Detector
	updater  *refindex.Updater
	excludes []string
	logger   *slog.Logger

	scheduler    *scheduler.Scheduler
	cache        cache.Cacher
	cacheBackend string
}

// NewHandler creates a new API handler.
func NewHandler(d Deps) *Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		db:       d.DB,
		queries:  store.New(d.DB),
		engine:   d.Engine,
		detector: d.Detector,
		updater:  d.Updater,
		excludes: d.Excludes,
		logger:   logger,

		scheduler:    d.Scheduler,
		cache:        d.Cache,
		cacheBackend: d.CacheBackend,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains list metadata.
type Meta struct {
	Total int64 `json:"total"`
}

// ErrorResponse is the standard API error response. Data carries partial
// results for operations that stopped midway.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
	Data  any         `json:"data,omitempty"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message, Details: details},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// errorStatus maps service errors onto HTTP status and code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, localization.ErrInvalidArgument):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, localization.ErrRecordNotFound), errors.Is(err, refindex.ErrRecordNotFound),
		errors.Is(err, scheduler.ErrJobNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, localization.ErrTransform):
		return http.StatusUnprocessableEntity, "transform_failed"
	case errors.Is(err, scheduler.ErrJobRunning):
		return http.StatusConflict, "conflict"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "canceled"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// HealthResponse contains API status information.
type HealthResponse struct {
	Status  string       `json:"status"`
	Version string       `json:"version"`
	Cache   *CacheHealth `json:"cache,omitempty"`
}

// CacheHealth describes the language cache backend.
type CacheHealth struct {
	Backend string       `json:"backend"`
	Stats   *cache.Stats `json:"stats,omitempty"`
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		WriteError(w, http.StatusServiceUnavailable, "unavailable", "Database unavailable", nil)
		return
	}
	resp := HealthResponse{Status: "ok", Version: version.Version}
	if h.cache != nil {
		resp.Cache = &CacheHealth{Backend: h.cacheBackend}
		if sp, ok := h.cache.(cache.StatsProvider); ok {
			stats := sp.Stats()
			resp.Cache.Stats = &stats
		}
	}
	WriteSuccess(w, resp, nil)
}

// int64Param parses a positive integer URL parameter.
func int64Param(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
