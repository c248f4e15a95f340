// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/ocms-content/internal/i18n"
	"github.com/olegiv/ocms-content/internal/middleware"
)

// RouterOptions configures Router.
type RouterOptions struct {
	Catalog      *i18n.Catalog
	RateLimiter  *middleware.RateLimiter // nil disables rate limiting
	WriteTimeout time.Duration           // per-request timeout; zero disables
}

// Router mounts the API under /api/v1.
func Router(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	if opts.WriteTimeout > 0 {
		r.Use(chimw.Timeout(opts.WriteTimeout))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if opts.RateLimiter != nil {
			r.Use(opts.RateLimiter.Middleware)
		}
		r.Use(middleware.BackendUser(opts.Catalog))

		r.Get("/health", h.Health)
		r.Get("/pages/{pageID}/records", h.ListRecords)
		r.Post("/pages/{pageID}/localize", h.Localize)
		r.Get("/lostfiles", h.ListLostFiles)
		r.Post("/refindex", h.UpdateRefIndex)
		r.Get("/jobs", h.ListJobs)
		r.Post("/jobs/{name}/run", h.RunJob)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteNotFound(w, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})
	return r
}
