// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocms-content/internal/backend"
	"github.com/olegiv/ocms-content/internal/scheduler"
)

// JobRunResponse reports a manually triggered job.
type JobRunResponse struct {
	Name       string `json:"name"`
	DurationMS int64  `json:"duration_ms"`
}

// ListJobs handles GET /api/v1/jobs.
func (h *Handler) ListJobs(w http.ResponseWriter, _ *http.Request) {
	if h.scheduler == nil {
		WriteSuccess(w, []scheduler.JobInfo{}, &Meta{Total: 0})
		return
	}
	jobs := h.scheduler.List()
	WriteSuccess(w, jobs, &Meta{Total: int64(len(jobs))})
}

// RunJob handles POST /api/v1/jobs/{name}/run. The job runs to completion
// before the response is written.
func (h *Handler) RunJob(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if h.scheduler == nil {
		WriteNotFound(w, "Job not found")
		return
	}

	start := time.Now()
	if err := h.scheduler.TriggerNow(name); err != nil {
		status, code := errorStatus(err)
		if code == "internal_error" {
			h.logger.Error("manual job run failed", "name", name, "error", err)
			WriteInternalError(w, "Job failed")
			return
		}
		WriteError(w, status, code, err.Error(), nil)
		return
	}

	h.logger.Info("job triggered via API", "name", name, "user", backend.UserID(r.Context()))
	WriteSuccess(w, JobRunResponse{Name: name, DurationMS: time.Since(start).Milliseconds()}, nil)
}
