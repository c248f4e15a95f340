// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"
)

// RefIndexResponse reports a rebuild.
type RefIndexResponse struct {
	Records    int   `json:"records"`
	Hard       int   `json:"hard"`
	Soft       int   `json:"soft"`
	DurationMS int64 `json:"duration_ms"`
}

// UpdateRefIndex handles POST /api/v1/refindex. With ?record=N only that
// record's rows are refreshed.
func (h *Handler) UpdateRefIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if v := r.URL.Query().Get("record"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			WriteBadRequest(w, "Invalid record ID", map[string]string{"record": v})
			return
		}
		stats, err := h.updater.UpdateRecord(ctx, id)
		if err != nil {
			status, code := errorStatus(err)
			if code == "internal_error" {
				h.logger.Error("refindex update failed", "record_id", id, "error", err)
				WriteInternalError(w, "Failed to update reference index")
				return
			}
			WriteError(w, status, code, err.Error(), nil)
			return
		}
		WriteSuccess(w, RefIndexResponse{Records: stats.Records, Hard: stats.Hard, Soft: stats.Soft, DurationMS: stats.Duration.Milliseconds()}, nil)
		return
	}

	stats, err := h.updater.UpdateAll(ctx)
	if err != nil {
		h.logger.Error("refindex rebuild failed", "error", err)
		WriteInternalError(w, "Failed to update reference index")
		return
	}
	WriteSuccess(w, RefIndexResponse{Records: stats.Records, Hard: stats.Hard, Soft: stats.Soft, DurationMS: stats.Duration.Milliseconds()}, nil)
}
