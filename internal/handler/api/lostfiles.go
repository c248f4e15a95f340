// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
)

// LostFilesResponse lists orphaned files without deleting them.
type LostFilesResponse struct {
	Path  string   `json:"path"`
	Files []string `json:"files"`
	Bytes int64    `json:"bytes"`
	Size  string   `json:"size"`
}

// ListLostFiles handles GET /api/v1/lostfiles?exclude=a,b.
func (h *Handler) ListLostFiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	excludes := append([]string(nil), h.excludes...)
	for _, v := range r.URL.Query()["exclude"] {
		excludes = append(excludes, strings.Split(v, ",")...)
	}

	orphans, err := h.detector.FindOrphans(ctx, excludes)
	if err != nil {
		h.logger.Error("lost files scan failed", "path", h.detector.ScanPath(), "error", err)
		WriteInternalError(w, "Failed to scan for lost files")
		return
	}

	report, err := h.detector.DeleteOrphans(ctx, orphans, true)
	if err != nil {
		h.logger.Error("lost files stat failed", "error", err)
		WriteInternalError(w, "Failed to scan for lost files")
		return
	}

	files := report.Planned
	if files == nil {
		files = []string{}
	}
	WriteSuccess(w, LostFilesResponse{
		Path:  h.detector.ScanPath(),
		Files: files,
		Bytes: report.Bytes,
		Size:  humanize.Bytes(uint64(report.Bytes)),
	}, &Meta{Total: int64(len(files))})
}
