// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/olegiv/ocms-content/internal/store"
)

// ListRecords handles GET /api/v1/pages/{pageID}/records?language=N.
// Records come back in sort order; language defaults to 0.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pageID, ok := int64Param(r, "pageID")
	if !ok {
		WriteBadRequest(w, "Invalid page ID", nil)
		return
	}

	var languageID int64
	if v := r.URL.Query().Get("language"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id < 0 {
			WriteBadRequest(w, "Invalid language", map[string]string{"language": v})
			return
		}
		languageID = id
	}

	if _, err := h.queries.GetPage(ctx, pageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Page not found")
			return
		}
		h.logger.Error("failed to load page", "page_id", pageID, "error", err)
		WriteInternalError(w, "Failed to load page")
		return
	}

	records, err := h.queries.ListRecordsByPageLanguage(ctx, store.ListRecordsByPageLanguageParams{
		PageID:     pageID,
		LanguageID: languageID,
	})
	if err != nil {
		h.logger.Error("failed to list records", "page_id", pageID, "error", err)
		WriteInternalError(w, "Failed to list records")
		return
	}
	if records == nil {
		records = []store.Record{}
	}

	WriteSuccess(w, records, &Meta{Total: int64(len(records))})
}
