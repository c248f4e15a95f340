// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"

	"github.com/olegiv/ocms-content/internal/localization"
)

// maxLocalizeBody bounds the request body of a localize call.
const maxLocalizeBody = 1 << 20

// LocalizeRequest is the body of POST /pages/{pageID}/localize.
type LocalizeRequest struct {
	SourceLanguage int64   `json:"source_language"`
	DestLanguage   int64   `json:"dest_language"`
	RecordIDs      []int64 `json:"record_ids"`
	Action         string  `json:"action"`
}

// Localize handles POST /api/v1/pages/{pageID}/localize. An omitted action
// means localize. When the batch stops midway the error body carries the
// partial result.
func (h *Handler) Localize(w http.ResponseWriter, r *http.Request) {
	pageID, ok := int64Param(r, "pageID")
	if !ok {
		WriteBadRequest(w, "Invalid page ID", nil)
		return
	}

	var body LocalizeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLocalizeBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		WriteBadRequest(w, "Invalid JSON body", map[string]string{"body": err.Error()})
		return
	}

	action := localization.ActionLocalize
	if body.Action != "" {
		a, err := localization.ParseAction(body.Action)
		if err != nil {
			WriteBadRequest(w, err.Error(), map[string]string{"action": body.Action})
			return
		}
		action = a
	}

	res, err := h.engine.Process(r.Context(), localization.Request{
		PageID:           pageID,
		SourceLanguageID: body.SourceLanguage,
		DestLanguageID:   body.DestLanguage,
		RecordIDs:        body.RecordIDs,
		Action:           action,
	})
	if err != nil {
		status, code := errorStatus(err)
		message := err.Error()
		if status == http.StatusInternalServerError {
			h.logger.Error("localization failed", "page_id", pageID, "error", err)
			message = "Failed to process records"
		}
		resp := ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
		if res != nil && len(res.Items) > 0 {
			resp.Data = res
		}
		WriteJSON(w, status, resp)
		return
	}

	WriteCreated(w, res)
}
