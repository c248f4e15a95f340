// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package localization

import (
	"strings"

	"github.com/olegiv/ocms-content/internal/transform"
)

// Action selects how records are carried into the destination language.
type Action string

const (
	// ActionLocalize creates translations linked to their source records.
	ActionLocalize Action = transform.ActionLocalize
	// ActionCopy creates independent duplicates.
	ActionCopy Action = transform.ActionCopy
)

// ParseAction parses a case-insensitive action name.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionLocalize, ActionCopy:
		return a, nil
	default:
		return "", invalid("unknown action %q", s)
	}
}

// Request is one localize or copy batch.
type Request struct {
	PageID           int64   `json:"page_id"`
	SourceLanguageID int64   `json:"source_language"`
	DestLanguageID   int64   `json:"dest_language"`
	RecordIDs        []int64 `json:"record_ids"`
	Action           Action  `json:"action"`
}

// Validate checks the request shape. Language existence is checked by the
// engine.
func (r Request) Validate() error {
	if r.Action != ActionLocalize && r.Action != ActionCopy {
		return invalid("unknown action %q", r.Action)
	}
	if len(r.RecordIDs) == 0 {
		return invalid("no records given")
	}
	if r.SourceLanguageID == r.DestLanguageID {
		return invalid("source and destination language are both %d", r.SourceLanguageID)
	}
	if r.SourceLanguageID < 0 || r.DestLanguageID < 0 {
		return invalid("language ids must not be negative")
	}

	seen := make(map[int64]struct{}, len(r.RecordIDs))
	for _, id := range r.RecordIDs {
		if id <= 0 {
			return invalid("record id %d is not positive", id)
		}
		if _, dup := seen[id]; dup {
			return invalid("record %d listed twice", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Status describes what happened to one requested record.
type Status string

const (
	// StatusCreated means a new destination record was written.
	StatusCreated Status = "created"
	// StatusExisting means a translation already existed and was reused.
	StatusExisting Status = "existing"
)

// Item is the outcome for one source record.
type Item struct {
	SourceID  int64  `json:"source_id"`
	RecordID  int64  `json:"record_id"`
	SortOrder int64  `json:"sort_order"`
	Status    Status `json:"status"`
}

// Result summarizes a batch. On failure it holds the items processed
// before the failing one.
type Result struct {
	BatchID          string `json:"batch_id"`
	UserID           string `json:"user_id"`
	Action           Action `json:"action"`
	PageID           int64  `json:"page_id"`
	SourceLanguageID int64  `json:"source_language"`
	DestLanguageID   int64  `json:"dest_language"`
	Items            []Item `json:"items"`
	Resequenced      int    `json:"resequenced"`
}

// Created counts items that produced a new record.
func (r *Result) Created() int {
	n := 0
	for _, it := range r.Items {
		if it.Status == StatusCreated {
			n++
		}
	}
	return n
}

// RecordIDs returns the destination record ids in processing order.
func (r *Result) RecordIDs() []int64 {
	ids := make([]int64, 0, len(r.Items))
	for _, it := range r.Items {
		ids = append(ids, it.RecordID)
	}
	return ids
}
