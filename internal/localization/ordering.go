// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package localization

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/olegiv/ocms-content/internal/store"
)

// findAnchor returns the destination record the new copy of src goes
// after: the counterpart of the nearest preceding source sibling that has
// one. Nil means the copy goes to the top.
func findAnchor(ctx context.Context, q *store.Queries, src store.Record, destLanguageID int64) (*store.Record, error) {
	preceding, err := q.ListPrecedingSiblings(ctx, store.ListPrecedingSiblingsParams{
		PageID:     src.PageID,
		LanguageID: src.LanguageID,
		SortOrder:  src.SortOrder,
		ID:         src.ID,
	})
	if err != nil {
		return nil, storageErr("list preceding siblings", err)
	}

	for _, sib := range preceding {
		cp, err := counterpart(ctx, q, sib, destLanguageID)
		if err != nil {
			return nil, err
		}
		if cp != nil {
			return cp, nil
		}
	}
	return nil, nil
}

// counterpart finds the destination-language record standing for sib. A
// record derived from sib counts first; otherwise the source_id chain of sib
// is followed towards its origin, and the first ancestor that is itself in
// the destination language, or has a record derived from it there, wins.
func counterpart(ctx context.Context, q *store.Queries, sib store.Record, destLanguageID int64) (*store.Record, error) {
	cur := sib
	seen := map[int64]bool{}
	for {
		if cur.ID != sib.ID && cur.PageID == sib.PageID && cur.LanguageID == destLanguageID {
			return &cur, nil
		}
		cp, err := q.GetCounterpart(ctx, store.GetCounterpartParams{
			PageID:     sib.PageID,
			LanguageID: destLanguageID,
			RecordID:   cur.ID,
		})
		if err == nil {
			return &cp, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, storageErr("get counterpart", err)
		}

		seen[cur.ID] = true
		if cur.SourceID == 0 || seen[cur.SourceID] {
			return nil, nil
		}
		next, err := q.GetRecord(ctx, cur.SourceID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, storageErr("get origin record", err)
		}
		cur = next
	}
}

// slotAfter computes a sort order placing a record directly after anchor
// (or at the top when anchor is nil). ok is false when there is no integer
// gap left.
func slotAfter(ctx context.Context, q *store.Queries, pageID, languageID int64, anchor *store.Record) (sort int64, ok bool, err error) {
	if anchor == nil {
		first, err := q.GetFirstSibling(ctx, store.GetFirstSiblingParams{PageID: pageID, LanguageID: languageID})
		if errors.Is(err, sql.ErrNoRows) {
			return store.SortingInterval, true, nil
		}
		if err != nil {
			return 0, false, storageErr("get first sibling", err)
		}
		if first.SortOrder < 2 {
			return 0, false, nil
		}
		return first.SortOrder / 2, true, nil
	}

	next, err := q.GetNextSibling(ctx, store.GetNextSiblingParams{
		PageID:     pageID,
		LanguageID: languageID,
		SortOrder:  anchor.SortOrder,
		ID:         anchor.ID,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return anchor.SortOrder + store.SortingInterval, true, nil
	}
	if err != nil {
		return 0, false, storageErr("get next sibling", err)
	}
	if next.SortOrder-anchor.SortOrder < 2 {
		return 0, false, nil
	}
	return anchor.SortOrder + (next.SortOrder-anchor.SortOrder)/2, true, nil
}

// resequence rewrites the sort orders of a page/language to multiples of
// SortingInterval, keeping their (sort_order, id) order. It returns the
// number of rows changed.
func resequence(ctx context.Context, q *store.Queries, pageID, languageID int64, now time.Time) (int, error) {
	records, err := q.ListRecordsByPageLanguage(ctx, store.ListRecordsByPageLanguageParams{
		PageID:     pageID,
		LanguageID: languageID,
	})
	if err != nil {
		return 0, storageErr("list siblings", err)
	}

	changed := 0
	for i, r := range records {
		want := int64(i+1) * store.SortingInterval
		if r.SortOrder == want {
			continue
		}
		if err := q.UpdateRecordSortOrder(ctx, store.UpdateRecordSortOrderParams{
			SortOrder: want,
			UpdatedAt: now,
			ID:        r.ID,
		}); err != nil {
			return changed, storageErr("update sort order", err)
		}
		changed++
	}
	return changed, nil
}
