// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// SortingInterval is the gap left between neighbouring sort_order values.
const SortingInterval int64 = 256

// DefaultLanguages are created by Seed next to the migration-provided language 0.
var DefaultLanguages = []CreateLanguageParams{
	{ID: 1, Title: "German", IsoCode: "de", Sorting: 1},
	{ID: 2, Title: "French", IsoCode: "fr", Sorting: 2},
}

// Seed creates the default languages and, when doSeed is set, a demo page
// with a few default-language records.
func Seed(ctx context.Context, db *sql.DB, doSeed bool) error {
	queries := New(db)
	now := time.Now()

	for _, lang := range DefaultLanguages {
		_, err := queries.GetLanguage(ctx, lang.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking language %d: %w", lang.ID, err)
		}
		lang.CreatedAt = now
		if _, err := queries.CreateLanguage(ctx, lang); err != nil {
			return fmt.Errorf("creating language %q: %w", lang.IsoCode, err)
		}
		slog.Info("created language", "id", lang.ID, "iso_code", lang.IsoCode)
	}

	if !doSeed {
		return nil
	}

	if _, err := queries.GetPage(ctx, 1); err == nil {
		slog.Info("demo page already exists, skipping seed")
		return nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for demo page: %w", err)
	}

	page, err := queries.CreatePage(ctx, CreatePageParams{
		Title:     "Welcome",
		Slug:      "welcome",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("creating demo page: %w", err)
	}

	demo := []struct{ header, body, media string }{
		{"Introduction", "<p>Welcome to the site.</p>", "uploads/media/intro.jpg"},
		{"Our team", `<p>Meet the team <img src="uploads/pics/team.png"></p>`, ""},
		{"Contact", "<p>Write to us.</p>", "uploads/media/map.pdf"},
	}
	for i, d := range demo {
		_, err := queries.CreateRecord(ctx, CreateRecordParams{
			PageID:    page.ID,
			SortOrder: int64(i+1) * SortingInterval,
			Ctype:     "text",
			Header:    d.header,
			Bodytext:  d.body,
			Media:     d.media,
			Payload:   "{}",
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("creating demo record %q: %w", d.header, err)
		}
	}

	slog.Info("seeded demo content", "page_id", page.ID, "records", len(demo))
	return nil
}
