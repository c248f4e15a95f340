// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package refindex maintains the reference index: which records point at
// which files and records.
package refindex

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/ocms-content/internal/model"
	"github.com/olegiv/ocms-content/internal/service"
	"github.com/olegiv/ocms-content/internal/store"
)

// ErrRecordNotFound is returned by UpdateRecord for unknown ids.
var ErrRecordNotFound = errors.New("record not found")

// Stats summarizes a rebuild.
type Stats struct {
	Records  int           `json:"records"`
	Hard     int           `json:"hard"`
	Soft     int           `json:"soft"`
	Duration time.Duration `json:"duration"`
}

// Updater rebuilds reference index rows from records.
type Updater struct {
	db         *sql.DB
	uploadsDir string
	events     *service.EventService
	logger     *slog.Logger
}

// NewUpdater creates an updater. uploadsDir is relative to the site root.
func NewUpdater(db *sql.DB, uploadsDir string, logger *slog.Logger) *Updater {
	if logger == nil {
		logger = slog.Default()
	}
	return &Updater{
		db:         db,
		uploadsDir: uploadsDir,
		events:     service.NewEventService(db, logger),
		logger:     logger,
	}
}

// UpdateAll replaces the whole index in one transaction.
func (u *Updater) UpdateAll(ctx context.Context) (Stats, error) {
	start := time.Now()
	var stats Stats

	err := store.InTx(ctx, u.db, func(q *store.Queries) error {
		if err := q.DeleteAllRefIndexEntries(ctx); err != nil {
			return fmt.Errorf("clearing reference index: %w", err)
		}
		records, err := q.ListRecords(ctx)
		if err != nil {
			return fmt.Errorf("listing records: %w", err)
		}
		for _, rec := range records {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := insertEntries(ctx, q, rec, u.uploadsDir, &stats); err != nil {
				return err
			}
			stats.Records++
		}
		return nil
	})
	if err != nil {
		return Stats{}, err
	}

	stats.Duration = time.Since(start)
	u.logger.Info("reference index updated",
		"records", stats.Records,
		"hard", stats.Hard,
		"soft", stats.Soft,
		"duration", stats.Duration,
	)
	_ = u.events.LogInfo(ctx, model.EventCategoryRefIndex, "reference index rebuilt", map[string]any{
		"records": stats.Records,
		"hard":    stats.Hard,
		"soft":    stats.Soft,
	})
	return stats, nil
}

// UpdateRecord refreshes the rows originating from one record. Unknown ids
// return ErrRecordNotFound and leave the index untouched.
func (u *Updater) UpdateRecord(ctx context.Context, id int64) (Stats, error) {
	var stats Stats
	err := store.InTx(ctx, u.db, func(q *store.Queries) error {
		if err := q.DeleteRefIndexEntriesFrom(ctx, store.DeleteRefIndexEntriesFromParams{
			FromTable:    model.RefTableRecords,
			FromRecordID: id,
		}); err != nil {
			return fmt.Errorf("clearing entries of record %d: %w", id, err)
		}

		rec, err := q.GetRecord(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %d", ErrRecordNotFound, id)
		}
		if err != nil {
			return fmt.Errorf("loading record %d: %w", id, err)
		}
		stats.Records = 1
		return insertEntries(ctx, q, rec, u.uploadsDir, &stats)
	})
	return stats, err
}

func insertEntries(ctx context.Context, q *store.Queries, rec store.Record, uploadsDir string, stats *Stats) error {
	for _, e := range Entries(rec, uploadsDir) {
		if err := q.CreateRefIndexEntry(ctx, e); err != nil {
			return fmt.Errorf("indexing record %d: %w", rec.ID, err)
		}
		if e.SoftRefKey == "" {
			stats.Hard++
		} else {
			stats.Soft++
		}
	}
	return nil
}

// Index answers reference lookups.
type Index struct {
	queries *store.Queries
}

// NewIndex creates a lookup over db.
func NewIndex(db *sql.DB) *Index {
	return &Index{queries: store.New(db)}
}

// HasHardFileReference reports whether any hard reference points at the
// site-relative file path.
func (i *Index) HasHardFileReference(ctx context.Context, path string) (bool, error) {
	n, err := i.queries.CountHardFileReferences(ctx, model.NormalizeFilePath(path))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
