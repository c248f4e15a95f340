// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package localization localizes or copies content records from one
// language to another on a page while keeping sibling order.
package localization

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/ocms-content/internal/backend"
	"github.com/olegiv/ocms-content/internal/cache"
	"github.com/olegiv/ocms-content/internal/model"
	"github.com/olegiv/ocms-content/internal/service"
	"github.com/olegiv/ocms-content/internal/store"
	"github.com/olegiv/ocms-content/internal/transform"
)

// Engine processes localize and copy requests.
type Engine struct {
	db        *sql.DB
	languages *cache.LanguageCache
	pipeline  *transform.Pipeline
	events    *service.EventService
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLanguages sets the language lookup. By default a memory-backed
// cache over the engine's database is used.
func WithLanguages(lc *cache.LanguageCache) Option {
	return func(e *Engine) { e.languages = lc }
}

// WithPipeline sets the transforms run on every new record.
func WithPipeline(p *transform.Pipeline) Option {
	return func(e *Engine) { e.pipeline = p }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine over db.
func New(db *sql.DB, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		db:     db,
		events: service.NewEventService(db, logger),
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.languages == nil {
		e.languages = cache.NewLanguageCache(
			cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute}),
			store.New(db),
		)
	}
	return e
}

// Process localizes or copies req.RecordIDs in the given order.
//
// Each record is written in its own transaction. Processing stops at the
// first failure; records already written stay written and the returned
// Result lists them alongside the error.
func (e *Engine) Process(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	destLang, err := e.languages.Get(ctx, req.DestLanguageID)
	if errors.Is(err, cache.ErrLanguageNotFound) {
		return nil, invalid("destination language %d does not exist", req.DestLanguageID)
	}
	if err != nil {
		return nil, storageErr("get language", err)
	}

	res := &Result{
		BatchID:          uuid.NewString(),
		UserID:           backend.UserID(ctx),
		Action:           req.Action,
		PageID:           req.PageID,
		SourceLanguageID: req.SourceLanguageID,
		DestLanguageID:   req.DestLanguageID,
		Items:            make([]Item, 0, len(req.RecordIDs)),
	}
	uiLanguage := backend.UILanguage(ctx)

	var prev *store.Record
	for _, id := range req.RecordIDs {
		if err := ctx.Err(); err != nil {
			return e.fail(ctx, res, id, fmt.Errorf("batch interrupted: %w", err))
		}

		rec, item, reseq, err := e.processOne(ctx, req, id, prev, destLang, uiLanguage)
		if err != nil {
			return e.fail(ctx, res, id, err)
		}
		res.Items = append(res.Items, item)
		res.Resequenced += reseq
		prev = &rec
	}

	e.logger.Info("records processed",
		"batch", res.BatchID,
		"user", res.UserID,
		"action", res.Action,
		"page_id", res.PageID,
		"from", res.SourceLanguageID,
		"to", res.DestLanguageID,
		"created", res.Created(),
		"existing", len(res.Items)-res.Created(),
	)
	_ = e.events.LogInfo(ctx, model.EventCategoryContent,
		fmt.Sprintf("%s: %d record(s) processed on page %d", res.Action, len(res.Items), res.PageID),
		e.eventMetadata(res))

	return res, nil
}

func (e *Engine) fail(ctx context.Context, res *Result, id int64, err error) (*Result, error) {
	// The audit entry must be written even when ctx is what failed.
	ctx = context.WithoutCancel(ctx)
	e.logger.Warn("localization batch aborted",
		"batch", res.BatchID,
		"action", res.Action,
		"record_id", id,
		"done", len(res.Items),
		"error", err,
	)
	meta := e.eventMetadata(res)
	meta["failed_record"] = id
	meta["error"] = err.Error()
	_ = e.events.LogError(ctx, model.EventCategoryContent,
		fmt.Sprintf("%s aborted at record %d", res.Action, id), meta)
	return res, err
}

func (e *Engine) eventMetadata(res *Result) map[string]any {
	return map[string]any{
		"batch":       res.BatchID,
		"user":        res.UserID,
		"action":      string(res.Action),
		"page_id":     res.PageID,
		"from":        res.SourceLanguageID,
		"to":          res.DestLanguageID,
		"records":     res.RecordIDs(),
		"created":     res.Created(),
		"resequenced": res.Resequenced,
	}
}

// processOne handles a single source record inside one transaction.
func (e *Engine) processOne(ctx context.Context, req Request, id int64, prev *store.Record, destLang store.Language, uiLanguage string) (store.Record, Item, int, error) {
	var (
		out   store.Record
		item  Item
		reseq int
	)

	err := store.InTx(ctx, e.db, func(q *store.Queries) error {
		src, err := q.GetRecord(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %d", ErrRecordNotFound, id)
		}
		if err != nil {
			return storageErr("get record", err)
		}
		if src.PageID != req.PageID || src.LanguageID != req.SourceLanguageID {
			return fmt.Errorf("%w: %d is not on page %d in language %d",
				ErrRecordNotFound, id, req.PageID, req.SourceLanguageID)
		}

		if req.Action == ActionLocalize {
			existing, err := q.GetTranslation(ctx, store.GetTranslationParams{
				PageID:     req.PageID,
				LanguageID: req.DestLanguageID,
				ParentID:   src.ID,
			})
			switch {
			case err == nil:
				out = existing
				item = Item{SourceID: src.ID, RecordID: existing.ID, SortOrder: existing.SortOrder, Status: StatusExisting}
				return nil
			case !errors.Is(err, sql.ErrNoRows):
				return storageErr("get translation", err)
			}
		}

		anchor, err := e.anchorFor(ctx, q, src, req.DestLanguageID, prev)
		if err != nil {
			return err
		}

		now := e.now()
		sortOrder, ok, err := slotAfter(ctx, q, req.PageID, req.DestLanguageID, anchor)
		if err != nil {
			return err
		}
		if !ok {
			if reseq, err = resequence(ctx, q, req.PageID, req.DestLanguageID, now); err != nil {
				return err
			}
			if anchor != nil {
				reloaded, err := q.GetRecord(ctx, anchor.ID)
				if err != nil {
					return storageErr("reload anchor", err)
				}
				anchor = &reloaded
			}
			if sortOrder, ok, err = slotAfter(ctx, q, req.PageID, req.DestLanguageID, anchor); err != nil {
				return err
			} else if !ok {
				return storageErr("allocate sort order", errors.New("no gap after resequencing"))
			}
		}

		params := newRecordParams(src, req, sortOrder, now)
		if err := e.pipeline.Apply(ctx, &transform.Input{
			Action:       string(req.Action),
			Source:       src,
			Record:       &params,
			DestLanguage: destLang,
			UILanguage:   uiLanguage,
		}); err != nil {
			return fmt.Errorf("%w: %w", ErrTransform, err)
		}

		created, err := q.CreateRecord(ctx, params)
		if err != nil {
			return storageErr("create record", err)
		}
		out = created
		item = Item{SourceID: src.ID, RecordID: created.ID, SortOrder: created.SortOrder, Status: StatusCreated}
		return nil
	})
	if err != nil {
		if !classified(err) {
			err = storageErr("transaction", err)
		}
		return store.Record{}, Item{}, 0, err
	}
	return out, item, reseq, nil
}

// anchorFor picks the record the new one is placed after. Later items of a
// batch follow the record produced for the previous item.
func (e *Engine) anchorFor(ctx context.Context, q *store.Queries, src store.Record, destLanguageID int64, prev *store.Record) (*store.Record, error) {
	if prev == nil {
		return findAnchor(ctx, q, src, destLanguageID)
	}
	// Reload: an earlier item may have resequenced the destination.
	cur, err := q.GetRecord(ctx, prev.ID)
	if err != nil {
		return nil, storageErr("reload previous record", err)
	}
	return &cur, nil
}

func newRecordParams(src store.Record, req Request, sortOrder int64, now time.Time) store.CreateRecordParams {
	p := store.CreateRecordParams{
		PageID:     src.PageID,
		LanguageID: req.DestLanguageID,
		SourceID:   src.ID,
		SortOrder:  sortOrder,
		Ctype:      src.Ctype,
		Header:     src.Header,
		Bodytext:   src.Bodytext,
		Slug:       src.Slug,
		Media:      src.Media,
		Payload:    src.Payload,
		Hidden:     src.Hidden,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Action == ActionLocalize {
		p.ParentID = src.ID
	}
	if p.Payload == "" {
		p.Payload = "{}"
	}
	return p
}
