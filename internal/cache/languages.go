// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"database/sql"
	"errors"

	"github.com/olegiv/ocms-content/internal/store"
)

const languagesKey = "languages:all"

// ErrLanguageNotFound is returned for unknown language ids.
var ErrLanguageNotFound = errors.New("language not found")

// LanguageCache provides cached lookups of content languages.
type LanguageCache struct {
	typed   *TypedCache[[]store.Language]
	queries *store.Queries
}

// NewLanguageCache creates a language cache backed by c.
func NewLanguageCache(c Cacher, queries *store.Queries) *LanguageCache {
	return &LanguageCache{
		typed:   NewTypedCache[[]store.Language](c, 0),
		queries: queries,
	}
}

// All returns every language ordered by sorting.
func (c *LanguageCache) All(ctx context.Context) ([]store.Language, error) {
	return c.typed.GetOrSet(ctx, languagesKey, func(ctx context.Context) ([]store.Language, error) {
		langs, err := c.queries.ListLanguages(ctx)
		if err != nil {
			return nil, err
		}
		if langs == nil {
			langs = []store.Language{}
		}
		return langs, nil
	})
}

// Get returns a language by id. A cache miss for a single id falls through
// to the database so a freshly created language is found.
func (c *LanguageCache) Get(ctx context.Context, id int64) (store.Language, error) {
	langs, err := c.All(ctx)
	if err != nil {
		return store.Language{}, err
	}
	for _, l := range langs {
		if l.ID == id {
			return l, nil
		}
	}

	lang, err := c.queries.GetLanguage(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Language{}, ErrLanguageNotFound
	}
	if err != nil {
		return store.Language{}, err
	}
	c.Invalidate(ctx)
	return lang, nil
}

// Invalidate drops the cached list.
func (c *LanguageCache) Invalidate(ctx context.Context) {
	_ = c.typed.Delete(ctx, languagesKey)
}
