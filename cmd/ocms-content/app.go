// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"

	"github.com/olegiv/ocms-content/internal/backend"
	"github.com/olegiv/ocms-content/internal/cache"
	"github.com/olegiv/ocms-content/internal/config"
	"github.com/olegiv/ocms-content/internal/i18n"
	"github.com/olegiv/ocms-content/internal/localization"
	"github.com/olegiv/ocms-content/internal/logging"
	"github.com/olegiv/ocms-content/internal/lostfiles"
	"github.com/olegiv/ocms-content/internal/refindex"
	"github.com/olegiv/ocms-content/internal/store"
	"github.com/olegiv/ocms-content/internal/transform"
)

// app lazily builds the services shared by the subcommands.
type app struct {
	envFile *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	logger       *slog.Logger
	catalog      *i18n.Catalog
	db           *sql.DB
	cache        cache.Cacher
	cacheBackend string
}

func newApp(envFile *string) *app {
	return &app{envFile: envFile}
}

// ensureConfig loads the env file (if present) and the configuration once.
func (a *app) ensureConfig() (*config.Config, error) {
	a.configOnce.Do(func() {
		if a.envFile != nil && strings.TrimSpace(*a.envFile) != "" {
			if err := godotenv.Load(*a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				a.configErr = fmt.Errorf("loading %s: %w", *a.envFile, err)
				return
			}
		}
		cfg, err := config.Load()
		if err != nil {
			a.configErr = err
			return
		}
		a.config = cfg

		a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
		slog.SetDefault(a.logger)

		catalog, err := i18n.New(a.logger)
		if err != nil {
			a.configErr = fmt.Errorf("initializing i18n: %w", err)
			return
		}
		a.catalog = catalog
	})
	return a.config, a.configErr
}

// openDB opens and migrates the database, then routes WARN+ logs into the
// event log.
func (a *app) openDB(ctx context.Context) (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	cfg, err := a.ensureConfig()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.DataDir(), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	a.logger.Debug("opening database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	if err := store.Seed(ctx, db, false); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seeding languages: %w", err)
	}

	text := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	a.logger = slog.New(logging.NewEventLogHandler(text, db))
	slog.SetDefault(a.logger)

	a.db = db
	return db, nil
}

func (a *app) close() {
	if a.cache != nil {
		_ = a.cache.Close()
		a.cache = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil && a.logger != nil {
			a.logger.Error("error closing database connection", "error", err)
		}
		a.db = nil
	}
}

// userContext attaches the CLI user to ctx. The UI language follows
// OCMS_ADMIN_LANGUAGE.
func (a *app) userContext(ctx context.Context) context.Context {
	return backend.WithUser(ctx, backend.SystemUser(a.catalog.Match(a.config.AdminLanguage)))
}

func (a *app) languageCache() *cache.LanguageCache {
	if a.cache == nil {
		c, backendName := cache.New(cache.Config{
			RedisURL:   a.config.RedisURL,
			Prefix:     a.config.CachePrefix,
			DefaultTTL: a.config.CacheDuration(),
		}, a.logger)
		a.logger.Debug("language cache ready", "backend", backendName)
		a.cache = c
		a.cacheBackend = backendName
	}
	return cache.NewLanguageCache(a.cache, store.New(a.db))
}

func (a *app) engine() (*localization.Engine, error) {
	pipeline, err := transform.NewPipeline(a.logger, transform.Defaults(transform.Options{
		LabelPrefix:  a.config.LabelPrefix,
		PayloadPaths: a.config.TranslatablePaths,
		Sanitize:     a.config.SanitizeCopies,
		Hide:         a.config.HideNewRecords,
		Catalog:      a.catalog,
	})...)
	if err != nil {
		return nil, fmt.Errorf("building transforms: %w", err)
	}
	return localization.New(a.db, a.logger,
		localization.WithPipeline(pipeline),
		localization.WithLanguages(a.languageCache()),
	), nil
}

func (a *app) updater() *refindex.Updater {
	return refindex.NewUpdater(a.db, a.config.UploadsDir, a.logger)
}

// detector scans scanPath, or the uploads directory when empty.
func (a *app) detector(scanPath string) (*lostfiles.Detector, error) {
	if scanPath == "" {
		scanPath = a.config.UploadsDir
	}
	return lostfiles.NewDetector(a.config.SiteRoot, scanPath, refindex.NewIndex(a.db),
		lostfiles.WithLogger(a.logger),
		lostfiles.WithLockFile(filepath.Join(a.config.DataDir(), "lostfiles.lock")),
	)
}
