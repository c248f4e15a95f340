// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the content tooling.
package testutil

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/olegiv/ocms-content/internal/store"

	_ "github.com/mattn/go-sqlite3"
)

// TestLogger creates a silent test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a completely silent test logger (error level only).
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// TestDB creates a temporary test database with migrations applied.
// Returns the database and a cleanup function that should be deferred.
func TestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "ocms-test.db")

	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}

	return db, func() { _ = db.Close() }
}

// TestMemoryDB creates an in-memory SQLite database with migrations applied,
// using the cgo driver. The pool is pinned to one connection so every query
// sees the same in-memory database.
func TestMemoryDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreatePage inserts a page.
func CreatePage(t *testing.T, db *sql.DB, title string) store.Page {
	t.Helper()
	now := time.Now()
	page, err := store.New(db).CreatePage(context.Background(), store.CreatePageParams{
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	return page
}

// CreateLanguage inserts a content language with an explicit id.
func CreateLanguage(t *testing.T, db *sql.DB, id int64, title, isoCode string) store.Language {
	t.Helper()
	lang, err := store.New(db).CreateLanguage(context.Background(), store.CreateLanguageParams{
		ID:        id,
		Title:     title,
		IsoCode:   isoCode,
		Sorting:   id,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateLanguage(%s): %v", isoCode, err)
	}
	return lang
}

// CreateRecord inserts a record with the given header at sortOrder.
// Optional fn mutates the params before insertion.
func CreateRecord(t *testing.T, db *sql.DB, pageID, languageID, sortOrder int64, header string, fn ...func(*store.CreateRecordParams)) store.Record {
	t.Helper()
	now := time.Now()
	params := store.CreateRecordParams{
		PageID:     pageID,
		LanguageID: languageID,
		SortOrder:  sortOrder,
		Ctype:      "text",
		Header:     header,
		Payload:    "{}",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, f := range fn {
		f(&params)
	}
	rec, err := store.New(db).CreateRecord(context.Background(), params)
	if err != nil {
		t.Fatalf("CreateRecord(%q): %v", header, err)
	}
	return rec
}

// WriteFile creates a file (and its parent directories) below root.
func WriteFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	return full
}
