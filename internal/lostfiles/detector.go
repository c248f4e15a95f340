// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package lostfiles finds and removes uploaded files that no record
// references.
package lostfiles

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"path/filepath"

	"github.com/olegiv/ocms-content/internal/util"
)

// ReferenceChecker answers whether a file is still in use.
type ReferenceChecker interface {
	HasHardFileReference(ctx context.Context, path string) (bool, error)
}

// Detector scans one directory tree below the site root.
type Detector struct {
	siteRoot string
	scanPath string // site-relative, slash separated
	refs     ReferenceChecker
	lockPath string
	logger   *slog.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithLockFile serializes deleting runs through a file lock at path.
func WithLockFile(path string) Option {
	return func(d *Detector) { d.lockPath = path }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Detector) { d.logger = l }
}

// NewDetector creates a detector scanning scanPath (relative to siteRoot).
// scanPath must stay inside siteRoot.
func NewDetector(siteRoot, scanPath string, refs ReferenceChecker, opts ...Option) (*Detector, error) {
	abs, err := filepath.Abs(siteRoot)
	if err != nil {
		return nil, fmt.Errorf("resolving site root: %w", err)
	}
	if _, err := util.ResolveSitePath(abs, filepath.ToSlash(scanPath)); err != nil {
		return nil, fmt.Errorf("scan path: %w", err)
	}

	d := &Detector{
		siteRoot: abs,
		scanPath: filepath.ToSlash(filepath.Clean(scanPath)),
		refs:     refs,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// ScanPath returns the site-relative directory being scanned.
func (d *Detector) ScanPath() string {
	return d.scanPath
}

// Orphans lazily yields site-relative paths of files below the scan path
// that have no hard reference. Exempt names and paths starting with one of
// excludes are skipped. Errors are yielded with an empty path; the walk
// continues unless the consumer stops.
func (d *Detector) Orphans(ctx context.Context, excludes []string) iter.Seq2[string, error] {
	prefixes := NormalizeExcludes(excludes)

	return func(yield func(string, error) bool) {
		root := filepath.Join(d.siteRoot, filepath.FromSlash(d.scanPath))

		_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if ctxErr := ctx.Err(); ctxErr != nil {
				yield("", ctxErr)
				return fs.SkipAll
			}
			if err != nil {
				if path == root && errors.Is(err, fs.ErrNotExist) {
					d.logger.Debug("scan path does not exist", "path", d.scanPath)
					return fs.SkipAll
				}
				if !yield("", fmt.Errorf("walking %s: %w", path, err)) {
					return fs.SkipAll
				}
				return nil
			}

			rel, err := util.SiteRelative(d.siteRoot, path)
			if err != nil {
				if !yield("", err) {
					return fs.SkipAll
				}
				return nil
			}

			if entry.IsDir() {
				if path != root && IsExcluded(rel, prefixes) {
					return fs.SkipDir
				}
				return nil
			}
			if !entry.Type().IsRegular() && entry.Type()&fs.ModeSymlink == 0 {
				return nil
			}
			if IsExempt(entry.Name()) || IsExcluded(rel, prefixes) {
				return nil
			}

			referenced, err := d.refs.HasHardFileReference(ctx, rel)
			if err != nil {
				if !yield("", fmt.Errorf("checking references of %s: %w", rel, err)) {
					return fs.SkipAll
				}
				return nil
			}
			if !referenced && !yield(rel, nil) {
				return fs.SkipAll
			}
			return nil
		})
	}
}

// FindOrphans collects Orphans, stopping at the first error.
func (d *Detector) FindOrphans(ctx context.Context, excludes []string) ([]string, error) {
	var out []string
	for path, err := range d.Orphans(ctx, excludes) {
		if err != nil {
			return out, err
		}
		out = append(out, path)
	}
	return out, nil
}
