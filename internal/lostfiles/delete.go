// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package lostfiles

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gofrs/flock"

	"github.com/olegiv/ocms-content/internal/util"
)

// ErrLocked is returned when another process holds the delete lock.
var ErrLocked = errors.New("another lost files run is in progress")

// Failure is a path that could not be handled.
type Failure struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Report summarizes DeleteOrphans.
type Report struct {
	DryRun   bool      `json:"dry_run"`
	Deleted  []string  `json:"deleted"`
	Planned  []string  `json:"planned"`
	NotFound []string  `json:"not_found"`
	Failed   []Failure `json:"failed"`
	Bytes    int64     `json:"bytes"` // freed, or to be freed on a dry run
}

// DeleteOrphans removes the given site-relative paths. Missing files go to
// NotFound and other per-file problems to Failed; neither stops the run. A
// dry run only stats the files.
func (d *Detector) DeleteOrphans(ctx context.Context, paths []string, dryRun bool) (*Report, error) {
	report := &Report{DryRun: dryRun}

	if !dryRun && d.lockPath != "" {
		lock := flock.New(d.lockPath)
		ok, err := lock.TryLock()
		if err != nil {
			return report, fmt.Errorf("acquire lock: %w", err)
		}
		if !ok {
			return report, ErrLocked
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				d.logger.Warn("failed to release lost files lock", "error", err)
			}
		}()
	}

	for _, rel := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		full, err := util.ResolveSitePath(d.siteRoot, rel)
		if err != nil {
			report.Failed = append(report.Failed, Failure{Path: rel, Error: err.Error()})
			continue
		}

		info, err := os.Lstat(full)
		if errors.Is(err, fs.ErrNotExist) {
			report.NotFound = append(report.NotFound, rel)
			continue
		}
		if err != nil {
			report.Failed = append(report.Failed, Failure{Path: rel, Error: err.Error()})
			continue
		}
		if info.IsDir() {
			report.Failed = append(report.Failed, Failure{Path: rel, Error: "is a directory"})
			continue
		}

		if dryRun {
			report.Planned = append(report.Planned, rel)
			report.Bytes += info.Size()
			continue
		}

		if err := os.Remove(full); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				report.NotFound = append(report.NotFound, rel)
				continue
			}
			report.Failed = append(report.Failed, Failure{Path: rel, Error: err.Error()})
			continue
		}
		report.Deleted = append(report.Deleted, rel)
		report.Bytes += info.Size()
		d.logger.Debug("deleted lost file", "path", rel)
	}

	return report, nil
}
