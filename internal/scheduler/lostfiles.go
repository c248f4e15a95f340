// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/olegiv/ocms-content/internal/lostfiles"
	"github.com/olegiv/ocms-content/internal/model"
	"github.com/olegiv/ocms-content/internal/refindex"
	"github.com/olegiv/ocms-content/internal/service"
)

// LostFilesJobName is the name the report job registers under.
const LostFilesJobName = "lostfiles-report"

// LostFilesReport scans for lost files without deleting anything and
// records the result as an event.
type LostFilesReport struct {
	Detector *lostfiles.Detector
	Updater  *refindex.Updater // nil skips the refindex rebuild
	Events   *service.EventService
	Excludes []string
	Logger   *slog.Logger
}

// Run performs one report.
func (r *LostFilesReport) Run(ctx context.Context) error {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if r.Updater != nil {
		if _, err := r.Updater.UpdateAll(ctx); err != nil {
			return fmt.Errorf("updating reference index: %w", err)
		}
	}

	orphans, err := r.Detector.FindOrphans(ctx, r.Excludes)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", r.Detector.ScanPath(), err)
	}

	report, err := r.Detector.DeleteOrphans(ctx, orphans, true)
	if err != nil {
		return err
	}

	logger.Info("lost files report",
		"path", r.Detector.ScanPath(),
		"count", len(report.Planned),
		"size", humanize.Bytes(uint64(report.Bytes)),
	)

	if r.Events != nil {
		msg := fmt.Sprintf("Lost files report: %d file(s), %s", len(report.Planned), humanize.Bytes(uint64(report.Bytes)))
		meta := map[string]any{
			"path":  r.Detector.ScanPath(),
			"files": report.Planned,
			"bytes": report.Bytes,
		}
		if len(report.Planned) > 0 {
			_ = r.Events.LogWarning(ctx, model.EventCategoryLostFiles, msg, meta)
		} else {
			_ = r.Events.LogInfo(ctx, model.EventCategoryLostFiles, msg, meta)
		}
	}
	return nil
}

// RegisterLostFilesReport adds the report job on schedule.
func (s *Scheduler) RegisterLostFilesReport(schedule string, r *LostFilesReport) error {
	return s.Register(LostFilesJobName, "Report files below the upload directory that nothing references", schedule, r.Run)
}
