// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/olegiv/ocms-content/internal/lostfiles"
	"github.com/olegiv/ocms-content/internal/model"
	"github.com/olegiv/ocms-content/internal/service"
	"github.com/olegiv/ocms-content/internal/util"
)

func newLostFilesCommand(a *app) *cobra.Command {
	var (
		excludes       []string
		dryRun         bool
		updateRefIndex bool
		customPath     string
	)

	cmd := &cobra.Command{
		Use:   "lostfiles",
		Short: "Find and delete uploaded files that no record references",
		Long: `Scans the upload directory for files without a hard reference in the
reference index and deletes them. Soft references (links and images inside
rich text) do not protect a file.

The result is only as good as the reference index: pass --update-refindex to
rebuild it first. On an interactive terminal you are asked instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer a.close()
			ctx = a.userContext(ctx)
			out := cmd.OutOrStdout()
			lang := a.catalog.Match(a.config.AdminLanguage)

			scanPath, err := relativeScanPath(a.config.SiteRoot, customPath)
			if err != nil {
				return err
			}
			detector, err := a.detector(scanPath)
			if err != nil {
				return err
			}

			if !updateRefIndex && isInteractive(cmd.InOrStdin()) {
				updateRefIndex, err = confirm(cmd.InOrStdin(), out, a.catalog.T(lang, "lostfiles.confirm_refindex"))
				if err != nil {
					return err
				}
			}
			if updateRefIndex {
				stats, err := a.updater().UpdateAll(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(out, a.catalog.T(lang, "refindex.updated", stats.Records, stats.Hard+stats.Soft))
			}

			excl := append(append([]string(nil), a.config.LostFilesExclude...), excludes...)
			orphans, err := detector.FindOrphans(ctx, excl)
			if err != nil {
				return err
			}
			if len(orphans) == 0 {
				_, _ = fmt.Fprintln(out, a.catalog.T(lang, "lostfiles.none"))
				return nil
			}
			_, _ = fmt.Fprintln(out, a.catalog.T(lang, "lostfiles.found", len(orphans)))

			report, err := detector.DeleteOrphans(ctx, orphans, dryRun)
			if errors.Is(err, lostfiles.ErrLocked) {
				return fmt.Errorf("%w (lock file in %s)", err, a.config.DataDir())
			}
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(out, renderReport(a.config.SiteRoot, report))
			printSummary(a, lang, report, out)

			if !dryRun {
				level := model.EventLevelInfo
				if len(report.Failed) > 0 {
					level = model.EventLevelWarning
				}
				_ = service.NewEventService(db, a.logger).LogEvent(ctx, level, model.EventCategoryLostFiles,
					fmt.Sprintf("Deleted %d lost file(s), freed %s", len(report.Deleted), humanize.Bytes(uint64(report.Bytes))),
					map[string]any{
						"path":      detector.ScanPath(),
						"deleted":   report.Deleted,
						"not_found": report.NotFound,
						"failed":    len(report.Failed),
						"bytes":     report.Bytes,
					})
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&excludes, "exclude", nil, "Comma-separated path prefixes to skip (e.g. uploads/_temp_/,uploads/import/)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only list the files, do not delete them")
	cmd.Flags().BoolVar(&updateRefIndex, "update-refindex", false, "Rebuild the reference index before scanning")
	cmd.Flags().StringVar(&customPath, "custom-path", "", "Directory to scan instead of the upload directory")

	return cmd
}

// relativeScanPath makes an absolute --custom-path relative to the site root.
func relativeScanPath(siteRoot, custom string) (string, error) {
	custom = strings.TrimSpace(custom)
	if custom == "" || !filepath.IsAbs(custom) {
		return custom, nil
	}
	root, err := filepath.Abs(siteRoot)
	if err != nil {
		return "", err
	}
	rel, err := util.SiteRelative(root, custom)
	if err != nil {
		return "", fmt.Errorf("custom path %s is outside the site root: %w", custom, err)
	}
	return rel, nil
}

func renderReport(siteRoot string, report *lostfiles.Report) string {
	paths := report.Deleted
	status := "deleted"
	if report.DryRun {
		paths, status = report.Planned, "lost"
	}

	rows := make([][]string, 0, len(paths)+len(report.NotFound)+len(report.Failed))
	for _, p := range paths {
		size := ""
		if report.DryRun {
			if info, err := os.Lstat(filepath.Join(siteRoot, filepath.FromSlash(p))); err == nil {
				size = humanize.Bytes(uint64(info.Size()))
			}
		}
		rows = append(rows, []string{p, status, size})
	}
	for _, p := range report.NotFound {
		rows = append(rows, []string{p, "not found", ""})
	}
	for _, f := range report.Failed {
		rows = append(rows, []string{f.Path, "failed: " + f.Error, ""})
	}
	return renderTable([]string{"File", "Status", "Size"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight})
}

func printSummary(a *app, lang string, report *lostfiles.Report, out io.Writer) {
	if report.DryRun {
		_, _ = fmt.Fprintf(out, "%s (%s)\n", a.catalog.T(lang, "lostfiles.dry_run"), humanize.Bytes(uint64(report.Bytes)))
		return
	}
	_, _ = fmt.Fprintf(out, "%s (%s)\n", a.catalog.T(lang, "lostfiles.deleted", len(report.Deleted)), humanize.Bytes(uint64(report.Bytes)))
	if n := len(report.NotFound); n > 0 {
		_, _ = fmt.Fprintln(out, a.catalog.T(lang, "lostfiles.not_found", n))
	}
	if n := len(report.Failed); n > 0 {
		_, _ = fmt.Fprintln(out, a.catalog.T(lang, "lostfiles.failed", n))
	}
}
