// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/olegiv/ocms-content/internal/localization"
)

func newLocalizeCommand(a *app) *cobra.Command {
	var (
		pageID  int64
		from    int64
		to      int64
		records []int64
		copyAll bool
	)

	cmd := &cobra.Command{
		Use:   "localize",
		Short: "Translate or copy records of a page into another language",
		Long: `Creates a translation of each record in the destination language, in the
given order. Records that already have a translation are skipped. With --copy
independent copies are created instead.`,
		Example: "  ocms-content localize --page 1 --from 0 --to 1 --records 3,4,7",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.openDB(ctx); err != nil {
				return err
			}
			defer a.close()
			ctx = a.userContext(ctx)

			engine, err := a.engine()
			if err != nil {
				return err
			}

			action := localization.ActionLocalize
			if copyAll {
				action = localization.ActionCopy
			}

			res, err := engine.Process(ctx, localization.Request{
				PageID:           pageID,
				SourceLanguageID: from,
				DestLanguageID:   to,
				RecordIDs:        records,
				Action:           action,
			})
			if res != nil && len(res.Items) > 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderResult(a, res))
			}
			if err != nil {
				return err
			}

			lang := a.catalog.Match(a.config.AdminLanguage)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), a.catalog.T(lang, "localize.done", len(res.Items), res.PageID))
			return nil
		},
	}

	cmd.Flags().Int64Var(&pageID, "page", 0, "Page ID")
	cmd.Flags().Int64Var(&from, "from", 0, "Source language ID")
	cmd.Flags().Int64Var(&to, "to", 0, "Destination language ID")
	cmd.Flags().Int64SliceVar(&records, "records", nil, "Comma-separated source record IDs, in insertion order")
	cmd.Flags().BoolVar(&copyAll, "copy", false, "Create independent copies instead of translations")
	_ = cmd.MarkFlagRequired("page")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("records")

	return cmd
}

func renderResult(a *app, res *localization.Result) string {
	lang := a.catalog.Match(a.config.AdminLanguage)
	rows := make([][]string, 0, len(res.Items))
	for _, it := range res.Items {
		rows = append(rows, []string{
			strconv.FormatInt(it.SourceID, 10),
			strconv.FormatInt(it.RecordID, 10),
			strconv.FormatInt(it.SortOrder, 10),
			a.catalog.T(lang, "localize.status."+string(it.Status)),
		})
	}
	return renderTable(
		[]string{"Source", "Record", "Sort order", "Status"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignLeft},
	)
}
