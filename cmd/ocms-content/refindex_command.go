// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRefIndexCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refindex",
		Short: "Manage the reference index",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var recordID int64
	update := &cobra.Command{
		Use:   "update",
		Short: "Rebuild the reference index from all records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := a.openDB(ctx); err != nil {
				return err
			}
			defer a.close()
			ctx = a.userContext(ctx)

			u := a.updater()
			if recordID > 0 {
				stats, err := u.UpdateRecord(ctx, recordID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Record %d: %d hard, %d soft reference(s)\n", recordID, stats.Hard, stats.Soft)
				return nil
			}

			stats, err := u.UpdateAll(ctx)
			if err != nil {
				return err
			}
			lang := a.catalog.Match(a.config.AdminLanguage)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), a.catalog.T(lang, "refindex.updated", stats.Records, stats.Hard+stats.Soft))
			return nil
		},
	}
	update.Flags().Int64Var(&recordID, "record", 0, "Only refresh the rows of this record")

	cmd.AddCommand(update)
	return cmd
}
