// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var envFile string
	a := newApp(&envFile)

	rootCmd := &cobra.Command{
		Use:           "ocms-content",
		Short:         "Content localization and lost file maintenance",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load before reading OCMS_* variables")

	rootCmd.AddCommand(newLostFilesCommand(a))
	rootCmd.AddCommand(newLocalizeCommand(a))
	rootCmd.AddCommand(newRefIndexCommand(a))
	rootCmd.AddCommand(newMigrateCommand(a))
	rootCmd.AddCommand(newSeedCommand(a))
	rootCmd.AddCommand(newServeCommand(a))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
