// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/dacolabs/synth/internal/format"
	"github.com/dacolabs/synth/internal/session"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd(formats format.Register) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "synth",
		Short: "Generate sample data from JSON Schema shapes",
		Long: `synth turns JSON Schema documents into randomly populated instances.
Every field receives a value of its declared kind; nested objects that
cannot be built are left empty instead of failing the whole record.`,
		SilenceUsage:      true,
		PersistentPreRunE: session.PreRunLoad,
		PersistentPostRun: session.PostRunSync,
	}
	rootCmd.PersistentFlags().BoolP(session.VerboseFlag, "v", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(newGenerateCmd(formats))
	rootCmd.AddCommand(newDescribeCmd())
	rootCmd.AddCommand(newInitCmd(formats))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
