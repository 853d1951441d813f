// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package internal contains the main application logic for the CLI.
package internal

import (
	"context"

	"github.com/dacolabs/synth/internal/commands"
	"github.com/dacolabs/synth/internal/format"
	"github.com/dacolabs/synth/internal/format/jsonout"
	"github.com/dacolabs/synth/internal/format/markdown"
	"github.com/dacolabs/synth/internal/format/ndjson"
	"github.com/dacolabs/synth/internal/format/yamlout"
)

// Formats returns the register of every built-in output format.
func Formats() format.Register {
	formats := make(format.Register)
	formats.Add(jsonout.New())
	formats.Add(yamlout.New())
	formats.Add(ndjson.New())
	formats.Add(markdown.New())
	return formats
}

// Run is the main application logic, extracted for testability.
// It accepts OS dependencies as parameters (context, env lookup).
func Run(ctx context.Context, getenv func(string) string) error {
	rootCmd := commands.NewRootCmd(Formats())
	return rootCmd.ExecuteContext(ctx)
}
