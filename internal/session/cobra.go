// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package session

import (
	"errors"
	"fmt"
	"os"

	"github.com/dacolabs/synth/internal/logging"
	"github.com/spf13/cobra"
)

// VerboseFlag is the persistent flag that enables debug logging.
const VerboseFlag = "verbose"

// FromCommand extracts the session Context from a cobra.Command's context.
// Returns nil if no Context is stored.
func FromCommand(cmd *cobra.Command) *Context {
	return From(cmd.Context())
}

// RequireFromCommand extracts the session Context from a cobra.Command's
// context, returning an error if not found.
func RequireFromCommand(cmd *cobra.Command) (*Context, error) {
	sc := FromCommand(cmd)
	if sc == nil {
		return nil, errors.New("session not loaded")
	}
	return sc, nil
}

// PreRunLoad is a PersistentPreRunE function that builds the logger, loads
// the configuration from the working directory and stores both in the
// command's context.
func PreRunLoad(cmd *cobra.Command, _ []string) error {
	verbose, _ := cmd.Flags().GetBool(VerboseFlag)
	logger, err := logging.New(verbose)
	if err != nil {
		return err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	ctx, err := Load(cmd.Context(), cwd, logger)
	if err != nil {
		return err
	}
	cmd.SetContext(ctx)
	return nil
}

// PostRunSync flushes the session logger.
func PostRunSync(cmd *cobra.Command, _ []string) {
	if sc := FromCommand(cmd); sc != nil {
		_ = sc.Logger.Sync()
	}
}
