// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dacolabs/synth/internal/config"
	"github.com/dacolabs/synth/internal/format"
	"github.com/dacolabs/synth/internal/prompts"
	"github.com/spf13/cobra"
)

type initOptions struct {
	textPrefix     string
	maxDepth       int
	format         string
	seed           uint64
	nonInteractive bool
}

func newInitCmd(formats format.Register) *cobra.Command {
	defaults := config.Default()
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new synth project",
		Long: `Initialize a new synth project with a synth.yaml configuration file in the
current directory. The file holds the defaults used by generate.`,
		Example: `  # Interactive mode
  synth init

  # Non-interactive
  synth init --text-prefix "Item " --max-depth 4 --non-interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, formats, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.textPrefix, "text-prefix", "p", defaults.TextPrefix, "Literal prefix of generated text values")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", defaults.MaxDepth, "Maximum nesting depth")
	cmd.Flags().StringVarP(&opts.format, "format", "f", defaults.Format, "Default output format")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Default seed (0 means random)")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(cmd *cobra.Command, formats format.Register, opts *initOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfgPath := filepath.Join(cwd, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return errors.New("synth.yaml already exists; project already initialized")
	}

	if !opts.nonInteractive && prompts.Interactive() {
		depth := strconv.Itoa(opts.maxDepth)
		if err := prompts.RunInitForm(&opts.textPrefix, &depth, &opts.format, formats.Available()); err != nil {
			return err
		}
		if opts.maxDepth, err = strconv.Atoi(depth); err != nil {
			return fmt.Errorf("invalid depth %q: %w", depth, err)
		}
	}

	if _, err := formats.Get(opts.format); err != nil {
		return err
	}

	cfg := config.Default()
	cfg.TextPrefix = opts.textPrefix
	cfg.MaxDepth = opts.maxDepth
	cfg.Format = opts.format
	cfg.Seed = opts.seed

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Config", Value: config.FileName},
		{Label: "Text prefix", Value: strconv.Quote(cfg.TextPrefix)},
		{Label: "Max depth", Value: strconv.Itoa(cfg.MaxDepth)},
		{Label: "Format", Value: cfg.Format},
	}, "Initialization completed")
	return nil
}
