// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dacolabs/synth/internal/batch"
	"github.com/dacolabs/synth/internal/format"
	"github.com/dacolabs/synth/internal/jschema"
	"github.com/dacolabs/synth/internal/prompts"
	"github.com/dacolabs/synth/internal/session"
	"github.com/dacolabs/synth/internal/synth"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type generateOptions struct {
	schemas        []string
	def            string
	count          int
	format         string
	seed           uint64
	output         string
	maxDepth       int
	nonInteractive bool
}

func newGenerateCmd(formats format.Register) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate instances from a JSON Schema",
		Long: `Load a JSON Schema, compile it into a shape and emit randomly populated
instances. Values for flags that are not set come from synth.yaml.

With several --schema flags, --output names a directory and one file is
written per schema.`,
		Example: `  # One instance of the root schema as JSON
  synth generate --schema order.yaml

  # Ten reproducible instances of a definition as NDJSON
  synth generate -s order.yaml --def customer -n 10 -f ndjson --seed 42

  # One file per schema
  synth generate -s order.yaml -s invoice.yaml -n 100 -o out/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runGenerate(cmd, ctx, formats, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.schemas, "schema", "s", nil, "Path to a JSON Schema file (repeatable)")
	cmd.Flags().StringVarP(&opts.def, "def", "d", "", "Definition under $defs to generate instead of the root schema")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 1, "Number of instances per schema")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", fmt.Sprintf("Output format (%s)", strings.Join(formats.Available(), ", ")))
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Seed for reproducible output (0 means random)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file, or directory when several schemas are given")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "Maximum nesting depth")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts (implied when stdin or stdout is not a terminal)")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runGenerate(cmd *cobra.Command, ctx *session.Context, formats format.Register, opts *generateOptions) error {
	cfg := ctx.Config
	if opts.count < 1 {
		return errors.New("--count must be at least 1")
	}
	if cmd.Flags().Changed("max-depth") && opts.maxDepth < 0 {
		return errors.New("--max-depth must not be negative")
	}

	formatName := cfg.Format
	if cmd.Flags().Changed("format") {
		formatName = opts.format
	}

	synthOpts := cfg.SynthOptions()
	if cmd.Flags().Changed("max-depth") {
		synthOpts = append(synthOpts, synth.WithMaxDepth(opts.maxDepth))
	}
	synthOpts = append(synthOpts, synth.WithLogger(ctx.Logger))

	seed := cfg.Seed
	if cmd.Flags().Changed("seed") {
		seed = opts.seed
	}

	if len(opts.schemas) > 1 {
		enc, err := formats.Get(formatName)
		if err != nil {
			return err
		}
		return generateBatch(cmd, ctx, enc, synthOpts, seed, opts)
	}

	doc, err := loadDocument(opts.schemas[0])
	if err != nil {
		return err
	}

	def := opts.def
	if !opts.nonInteractive && prompts.Interactive() {
		askDef := !cmd.Flags().Changed("def")
		askFormat := !cmd.Flags().Changed("format") && ctx.ConfigPath == ""
		if err := prompts.RunGenerateForm(&def, &formatName, askDef, askFormat, doc.Definitions(), formats.Available()); err != nil {
			return err
		}
	}

	enc, err := formats.Get(formatName)
	if err != nil {
		return err
	}

	shape, err := jschema.Compile(doc, def)
	if err != nil {
		return err
	}

	if seed != 0 {
		synthOpts = append(synthOpts, synth.WithSeed(seed))
	}
	s := synth.New(synthOpts...)

	instances := make([]*synth.Instance, 0, opts.count)
	for range opts.count {
		in, err := s.Synthesize(shape)
		if err != nil {
			return err
		}
		instances = append(instances, in)
	}
	ctx.Logger.Debug("generated instances",
		zap.String("shape", shape.Name),
		zap.Int("count", len(instances)),
		zap.String("format", enc.Name()))

	data, err := enc.Encode(instances)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", enc.Name(), err)
	}

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := writeOutput(opts.output, data); err != nil {
		return err
	}
	prompts.PrintResult(cmd.ErrOrStderr(), []prompts.ResultField{
		{Label: "Shape", Value: shape.Name},
		{Label: "Instances", Value: fmt.Sprint(len(instances))},
		{Label: "File", Value: opts.output},
	}, "")
	return nil
}

func generateBatch(cmd *cobra.Command, ctx *session.Context, enc format.Encoder, synthOpts []synth.Option, seed uint64, opts *generateOptions) error {
	if opts.output == "" {
		return errors.New("--output directory is required with several schemas")
	}
	if err := os.MkdirAll(opts.output, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	jobs := make([]batch.Job, 0, len(opts.schemas))
	seen := make(map[string]string, len(opts.schemas))
	for _, path := range opts.schemas {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("schemas %s and %s would write the same file", prev, path)
		}
		seen[name] = path

		shape, err := compileShape(path, opts.def)
		if err != nil {
			return err
		}
		jobs = append(jobs, batch.Job{Name: name, Shape: shape, Count: opts.count})
	}

	results, err := batch.Run(cmd.Context(), jobs, batch.Options{
		Workers: ctx.Config.Workers,
		Seed:    seed,
		Synth:   synthOpts,
		Logger:  ctx.Logger,
	})
	if err != nil {
		return err
	}

	var errs []error
	fields := make([]prompts.ResultField, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Job.Name, res.Err))
			continue
		}
		data, err := enc.Encode(res.Instances)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Job.Name, err))
			continue
		}
		path := filepath.Join(opts.output, res.Job.Name+enc.FileExtension())
		if err := writeOutput(path, data); err != nil {
			errs = append(errs, err)
			continue
		}
		fields = append(fields, prompts.ResultField{Label: res.Job.Name, Value: path})
	}

	if len(fields) > 0 {
		prompts.PrintResult(cmd.ErrOrStderr(), fields, "")
	}
	return errors.Join(errs...)
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
