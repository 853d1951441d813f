// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package batch generates instances for several shapes in parallel.
package batch

import (
	"context"

	"github.com/dacolabs/synth/internal/synth"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Job asks for Count instances of Shape.
type Job struct {
	Name  string
	Shape *synth.Shape
	Count int
}

// Result holds the instances generated for a job. Err is set when the
// job's shape could not be instantiated; other jobs are unaffected.
type Result struct {
	Job       Job
	Instances []*synth.Instance
	Err       error
}

// Options configures Run.
type Options struct {
	// Workers bounds the number of jobs generated concurrently.
	Workers int

	// Seed makes the run deterministic when non-zero. Each job derives its
	// own seed from Seed and its index.
	Seed uint64

	// Synth is applied to every job's synthesizer.
	Synth []synth.Option

	Logger *zap.Logger
}

// Run generates every job and returns results in job order. It returns an
// error only when ctx is cancelled.
func Run(ctx context.Context, jobs []Job, opts Options) ([]Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			synthOpts := append([]synth.Option{synth.WithLogger(logger)}, opts.Synth...)
			if opts.Seed != 0 {
				synthOpts = append(synthOpts, synth.WithSeed(JobSeed(opts.Seed, i)))
			}
			s := synth.New(synthOpts...)

			res := Result{Job: job, Instances: make([]*synth.Instance, 0, job.Count)}
			for range job.Count {
				if err := gctx.Err(); err != nil {
					return err
				}
				in, err := s.Synthesize(job.Shape)
				if err != nil {
					logger.Warn("job failed", zap.String("job", job.Name), zap.Error(err))
					res.Instances = nil
					res.Err = err
					break
				}
				res.Instances = append(res.Instances, in)
			}
			logger.Debug("job done", zap.String("job", job.Name), zap.Int("instances", len(res.Instances)))
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// JobSeed derives a per-job seed with the splitmix64 finalizer so that
// neighbouring indexes produce unrelated streams.
func JobSeed(root uint64, index int) uint64 {
	z := root + uint64(index+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
