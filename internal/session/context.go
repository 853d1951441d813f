// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dacolabs/synth/internal/config"
	"go.uber.org/zap"
)

// ErrInvalidConfig indicates the config file exists but is invalid.
var ErrInvalidConfig = errors.New("invalid configuration")

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the resolved configuration and logger for a command run.
type Context struct {
	// Config is synth.yaml from the working directory, or the defaults.
	Config *config.Config

	// ConfigPath is the file Config was read from; empty for defaults.
	ConfigPath string

	Logger *zap.Logger
}

// Load reads synth.yaml from dir, falling back to defaults when the file
// does not exist, and returns a context.Context carrying the result.
func Load(ctx context.Context, dir string, logger *zap.Logger) (context.Context, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	sc := &Context{Config: config.Default(), Logger: logger}

	configPath := filepath.Join(dir, config.FileName)
	if _, statErr := os.Stat(configPath); statErr == nil {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		sc.Config = cfg
		sc.ConfigPath = configPath
		logger.Debug("loaded config", zap.String("path", configPath))
	} else {
		logger.Debug("no config file, using defaults", zap.String("dir", dir))
	}

	return context.WithValue(ctx, contextKey{}, sc), nil
}

// From extracts the session Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if sc, ok := ctx.Value(contextKey{}).(*Context); ok {
		return sc
	}
	return nil
}
