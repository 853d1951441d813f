// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package format provides output encoders for synthesized instances.
package format

import (
	"fmt"
	"sort"

	"github.com/dacolabs/synth/internal/synth"
)

// Encoder defines the interface all output formats must implement.
type Encoder interface {
	// Name returns the format identifier (e.g., "json", "yaml").
	Name() string

	// FileExtension returns the file extension, including the dot.
	FileExtension() string

	// Encode serializes instances in field order.
	Encode(instances []*synth.Instance) ([]byte, error)
}

// Register maps format names to encoders.
type Register map[string]Encoder

// Add registers e under its own name.
func (r Register) Add(e Encoder) {
	r[e.Name()] = e
}

// Get retrieves an encoder by name.
func (r Register) Get(name string) (Encoder, error) {
	e, ok := r[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %s", name)
	}
	return e, nil
}

// Available returns all registered format names, sorted.
func (r Register) Available() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
