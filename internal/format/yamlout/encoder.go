// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package yamlout encodes instances as YAML documents.
package yamlout

import (
	"bytes"

	"github.com/dacolabs/synth/internal/synth"
	"gopkg.in/yaml.v3"
)

// Encoder writes one YAML document per instance.
type Encoder struct{}

// New creates a YAML encoder.
func New() *Encoder {
	return &Encoder{}
}

// Name returns the encoder's identifier.
func (e *Encoder) Name() string {
	return "yaml"
}

// FileExtension returns the file extension for YAML files.
func (e *Encoder) FileExtension() string {
	return ".yaml"
}

// Encode serializes instances as a multi-document YAML stream.
func (e *Encoder) Encode(instances []*synth.Instance) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	for _, in := range instances {
		if err := enc.Encode(in); err != nil {
			return nil, err
		}
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
