// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jsonout encodes instances as indented JSON.
package jsonout

import (
	"bytes"
	"encoding/json"

	"github.com/dacolabs/synth/internal/synth"
)

// Encoder writes a single instance as a JSON object and several as an array.
type Encoder struct{}

// New creates a JSON encoder.
func New() *Encoder {
	return &Encoder{}
}

// Name returns the encoder's identifier.
func (e *Encoder) Name() string {
	return "json"
}

// FileExtension returns the file extension for JSON files.
func (e *Encoder) FileExtension() string {
	return ".json"
}

// Encode serializes instances as indented JSON followed by a newline.
func (e *Encoder) Encode(instances []*synth.Instance) ([]byte, error) {
	var v any = instances
	if len(instances) == 1 {
		v = instances[0]
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
