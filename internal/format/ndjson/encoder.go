// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package ndjson encodes instances as newline-delimited JSON.
package ndjson

import (
	"bytes"
	"encoding/json"

	"github.com/dacolabs/synth/internal/synth"
)

// Encoder writes one compact JSON object per line.
type Encoder struct{}

// New creates an NDJSON encoder.
func New() *Encoder {
	return &Encoder{}
}

// Name returns the encoder's identifier.
func (e *Encoder) Name() string {
	return "ndjson"
}

// FileExtension returns the file extension for NDJSON files.
func (e *Encoder) FileExtension() string {
	return ".ndjson"
}

// Encode serializes each instance on its own line.
func (e *Encoder) Encode(instances []*synth.Instance) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	for _, in := range instances {
		if err := enc.Encode(in); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
