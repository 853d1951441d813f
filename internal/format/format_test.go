// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package format_test

import (
	"testing"

	"github.com/dacolabs/synth/internal/format"
	"github.com/dacolabs/synth/internal/format/jsonout"
	"github.com/dacolabs/synth/internal/format/ndjson"
	"github.com/dacolabs/synth/internal/format/yamlout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	r := make(format.Register)
	r.Add(yamlout.New())
	r.Add(jsonout.New())
	r.Add(ndjson.New())

	assert.Equal(t, []string{"json", "ndjson", "yaml"}, r.Available())

	e, err := r.Get("yaml")
	require.NoError(t, err)
	assert.Equal(t, ".yaml", e.FileExtension())

	_, err = r.Get("xml")
	assert.EqualError(t, err, "unknown format: xml")
}
