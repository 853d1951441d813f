// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package markdown encodes instances as a markdown table.
package markdown

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/dacolabs/synth/internal/synth"
	"github.com/shopspring/decimal"
)

//go:embed table.md.tmpl
var tmplFS embed.FS

var tmpl = template.Must(template.New("table.md.tmpl").ParseFS(tmplFS, "table.md.tmpl"))

// Encoder writes instances as rows of a single table. Columns follow the
// field order of the first instance; nested values are inlined as compact
// JSON.
type Encoder struct {
	// Title, when set, is rendered as a heading above the table.
	Title string
}

// New creates a markdown encoder.
func New() *Encoder {
	return &Encoder{}
}

// Name returns the encoder's identifier.
func (e *Encoder) Name() string {
	return "markdown"
}

// FileExtension returns the file extension for markdown files.
func (e *Encoder) FileExtension() string {
	return ".md"
}

type tableData struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Encode renders instances as a markdown table. An empty input yields no
// output.
func (e *Encoder) Encode(instances []*synth.Instance) ([]byte, error) {
	if len(instances) == 0 {
		return nil, nil
	}

	data := tableData{Title: e.Title}
	for _, key := range instances[0].Keys() {
		data.Columns = append(data.Columns, escape(key))
	}
	for _, in := range instances {
		row := make([]string, 0, len(data.Columns))
		for _, key := range instances[0].Keys() {
			v, _ := in.Get(key)
			cell, err := formatCell(v)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", key, err)
			}
			row = append(row, escape(cell))
		}
		data.Rows = append(data.Rows, row)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "table.md.tmpl", data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func formatCell(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case decimal.Decimal:
		return v.StringFixed(synth.DecimalPlaces), nil
	case time.Time:
		return v.Format(time.RFC3339), nil
	case *synth.Instance, []any:
		b, err := synth.MarshalValue(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(v), nil
	}
}

// escape keeps cell content on one line and inside its column.
func escape(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
