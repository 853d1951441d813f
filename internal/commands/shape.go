// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dacolabs/synth/internal/jschema"
	"github.com/dacolabs/synth/internal/prompts"
	"github.com/dacolabs/synth/internal/synth"
)

// loadDocument reads a schema file and resolves its file references
// relative to the file's own directory.
func loadDocument(path string) (*jschema.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema path: %w", err)
	}
	// The filesystem is rooted at the volume so refs may climb out of the
	// schema's directory with "../".
	root := filepath.VolumeName(abs) + string(filepath.Separator)
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema path: %w", err)
	}
	loader := jschema.NewLoader(os.DirFS(root))
	doc, err := loader.Load(filepath.ToSlash(rel))
	if err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", path, err)
	}
	return doc, nil
}

// compileShape loads path and compiles def, or the root schema when def is
// empty.
func compileShape(path, def string) (*synth.Shape, error) {
	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	return jschema.Compile(doc, def)
}

// selectDefinition asks which definition to use when the document has any.
func selectDefinition(doc *jschema.Document) (string, error) {
	defs := doc.Definitions()
	if len(defs) == 0 {
		return "", nil
	}
	var selected string
	if err := prompts.RunDefinitionSelect(&selected, defs); err != nil {
		return "", err
	}
	return selected, nil
}
