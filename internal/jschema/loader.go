// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat indicates a schema file with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported schema format (want .yaml, .yml or .json)")

// ErrRefCycle indicates schema files that reference each other.
var ErrRefCycle = errors.New("circular file $ref")

// Parse decodes a schema from raw bytes. The format is chosen from the
// file name extension.
func Parse(data []byte, fileName string) (*Document, error) {
	var (
		raw      []byte
		keyOrder map[string][]string
		err      error
	)

	switch strings.ToLower(path.Ext(fileName)) {
	case ".yaml", ".yml":
		var v any
		if err = yaml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		if raw, err = json.Marshal(v); err != nil {
			return nil, fmt.Errorf("failed to convert YAML schema: %w", err)
		}
		if keyOrder, err = ExtractKeyOrderFromYAML(data); err != nil {
			return nil, err
		}
	case ".json":
		raw = data
		if keyOrder, err = ExtractKeyOrderFromJSON(data); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, fileName)
	}

	var schema jsonschema.Schema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, err
	}

	doc := NewDocument(&schema)
	doc.bindOrder(&schema, "", keyOrder)
	return doc, nil
}

// Loader loads schemas from a filesystem.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader that reads from the given filesystem.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadFile loads and parses a schema file.
// The format is determined from the file extension.
func (l *Loader) LoadFile(filePath string) (*Document, error) {
	f, err := l.fsys.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data, filePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return doc, nil
}

// Load reads a schema file and resolves its external file references.
func (l *Loader) Load(filePath string) (*Document, error) {
	doc, err := l.LoadFile(filePath)
	if err != nil {
		return nil, err
	}
	loading := map[string]bool{path.Clean(filePath): true}
	if err := l.resolveRefs(doc, path.Dir(filePath), loading); err != nil {
		return nil, err
	}
	return doc, nil
}

// ResolveRefs resolves all external file $refs in the document in-place.
// A ref may point at a whole file ("address.yaml") or at a definition
// inside it ("common.yaml#/$defs/address"). Internal refs (starting with #)
// in the document are left unchanged; internal refs inside a referenced
// file are bound to that file's own definitions.
func (l *Loader) ResolveRefs(doc *Document, basePath string) error {
	return l.resolveRefs(doc, basePath, make(map[string]bool))
}

func (l *Loader) resolveRefs(doc *Document, basePath string, loading map[string]bool) error {
	for s := range Traverse(doc.Schema, nil) {
		if !IsFileRef(s.Ref) {
			continue
		}
		file, fragment, _ := strings.Cut(s.Ref, "#")
		refPath := path.Join(basePath, file)
		if loading[refPath] {
			return fmt.Errorf("%w: %s", ErrRefCycle, refPath)
		}

		loaded, err := l.LoadFile(refPath)
		if err != nil {
			return err
		}
		loading[refPath] = true
		err = l.resolveRefs(loaded, path.Dir(refPath), loading)
		delete(loading, refPath)
		if err != nil {
			return err
		}
		if err := loaded.bindInternalRefs(); err != nil {
			return fmt.Errorf("%s: %w", refPath, err)
		}

		target := loaded.Schema
		if fragment != "" {
			if target = lookupDef(loaded.Schema, "#"+fragment); target == nil {
				return fmt.Errorf("%w: %s", ErrUnresolvedRef, s.Ref)
			}
		}

		doc.merge(loaded)
		if keys, ok := loaded.order[target]; ok {
			doc.SetPropertyOrder(s, keys)
		}
		if name, ok := loaded.defName(target); ok {
			doc.names[s] = name
		}
		bound, hasBound := loaded.refs[target]
		*s = *target
		if hasBound {
			doc.refs[s] = bound
		}
	}
	return nil
}
