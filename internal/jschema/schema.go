// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jschema loads JSON Schema documents and compiles them into
// synthesizer shapes.
package jschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"gopkg.in/yaml.v3"
)

// Document is a parsed schema together with the declaration order of the
// properties of every object schema in it.
type Document struct {
	Schema *jsonschema.Schema

	order map[*jsonschema.Schema][]string

	// refs binds internal $refs that came from other files to their
	// targets, which live outside Schema's own $defs.
	refs map[*jsonschema.Schema]*jsonschema.Schema

	// names holds the definition names of schemas inlined from other files.
	names map[*jsonschema.Schema]string
}

// NewDocument wraps a schema built in code. Properties without a recorded
// order are listed alphabetically.
func NewDocument(s *jsonschema.Schema) *Document {
	return &Document{
		Schema: s,
		order:  make(map[*jsonschema.Schema][]string),
		refs:   make(map[*jsonschema.Schema]*jsonschema.Schema),
		names:  make(map[*jsonschema.Schema]string),
	}
}

// Resolve returns the target of an internal $ref held by s, or nil.
func (d *Document) Resolve(s *jsonschema.Schema) *jsonschema.Schema {
	if target, ok := d.refs[s]; ok {
		return target
	}
	return lookupDef(d.Schema, s.Ref)
}

// bindInternalRefs records the target of every internal $ref in the
// document so the bindings survive inlining into another document.
func (d *Document) bindInternalRefs() error {
	for s := range Traverse(d.Schema, nil) {
		if s.Ref == "" || IsFileRef(s.Ref) {
			continue
		}
		if _, ok := d.refs[s]; ok {
			continue
		}
		target := lookupDef(d.Schema, s.Ref)
		if target == nil {
			return fmt.Errorf("%w: %s", ErrUnresolvedRef, s.Ref)
		}
		d.refs[s] = target
	}
	for name, s := range d.Schema.Definitions {
		d.names[s] = name
	}
	for name, s := range d.Schema.Defs {
		d.names[s] = name
	}
	return nil
}

// merge copies key order, ref bindings and definition names from other.
func (d *Document) merge(other *Document) {
	for s, keys := range other.order {
		d.SetPropertyOrder(s, keys)
	}
	for s, target := range other.refs {
		d.refs[s] = target
	}
	for s, name := range other.names {
		d.names[s] = name
	}
}

// defName returns the definition name of s, if it is one.
func (d *Document) defName(s *jsonschema.Schema) (string, bool) {
	if name, ok := d.names[s]; ok {
		return name, true
	}
	for name, def := range d.Schema.Defs {
		if def == s {
			return name, true
		}
	}
	for name, def := range d.Schema.Definitions {
		if def == s {
			return name, true
		}
	}
	return "", false
}

// PropertyOrder returns the property names of s in declaration order.
func (d *Document) PropertyOrder(s *jsonschema.Schema) []string {
	if order, ok := d.order[s]; ok {
		keys := make([]string, 0, len(s.Properties))
		for _, k := range order {
			if _, exists := s.Properties[k]; exists {
				keys = append(keys, k)
			}
		}
		if len(keys) == len(s.Properties) {
			return keys
		}
	}
	return SortedKeys(s.Properties)
}

// SetPropertyOrder records the declaration order of the properties of s.
func (d *Document) SetPropertyOrder(s *jsonschema.Schema, keys []string) {
	d.order[s] = keys
}

// Definitions returns the names of all $defs and definitions, sorted.
func (d *Document) Definitions() []string {
	names := make([]string, 0, len(d.Schema.Defs)+len(d.Schema.Definitions))
	for name := range d.Schema.Defs {
		names = append(names, name)
	}
	for name := range d.Schema.Definitions {
		if _, dup := d.Schema.Defs[name]; !dup {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// SortedKeys returns the keys of m in alphabetical order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsFileRef returns true if ref is an external file reference.
// File refs do not start with "#".
func IsFileRef(ref string) bool {
	return ref != "" && !strings.HasPrefix(ref, "#")
}

// ExtractKeyOrderFromJSON reads raw JSON and returns the key order of every
// "properties" object, keyed by dotted path (e.g. "properties",
// "$defs.address.properties").
func ExtractKeyOrderFromJSON(data []byte) (map[string][]string, error) {
	result := make(map[string][]string)
	dec := json.NewDecoder(bytes.NewReader(data))

	var extract func(path string) error
	extract = func(path string) error {
		token, err := dec.Token()
		if err != nil {
			return err
		}
		delim, ok := token.(json.Delim)
		if !ok {
			return nil
		}
		switch delim {
		case '{':
			var keys []string
			for dec.More() {
				keyToken, err := dec.Token()
				if err != nil {
					return err
				}
				key, ok := keyToken.(string)
				if !ok {
					return fmt.Errorf("unexpected object key %v", keyToken)
				}
				keys = append(keys, key)
				if err := extract(joinPath(path, key)); err != nil {
					return err
				}
			}
			if _, err := dec.Token(); err != nil {
				return err
			}
			if isPropertiesPath(path) {
				result[path] = keys
			}
		case '[':
			for dec.More() {
				if err := extract(path); err != nil {
					return err
				}
			}
			if _, err := dec.Token(); err != nil {
				return err
			}
		}
		return nil
	}

	if err := extract(""); err != nil {
		return nil, err
	}
	return result, nil
}

// ExtractKeyOrderFromYAML is the YAML counterpart of ExtractKeyOrderFromJSON.
func ExtractKeyOrderFromYAML(data []byte) (map[string][]string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	result := make(map[string][]string)

	var extract func(node *yaml.Node, path string)
	extract = func(node *yaml.Node, path string) {
		switch node.Kind {
		case yaml.DocumentNode:
			for _, c := range node.Content {
				extract(c, path)
			}
		case yaml.MappingNode:
			keys := make([]string, 0, len(node.Content)/2)
			for i := 0; i+1 < len(node.Content); i += 2 {
				key := node.Content[i].Value
				keys = append(keys, key)
				extract(node.Content[i+1], joinPath(path, key))
			}
			if isPropertiesPath(path) {
				result[path] = keys
			}
		case yaml.SequenceNode:
			for _, c := range node.Content {
				extract(c, path)
			}
		}
	}
	extract(&root, "")
	return result, nil
}

func joinPath(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ".")
}

func isPropertiesPath(path string) bool {
	return path == "properties" || strings.HasSuffix(path, ".properties")
}

// bindOrder maps path-keyed orders onto the schema nodes they belong to.
func (d *Document) bindOrder(s *jsonschema.Schema, path string, paths map[string][]string) {
	if s == nil {
		return
	}
	if keys, ok := paths[joinPath(path, "properties")]; ok {
		d.SetPropertyOrder(s, keys)
	}
	for name, p := range s.Properties {
		d.bindOrder(p, joinPath(path, "properties", name), paths)
	}
	for name, def := range s.Defs {
		d.bindOrder(def, joinPath(path, "$defs", name), paths)
	}
	for name, def := range s.Definitions {
		d.bindOrder(def, joinPath(path, "definitions", name), paths)
	}
	d.bindOrder(s.Items, joinPath(path, "items"), paths)
}
