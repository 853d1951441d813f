// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"iter"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

// RefResolver resolves $ref strings to schemas.
// Return nil if the ref cannot be resolved.
type RefResolver func(ref string) *jsonschema.Schema

// Traverse returns an iterator over all schemas in the tree.
// It handles cycles by tracking visited schemas.
// If resolver is provided, it follows $ref links to their targets.
func Traverse(schema *jsonschema.Schema, resolver RefResolver) iter.Seq[*jsonschema.Schema] {
	return func(yield func(*jsonschema.Schema) bool) {
		visited := make(map[*jsonschema.Schema]struct{})
		walk(schema, resolver, yield, visited)
	}
}

func walk(s *jsonschema.Schema, resolver RefResolver, yield func(*jsonschema.Schema) bool, visited map[*jsonschema.Schema]struct{}) bool {
	if s == nil {
		return true
	}
	if _, ok := visited[s]; ok {
		return true
	}
	visited[s] = struct{}{}

	if !yield(s) {
		return false
	}

	if s.Ref != "" && resolver != nil {
		if !walk(resolver(s.Ref), resolver, yield, visited) {
			return false
		}
	}

	children := []*jsonschema.Schema{
		s.AdditionalProperties, s.PropertyNames, s.UnevaluatedProperties,
		s.Items, s.AdditionalItems, s.Contains, s.UnevaluatedItems,
		s.Not, s.If, s.Then, s.Else, s.ContentSchema,
	}
	for _, name := range SortedKeys(s.Properties) {
		children = append(children, s.Properties[name])
	}
	for _, name := range SortedKeys(s.PatternProperties) {
		children = append(children, s.PatternProperties[name])
	}
	children = append(children, s.ItemsArray...)
	children = append(children, s.PrefixItems...)
	children = append(children, s.AllOf...)
	children = append(children, s.AnyOf...)
	children = append(children, s.OneOf...)
	for _, name := range SortedKeys(s.DependentSchemas) {
		children = append(children, s.DependentSchemas[name])
	}
	for _, name := range SortedKeys(s.Defs) {
		children = append(children, s.Defs[name])
	}
	for _, name := range SortedKeys(s.Definitions) {
		children = append(children, s.Definitions[name])
	}

	for _, c := range children {
		if !walk(c, resolver, yield, visited) {
			return false
		}
	}
	return true
}

// lookupDef resolves an internal "#/$defs/name" or "#/definitions/name"
// reference against root.
func lookupDef(root *jsonschema.Schema, ref string) *jsonschema.Schema {
	if name, ok := defName(ref); ok {
		if s, ok := root.Defs[name]; ok {
			return s
		}
		return root.Definitions[name]
	}
	if ref == "#" || ref == "#/" {
		return root
	}
	return nil
}

func defName(ref string) (string, bool) {
	if name, ok := strings.CutPrefix(ref, "#/$defs/"); ok {
		return name, true
	}
	return strings.CutPrefix(ref, "#/definitions/")
}
