// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dacolabs/synth/internal/synth"
	"github.com/google/jsonschema-go/jsonschema"
)

var (
	// ErrUnresolvedRef indicates a $ref that points at no known schema.
	ErrUnresolvedRef = errors.New("unresolved $ref")

	// ErrDefNotFound indicates a requested definition that does not exist.
	ErrDefNotFound = errors.New("definition not found")

	// ErrNotObject indicates a root schema that does not describe an object.
	ErrNotObject = errors.New("schema does not describe an object")
)

// maxRefChain bounds $ref -> $ref indirection.
const maxRefChain = 32

type compiler struct {
	doc    *Document
	shapes map[*jsonschema.Schema]*synth.Shape
	names  map[*jsonschema.Schema]string
}

// Compile converts the document root, or the named definition when def is
// not empty, into a shape. Recursive $refs produce a cyclic shape.
func Compile(doc *Document, def string) (*synth.Shape, error) {
	c := &compiler{
		doc:    doc,
		shapes: make(map[*jsonschema.Schema]*synth.Shape),
		names:  make(map[*jsonschema.Schema]string, len(doc.names)),
	}
	for s, name := range doc.names {
		c.names[s] = name
	}
	for name, s := range doc.Schema.Definitions {
		c.names[s] = name
	}
	for name, s := range doc.Schema.Defs {
		c.names[s] = name
	}

	root, name := doc.Schema, rootName(doc.Schema)
	if def != "" {
		root = lookupDef(doc.Schema, "#/$defs/"+def)
		if root == nil {
			return nil, fmt.Errorf("%w: %s", ErrDefNotFound, def)
		}
		name = def
	}

	root, err := c.deref(root)
	if err != nil {
		return nil, &synth.ShapeError{Shape: name, Err: err}
	}
	if schemaType(root) != "object" {
		return nil, &synth.ShapeError{Shape: name, Err: ErrNotObject}
	}
	return c.object(name, root)
}

func rootName(s *jsonschema.Schema) string {
	if s.Title != "" {
		return s.Title
	}
	return "root"
}

// deref follows $ref links to the schema they name.
func (c *compiler) deref(s *jsonschema.Schema) (*jsonschema.Schema, error) {
	for range maxRefChain {
		if s.Ref == "" {
			return s, nil
		}
		target := c.doc.Resolve(s)
		if target == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnresolvedRef, s.Ref)
		}
		s = target
	}
	return nil, fmt.Errorf("%w: $ref chain too long", ErrUnresolvedRef)
}

func (c *compiler) object(name string, s *jsonschema.Schema) (*synth.Shape, error) {
	if sh, ok := c.shapes[s]; ok {
		return sh, nil
	}
	if defName, ok := c.names[s]; ok {
		name = defName
	}
	sh := &synth.Shape{Name: name}
	c.shapes[s] = sh

	seen := make(map[string]bool)
	add := func(owner *jsonschema.Schema) error {
		for _, prop := range c.doc.PropertyOrder(owner) {
			if seen[prop] {
				continue
			}
			seen[prop] = true
			f, err := c.field(prop, owner.Properties[prop])
			if err != nil {
				return &synth.ShapeError{Shape: name, Field: prop, Err: err}
			}
			sh.Fields = append(sh.Fields, f)
		}
		return nil
	}

	if err := add(s); err != nil {
		return nil, err
	}
	for _, part := range s.AllOf {
		part, err := c.deref(part)
		if err != nil {
			return nil, &synth.ShapeError{Shape: name, Err: err}
		}
		if err := add(part); err != nil {
			return nil, err
		}
	}
	return sh, nil
}

func (c *compiler) field(name string, s *jsonschema.Schema) (synth.Field, error) {
	f := synth.Field{Name: name}
	if s == nil {
		return f, fmt.Errorf("%w: empty schema", synth.ErrUnsupportedType)
	}
	s, err := c.deref(s)
	if err != nil {
		return f, err
	}

	if s.Enum != nil {
		f.Kind = synth.Enum
		f.Values = append([]any{}, s.Enum...)
		return f, nil
	}
	if s.Const != nil {
		f.Kind = synth.Enum
		f.Values = []any{*s.Const}
		return f, nil
	}

	switch typ := schemaType(s); typ {
	case "integer":
		f.Kind = synth.Integer
	case "number":
		f.Kind = synth.Float
		if s.Format == "decimal" || isCents(s.MultipleOf) {
			f.Kind = synth.Decimal
		}
	case "boolean":
		f.Kind = synth.Boolean
	case "string":
		f.Kind = stringKind(s.Format)
	case "object":
		nested, err := c.object(PascalCase(name), s)
		if err != nil {
			return f, err
		}
		f.Kind = synth.Object
		f.Shape = nested
	case "array":
		items := synth.Field{Kind: synth.Text}
		if s.Items != nil {
			if items, err = c.field(name, s.Items); err != nil {
				return f, err
			}
			items.Name = ""
		}
		f.Kind = synth.Array
		f.Items = &items
	default:
		return f, fmt.Errorf("%w: type %q", synth.ErrUnsupportedType, typ)
	}
	return f, nil
}

func stringKind(format string) synth.Kind {
	switch format {
	case "date":
		return synth.Date
	case "date-time":
		return synth.Timestamp
	case "uuid":
		return synth.UUID
	case "decimal":
		return synth.Decimal
	default:
		return synth.Text
	}
}

func isCents(multipleOf *float64) bool {
	return multipleOf != nil && math.Abs(*multipleOf-0.01) < 1e-12
}

// schemaType returns the effective type of s. A nullable union such as
// ["string", "null"] yields its non-null member.
func schemaType(s *jsonschema.Schema) string {
	if s.Type != "" {
		return s.Type
	}
	for _, t := range s.Types {
		if t != "null" {
			return t
		}
	}
	switch {
	case len(s.Properties) > 0 || len(s.AllOf) > 0:
		return "object"
	case s.Items != nil:
		return "array"
	}
	return ""
}

// PascalCase converts a snake_case or kebab-case name to PascalCase.
func PascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})

	var sb strings.Builder
	for _, part := range parts {
		sb.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return sb.String()
}
