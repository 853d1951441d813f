// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package synth synthesizes sample instances from shape descriptions.
package synth

import "fmt"

// Kind identifies how a field value is generated.
type Kind int

// Field kinds.
const (
	Invalid Kind = iota
	Integer
	Float
	Boolean
	Text
	Decimal
	Date
	Enum
	Object
	Timestamp
	UUID
	Array
)

var kindNames = [...]string{
	Invalid:   "invalid",
	Integer:   "integer",
	Float:     "float",
	Boolean:   "boolean",
	Text:      "text",
	Decimal:   "decimal",
	Date:      "date",
	Enum:      "enum",
	Object:    "object",
	Timestamp: "timestamp",
	UUID:      "uuid",
	Array:     "array",
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Field describes a single named value in a Shape.
type Field struct {
	Name string
	Kind Kind

	// Values lists the legal values of an Enum field.
	Values []any

	// Shape is the nested shape of an Object field.
	Shape *Shape

	// Items describes the elements of an Array field. Its Name is ignored.
	Items *Field
}

// Shape is an ordered set of fields. Shapes may reference each other
// cyclically through Object fields.
type Shape struct {
	Name   string
	Fields []Field
}

// Validate checks that the shape can be instantiated. Nested shapes are
// not inspected, a missing or broken nested shape only empties that field
// during synthesis.
func (s *Shape) Validate() error {
	if s == nil {
		return &ShapeError{Err: ErrNilShape}
	}
	seen := make(map[string]struct{}, len(s.Fields))
	for _, f := range s.Fields {
		if _, dup := seen[f.Name]; dup {
			return &ShapeError{Shape: s.Name, Field: f.Name, Err: ErrDuplicateField}
		}
		seen[f.Name] = struct{}{}
		if err := f.validate(); err != nil {
			return &ShapeError{Shape: s.Name, Field: f.Name, Err: err}
		}
	}
	return nil
}

func (f *Field) validate() error {
	switch f.Kind {
	case Integer, Float, Boolean, Text, Decimal, Date, Timestamp, UUID:
		return nil
	case Enum:
		if len(f.Values) == 0 {
			return ErrEmptyEnum
		}
		return nil
	case Object:
		return nil
	case Array:
		if f.Items == nil {
			return ErrMissingItems
		}
		return f.Items.validate()
	default:
		return fmt.Errorf("%w: %v", ErrUnknownKind, f.Kind)
	}
}

// FieldNames returns the declared field names in order.
func (s *Shape) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}
