// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package synth

import (
	"reflect"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Enumerator is implemented by Go types with a closed set of legal values.
// EnumValues is called on the zero value of the type.
type Enumerator interface {
	EnumValues() []any
}

var (
	enumeratorType = reflect.TypeFor[Enumerator]()
	decimalType    = reflect.TypeFor[decimal.Decimal]()
	dateType       = reflect.TypeFor[civil.Date]()
	timeType       = reflect.TypeFor[time.Time]()
	uuidType       = reflect.TypeFor[uuid.UUID]()
)

// For returns the shape of the struct type T.
func For[T any]() (*Shape, error) {
	return Of(reflect.TypeFor[T]())
}

// Of builds a shape from a struct type (or pointer to one). Field names
// follow the json tag when present. The synth tag accepts "-" to skip a
// field and "enum=a|b|c" to restrict a string field to the listed values.
// Recursive types produce a cyclic shape.
func Of(t reflect.Type) (*Shape, error) {
	if t == nil {
		return nil, &ShapeError{Err: ErrNilShape}
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct || isScalarStruct(t) {
		return nil, &ShapeError{Shape: t.String(), Err: ErrUnsupportedType}
	}
	b := &shapeBuilder{shapes: make(map[reflect.Type]*Shape)}
	return b.shape(t)
}

type shapeBuilder struct {
	shapes map[reflect.Type]*Shape
}

func (b *shapeBuilder) shape(t reflect.Type) (*Shape, error) {
	if sh, ok := b.shapes[t]; ok {
		return sh, nil
	}
	sh := &Shape{Name: t.Name()}
	b.shapes[t] = sh

	for i := range t.NumField() {
		sf := t.Field(i)
		name, skip := fieldName(sf)
		if skip {
			continue
		}

		// Untagged embedded structs are flattened, matching encoding/json.
		if sf.Anonymous && sf.Tag.Get("json") == "" {
			et := sf.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct && !isScalarStruct(et) {
				embedded, err := b.shape(et)
				if err != nil {
					return nil, err
				}
				sh.Fields = append(sh.Fields, embedded.Fields...)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}

		f, err := b.field(name, sf.Type, sf.Tag.Get("synth"))
		if err != nil {
			return nil, &ShapeError{Shape: sh.Name, Field: name, Err: err}
		}
		sh.Fields = append(sh.Fields, f)
	}
	return sh, nil
}

func (b *shapeBuilder) field(name string, t reflect.Type, tag string) (Field, error) {
	f := Field{Name: name}

	if values, ok := strings.CutPrefix(tag, "enum="); ok {
		if t.Kind() != reflect.String {
			return f, ErrUnsupportedType
		}
		f.Kind = Enum
		for v := range strings.SplitSeq(values, "|") {
			if v != "" {
				f.Values = append(f.Values, v)
			}
		}
		return f, nil
	}

	// Pointer types fall through to the Pointer case below, so EnumValues
	// is never called on a nil receiver.
	if t.Kind() != reflect.Pointer && t.Implements(enumeratorType) {
		f.Kind = Enum
		f.Values = reflect.Zero(t).Interface().(Enumerator).EnumValues()
		return f, nil
	}

	switch t {
	case decimalType:
		f.Kind = Decimal
		return f, nil
	case dateType:
		f.Kind = Date
		return f, nil
	case timeType:
		f.Kind = Timestamp
		return f, nil
	case uuidType:
		f.Kind = UUID
		return f, nil
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f.Kind = Integer
	case reflect.Float32, reflect.Float64:
		f.Kind = Float
	case reflect.Bool:
		f.Kind = Boolean
	case reflect.String:
		f.Kind = Text
	case reflect.Pointer:
		return b.field(name, t.Elem(), tag)
	case reflect.Struct:
		nested, err := b.shape(t)
		if err != nil {
			return f, err
		}
		f.Kind = Object
		f.Shape = nested
	case reflect.Slice, reflect.Array:
		items, err := b.field("", t.Elem(), "")
		if err != nil {
			return f, err
		}
		f.Kind = Array
		f.Items = &items
	default:
		// int8 and uint8 cannot hold the integer range.
		return f, ErrUnsupportedType
	}
	return f, nil
}

func fieldName(sf reflect.StructField) (string, bool) {
	if sf.Tag.Get("synth") == "-" {
		return "", true
	}
	tag := sf.Tag.Get("json")
	if tag == "-" {
		return "", true
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, false
	}
	return sf.Name, false
}

func isScalarStruct(t reflect.Type) bool {
	return t == decimalType || t == dateType || t == timeType
}
