// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package synth

import (
	"errors"
	"strings"
)

var (
	// ErrNilShape indicates a nil shape was passed to the synthesizer.
	ErrNilShape = errors.New("shape is nil")

	// ErrEmptyEnum indicates an enumeration with no legal values.
	ErrEmptyEnum = errors.New("enumeration has no legal values")

	// ErrUnknownKind indicates a field kind the synthesizer cannot generate.
	ErrUnknownKind = errors.New("unknown field kind")

	// ErrMissingNested indicates an object field without a nested shape.
	ErrMissingNested = errors.New("object field has no nested shape")

	// ErrMissingItems indicates an array field without an item description.
	ErrMissingItems = errors.New("array field has no item description")

	// ErrDuplicateField indicates two fields with the same name.
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrDepthExceeded indicates nesting deeper than the configured maximum.
	ErrDepthExceeded = errors.New("maximum nesting depth exceeded")

	// ErrUnsupportedType indicates a Go type with no field kind.
	ErrUnsupportedType = errors.New("unsupported type")
)

// ShapeError reports a shape that cannot be instantiated.
type ShapeError struct {
	Shape string // shape name, may be empty
	Field string // offending field, empty if the shape itself is at fault
	Err   error
}

func (e *ShapeError) Error() string {
	var sb strings.Builder
	sb.WriteString("shape")
	if e.Shape != "" {
		sb.WriteString(" " + e.Shape)
	}
	if e.Field != "" {
		sb.WriteString(" field " + e.Field)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	return sb.String()
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}
