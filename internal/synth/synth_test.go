// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package synth

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/go-cmp/cmp"
	fuzz "github.com/google/gofuzz"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.October, 14, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newTestSynth(seed uint64, opts ...Option) *Synthesizer {
	return New(append([]Option{WithSeed(seed), WithClock(fixedClock)}, opts...)...)
}

func personShape() *Shape {
	return &Shape{
		Name: "Person",
		Fields: []Field{
			{Name: "name", Kind: Text},
			{Name: "age", Kind: Integer},
			{Name: "active", Kind: Boolean},
		},
	}
}

func TestSynthesize_PersonExample(t *testing.T) {
	s := newTestSynth(1)

	in, err := s.Synthesize(personShape())
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age", "active"}, in.Keys())

	name, _ := in.Get("name")
	assert.True(t, strings.HasPrefix(name.(string), DefaultTextPrefix))

	age, _ := in.Get("age")
	assert.GreaterOrEqual(t, age.(int64), int64(0))
	assert.Less(t, age.(int64), int64(IntegerBound))

	active, _ := in.Get("active")
	assert.IsType(t, true, active)
}

func TestSynthesize_ScalarRanges(t *testing.T) {
	shape := &Shape{
		Name: "Scalars",
		Fields: []Field{
			{Name: "i", Kind: Integer},
			{Name: "f", Kind: Float},
			{Name: "d", Kind: Decimal},
			{Name: "day", Kind: Date},
			{Name: "at", Kind: Timestamp},
			{Name: "id", Kind: UUID},
		},
	}
	today := civil.DateOf(fixedNow)
	oldest := today.AddDays(-DateWindowDays)
	s := newTestSynth(7)

	for range 500 {
		in, err := s.Synthesize(shape)
		require.NoError(t, err)

		i, _ := in.Get("i")
		assert.GreaterOrEqual(t, i.(int64), int64(0))
		assert.Less(t, i.(int64), int64(IntegerBound))

		f, _ := in.Get("f")
		assert.GreaterOrEqual(t, f.(float64), 0.0)
		assert.Less(t, f.(float64), float64(FloatBound))

		d, _ := in.Get("d")
		dec := d.(decimal.Decimal)
		assert.False(t, dec.IsNegative())
		assert.Equal(t, int32(-DecimalPlaces), dec.Exponent())

		day, _ := in.Get("day")
		date := day.(civil.Date)
		assert.False(t, date.After(today), "date %s after today", date)
		assert.False(t, date.Before(oldest), "date %s older than window", date)

		at, _ := in.Get("at")
		ts := at.(time.Time)
		assert.False(t, ts.After(fixedNow))
		assert.True(t, ts.After(fixedNow.AddDate(0, 0, -DateWindowDays-1)))

		id, _ := in.Get("id")
		assert.Equal(t, uuid.Version(4), id.(uuid.UUID).Version())
	}
}

func TestSynthesize_DecimalRoundsHalfUp(t *testing.T) {
	d := decimal.NewFromFloat(2.675).Round(DecimalPlaces)
	assert.Equal(t, "2.68", d.StringFixed(DecimalPlaces))

	d = decimal.NewFromFloat(3).Round(DecimalPlaces)
	assert.Equal(t, "3.00", d.StringFixed(DecimalPlaces))
}

func TestSynthesize_Enum(t *testing.T) {
	values := []any{"red", "green", "blue"}
	shape := &Shape{Name: "Paint", Fields: []Field{{Name: "color", Kind: Enum, Values: values}}}
	s := newTestSynth(3)

	seen := make(map[any]bool)
	for range 200 {
		in, err := s.Synthesize(shape)
		require.NoError(t, err)
		v, _ := in.Get("color")
		assert.Contains(t, values, v)
		seen[v] = true
	}
	assert.Len(t, seen, len(values))
}

func TestSynthesize_EmptyEnum(t *testing.T) {
	shape := &Shape{Name: "Paint", Fields: []Field{{Name: "color", Kind: Enum}}}

	_, err := newTestSynth(1).Synthesize(shape)
	require.Error(t, err)

	var se *ShapeError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Paint", se.Shape)
	assert.Equal(t, "color", se.Field)
	assert.ErrorIs(t, err, ErrEmptyEnum)
}

func TestSynthesize_InvalidShapes(t *testing.T) {
	tests := []struct {
		name    string
		shape   *Shape
		wantErr error
	}{
		{
			name:    "nil shape",
			shape:   nil,
			wantErr: ErrNilShape,
		},
		{
			name:    "unknown kind",
			shape:   &Shape{Fields: []Field{{Name: "x"}}},
			wantErr: ErrUnknownKind,
		},
		{
			name:    "duplicate field",
			shape:   &Shape{Fields: []Field{{Name: "x", Kind: Text}, {Name: "x", Kind: Integer}}},
			wantErr: ErrDuplicateField,
		},
		{
			name:    "array without items",
			shape:   &Shape{Fields: []Field{{Name: "xs", Kind: Array}}},
			wantErr: ErrMissingItems,
		},
		{
			name:    "array of empty enum",
			shape:   &Shape{Fields: []Field{{Name: "xs", Kind: Array, Items: &Field{Kind: Enum}}}},
			wantErr: ErrEmptyEnum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestSynth(1).Synthesize(tt.shape)
			require.Error(t, err)
			var se *ShapeError
			assert.True(t, errors.As(err, &se))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSynthesize_NestedShape(t *testing.T) {
	address := &Shape{
		Name: "Address",
		Fields: []Field{
			{Name: "street", Kind: Text},
			{Name: "zip", Kind: Integer},
		},
	}
	shape := &Shape{
		Name: "Customer",
		Fields: []Field{
			{Name: "name", Kind: Text},
			{Name: "address", Kind: Object, Shape: address},
		},
	}

	in, err := newTestSynth(5).Synthesize(shape)
	require.NoError(t, err)

	v, ok := in.Get("address")
	require.True(t, ok)
	nested, ok := v.(*Instance)
	require.True(t, ok)
	assert.Equal(t, []string{"street", "zip"}, nested.Keys())
}

func TestSynthesize_NestedFailureIsNil(t *testing.T) {
	broken := &Shape{Name: "Broken", Fields: []Field{{Name: "status", Kind: Enum}}}
	shape := &Shape{
		Name: "Order",
		Fields: []Field{
			{Name: "id", Kind: Integer},
			{Name: "broken", Kind: Object, Shape: broken},
			{Name: "missing", Kind: Object},
			{Name: "lines", Kind: Array, Items: &Field{Kind: Object, Shape: broken}},
		},
	}

	in, err := newTestSynth(1).Synthesize(shape)
	require.NoError(t, err)

	assert.Equal(t, 4, in.Len())
	for _, key := range []string{"broken", "missing", "lines"} {
		v, ok := in.Get(key)
		assert.True(t, ok, key)
		assert.Nil(t, v, key)
	}
}

func TestSynthesize_CyclicShapeTerminates(t *testing.T) {
	node := &Shape{Name: "Node", Fields: []Field{{Name: "value", Kind: Integer}}}
	node.Fields = append(node.Fields, Field{Name: "next", Kind: Object, Shape: node})

	in, err := newTestSynth(1, WithMaxDepth(3)).Synthesize(node)
	require.NoError(t, err)

	depth := 0
	cur := in
	for cur != nil {
		depth++
		next, _ := cur.Get("next")
		cur, _ = next.(*Instance)
	}
	// depths 0..3 are populated, the link below depth 3 is nil
	assert.Equal(t, 4, depth)
}

func TestSynthesize_Array(t *testing.T) {
	shape := &Shape{
		Name: "Basket",
		Fields: []Field{
			{Name: "tags", Kind: Array, Items: &Field{Kind: Text}},
		},
	}
	s := newTestSynth(11, WithArrayLen(2, 4))

	for range 50 {
		in, err := s.Synthesize(shape)
		require.NoError(t, err)
		v, _ := in.Get("tags")
		tags := v.([]any)
		assert.GreaterOrEqual(t, len(tags), 2)
		assert.LessOrEqual(t, len(tags), 4)
	}
}

func TestSynthesize_TextPrefix(t *testing.T) {
	in, err := newTestSynth(1, WithTextPrefix("Sample ")).Synthesize(personShape())
	require.NoError(t, err)
	name, _ := in.Get("name")
	assert.True(t, strings.HasPrefix(name.(string), "Sample "))
}

func TestSynthesize_SameSeedSameOutput(t *testing.T) {
	var seed uint64
	fuzz.New().Fuzz(&seed)

	shape := &Shape{
		Name: "Mixed",
		Fields: []Field{
			{Name: "name", Kind: Text},
			{Name: "price", Kind: Decimal},
			{Name: "day", Kind: Date},
			{Name: "id", Kind: UUID},
			{Name: "tags", Kind: Array, Items: &Field{Kind: Integer}},
		},
	}

	a, err := newTestSynth(seed).Synthesize(shape)
	require.NoError(t, err)
	b, err := newTestSynth(seed).Synthesize(shape)
	require.NoError(t, err)

	aj, err := json.Marshal(a)
	require.NoError(t, err)
	bj, err := json.Marshal(b)
	require.NoError(t, err)
	if diff := cmp.Diff(string(aj), string(bj)); diff != "" {
		t.Errorf("same seed produced different output (-first +second):\n%s", diff)
	}
}

func TestSynthesize_FieldSetMatchesShape(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(1, 12)
	scalarKinds := []Kind{Integer, Float, Boolean, Text, Decimal, Date, Timestamp, UUID}

	for i := range 50 {
		var names []string
		f.Fuzz(&names)

		shape := &Shape{Name: "Fuzzed"}
		seen := make(map[string]bool)
		for j, n := range names {
			if seen[n] {
				continue
			}
			seen[n] = true
			shape.Fields = append(shape.Fields, Field{Name: n, Kind: scalarKinds[j%len(scalarKinds)]})
		}

		in, err := newTestSynth(uint64(i)).Synthesize(shape)
		require.NoError(t, err)
		assert.Equal(t, shape.FieldNames(), in.Keys())
		for k, v := range in.All() {
			assert.NotNil(t, v, k)
		}
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "decimal", Decimal.String())
	assert.Equal(t, "array", Array.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}

func TestShapeError_Message(t *testing.T) {
	err := &ShapeError{Shape: "Order", Field: "status", Err: ErrEmptyEnum}
	assert.Equal(t, "shape Order field status: enumeration has no legal values", err.Error())

	err = &ShapeError{Err: ErrNilShape}
	assert.Equal(t, "shape: shape is nil", err.Error())
}
