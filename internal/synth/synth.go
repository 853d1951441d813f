// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package synth

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"reflect"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Value ranges used by the generation policy.
const (
	IntegerBound   = 1000
	FloatBound     = 100
	DecimalBound   = 1000
	DecimalPlaces  = 2
	TextBound      = 100000
	DateWindowDays = 5 * 365

	DefaultTextPrefix = "sample-"
	DefaultMaxDepth   = 8
	DefaultArrayMin   = 1
	DefaultArrayMax   = 3
)

// Synthesizer generates instances for shapes.
// A Synthesizer is not safe for concurrent use.
type Synthesizer struct {
	rnd      *rand.Rand
	now      func() time.Time
	prefix   string
	maxDepth int
	arrayMin int
	arrayMax int
	logger   *zap.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithRand sets the random source.
func WithRand(r *rand.Rand) Option {
	return func(s *Synthesizer) {
		if r != nil {
			s.rnd = r
		}
	}
}

// WithSeed seeds a deterministic random source.
func WithSeed(seed uint64) Option {
	return func(s *Synthesizer) {
		s.rnd = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithClock sets the clock used for dates and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTextPrefix sets the literal prefix of generated text values.
func WithTextPrefix(prefix string) Option {
	return func(s *Synthesizer) {
		s.prefix = prefix
	}
}

// WithMaxDepth limits nesting. The top-level shape is depth 0; nested
// objects beyond maxDepth are left nil.
func WithMaxDepth(maxDepth int) Option {
	return func(s *Synthesizer) {
		if maxDepth >= 0 {
			s.maxDepth = maxDepth
		}
	}
}

// WithArrayLen sets the inclusive length range of generated arrays.
func WithArrayLen(lo, hi int) Option {
	return func(s *Synthesizer) {
		if lo >= 0 && hi >= lo {
			s.arrayMin, s.arrayMax = lo, hi
		}
	}
}

// WithLogger sets the logger used to report swallowed nested failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Synthesizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Synthesizer. Without options it uses a randomly seeded
// source and the wall clock.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{
		rnd:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:      time.Now,
		prefix:   DefaultTextPrefix,
		maxDepth: DefaultMaxDepth,
		arrayMin: DefaultArrayMin,
		arrayMax: DefaultArrayMax,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize creates a new instance for shape. It fails with a
// *ShapeError only when the top-level shape cannot be instantiated;
// nested objects that fail are set to nil.
func (s *Synthesizer) Synthesize(shape *Shape) (*Instance, error) {
	return s.instantiate(shape, 0)
}

// Populate fills the struct pointed to by v with synthesized values.
func (s *Synthesizer) Populate(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &ShapeError{Shape: fmt.Sprintf("%T", v), Err: ErrUnsupportedType}
	}
	shape, err := Of(rv.Elem().Type())
	if err != nil {
		return err
	}
	in, err := s.Synthesize(shape)
	if err != nil {
		return err
	}
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (s *Synthesizer) instantiate(shape *Shape, depth int) (*Instance, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if depth > s.maxDepth {
		return nil, &ShapeError{Shape: shape.Name, Err: ErrDepthExceeded}
	}
	in := newInstance(len(shape.Fields))
	for i := range shape.Fields {
		f := &shape.Fields[i]
		v, err := s.value(f, depth)
		if err != nil {
			return nil, &ShapeError{Shape: shape.Name, Field: f.Name, Err: err}
		}
		in.set(f.Name, v)
	}
	return in, nil
}

func (s *Synthesizer) value(f *Field, depth int) (any, error) {
	switch f.Kind {
	case Integer:
		return s.rnd.Int64N(IntegerBound), nil
	case Float:
		return s.rnd.Float64() * FloatBound, nil
	case Boolean:
		return s.rnd.IntN(2) == 1, nil
	case Text:
		return s.prefix + strconv.Itoa(s.rnd.IntN(TextBound)), nil
	case Decimal:
		return decimal.NewFromFloat(s.rnd.Float64() * DecimalBound).Round(DecimalPlaces), nil
	case Date:
		return civil.DateOf(s.now()).AddDays(-s.rnd.IntN(DateWindowDays)), nil
	case Timestamp:
		window := int64(DateWindowDays * 24 * time.Hour / time.Second)
		back := time.Duration(s.rnd.Int64N(window)) * time.Second
		return s.now().UTC().Truncate(time.Second).Add(-back), nil
	case UUID:
		return s.newUUID()
	case Enum:
		if len(f.Values) == 0 {
			return nil, ErrEmptyEnum
		}
		return f.Values[s.rnd.IntN(len(f.Values))], nil
	case Object:
		return s.nested(f, depth), nil
	case Array:
		return s.array(f, depth), nil
	default:
		return nil, ErrUnknownKind
	}
}

// nested returns a complete instance for an object field, or nil.
func (s *Synthesizer) nested(f *Field, depth int) any {
	if f.Shape == nil {
		s.logger.Debug("nested field left empty", zap.String("field", f.Name), zap.Error(ErrMissingNested))
		return nil
	}
	in, err := s.instantiate(f.Shape, depth+1)
	if err != nil {
		s.logger.Debug("nested field left empty", zap.String("field", f.Name), zap.Error(err))
		return nil
	}
	return in
}

// array returns a fully generated slice, or nil if any element fails.
func (s *Synthesizer) array(f *Field, depth int) any {
	n := s.arrayMin
	if s.arrayMax > s.arrayMin {
		n += s.rnd.IntN(s.arrayMax - s.arrayMin + 1)
	}
	out := make([]any, 0, n)
	for range n {
		var (
			v   any
			err error
		)
		if f.Items.Kind == Object {
			if f.Items.Shape == nil {
				err = ErrMissingNested
			} else {
				var in *Instance
				if in, err = s.instantiate(f.Items.Shape, depth+1); err == nil {
					v = in
				}
			}
		} else {
			v, err = s.value(f.Items, depth+1)
		}
		if err != nil {
			s.logger.Debug("array field left empty", zap.String("field", f.Name), zap.Error(err))
			return nil
		}
		out = append(out, v)
	}
	return out
}

func (s *Synthesizer) newUUID() (uuid.UUID, error) {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[:8], s.rnd.Uint64())
	binary.LittleEndian.PutUint64(b[8:], s.rnd.Uint64())
	return uuid.NewRandomFromReader(bytes.NewReader(b[:]))
}
