// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package synth

import (
	"bytes"
	"encoding/json"
	"iter"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Instance is a synthesized value for a Shape: an ordered mapping from
// field name to value. Nested objects are *Instance values; absent nested
// objects are nil.
type Instance struct {
	keys   []string
	values map[string]any
}

func newInstance(n int) *Instance {
	return &Instance{
		keys:   make([]string, 0, n),
		values: make(map[string]any, n),
	}
}

func (in *Instance) set(key string, value any) {
	if _, ok := in.values[key]; !ok {
		in.keys = append(in.keys, key)
	}
	in.values[key] = value
}

// Get returns the value stored for key.
func (in *Instance) Get(key string) (any, bool) {
	v, ok := in.values[key]
	return v, ok
}

// Keys returns field names in declaration order.
func (in *Instance) Keys() []string {
	return append([]string(nil), in.keys...)
}

// Len returns the number of fields.
func (in *Instance) Len() int {
	return len(in.keys)
}

// All iterates over fields in declaration order.
func (in *Instance) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range in.keys {
			if !yield(k, in.values[k]) {
				return
			}
		}
	}
}

// MarshalJSON encodes the instance as a JSON object in field order.
func (in *Instance) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range in.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := MarshalValue(in.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalValue encodes a single field value as JSON with the same rules as
// Instance.MarshalJSON. Decimals are written with exactly two fraction
// digits.
func MarshalValue(v any) ([]byte, error) {
	switch v := v.(type) {
	case decimal.Decimal:
		return []byte(v.StringFixed(DecimalPlaces)), nil
	case []any:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := MarshalValue(elem)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	default:
		return json.Marshal(v)
	}
}

// MarshalYAML encodes the instance as a YAML mapping in field order.
func (in *Instance) MarshalYAML() (any, error) {
	return in.yamlNode()
}

func (in *Instance) yamlNode() (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range in.keys {
		val, err := yamlValue(in.values[k])
		if err != nil {
			return nil, err
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

func yamlValue(v any) (*yaml.Node, error) {
	switch v := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case *Instance:
		if v == nil {
			return yamlValue(nil)
		}
		return v.yamlNode()
	case decimal.Decimal:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: v.StringFixed(2)}, nil
	case civil.Date:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.String()}, nil
	case uuid.UUID:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.String()}, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode}
		for _, elem := range v {
			n, err := yamlValue(elem)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, n)
		}
		return node, nil
	default:
		node := &yaml.Node{}
		if err := node.Encode(v); err != nil {
			return nil, err
		}
		return node, nil
	}
}
