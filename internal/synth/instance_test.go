// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package synth

import (
	"encoding/json"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleInstance() *Instance {
	nested := newInstance(1)
	nested.set("city", "Lisbon")

	in := newInstance(8)
	in.set("zeta", int64(3))
	in.set("alpha", "a")
	in.set("price", decimal.RequireFromString("12.5").Round(2))
	in.set("day", civil.Date{Year: 2024, Month: time.February, Day: 29})
	in.set("id", uuid.MustParse("6ba7b810-9dad-41d1-80b4-00c04fd430c8"))
	in.set("home", nested)
	in.set("work", nil)
	in.set("tags", []any{"x", decimal.RequireFromString("1").Round(2)})
	return in
}

func TestInstance_MarshalJSONKeepsOrder(t *testing.T) {
	data, err := json.Marshal(sampleInstance())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"zeta": 3,
		"alpha": "a",
		"price": 12.50,
		"day": "2024-02-29",
		"id": "6ba7b810-9dad-41d1-80b4-00c04fd430c8",
		"home": {"city": "Lisbon"},
		"work": null,
		"tags": ["x", 1.00]
	}`, string(data))

	assert.Equal(t,
		`{"zeta":3,"alpha":"a","price":12.50,"day":"2024-02-29","id":"6ba7b810-9dad-41d1-80b4-00c04fd430c8","home":{"city":"Lisbon"},"work":null,"tags":["x",1.00]}`,
		string(data))
}

func TestInstance_MarshalYAMLKeepsOrder(t *testing.T) {
	data, err := yaml.Marshal(sampleInstance())
	require.NoError(t, err)

	want := `zeta: 3
alpha: a
price: 12.50
day: "2024-02-29"
id: 6ba7b810-9dad-41d1-80b4-00c04fd430c8
home:
    city: Lisbon
work: null
tags:
    - x
    - 1.00
`
	assert.Equal(t, want, string(data))
}

func TestInstance_Accessors(t *testing.T) {
	in := sampleInstance()

	assert.Equal(t, 8, in.Len())
	assert.Equal(t, "zeta", in.Keys()[0])

	v, ok := in.Get("alpha")
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = in.Get("missing")
	assert.False(t, ok)

	keys := in.Keys()
	keys[0] = "mutated"
	assert.Equal(t, "zeta", in.Keys()[0])

	var visited []string
	for k := range in.All() {
		visited = append(visited, k)
		if k == "alpha" {
			break
		}
	}
	assert.Equal(t, []string{"zeta", "alpha"}, visited)
}

func TestMarshalValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"decimal", decimal.RequireFromString("5.1"), `5.10`},
		{"decimal slice", []any{decimal.RequireFromString("5.1"), nil}, `[5.10,null]`},
		{"nested instance", sampleInstance().values["home"], `{"city":"Lisbon"}`},
		{"nil", nil, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MarshalValue(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
