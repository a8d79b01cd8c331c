/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/facade/apis"
	"dirpx.dev/facade/faults"
	"dirpx.dev/facade/internal/fixture"
	"dirpx.dev/facade/kind"
	"dirpx.dev/facade/resolver"
)

type built struct {
	kind   kind.Kind
	origin apis.Member
}

func table(calls *int) *resolver.Table[built] {
	mk := func(k kind.Kind) func(apis.Member) built {
		return func(m apis.Member) built {
			*calls++
			return built{kind: k, origin: m}
		}
	}
	return &resolver.Table[built]{
		Constructor: func(c apis.Constructor) built { return mk(kind.Constructor)(c) },
		Method:      func(m apis.Method) built { return mk(kind.Method)(m) },
		Property:    func(p apis.Property) built { return mk(kind.Property)(p) },
		Field:       func(f apis.Field) built { return mk(kind.Field)(f) },
		Type:        func(t apis.Type) built { return mk(kind.Type)(t) },
	}
}

func TestResolve(t *testing.T) {
	m := fixture.New()
	var calls int
	tbl := table(&calls)
	require.NoError(t, tbl.Validate())

	tests := []struct {
		name   string
		member apis.Member
		want   kind.Kind
	}{
		{"constructor before method", m.NewStart, kind.Constructor},
		{"method", m.Reset, kind.Method},
		{"property", m.Label, kind.Property},
		{"field", m.Max, kind.Field},
		{"nested type", m.Snapshot, kind.Type},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tbl.Resolve(tt.member)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.kind)
			assert.True(t, got.origin.Equal(tt.member))
		})
	}
	assert.Equal(t, len(tests), calls)
}

func TestResolve_UnknownKindFailsWithoutConstructing(t *testing.T) {
	m := fixture.New()
	var calls int
	tbl := table(&calls)

	got, err := tbl.Resolve(m.Changed)
	require.Error(t, err)
	assert.ErrorIs(t, err, faults.ErrUnsupportedConversion)

	var ce *faults.ConversionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "*memory.Event", ce.Origin)

	assert.Zero(t, got)
	assert.Zero(t, calls)

	_, err = tbl.Resolve(nil)
	assert.ErrorIs(t, err, faults.ErrUnsupportedConversion)
}

func TestValidate(t *testing.T) {
	var calls int
	tbl := table(&calls)
	tbl.Property = nil

	err := tbl.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, resolver.ErrIncompleteTable)
	assert.Contains(t, err.Error(), "Property")
}
