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

package projection_test

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/facade/faults"
	"dirpx.dev/facade/projection"
)

var capName = faults.Capability{Kind: "Member", Name: "Name"}

func TestPresent(t *testing.T) {
	v, err := projection.Present("x", true, capName, "T")
	require.NoError(t, err)
	assert.Equal(t, "x", v)

	v, err = projection.Present("ignored", false, capName, "T")
	require.ErrorIs(t, err, faults.ErrUnsupportedCapability)
	assert.Empty(t, v)

	var ce *faults.CapabilityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, capName, ce.Capability)
	assert.Equal(t, "T", ce.Entity)
}

func TestMap(t *testing.T) {
	called := false
	wrap := func(n int) string { called = true; return strconv.Itoa(n) }

	got, err := projection.Map(7, true, capName, "", wrap)
	require.NoError(t, err)
	assert.Equal(t, "7", got)
	assert.True(t, called)

	called = false
	_, err = projection.Map(7, false, capName, "", wrap)
	require.ErrorIs(t, err, faults.ErrUnsupportedCapability)
	assert.False(t, called, "wrap must not run for absent values")
}

func TestMapErr_PassesWrapErrorThrough(t *testing.T) {
	boom := errors.New("boom")
	_, err := projection.MapErr(1, true, capName, "", func(int) (int, error) { return 0, boom })
	assert.Same(t, boom, err)
}

func TestSlice(t *testing.T) {
	cases := []struct {
		name string
		in   []int
		ok   bool
		want []string
		err  bool
	}{
		{"ordered", []int{3, 1, 2}, true, []string{"3", "1", "2"}, false},
		{"empty present", []int{}, true, []string{}, false},
		{"nil present", nil, true, []string{}, false},
		{"absent", nil, false, nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := projection.Slice(tc.in, tc.ok, capName, "", strconv.Itoa)
			if tc.err {
				require.ErrorIs(t, err, faults.ErrUnsupportedCapability)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, got)
		})
	}
}

type name string

func (n name) String() string { return string(n) }

func TestNilInterfacesAreAbsent(t *testing.T) {
	calls := 0
	wrap := func(s fmt.Stringer) string { calls++; return s.String() }
	wrapErr := func(s fmt.Stringer) (string, error) { calls++; return s.String(), nil }

	_, err := projection.Map[fmt.Stringer](nil, true, capName, "T", wrap)
	require.ErrorIs(t, err, faults.ErrUnsupportedCapability)
	_, err = projection.MapErr[fmt.Stringer](nil, true, capName, "T", wrapErr)
	require.ErrorIs(t, err, faults.ErrUnsupportedCapability)

	got, err := projection.Slice([]fmt.Stringer{name("a"), nil}, true, capName, "T", wrap)
	require.ErrorIs(t, err, faults.ErrUnsupportedCapability)
	assert.Nil(t, got)
	_, err = projection.SliceErr([]fmt.Stringer{nil}, true, capName, "T", wrapErr)
	require.ErrorIs(t, err, faults.ErrUnsupportedCapability)
	assert.Zero(t, calls)

	out, err := projection.Slice([]fmt.Stringer{name("a"), name("b")}, true, capName, "T", wrap)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out)

	// Present passes nil through: nil can be a legitimate value.
	v, err := projection.Present[any](nil, true, capName, "T")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSliceErr_AbortsOnFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	seen := 0
	got, err := projection.SliceErr([]int{1, 2, 3}, true, capName, "", func(n int) (int, error) {
		seen++
		if n == 2 {
			return 0, boom
		}
		return n, nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, got)
	assert.Equal(t, 2, seen)
}

func TestSeq_LazyAndRestartable(t *testing.T) {
	calls := 0
	out := projection.Seq(slices.Values([]int{1, 2, 3}), func(n int) int { calls++; return n * 10 })
	assert.Zero(t, calls, "Seq must not evaluate eagerly")

	assert.Equal(t, []int{10, 20, 30}, slices.Collect(out))
	assert.Equal(t, []int{10, 20, 30}, slices.Collect(out))
	assert.Equal(t, 6, calls)

	for v := range out {
		assert.Equal(t, 10, v)
		break
	}
	assert.Equal(t, 7, calls, "early break stops evaluation")
}

func TestSeq_EmptyAndNil(t *testing.T) {
	assert.Empty(t, slices.Collect(projection.Seq(slices.Values([]int{}), strconv.Itoa)))
	assert.Empty(t, slices.Collect(projection.Seq[int, string](nil, strconv.Itoa)))
}

func TestSeq2_YieldsPerElementErrors(t *testing.T) {
	boom := errors.New("boom")
	var vals []int
	var errs []error
	for v, err := range projection.Seq2(slices.Values([]int{1, 2, 3}), func(n int) (int, error) {
		if n == 2 {
			return 0, boom
		}
		return n, nil
	}) {
		vals = append(vals, v)
		errs = append(errs, err)
	}
	assert.Equal(t, []int{1, 0, 3}, vals)
	assert.Equal(t, []error{nil, boom, nil}, errs)
}
