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

package goreflect_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/facade"
	"dirpx.dev/facade/apis"
	"dirpx.dev/facade/faults"
	"dirpx.dev/facade/kind"
	"dirpx.dev/facade/provider/goreflect"
)

var errEmptyLabel = errors.New("counter: empty label")

type Shape interface {
	Area() float64
}

type Base struct {
	ID int
}

type Counter struct {
	Label string
	count int
	Base
}

func NewCounter(start int) *Counter { return &Counter{count: start} }

func OpenCounter(label string) (*Counter, error) {
	if label == "" {
		return nil, errEmptyLabel
	}
	return &Counter{Label: label}, nil
}

func (c *Counter) Increment(by int) { c.count += by }
func (c Counter) Count() int        { return c.count }
func (c *Counter) Area() float64    { return float64(c.count) }
func (c *Counter) Check() error {
	if c.count < 0 {
		return errEmptyLabel
	}
	return nil
}

type Box[T any] struct{ V T }

func newProvider(t *testing.T) *goreflect.Provider {
	t.Helper()
	p := goreflect.New()
	require.NoError(t, p.Register((*Shape)(nil), Box[int]{}))
	require.NoError(t, p.RegisterConstructor(NewCounter, OpenCounter))
	return p
}

func names[T interface{ Name() (string, bool) }](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i], _ = it.Name()
	}
	return out
}

func TestRegisterAndLookup(t *testing.T) {
	p := newProvider(t)

	for _, name := range []string{"goreflect_test.Shape", "goreflect_test.Box", "goreflect_test.Counter"} {
		_, err := p.LookupType(name)
		require.NoError(t, err, name)
	}
	_, err := p.LookupType("goreflect_test.Missing")
	assert.ErrorIs(t, err, goreflect.ErrNotFound)
	_, err = p.LookupType("")
	assert.ErrorIs(t, err, goreflect.ErrInvalidArgument)

	assert.ErrorIs(t, p.Register(struct{}{}), goreflect.ErrNotNamed)
	assert.ErrorIs(t, p.RegisterConstructor(42), goreflect.ErrNotConstructor)
	assert.ErrorIs(t, p.RegisterConstructor(func() (int, int) { return 0, 0 }), goreflect.ErrNotConstructor)

	asms := p.Assemblies()
	require.Len(t, asms, 1)
	path := reflect.TypeFor[Counter]().PkgPath()
	got, _ := asms[0].Name()
	assert.Equal(t, path, got)

	types, err := p.Types(asms[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"Shape", "Box", "Counter"}, names(types))

	_, ok := asms[0].PublicKeyToken()
	assert.False(t, ok)
}

func TestFreshHandlesCompareEqual(t *testing.T) {
	p := newProvider(t)
	a, err := p.LookupType("goreflect_test.Counter")
	require.NoError(t, err)
	b, err := p.TypeOf(reflect.TypeFor[Counter]())
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Hash(), b.Hash())

	ptr, _ := p.TypeOf(reflect.TypeFor[*Counter]())
	assert.False(t, a.Equal(ptr))
}

func TestFields(t *testing.T) {
	p := newProvider(t)
	c, _ := p.LookupType("goreflect_test.Counter")

	pub, ok := c.Fields(apis.DefaultLookup)
	require.True(t, ok)
	assert.Equal(t, []string{"Label", "Base", "ID"}, names(pub))

	declared, _ := c.Fields(apis.DefaultLookup | apis.DeclaredOnly)
	assert.Equal(t, []string{"Label", "Base"}, names(declared))

	private, _ := c.Fields(apis.Instance | apis.NonPublic)
	assert.Equal(t, []string{"count"}, names(private))

	static, _ := c.Fields(apis.Static | apis.Public)
	assert.Empty(t, static)

	id, ok := c.Field("id", apis.DefaultLookup|apis.IgnoreCase)
	require.True(t, ok)
	v, err := id.Value(&Counter{Base: Base{ID: 9}})
	require.NoError(t, err)
	assert.Equal(t, 9, v)

	target := &Counter{}
	require.NoError(t, id.SetValue(target, int8(3)))
	assert.Equal(t, 3, target.ID)
	assert.ErrorIs(t, id.SetValue(Counter{}, 1), goreflect.ErrTargetMismatch)
	assert.ErrorIs(t, id.SetValue(target, "x"), goreflect.ErrArgumentType)

	_, err = private[0].Value(target)
	assert.ErrorIs(t, err, goreflect.ErrUnexported)
	_, err = id.Value(nil)
	assert.ErrorIs(t, err, goreflect.ErrTargetRequired)
}

func TestMethodsAndInvoke(t *testing.T) {
	p := newProvider(t)
	c, _ := p.LookupType("goreflect_test.Counter")

	ms, ok := c.Methods(apis.DefaultLookup)
	require.True(t, ok)
	assert.Equal(t, []string{"Area", "Check", "Count", "Increment"}, names(ms))

	inc, ok := c.Method("Increment", apis.DefaultLookup, nil, nil)
	require.True(t, ok)
	params, _ := inc.Parameters()
	require.Len(t, params, 1)
	_, named := params[0].Name()
	assert.False(t, named, "reflect keeps no parameter names")

	_, ok = inc.ReturnType()
	assert.False(t, ok, "no results")

	target := NewCounter(1)
	res, err := inc.Invoke(target, []any{4})
	require.NoError(t, err)
	assert.Nil(t, res)

	count, _ := c.Method("Count", apis.DefaultLookup, nil, nil)
	res, err = count.Invoke(target, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, res)

	// Value receivers work on copies.
	res, err = count.Invoke(*target, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, res)

	check, _ := c.Method("Check", apis.DefaultLookup, nil, nil)
	target.Increment(-10)
	_, err = check.Invoke(target, nil)
	assert.Same(t, errEmptyLabel, err)

	_, err = inc.Invoke(nil, []any{1})
	assert.ErrorIs(t, err, goreflect.ErrTargetRequired)
	_, err = inc.Invoke("nope", []any{1})
	assert.ErrorIs(t, err, goreflect.ErrTargetMismatch)
	_, err = inc.Invoke(target, nil)
	assert.ErrorIs(t, err, goreflect.ErrParameterCount)
}

func TestConstructors(t *testing.T) {
	p := newProvider(t)
	c, _ := p.LookupType("goreflect_test.Counter")
	intType, _ := p.TypeOf(reflect.TypeFor[int]())
	strType, _ := p.TypeOf(reflect.TypeFor[string]())

	cs, ok := c.Constructors(apis.DefaultLookup)
	require.True(t, ok)
	require.Len(t, cs, 2)

	_, ok = c.Constructor(apis.DefaultLookup, nil, nil)
	assert.False(t, ok, "two constructors need a signature")

	byInt, ok := c.Constructor(apis.DefaultLookup, nil, []apis.Type{intType})
	require.True(t, ok)
	v, err := byInt.New([]any{7})
	require.NoError(t, err)
	assert.Equal(t, 7, v.(*Counter).Count())

	byLabel, ok := c.Constructor(apis.DefaultLookup, nil, []apis.Type{strType})
	require.True(t, ok)
	_, err = byLabel.New([]any{""})
	assert.Same(t, errEmptyLabel, err)
}

func TestConstructors_ClosuresAreDistinct(t *testing.T) {
	starting := func(n int) func() *Counter {
		return func() *Counter { return &Counter{count: n} }
	}
	p := goreflect.New()
	require.NoError(t, p.RegisterConstructor(starting(1), starting(2)))
	c, err := p.LookupType("goreflect_test.Counter")
	require.NoError(t, err)

	cs, _ := c.Constructors(apis.DefaultLookup)
	require.Len(t, cs, 2)
	assert.False(t, cs[0].Equal(cs[1]))

	again, _ := c.Constructors(apis.DefaultLookup)
	assert.True(t, cs[1].Equal(again[1]))
	assert.Equal(t, cs[1].Hash(), again[1].Hash())

	u := facade.New()
	first, second := u.Constructor(cs[0]), u.Constructor(cs[1])
	require.NotSame(t, first, second)

	v, err := second.New()
	require.NoError(t, err)
	assert.Equal(t, 2, v.Value().(*Counter).Count())
	v, err = first.New()
	require.NoError(t, err)
	assert.Equal(t, 1, v.Value().(*Counter).Count())
}

func TestInterfacesAndAssignability(t *testing.T) {
	p := newProvider(t)
	c, _ := p.LookupType("goreflect_test.Counter")
	shape, _ := p.LookupType("goreflect_test.Shape")

	ifaces, ok := c.Interfaces()
	require.True(t, ok)
	require.Len(t, ifaces, 1)
	assert.True(t, ifaces[0].Equal(shape))

	assert.True(t, shape.IsInterface())
	assert.True(t, shape.IsAssignableFrom(c))
	assert.False(t, c.IsAssignableFrom(shape))
	assert.True(t, c.IsValueType())

	area, ok := shape.Method("Area", apis.DefaultLookup, nil, nil)
	require.True(t, ok)
	assert.True(t, area.IsAbstract())
	res, err := area.Invoke(Shape(NewCounter(2)), nil)
	require.NoError(t, err)
	assert.Equal(t, 2.0, res)

	box, _ := p.LookupType("goreflect_test.Box")
	assert.True(t, box.IsGeneric())
	name, _ := box.Name()
	assert.Equal(t, "Box", name)
}

// TestThroughFacade drives the provider through the facade layer: fresh
// provider handles meet the identity cache, and Go's missing concepts
// surface as capability errors.
func TestThroughFacade(t *testing.T) {
	p := newProvider(t)
	u := facade.New()

	counter, err := u.LookupType(p, "goreflect_test.Counter")
	require.NoError(t, err)
	again, err := u.LookupType(p, "goreflect_test.Counter")
	require.NoError(t, err)
	assert.Same(t, counter, again)

	label, err := counter.Field("Label")
	require.NoError(t, err)
	ft, err := label.FieldType()
	require.NoError(t, err)
	strType, _ := p.TypeOf(reflect.TypeFor[string]())
	assert.Same(t, u.Type(strType), ft)

	_, err = label.RawConstantValue()
	assert.ErrorIs(t, err, facade.ErrUnsupportedCapability)
	_, err = counter.DeclaringType()
	assert.ErrorIs(t, err, facade.ErrUnsupportedCapability)
	_, err = counter.BaseType()
	assert.ErrorIs(t, err, facade.ErrUnsupportedCapability)

	props, err := counter.Properties()
	require.NoError(t, err)
	assert.NotNil(t, props)
	assert.Empty(t, props)

	ctor, err := counter.Constructor(facade.WithTypes(u.Type(strType)))
	require.NoError(t, err)
	obj, err := ctor.New("hits")
	require.NoError(t, err)

	inc, err := counter.Method("Increment")
	require.NoError(t, err)
	res, err := inc.Invoke(obj, 3)
	require.NoError(t, err)
	assert.True(t, res.IsZero())

	params, err := inc.Parameters()
	require.NoError(t, err)
	_, err = params[0].Name()
	var ce *faults.CapabilityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, faults.Capability{Kind: "Parameter", Name: "Name"}, ce.Capability)

	members, err := counter.Members()
	require.NoError(t, err)
	seen := map[kind.Kind]int{}
	for _, m := range members {
		seen[m.Kind()]++
	}
	assert.Equal(t, map[kind.Kind]int{kind.Field: 3, kind.Constructor: 2, kind.Method: 4}, seen)
}
