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

package facade_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/facade"
	"dirpx.dev/facade/apis"
	"dirpx.dev/facade/config"
	"dirpx.dev/facade/faults"
	"dirpx.dev/facade/internal/fixture"
	"dirpx.dev/facade/kind"
	"dirpx.dev/facade/provider/memory"
)

var allFlags = apis.Instance | apis.Static | apis.Public | apis.NonPublic

func capabilityOf(t *testing.T, err error) faults.Capability {
	t.Helper()
	require.ErrorIs(t, err, facade.ErrUnsupportedCapability)
	var ce *facade.CapabilityError
	require.ErrorAs(t, err, &ce)
	return ce.Capability
}

func TestCountFieldScenario(t *testing.T) {
	m := fixture.New()
	u := facade.New()

	counter, err := u.LookupType(m.Provider, "demo.Counter")
	require.NoError(t, err)

	count, err := counter.Field("_count", facade.WithFlags(apis.Instance|apis.NonPublic))
	require.NoError(t, err)

	ft, err := count.FieldType()
	require.NoError(t, err)
	assert.Same(t, u.Type(m.Int32), ft)

	again, err := count.FieldType()
	require.NoError(t, err)
	assert.Same(t, ft, again)

	name, err := ft.FullName()
	require.NoError(t, err)
	assert.Equal(t, "System.Int32", name)

	_, err = count.RawConstantValue()
	assert.Equal(t, faults.Capability{Kind: "Field", Name: "RawConstantValue"}, capabilityOf(t, err))
	assert.Contains(t, err.Error(), "demo.Counter::_count")
}

func TestIdentityStability(t *testing.T) {
	a := fixture.New()
	b := fixture.New()
	u := facade.New()

	// Distinct provider handles for the same element share one facade.
	require.NotSame(t, a.Counter, b.Counter)
	assert.Same(t, u.Type(a.Counter), u.Type(b.Counter))
	assert.Same(t, u.Field(a.Count), u.Field(b.Count))
	assert.Same(t, u.Method(a.Increment), u.Method(b.Increment))
	assert.Same(t, u.Constructor(a.NewStart), u.Constructor(b.NewStart))
	assert.Same(t, u.Property(a.Label), u.Property(b.Label))

	// Reached through accessors, too.
	fields, err := u.Type(a.Counter).Fields(facade.WithFlags(allFlags))
	require.NoError(t, err)
	assert.Same(t, u.Field(b.Count), fields[0])

	assert.Equal(t, 3, u.Len(kind.Field))
}

func TestEqualityIndependentOfCaching(t *testing.T) {
	m := fixture.New()
	u1 := facade.New()
	u2 := facade.New()

	f1 := u1.Field(m.Count)
	f2 := u2.Field(m.Count)
	assert.NotSame(t, f1, f2)
	assert.True(t, f1.Equal(f2))
	assert.True(t, f2.Equal(f1))
	assert.Equal(t, f1.Hash(), f2.Hash())

	assert.False(t, f1.Equal(u1.Field(m.Max)))
	assert.False(t, f1.Equal(nil))

	// Reset drops instances, not equality.
	u1.Reset()
	f3 := u1.Field(m.Count)
	assert.NotSame(t, f1, f3)
	assert.True(t, f1.Equal(f3))

	// Uncached kinds compare through their origin.
	a1, err := u1.Type(m.Counter).AssemblyName()
	require.NoError(t, err)
	a2, err := u1.Type(m.Counter).AssemblyName()
	require.NoError(t, err)
	assert.NotSame(t, a1, a2)
	assert.True(t, a1.Equal(a2))
}

func TestMemberResolution(t *testing.T) {
	m := fixture.New()
	u := facade.New()

	tests := []struct {
		name   string
		member apis.Member
		want   kind.Kind
		same   facade.Member
	}{
		{"constructor", m.NewEmpty, kind.Constructor, u.Constructor(m.NewEmpty)},
		{"method", m.Get, kind.Method, u.Method(m.Get)},
		{"property", m.Value, kind.Property, u.Property(m.Value)},
		{"field", m.Max, kind.Field, u.Field(m.Max)},
		{"nested type", m.Snapshot, kind.Type, u.Type(m.Snapshot)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := u.Member(tt.member)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Kind())
			assert.Same(t, tt.same, got)
		})
	}
}

func TestMemberResolution_UnknownKind(t *testing.T) {
	m := fixture.New()
	u := facade.New()

	got, err := u.Member(m.Changed)
	assert.Nil(t, got)
	require.ErrorIs(t, err, facade.ErrUnsupportedConversion)
	var ce *facade.ConversionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "*memory.Event", ce.Origin)

	for _, k := range kind.Members {
		assert.Zero(t, u.Len(k), "no %s was constructed", k)
	}
}

func TestTypeMembers(t *testing.T) {
	m := fixture.New()
	u := facade.New()
	counter := u.Type(m.Counter)

	// The event fails the eager form as a whole.
	_, err := counter.Members(facade.WithFlags(apis.DefaultLookup | apis.DeclaredOnly))
	assert.ErrorIs(t, err, facade.ErrUnsupportedConversion)

	// The lazy form reports it in place.
	var kinds []kind.Kind
	var failures int
	for mm, err := range counter.MemberSeq(facade.WithFlags(apis.DefaultLookup | apis.DeclaredOnly)) {
		if err != nil {
			failures++
			continue
		}
		kinds = append(kinds, mm.Kind())
	}
	assert.Equal(t, 1, failures)
	assert.Contains(t, kinds, kind.Constructor)
	assert.Contains(t, kinds, kind.Field)
	assert.Contains(t, kinds, kind.Type)

	// Without events the eager form succeeds.
	special, err := u.Type(m.Special).Members(facade.WithFlags(apis.Instance | apis.Public | apis.DeclaredOnly))
	require.NoError(t, err)
	require.Len(t, special, 1)
	assert.Same(t, u.Method(m.SpecialDescribe), special[0])
}

func TestSequenceOrder(t *testing.T) {
	m := fixture.New()
	u := facade.New()

	src := []apis.Field{m.Max, m.Count, m.Instances}
	got := slices.Collect(u.Fields(slices.Values(src)))
	require.Len(t, got, 3)
	for i := range src {
		assert.True(t, got[i].Origin().Equal(src[i]))
	}

	// Restartable source, restartable result.
	seq := u.Fields(slices.Values(src))
	assert.Equal(t, slices.Collect(seq), slices.Collect(seq))

	assert.Empty(t, slices.Collect(u.Types(slices.Values([]apis.Type{}))))

	var members []facade.Member
	for mm, err := range u.Members(slices.Values([]apis.Member{m.Counter, m.Changed, m.Get})) {
		if err != nil {
			assert.ErrorIs(t, err, facade.ErrUnsupportedConversion)
			continue
		}
		members = append(members, mm)
	}
	require.Len(t, members, 2)
	assert.Equal(t, kind.Type, members[0].Kind())
	assert.Equal(t, kind.Method, members[1].Kind())
}

func TestEmptyCollectionsArePresent(t *testing.T) {
	m := fixture.New()
	u := facade.New()

	params, err := u.Method(m.Get).Parameters()
	require.NoError(t, err)
	assert.NotNil(t, params)
	assert.Empty(t, params)

	attrs, err := u.Field(m.Count).Attributes()
	require.NoError(t, err)
	assert.NotNil(t, attrs)

	m.Get.Hide(memory.CapParameters)
	_, err = u.Method(m.Get).Parameters()
	assert.Equal(t, faults.Capability{Kind: "Method", Name: "Parameters"}, capabilityOf(t, err))
}

func TestProjectionTotality(t *testing.T) {
	m := fixture.New()
	u := facade.New()

	m.Counter.Hide(memory.CapName, memory.CapBaseType, memory.CapFields, memory.CapInterfaces)
	m.Demo.Hide(memory.CapVersion)
	m.Label.Hide(memory.CapPropertyType)

	counter := u.Type(m.Counter)
	tests := []struct {
		name string
		call func() error
		want faults.Capability
	}{
		{"hidden name", func() error { _, err := counter.Name(); return err }, faults.Capability{Kind: "Type", Name: "Name"}},
		{"hidden base", func() error { _, err := counter.BaseType(); return err }, faults.Capability{Kind: "Type", Name: "BaseType"}},
		{"hidden fields", func() error { _, err := counter.Fields(); return err }, faults.Capability{Kind: "Type", Name: "Fields"}},
		{"hidden interfaces", func() error { _, err := counter.Interfaces(); return err }, faults.Capability{Kind: "Type", Name: "Interfaces"}},
		{"top-level declaring type", func() error { _, err := counter.DeclaringType(); return err }, faults.Capability{Kind: "Type", Name: "DeclaringType"}},
		{"no element type", func() error { _, err := counter.ElementType(); return err }, faults.Capability{Kind: "Type", Name: "ElementType"}},
		{"hidden version", func() error {
			a, err := counter.AssemblyName()
			if err != nil {
				return err
			}
			_, err = a.Version()
			return err
		}, faults.Capability{Kind: "AssemblyName", Name: "Version"}},
		{"unsigned assembly", func() error {
			a, err := counter.AssemblyName()
			if err != nil {
				return err
			}
			_, err = a.PublicKeyToken()
			return err
		}, faults.Capability{Kind: "AssemblyName", Name: "PublicKeyToken"}},
		{"hidden property type", func() error { _, err := u.Property(m.Label).PropertyType(); return err }, faults.Capability{Kind: "Property", Name: "PropertyType"}},
		{"read-only property", func() error { _, err := u.Property(m.Value).Setter(); return err }, faults.Capability{Kind: "Property", Name: "SetMethod"}},
		{"missing member", func() error { _, err := counter.Method("Nope"); return err }, faults.Capability{Kind: "Type", Name: "Method"}},
		{"no default", func() error {
			ps, err := u.Method(m.SpecialDescribe).Parameters()
			if err != nil {
				return err
			}
			require.Empty(t, ps)
			ps, err = u.Constructor(m.NewStart).Parameters()
			if err != nil {
				return err
			}
			_, err = ps[0].DefaultValue()
			return err
		}, faults.Capability{Kind: "Parameter", Name: "DefaultValue"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, capabilityOf(t, tt.call()))
		})
	}
}

func TestParameters(t *testing.T) {
	m := fixture.New()
	u := facade.New()

	inc := u.Method(m.Increment)
	params, err := inc.Parameters()
	require.NoError(t, err)
	require.Len(t, params, 1)

	p := params[0]
	name, err := p.Name()
	require.NoError(t, err)
	assert.Equal(t, "by", name)
	assert.Equal(t, 0, p.Position())

	pt, err := p.ParameterType()
	require.NoError(t, err)
	assert.Same(t, u.Type(m.Int32), pt)

	def, err := p.DefaultValue()
	require.NoError(t, err)
	assert.Equal(t, 1, def)

	owner, err := p.Member()
	require.NoError(t, err)
	assert.Same(t, inc, owner)
}

func TestInvocationSentinels(t *testing.T) {
	m := fixture.New()
	u := facade.New()
	counter := u.Type(m.Counter)

	ctor, err := counter.Constructor(facade.WithTypes(u.Type(m.Int32)))
	require.NoError(t, err)
	obj, err := ctor.New(5)
	require.NoError(t, err)
	assert.False(t, obj.IsZero())

	inc, err := counter.Method("Increment")
	require.NoError(t, err)
	res, err := inc.Invoke(obj, 2)
	require.NoError(t, err)
	assert.True(t, res.IsZero(), "void returns the zero Instance")
	assert.Equal(t, facade.Instance{}, res)

	get, err := counter.Method("Get")
	require.NoError(t, err)
	res, err = get.Invoke(obj)
	require.NoError(t, err)
	assert.Equal(t, facade.On(7), res)

	// Static call with "no instance" is the provider's nil target.
	reset, err := counter.Method("Reset")
	require.NoError(t, err)
	require.True(t, reset.IsStatic())
	res, err = reset.Invoke(facade.Instance{})
	require.NoError(t, err)
	assert.True(t, res.IsZero())
	n, err := u.Field(m.Instances).Value(facade.Instance{})
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, direct := m.Reset.Invoke(nil, nil)
	assert.NoError(t, direct)

	// Provider failures pass through.
	_, err = inc.Invoke(obj, -1)
	assert.ErrorIs(t, err, fixture.ErrNegative)
	assert.Same(t, fixture.ErrNegative, err)

	_, err = inc.Invoke(facade.Instance{}, 1)
	assert.ErrorIs(t, err, memory.ErrTargetRequired)
}

func TestFieldAndPropertyValues(t *testing.T) {
	m := fixture.New()
	u := facade.New()

	obj, err := u.Constructor(m.NewEmpty).New()
	require.NoError(t, err)

	require.NoError(t, u.Field(m.Count).SetValue(obj, 3))
	v, err := u.Property(m.Value).Value(obj)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	label := u.Property(m.Label)
	assert.True(t, label.CanRead())
	assert.True(t, label.CanWrite())
	require.NoError(t, label.SetValue(obj, "x"))
	getter, err := label.Getter()
	require.NoError(t, err)
	got, err := getter.Invoke(obj)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Value())

	limit := u.Field(m.Max)
	assert.True(t, limit.IsLiteral())
	c, err := limit.RawConstantValue()
	require.NoError(t, err)
	assert.Equal(t, 100, c)
	assert.ErrorIs(t, limit.SetValue(facade.Instance{}, 1), memory.ErrReadOnly)
}

type lastBinder struct{ calls int }

func (b *lastBinder) SelectMethod(_ apis.BindingFlags, candidates []apis.MethodBase, _ []apis.Type) (apis.MethodBase, bool) {
	b.calls++
	if len(candidates) == 0 {
		return nil, false
	}
	return candidates[len(candidates)-1], true
}

func TestLookupOptions(t *testing.T) {
	m := fixture.New()
	u := facade.New()
	counter := u.Type(m.Counter)

	// Two constructors: ambiguous for the provider's default binder.
	_, err := counter.Constructor()
	capabilityOf(t, err)

	empty, err := counter.Constructor(facade.WithTypes())
	require.NoError(t, err)
	assert.Same(t, u.Constructor(m.NewEmpty), empty)

	b := &lastBinder{}
	picked, err := counter.Constructor(facade.WithBinder(b))
	require.NoError(t, err)
	assert.Equal(t, 1, b.calls)
	assert.Same(t, u.Constructor(m.NewStart), picked)

	_, err = counter.Method("describe")
	capabilityOf(t, err)
	d, err := counter.Method("describe", facade.WithFlags(apis.DefaultLookup|apis.IgnoreCase))
	require.NoError(t, err)
	assert.Same(t, u.Method(m.Describe), d)

	p, err := counter.Property("Label", facade.WithReturnType(u.Type(m.String)))
	require.NoError(t, err)
	assert.Same(t, u.Property(m.Label), p)
	_, err = counter.Property("Label", facade.WithReturnType(u.Type(m.Int32)))
	capabilityOf(t, err)

	nested, err := counter.NestedType("Snapshot")
	require.NoError(t, err)
	decl, err := nested.DeclaringType()
	require.NoError(t, err)
	assert.Same(t, counter, decl)
}

func TestOverrides(t *testing.T) {
	m := fixture.New()
	u := facade.New()

	describe, err := u.Type(m.Special).Method("Describe")
	require.NoError(t, err)
	assert.Same(t, u.Method(m.SpecialDescribe), describe)

	base, err := describe.BaseDefinition()
	require.NoError(t, err)
	assert.Same(t, u.Method(m.Describe), base)

	res, err := describe.Invoke(facade.On(memory.NewObject(m.Special)))
	require.NoError(t, err)
	assert.Equal(t, "special", res.Value())

	counter := u.Type(m.Counter)
	assert.True(t, counter.IsAssignableFrom(u.Type(m.Special)))
	assert.False(t, u.Type(m.Special).IsAssignableFrom(counter))
	assert.True(t, u.Type(m.Disposable).IsAssignableFrom(u.Type(m.Special)))
}

type failingProvider struct{ err error }

func (p failingProvider) LookupType(string) (apis.Type, error)             { return nil, p.err }
func (p failingProvider) LookupAssembly(string) (apis.AssemblyName, error) { return nil, p.err }
func (p failingProvider) Assemblies() []apis.AssemblyName                  { return nil }
func (p failingProvider) Types(apis.AssemblyName) ([]apis.Type, error)     { return nil, p.err }

func TestProviderErrorsPassThrough(t *testing.T) {
	boom := errors.New("provider: boom")
	u := facade.New()

	_, err := u.LookupType(failingProvider{err: boom}, "x")
	assert.Same(t, boom, err)
	_, err = u.LookupAssembly(failingProvider{err: boom}, "x")
	assert.Same(t, boom, err)

	m := fixture.New()
	_, err = u.LookupType(m.Provider, "demo.Nope")
	assert.ErrorIs(t, err, memory.ErrNotFound)
	assert.NotErrorIs(t, err, facade.ErrUnsupportedCapability)
}

func TestAssemblyTypes(t *testing.T) {
	m := fixture.New()
	u := facade.New()

	asm, err := u.LookupAssembly(m.Provider, "core")
	require.NoError(t, err)
	full, err := asm.FullName()
	require.NoError(t, err)
	assert.Contains(t, full, "PublicKeyToken=b77a5c56")

	types, err := u.AssemblyTypes(m.Provider, asm)
	require.NoError(t, err)
	require.NotEmpty(t, types)
	assert.Same(t, u.Type(m.Object), types[0])
}

// brokenType reports nil entities as present.
type brokenType struct{ apis.Type }

func (brokenType) DeclaringType() (apis.Type, bool)              { return nil, true }
func (brokenType) Fields(apis.BindingFlags) ([]apis.Field, bool) { return []apis.Field{nil}, true }

func TestNilEntitiesAreAbsent(t *testing.T) {
	m := fixture.New()
	u := facade.New()
	typ := u.Type(brokenType{m.Counter})

	var (
		dt  *facade.Type
		err error
	)
	require.NotPanics(t, func() { dt, err = typ.DeclaringType() })
	assert.Nil(t, dt)
	assert.Equal(t, faults.Capability{Kind: "Type", Name: "DeclaringType"}, capabilityOf(t, err))

	var fields []*facade.Field
	require.NotPanics(t, func() { fields, err = typ.Fields() })
	assert.Nil(t, fields)
	assert.Equal(t, faults.Capability{Kind: "Type", Name: "Fields"}, capabilityOf(t, err))
	assert.Zero(t, u.Len(kind.Field))
}

// nilTypesProvider lists a nil type in every assembly.
type nilTypesProvider struct{ apis.Provider }

func (nilTypesProvider) Types(apis.AssemblyName) ([]apis.Type, error) { return []apis.Type{nil}, nil }

func TestAssemblyTypes_NilType(t *testing.T) {
	m := fixture.New()
	u := facade.New()

	asm, err := u.LookupAssembly(m.Provider, "core")
	require.NoError(t, err)

	var types []*facade.Type
	require.NotPanics(t, func() { types, err = u.AssemblyTypes(nilTypesProvider{m.Provider}, asm) })
	assert.Nil(t, types)
	assert.ErrorIs(t, err, facade.ErrNilOrigin)
}

func TestNilFacades(t *testing.T) {
	m := fixture.New()
	u := facade.New()

	var (
		nilType  *facade.Type
		nilField *facade.Field
		nilCtor  *facade.Constructor
		nilAsm   *facade.AssemblyName
	)
	assert.Nil(t, nilType.Origin())
	assert.Nil(t, nilField.Origin())
	assert.Nil(t, nilCtor.Origin())
	assert.Nil(t, nilAsm.Origin())

	assert.False(t, u.Type(m.Counter).Equal(nilType))
	assert.False(t, u.Field(m.Count).Equal(nilField))
	assert.False(t, u.Constructor(m.NewStart).Equal(nilCtor))

	asm, err := u.Type(m.Counter).AssemblyName()
	require.NoError(t, err)
	assert.False(t, asm.Equal(nilAsm))
}

func TestCached(t *testing.T) {
	m := fixture.New()
	u := facade.New()

	got, ok := u.Cached(m.Count)
	assert.False(t, ok)
	assert.Nil(t, got)

	count := u.Field(m.Count)
	got, ok = u.Cached(fixture.New().Count)
	require.True(t, ok)
	assert.Same(t, count, got)

	ctor := u.Constructor(m.NewStart)
	got, ok = u.Cached(m.NewStart)
	require.True(t, ok)
	assert.Same(t, ctor, got)

	// Lookups build nothing.
	_, ok = u.Cached(m.Counter)
	assert.False(t, ok)
	assert.Zero(t, u.Len(kind.Type))

	_, ok = u.Cached(m.Changed)
	assert.False(t, ok)
	_, ok = u.Cached(nil)
	assert.False(t, ok)

	u.Reset()
	_, ok = u.Cached(m.Count)
	assert.False(t, ok)
}

func TestFactoryPanicsOnNilOrigin(t *testing.T) {
	u := facade.New()
	assert.PanicsWithValue(t, facade.ErrNilOrigin, func() { u.Type(nil) })
	assert.PanicsWithValue(t, facade.ErrNilOrigin, func() { u.Field(nil) })
}

func TestCacheMissesAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	u := facade.New(config.WithLogger(zap.New(core)))
	m := fixture.New()

	u.Type(m.Counter)
	u.Type(m.Counter)

	misses := logs.FilterMessage("cache miss").All()
	require.Len(t, misses, 1)
	assert.Equal(t, "Type", misses[0].ContextMap()["cache"])
}

func TestDefaultUniverse(t *testing.T) {
	prev := facade.Default()
	t.Cleanup(func() { facade.SetDefault(prev) })

	u := facade.New()
	assert.Same(t, prev, facade.SetDefault(u))
	assert.Same(t, u, facade.Default())
	assert.Same(t, u, facade.SetDefault(nil))
	assert.Same(t, u, facade.Default())

	m := fixture.New()
	got, err := facade.LookupType(m.Provider, "demo.Counter")
	require.NoError(t, err)
	assert.Same(t, u.Type(m.Counter), got)

	r, err := facade.Resolve(m.Count)
	require.NoError(t, err)
	assert.Same(t, u.Field(m.Count), r)

	next := facade.Configure(config.WithInitialCapacity(8))
	assert.NotSame(t, u, next)
	assert.Same(t, next, facade.Default())
	assert.Equal(t, 8, next.Config().InitialCapacity)
}
