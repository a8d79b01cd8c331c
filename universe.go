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

package facade

import (
	"errors"
	"fmt"
	"iter"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"dirpx.dev/facade/apis"
	"dirpx.dev/facade/cache"
	"dirpx.dev/facade/config"
	"dirpx.dev/facade/kind"
	"dirpx.dev/facade/projection"
	"dirpx.dev/facade/resolver"
)

// ErrNilOrigin is the panic value of factories handed a nil origin.
var ErrNilOrigin = errors.New("facade: nil origin")

// Universe owns the identity caches and builds every facade.
// It is safe for concurrent use.
type Universe struct {
	cfg apis.Config
	log *zap.Logger

	types   *cache.Cache[apis.Type, *Type]
	fields  *cache.Cache[apis.Field, *Field]
	methods *cache.Cache[apis.Method, *Method]
	ctors   *cache.Cache[apis.Constructor, *Constructor]
	props   *cache.Cache[apis.Property, *Property]

	table resolver.Table[Member]
}

// New returns an empty universe configured by opts.
func New(opts ...config.Option) *Universe {
	cfg := config.New(opts...)
	u := &Universe{
		cfg:     cfg,
		log:     cfg.Logger.Named("facade"),
		types:   cache.New[apis.Type, *Type](kind.Type.String(), cfg),
		fields:  cache.New[apis.Field, *Field](kind.Field.String(), cfg),
		methods: cache.New[apis.Method, *Method](kind.Method.String(), cfg),
		ctors:   cache.New[apis.Constructor, *Constructor](kind.Constructor.String(), cfg),
		props:   cache.New[apis.Property, *Property](kind.Property.String(), cfg),
	}
	u.table = resolver.Table[Member]{
		Constructor: func(c apis.Constructor) Member { return u.Constructor(c) },
		Method:      func(m apis.Method) Member { return u.Method(m) },
		Property:    func(p apis.Property) Member { return u.Property(p) },
		Field:       func(f apis.Field) Member { return u.Field(f) },
		Type:        func(t apis.Type) Member { return u.Type(t) },
	}
	return u
}

// Config returns the configuration the universe was built with.
func (u *Universe) Config() apis.Config {
	return u.cfg
}

// Len returns the number of cached facades of kind k. Uncached kinds
// report 0.
func (u *Universe) Len(k kind.Kind) int {
	switch k {
	case kind.Type:
		return u.types.Len()
	case kind.Field:
		return u.fields.Len()
	case kind.Method:
		return u.methods.Len()
	case kind.Constructor:
		return u.ctors.Len()
	case kind.Property:
		return u.props.Len()
	default:
		return 0
	}
}

// Reset empties every cache. Facades handed out earlier stay usable and
// Equal to the ones built afterwards.
func (u *Universe) Reset() {
	u.types.Reset()
	u.fields.Reset()
	u.methods.Reset()
	u.ctors.Reset()
	u.props.Reset()
	u.log.Debug("universe reset")
}

// Cached returns the facade already built for m without building one.
// Members of an uncached kind, and nil members, report false.
func (u *Universe) Cached(m apis.Member) (Member, bool) {
	if m == nil {
		return nil, false
	}
	switch kind.Of(m) {
	case kind.Constructor:
		return found(u.ctors.Lookup(m.(apis.Constructor)))
	case kind.Method:
		return found(u.methods.Lookup(m.(apis.Method)))
	case kind.Property:
		return found(u.props.Lookup(m.(apis.Property)))
	case kind.Field:
		return found(u.fields.Lookup(m.(apis.Field)))
	case kind.Type:
		return found(u.types.Lookup(m.(apis.Type)))
	default:
		return nil, false
	}
}

// found keeps a missing facade from becoming a typed nil Member.
func found[F Member](f F, ok bool) (Member, bool) {
	if !ok {
		return nil, false
	}
	return f, true
}

// Factories. Each panics with ErrNilOrigin on a nil origin: a nil here is a
// caller bug, provider absence is handled by the accessors.

// Type returns the cached facade of t.
func (u *Universe) Type(t apis.Type) *Type {
	mustOrigin(t)
	return u.types.GetOrCreate(t, func(t apis.Type) *Type {
		return &Type{member: member{u: u, origin: t, kind: kind.Type}, typ: t}
	})
}

// Field returns the cached facade of f.
func (u *Universe) Field(f apis.Field) *Field {
	mustOrigin(f)
	return u.fields.GetOrCreate(f, func(f apis.Field) *Field {
		return &Field{member: member{u: u, origin: f, kind: kind.Field}, field: f}
	})
}

// Method returns the cached facade of m.
func (u *Universe) Method(m apis.Method) *Method {
	mustOrigin(m)
	return u.methods.GetOrCreate(m, func(m apis.Method) *Method {
		return &Method{methodBase: newMethodBase(u, m, kind.Method), method: m}
	})
}

// Constructor returns the cached facade of c.
func (u *Universe) Constructor(c apis.Constructor) *Constructor {
	mustOrigin(c)
	return u.ctors.GetOrCreate(c, func(c apis.Constructor) *Constructor {
		return &Constructor{methodBase: newMethodBase(u, c, kind.Constructor), ctor: c}
	})
}

// Property returns the cached facade of p.
func (u *Universe) Property(p apis.Property) *Property {
	mustOrigin(p)
	return u.props.GetOrCreate(p, func(p apis.Property) *Property {
		return &Property{member: member{u: u, origin: p, kind: kind.Property}, prop: p}
	})
}

// AssemblyName builds a facade of a. Assembly names are not cached.
func (u *Universe) AssemblyName(a apis.AssemblyName) *AssemblyName {
	mustOrigin(a)
	return &AssemblyName{u: u, origin: a}
}

// Parameter builds a facade of p. Parameters are not cached.
func (u *Universe) Parameter(p apis.Parameter) *Parameter {
	mustOrigin(p)
	return &Parameter{u: u, origin: p}
}

// Member resolves m to the facade of its concrete kind. Members of a kind
// outside the modelled set fail with a *faults.ConversionError and leave
// every cache untouched.
func (u *Universe) Member(m apis.Member) (Member, error) {
	f, err := u.table.Resolve(m)
	if err != nil {
		u.log.Debug("member not convertible", zap.Error(err))
		return nil, err
	}
	return f, nil
}

// Sequence conversions. Each is lazy, preserves order, and can be ranged
// over again exactly when src can.

// Types converts a sequence of types.
func (u *Universe) Types(src iter.Seq[apis.Type]) iter.Seq[*Type] {
	return projection.Seq(src, u.Type)
}

// Fields converts a sequence of fields.
func (u *Universe) Fields(src iter.Seq[apis.Field]) iter.Seq[*Field] {
	return projection.Seq(src, u.Field)
}

// Methods converts a sequence of methods.
func (u *Universe) Methods(src iter.Seq[apis.Method]) iter.Seq[*Method] {
	return projection.Seq(src, u.Method)
}

// Constructors converts a sequence of constructors.
func (u *Universe) Constructors(src iter.Seq[apis.Constructor]) iter.Seq[*Constructor] {
	return projection.Seq(src, u.Constructor)
}

// Properties converts a sequence of properties.
func (u *Universe) Properties(src iter.Seq[apis.Property]) iter.Seq[*Property] {
	return projection.Seq(src, u.Property)
}

// Members resolves a sequence of members. Each element carries its own
// error; an unconvertible member does not end the sequence.
func (u *Universe) Members(src iter.Seq[apis.Member]) iter.Seq2[Member, error] {
	return projection.Seq2(src, u.Member)
}

// LookupType asks p for the named type. Provider errors are returned as
// they are.
func (u *Universe) LookupType(p apis.Provider, name string) (*Type, error) {
	t, err := p.LookupType(name)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: provider returned no type for %q", ErrNilOrigin, name)
	}
	return u.Type(t), nil
}

// LookupAssembly asks p for the named assembly. Provider errors are
// returned as they are.
func (u *Universe) LookupAssembly(p apis.Provider, name string) (*AssemblyName, error) {
	a, err := p.LookupAssembly(name)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: provider returned no assembly for %q", ErrNilOrigin, name)
	}
	return u.AssemblyName(a), nil
}

// AssemblyTypes returns the facades of the types defined in asm.
func (u *Universe) AssemblyTypes(p apis.Provider, asm *AssemblyName) ([]*Type, error) {
	ts, err := p.Types(asm.origin)
	if err != nil {
		return nil, err
	}
	out := make([]*Type, 0, len(ts))
	for _, t := range ts {
		if t == nil {
			return nil, fmt.Errorf("%w: provider returned a nil type in %s", ErrNilOrigin, asm)
		}
		out = append(out, u.Type(t))
	}
	return out, nil
}

func mustOrigin(e apis.Entity) {
	if e == nil {
		panic(ErrNilOrigin)
	}
}

// Default universe.

// buildMu serializes writers so a published universe is never replaced
// half-way.
var buildMu sync.Mutex

// st holds the default universe.
var st atomic.Pointer[Universe]

func init() {
	st.Store(New())
}

// Default returns the process-wide universe.
func Default() *Universe {
	return st.Load()
}

// SetDefault replaces the process-wide universe and returns the previous
// one. A nil u is ignored.
func SetDefault(u *Universe) *Universe {
	if u == nil {
		return st.Load()
	}
	buildMu.Lock()
	defer buildMu.Unlock()
	return st.Swap(u)
}

// Configure replaces the process-wide universe with a fresh one built from
// opts. Facades of the old universe stay valid.
func Configure(opts ...config.Option) *Universe {
	buildMu.Lock()
	defer buildMu.Unlock()
	u := New(opts...)
	st.Store(u)
	return u
}

// LookupType is Default().LookupType.
func LookupType(p apis.Provider, name string) (*Type, error) {
	return Default().LookupType(p, name)
}

// Resolve is Default().Member.
func Resolve(m apis.Member) (Member, error) {
	return Default().Member(m)
}
