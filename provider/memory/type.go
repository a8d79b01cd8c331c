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

package memory

import (
	"strings"

	"dirpx.dev/facade/apis"
)

// Type is a type definition.
type Type struct {
	member
	namespace string
	base      *Type
	elem      *Type
	ifaces    []*Type
	isIface   bool
	isValue   bool
	isGeneric bool

	fields  []*Field
	methods []*Method
	ctors   []*Constructor
	props   []*Property
	nested  []*Type
	// order lists every member in definition order, events included.
	order []apis.Member
}

// Ensure Type implements apis.Type.
var _ apis.Type = (*Type)(nil)

func newType(a *Assembly, declaring *Type, namespace, name string) *Type {
	t := &Type{namespace: namespace}
	t.member = member{p: a.p, asm: a, name: name, declaring: declaring, public: true, static: true, token: a.p.nextToken()}
	t.entity = newEntity("type", t.fullName())
	return t
}

func (t *Type) fullName() string {
	if t.declaring != nil {
		return t.declaring.fullName() + "+" + t.name
	}
	if t.namespace == "" {
		return t.name
	}
	return t.namespace + "." + t.name
}

// Builder methods.

// MarkInterface flags t as an interface type.
func (t *Type) MarkInterface() *Type {
	t.isIface = true
	return t
}

// MarkValueType flags t as a value type.
func (t *Type) MarkValueType() *Type {
	t.isValue = true
	return t
}

// MarkGeneric flags t as a generic type definition.
func (t *Type) MarkGeneric() *Type {
	t.isGeneric = true
	return t
}

// SetBase sets the base type.
func (t *Type) SetBase(base *Type) *Type {
	t.base = base
	return t
}

// SetElement sets the element type of an array, pointer or collection type.
func (t *Type) SetElement(elem *Type) *Type {
	t.elem = elem
	return t
}

// Implements adds interfaces.
func (t *Type) Implements(ifaces ...*Type) *Type {
	t.ifaces = append(t.ifaces, ifaces...)
	return t
}

// NonPublic makes the type non-public.
func (t *Type) NonPublic() *Type {
	t.public = false
	return t
}

// Attr adds custom attribute names.
func (t *Type) Attr(names ...string) *Type {
	t.attrs = append(t.attrs, names...)
	return t
}

// Hide makes the named accessors report absence.
func (t *Type) Hide(caps ...string) *Type {
	t.hide(caps)
	return t
}

// DefineNested defines a nested type, or returns the existing one.
func (t *Type) DefineNested(name string) *Type {
	for _, n := range t.nested {
		if n.name == name {
			return n
		}
	}
	n := newType(t.asm, t, t.namespace, name)
	t.nested = append(t.nested, n)
	t.order = append(t.order, n)
	t.asm.types = append(t.asm.types, n)
	t.p.register(n)
	return n
}

// DefineField defines an instance field of type typ.
func (t *Type) DefineField(name string, typ *Type) *Field {
	f := &Field{typ: typ}
	f.member = t.newMember("field", t.fullName()+"::"+name, name)
	t.fields = append(t.fields, f)
	t.order = append(t.order, f)
	return f
}

// DefineMethod defines an instance method returning returns.
func (t *Type) DefineMethod(name string, returns *Type, params ...ParamSpec) *Method {
	m := &Method{returns: returns}
	m.member = t.newMember("method", t.fullName()+"::"+name+signature(params), name)
	m.params = newParameters(m, m.id, params)
	t.methods = append(t.methods, m)
	t.order = append(t.order, m)
	return m
}

// DefineConstructor defines an instance constructor.
func (t *Type) DefineConstructor(params ...ParamSpec) *Constructor {
	c := &Constructor{}
	c.member = t.newMember("ctor", t.fullName()+"::.ctor"+signature(params), ".ctor")
	c.params = newParameters(c, c.id, params)
	t.ctors = append(t.ctors, c)
	t.order = append(t.order, c)
	return c
}

// DefineProperty defines an instance property of type typ. Accessors are
// attached with Get and Set.
func (t *Type) DefineProperty(name string, typ *Type, index ...ParamSpec) *Property {
	p := &Property{typ: typ, indexSpec: index}
	p.member = t.newMember("property", t.fullName()+"::"+name+"["+strings.Trim(signature(index), "()")+"]", name)
	p.index = newParameters(p, p.id, index)
	t.props = append(t.props, p)
	t.order = append(t.order, p)
	return p
}

// DefineEvent defines an event. Events are members the facade layer does
// not model; they exist to exercise unknown-kind handling.
func (t *Type) DefineEvent(name string, handler *Type) *Event {
	e := &Event{handler: handler}
	e.member = t.newMember("event", t.fullName()+"::"+name, name)
	t.order = append(t.order, e)
	return e
}

func (t *Type) newMember(kind, id, name string) member {
	return member{
		entity:    newEntity(kind, id),
		p:         t.p,
		asm:       t.asm,
		name:      name,
		declaring: t,
		public:    true,
		token:     t.p.nextToken(),
	}
}

// Accessors.

// Equal reports whether other is the same type.
func (t *Type) Equal(other apis.Entity) bool {
	return sameID(t, other)
}

// FullName returns "Namespace.Name", nested types as "Outer+Inner".
func (t *Type) FullName() (string, bool) {
	if t.absent(CapFullName) {
		return "", false
	}
	return t.fullName(), true
}

// Namespace is absent for types in the global namespace.
func (t *Type) Namespace() (string, bool) {
	if t.absent(CapNamespace) || t.namespace == "" {
		return "", false
	}
	return t.namespace, true
}

// AssemblyName returns the defining assembly.
func (t *Type) AssemblyName() (apis.AssemblyName, bool) {
	if t.absent(CapAssemblyName) || t.asm == nil {
		return nil, false
	}
	return t.asm, true
}

// BaseType is absent for roots and interfaces.
func (t *Type) BaseType() (apis.Type, bool) {
	if t.absent(CapBaseType) || t.base == nil {
		return nil, false
	}
	return t.base, true
}

// ElementType is absent for non-container types.
func (t *Type) ElementType() (apis.Type, bool) {
	if t.absent(CapElementType) || t.elem == nil {
		return nil, false
	}
	return t.elem, true
}

// Interfaces returns the implemented interfaces, inherited ones included.
func (t *Type) Interfaces() ([]apis.Type, bool) {
	if t.absent(CapInterfaces) {
		return nil, false
	}
	var out []apis.Type
	seen := map[*Type]bool{}
	for cur := t; cur != nil; cur = cur.base {
		for _, i := range cur.ifaces {
			if !seen[i] {
				seen[i] = true
				out = append(out, i)
			}
		}
	}
	return out, true
}

// Type modifiers, as declared by the builder.
func (t *Type) IsInterface() bool { return t.isIface }
func (t *Type) IsValueType() bool { return t.isValue }
func (t *Type) IsGeneric() bool   { return t.isGeneric }

// IsAssignableFrom reports whether a value of other can be stored in t.
func (t *Type) IsAssignableFrom(other apis.Type) bool {
	o, ok := other.(*Type)
	if !ok || o == nil {
		return false
	}
	return t.assignableFrom(o)
}

func (t *Type) assignableFrom(o *Type) bool {
	for cur := o; cur != nil; cur = cur.base {
		if cur.Equal(t) {
			return true
		}
		for _, i := range cur.ifaces {
			if i.Equal(t) || t.assignableFrom(i) {
				return true
			}
		}
	}
	return false
}

// Fields enumerates fields matching flags.
func (t *Type) Fields(flags apis.BindingFlags) ([]apis.Field, bool) {
	if t.absent(CapFields) {
		return nil, false
	}
	return upcast[*Field, apis.Field](collect(t, flags, func(c *Type) []*Field { return c.fields })), true
}

// Methods enumerates methods matching flags. Inherited methods overridden
// by a more derived one are omitted.
func (t *Type) Methods(flags apis.BindingFlags) ([]apis.Method, bool) {
	if t.absent(CapMethods) {
		return nil, false
	}
	all := collect(t, flags, func(c *Type) []*Method { return c.methods })
	out := make([]apis.Method, 0, len(all))
	for _, m := range all {
		if !overridden(m, all) {
			out = append(out, m)
		}
	}
	return out, true
}

// Constructors enumerates declared constructors matching flags.
func (t *Type) Constructors(flags apis.BindingFlags) ([]apis.Constructor, bool) {
	if t.absent(CapConstructors) {
		return nil, false
	}
	return upcast[*Constructor, apis.Constructor](collect(t, flags|apis.DeclaredOnly, func(c *Type) []*Constructor { return c.ctors })), true
}

// Properties enumerates properties matching flags.
func (t *Type) Properties(flags apis.BindingFlags) ([]apis.Property, bool) {
	if t.absent(CapProperties) {
		return nil, false
	}
	return upcast[*Property, apis.Property](collect(t, flags, func(c *Type) []*Property { return c.props })), true
}

// NestedTypes enumerates declared nested types; only visibility flags apply.
func (t *Type) NestedTypes(flags apis.BindingFlags) ([]apis.Type, bool) {
	if t.absent(CapNestedTypes) {
		return nil, false
	}
	out := make([]apis.Type, 0, len(t.nested))
	for _, n := range t.nested {
		if visibleType(flags, n.public) {
			out = append(out, n)
		}
	}
	return out, true
}

// Members enumerates every member matching flags in definition order,
// declared members first, then inherited ones.
func (t *Type) Members(flags apis.BindingFlags) ([]apis.Member, bool) {
	if t.absent(CapMembers) {
		return nil, false
	}
	var out []apis.Member
	for cur := t; cur != nil; cur = cur.base {
		inherited := cur != t
		for _, m := range cur.order {
			v := m.(interface{ vis() (bool, bool) })
			public, static := v.vis()
			if _, isType := m.(*Type); isType {
				if !inherited && visibleType(flags, public) {
					out = append(out, m)
				}
				continue
			}
			if _, isCtor := m.(*Constructor); isCtor && inherited {
				continue
			}
			if inherited && (!public || static) {
				continue
			}
			if visible(flags, public, static) {
				out = append(out, m)
			}
		}
		if flags.Has(apis.DeclaredOnly) {
			break
		}
	}
	return out, true
}

// Field finds a field by name.
func (t *Type) Field(name string, flags apis.BindingFlags) (apis.Field, bool) {
	for _, f := range collect(t, flags, func(c *Type) []*Field { return c.fields }) {
		if nameMatch(flags, f.name, name) {
			return f, true
		}
	}
	return nil, false
}

// NestedType finds a declared nested type by name.
func (t *Type) NestedType(name string, flags apis.BindingFlags) (apis.Type, bool) {
	for _, n := range t.nested {
		if visibleType(flags, n.public) && nameMatch(flags, n.name, name) {
			return n, true
		}
	}
	return nil, false
}

// Method finds a method by name, selecting among overloads with binder
// (DefaultBinder when nil).
func (t *Type) Method(name string, flags apis.BindingFlags, binder apis.Binder, types []apis.Type) (apis.Method, bool) {
	ms, _ := t.Methods(flags)
	var candidates []apis.MethodBase
	for _, m := range ms {
		if nameMatch(flags, m.(*Method).name, name) {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	if binder == nil {
		binder = DefaultBinder
	}
	sel, ok := binder.SelectMethod(flags, candidates, types)
	if !ok {
		return nil, false
	}
	m, ok := sel.(apis.Method)
	return m, ok
}

// Constructor finds a constructor, selecting with binder (DefaultBinder
// when nil).
func (t *Type) Constructor(flags apis.BindingFlags, binder apis.Binder, types []apis.Type) (apis.Constructor, bool) {
	cs, _ := t.Constructors(flags)
	if len(cs) == 0 {
		return nil, false
	}
	candidates := make([]apis.MethodBase, len(cs))
	for i, c := range cs {
		candidates[i] = c
	}
	if binder == nil {
		binder = DefaultBinder
	}
	sel, ok := binder.SelectMethod(flags, candidates, types)
	if !ok {
		return nil, false
	}
	c, ok := sel.(apis.Constructor)
	return c, ok
}

// Property finds a property by name, optionally by type and index
// signature. Overloaded indexers are disambiguated by passing their getters
// to binder (DefaultBinder when nil).
func (t *Type) Property(name string, flags apis.BindingFlags, binder apis.Binder, returnType apis.Type, types []apis.Type) (apis.Property, bool) {
	var candidates []*Property
	for _, p := range collect(t, flags, func(c *Type) []*Property { return c.props }) {
		if !nameMatch(flags, p.name, name) {
			continue
		}
		if returnType != nil && (p.typ == nil || !p.typ.Equal(returnType)) {
			continue
		}
		candidates = append(candidates, p)
	}
	switch {
	case len(candidates) == 0:
		return nil, false
	case len(candidates) == 1 && types == nil:
		return candidates[0], true
	}
	if binder == nil {
		binder = DefaultBinder
	}
	accessors := make([]apis.MethodBase, 0, len(candidates))
	for _, p := range candidates {
		accessors = append(accessors, indexSignature(p))
	}
	sel, ok := binder.SelectMethod(flags, accessors, types)
	if !ok {
		return nil, false
	}
	for i, a := range accessors {
		if a.Equal(sel) {
			return candidates[i], true
		}
	}
	return nil, false
}

// String returns the full type name.
func (t *Type) String() string {
	return t.fullName()
}

// collect walks t and, unless DeclaredOnly, its bases. Inherited members
// are visible only when public and non-static.
func collect[T interface{ vis() (bool, bool) }](t *Type, flags apis.BindingFlags, own func(*Type) []T) []T {
	var out []T
	for cur := t; cur != nil; cur = cur.base {
		for _, m := range own(cur) {
			public, static := m.vis()
			if cur != t && (!public || static) {
				continue
			}
			if visible(flags, public, static) {
				out = append(out, m)
			}
		}
		if flags.Has(apis.DeclaredOnly) {
			break
		}
	}
	return out
}

func overridden(m *Method, all []*Method) bool {
	for _, other := range all {
		for o := other.overrides; o != nil; o = o.overrides {
			if o == m {
				return true
			}
		}
	}
	return false
}

func visible(flags apis.BindingFlags, public, static bool) bool {
	if public && !flags.Has(apis.Public) || !public && !flags.Has(apis.NonPublic) {
		return false
	}
	if static {
		return flags.Has(apis.Static)
	}
	return flags.Has(apis.Instance)
}

func visibleType(flags apis.BindingFlags, public bool) bool {
	return public && flags.Has(apis.Public) || !public && flags.Has(apis.NonPublic)
}

func nameMatch(flags apis.BindingFlags, have, want string) bool {
	if flags.Has(apis.IgnoreCase) {
		return strings.EqualFold(have, want)
	}
	return have == want
}

func upcast[T any, I any](in []T) []I {
	out := make([]I, len(in))
	for i, v := range in {
		out[i] = any(v).(I)
	}
	return out
}
