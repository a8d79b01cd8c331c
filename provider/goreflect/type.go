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

package goreflect

import (
	"path"
	"reflect"
	"strings"

	"dirpx.dev/facade/apis"
)

// Type is a Go type.
type Type struct {
	entity
	goMember
	p *Provider
	t reflect.Type
}

// Ensure Type implements apis.Type.
var _ apis.Type = (*Type)(nil)

func (p *Provider) typeOf(t reflect.Type) *Type {
	return &Type{entity: newEntity("type", typeKey(t)), p: p, t: t}
}

// Reflect returns the described Go type.
func (t *Type) Reflect() reflect.Type { return t.t }

// Equal reports whether other wraps the same reflect.Type.
func (t *Type) Equal(other apis.Entity) bool {
	o, ok := other.(*Type)
	return ok && o.t == t.t
}

// Name is absent for unnamed types.
func (t *Type) Name() (string, bool) {
	n := stripTypeParams(t.t.Name())
	return n, n != ""
}

// DeclaringType and ReflectedType are absent: Go types do not nest.
func (t *Type) DeclaringType() (apis.Type, bool) { return nil, false }
func (t *Type) ReflectedType() (apis.Type, bool) { return nil, false }

// Module is the package path, absent for predeclared and unnamed types.
func (t *Type) Module() (string, bool) {
	pkg := t.t.PkgPath()
	return pkg, pkg != ""
}

// FullName returns the package-qualified type name.
func (t *Type) FullName() (string, bool) {
	return typeName(t.t), true
}

// Namespace is the package name, absent outside packages.
func (t *Type) Namespace() (string, bool) {
	if pkg := t.t.PkgPath(); pkg != "" {
		return path.Base(pkg), true
	}
	return "", false
}

// AssemblyName returns the declaring package, absent for unnamed types.
func (t *Type) AssemblyName() (apis.AssemblyName, bool) {
	if pkg := t.t.PkgPath(); pkg != "" {
		return t.p.pkg(pkg), true
	}
	return nil, false
}

// BaseType is absent: Go has no inheritance.
func (t *Type) BaseType() (apis.Type, bool) { return nil, false }

// ElementType is present for pointers, slices, arrays, channels and maps.
func (t *Type) ElementType() (apis.Type, bool) {
	switch t.t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan, reflect.Map:
		return t.p.typeOf(t.t.Elem()), true
	default:
		return nil, false
	}
}

// Interfaces lists the registered non-empty interfaces implemented by t
// or *t.
func (t *Type) Interfaces() ([]apis.Type, bool) {
	out := []apis.Type{}
	for _, r := range t.p.registered() {
		if r == t.t || r.Kind() != reflect.Interface || r.NumMethod() == 0 {
			continue
		}
		if t.t.Implements(r) || t.t.Kind() != reflect.Interface && reflect.PointerTo(t.t).Implements(r) {
			out = append(out, t.p.typeOf(r))
		}
	}
	return out, true
}

// IsInterface reports whether t is a Go interface.
func (t *Type) IsInterface() bool { return t.t.Kind() == reflect.Interface }

// IsValueType reports whether t is copied by value.
func (t *Type) IsValueType() bool {
	switch t.t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return false
	default:
		return true
	}
}

// IsGeneric reports whether t is an instantiation of a generic type.
func (t *Type) IsGeneric() bool { return strings.Contains(t.t.Name(), "[") }

// IsAssignableFrom reports whether a value of other, or a pointer to one
// for interface targets, can be stored in t.
func (t *Type) IsAssignableFrom(other apis.Type) bool {
	o, ok := other.(*Type)
	if !ok || o == nil {
		return false
	}
	if o.t.AssignableTo(t.t) {
		return true
	}
	return t.t.Kind() == reflect.Interface && o.t.Kind() != reflect.Interface && reflect.PointerTo(o.t).Implements(t.t)
}

// Fields lists struct fields, promoted ones included unless DeclaredOnly.
// Go has no static fields.
func (t *Type) Fields(flags apis.BindingFlags) ([]apis.Field, bool) {
	out := []apis.Field{}
	if t.t.Kind() != reflect.Struct || !flags.Has(apis.Instance) {
		return out, true
	}
	for _, f := range reflect.VisibleFields(t.t) {
		if flags.Has(apis.DeclaredOnly) && len(f.Index) > 1 {
			continue
		}
		if !visible(flags, f.IsExported()) {
			continue
		}
		out = append(out, t.p.fieldOf(t.t, f))
	}
	return out, true
}

// Methods lists the method set of *t, or of t for interfaces. Only
// exported methods are in a Go method set.
func (t *Type) Methods(flags apis.BindingFlags) ([]apis.Method, bool) {
	out := []apis.Method{}
	if !flags.Has(apis.Instance) || !flags.Has(apis.Public) {
		return out, true
	}
	recv := t.receiver()
	for i := range recv.NumMethod() {
		out = append(out, t.p.methodOf(t.t, recv, recv.Method(i)))
	}
	return out, true
}

func (t *Type) receiver() reflect.Type {
	if t.t.Kind() == reflect.Interface {
		return t.t
	}
	return reflect.PointerTo(t.t)
}

// Constructors lists the functions registered for t.
func (t *Type) Constructors(flags apis.BindingFlags) ([]apis.Constructor, bool) {
	out := []apis.Constructor{}
	if !flags.Has(apis.Instance) || !flags.Has(apis.Public) {
		return out, true
	}
	for i, fn := range t.p.constructors(t.t) {
		out = append(out, t.p.constructorOf(t.t, i, fn))
	}
	return out, true
}

// Properties is always empty.
func (t *Type) Properties(apis.BindingFlags) ([]apis.Property, bool) {
	return []apis.Property{}, true
}

// NestedTypes is always empty.
func (t *Type) NestedTypes(apis.BindingFlags) ([]apis.Type, bool) {
	return []apis.Type{}, true
}

// Members lists fields, then constructors, then methods.
func (t *Type) Members(flags apis.BindingFlags) ([]apis.Member, bool) {
	fs, _ := t.Fields(flags)
	cs, _ := t.Constructors(flags)
	ms, _ := t.Methods(flags)
	out := make([]apis.Member, 0, len(fs)+len(cs)+len(ms))
	for _, f := range fs {
		out = append(out, f)
	}
	for _, c := range cs {
		out = append(out, c)
	}
	for _, m := range ms {
		out = append(out, m)
	}
	return out, true
}

// Field finds a visible field by name, case-insensitively under
// apis.IgnoreCase.
func (t *Type) Field(name string, flags apis.BindingFlags) (apis.Field, bool) {
	fs, _ := t.Fields(flags)
	for _, f := range fs {
		if nameMatch(flags, f.(*Field).f.Name, name) {
			return f, true
		}
	}
	return nil, false
}

// NestedType is always absent.
func (t *Type) NestedType(string, apis.BindingFlags) (apis.Type, bool) {
	return nil, false
}

// Method finds a method by name. Go has no overloading; binder and types
// only confirm the single candidate.
func (t *Type) Method(name string, flags apis.BindingFlags, binder apis.Binder, types []apis.Type) (apis.Method, bool) {
	ms, _ := t.Methods(flags)
	var candidates []apis.MethodBase
	for _, m := range ms {
		if nameMatch(flags, m.(*Method).m.Name, name) {
			candidates = append(candidates, m)
		}
	}
	sel, ok := choose(binder, flags, candidates, types)
	if !ok {
		return nil, false
	}
	m, ok := sel.(apis.Method)
	return m, ok
}

// Constructor selects among the registered constructors.
func (t *Type) Constructor(flags apis.BindingFlags, binder apis.Binder, types []apis.Type) (apis.Constructor, bool) {
	cs, _ := t.Constructors(flags)
	candidates := make([]apis.MethodBase, len(cs))
	for i, c := range cs {
		candidates[i] = c
	}
	sel, ok := choose(binder, flags, candidates, types)
	if !ok {
		return nil, false
	}
	c, ok := sel.(apis.Constructor)
	return c, ok
}

// Property is always absent.
func (t *Type) Property(string, apis.BindingFlags, apis.Binder, apis.Type, []apis.Type) (apis.Property, bool) {
	return nil, false
}

// String returns the Go type name.
func (t *Type) String() string {
	return typeName(t.t)
}

func visible(flags apis.BindingFlags, exported bool) bool {
	return exported && flags.Has(apis.Public) || !exported && flags.Has(apis.NonPublic)
}

func nameMatch(flags apis.BindingFlags, have, want string) bool {
	if flags.Has(apis.IgnoreCase) {
		return strings.EqualFold(have, want)
	}
	return have == want
}

// choose applies binder, or the exact-signature rule when binder is nil.
func choose(binder apis.Binder, flags apis.BindingFlags, candidates []apis.MethodBase, types []apis.Type) (apis.MethodBase, bool) {
	if len(candidates) == 0 {
		return nil, false
	}
	if binder != nil {
		return binder.SelectMethod(flags, candidates, types)
	}
	if types == nil {
		if len(candidates) == 1 {
			return candidates[0], true
		}
		return nil, false
	}
	for _, c := range candidates {
		if signatureMatches(c, types) {
			return c, true
		}
	}
	return nil, false
}

func signatureMatches(m apis.MethodBase, types []apis.Type) bool {
	params, _ := m.Parameters()
	if len(params) != len(types) {
		return false
	}
	for i, p := range params {
		pt, _ := p.ParameterType()
		if types[i] == nil || !pt.Equal(types[i]) {
			return false
		}
	}
	return true
}
