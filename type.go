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
	"iter"
	"slices"

	"dirpx.dev/facade/apis"
	"dirpx.dev/facade/faults"
	"dirpx.dev/facade/projection"
)

// Type is the facade of a type definition.
type Type struct {
	member
	typ apis.Type
}

// Origin returns the underlying type, or nil for a nil facade.
func (x *Type) Origin() apis.Entity {
	if x == nil {
		return nil
	}
	return x.typ
}

var _ Member = (*Type)(nil)

// FullName returns "Namespace.Name".
func (t *Type) FullName() (string, error) {
	v, ok := t.typ.FullName()
	return projection.Present(v, ok, t.capability("FullName"), label(t.origin))
}

// Namespace fails for types in the global namespace.
func (t *Type) Namespace() (string, error) {
	v, ok := t.typ.Namespace()
	return projection.Present(v, ok, t.capability("Namespace"), label(t.origin))
}

// AssemblyName returns the identity of the assembly declaring t.
func (t *Type) AssemblyName() (*AssemblyName, error) {
	v, ok := t.typ.AssemblyName()
	return projection.Map(v, ok, t.capability("AssemblyName"), label(t.origin), t.u.AssemblyName)
}

// BaseType fails for root types and interfaces.
func (t *Type) BaseType() (*Type, error) {
	v, ok := t.typ.BaseType()
	return projection.Map(v, ok, t.capability("BaseType"), label(t.origin), t.u.Type)
}

// ElementType fails for types that are not arrays, pointers or
// collections.
func (t *Type) ElementType() (*Type, error) {
	v, ok := t.typ.ElementType()
	return projection.Map(v, ok, t.capability("ElementType"), label(t.origin), t.u.Type)
}

// Interfaces returns the implemented interfaces, possibly none.
func (t *Type) Interfaces() ([]*Type, error) {
	v, ok := t.typ.Interfaces()
	return projection.Slice(v, ok, t.capability("Interfaces"), label(t.origin), t.u.Type)
}

// IsInterface reports whether t is an interface type.
func (t *Type) IsInterface() bool { return t.typ.IsInterface() }

// IsValueType reports whether t is copied by value.
func (t *Type) IsValueType() bool { return t.typ.IsValueType() }

// IsGeneric reports whether t has type parameters.
func (t *Type) IsGeneric() bool { return t.typ.IsGeneric() }

// IsAssignableFrom reports whether a value of other can be stored in t.
func (t *Type) IsAssignableFrom(other *Type) bool {
	if other == nil {
		return false
	}
	return t.typ.IsAssignableFrom(other.typ)
}

// Enumerations. Every one takes the binding flags from opts, defaulting to
// apis.DefaultLookup, and returns members in provider order.

// Fields lists the fields of t.
func (t *Type) Fields(opts ...LookupOption) ([]*Field, error) {
	v, ok := t.typ.Fields(newLookup(opts).flags)
	return projection.Slice(v, ok, t.capability("Fields"), label(t.origin), t.u.Field)
}

// Methods lists the methods of t.
func (t *Type) Methods(opts ...LookupOption) ([]*Method, error) {
	v, ok := t.typ.Methods(newLookup(opts).flags)
	return projection.Slice(v, ok, t.capability("Methods"), label(t.origin), t.u.Method)
}

// Constructors lists the constructors of t.
func (t *Type) Constructors(opts ...LookupOption) ([]*Constructor, error) {
	v, ok := t.typ.Constructors(newLookup(opts).flags)
	return projection.Slice(v, ok, t.capability("Constructors"), label(t.origin), t.u.Constructor)
}

// Properties lists the properties of t.
func (t *Type) Properties(opts ...LookupOption) ([]*Property, error) {
	v, ok := t.typ.Properties(newLookup(opts).flags)
	return projection.Slice(v, ok, t.capability("Properties"), label(t.origin), t.u.Property)
}

// NestedTypes lists the types declared inside t.
func (t *Type) NestedTypes(opts ...LookupOption) ([]*Type, error) {
	v, ok := t.typ.NestedTypes(newLookup(opts).flags)
	return projection.Slice(v, ok, t.capability("NestedTypes"), label(t.origin), t.u.Type)
}

// Members resolves every member to its concrete facade. A member of an
// unmodelled kind fails the whole call with a *faults.ConversionError; use
// MemberSeq to skip over such members instead.
func (t *Type) Members(opts ...LookupOption) ([]Member, error) {
	v, ok := t.typ.Members(newLookup(opts).flags)
	return projection.SliceErr(v, ok, t.capability("Members"), label(t.origin), t.u.Member)
}

// MemberSeq is Members as a lazy sequence with one error per element.
func (t *Type) MemberSeq(opts ...LookupOption) iter.Seq2[Member, error] {
	v, ok := t.typ.Members(newLookup(opts).flags)
	if !ok {
		err := faults.Unsupported(t.capability("Members"), label(t.origin))
		return func(yield func(Member, error) bool) { yield(nil, err) }
	}
	return t.u.Members(slices.Values(v))
}

// Lookups. A miss is reported like any other absent provider value, as a
// capability error naming the lookup and the requested name.

// Field finds a field by name.
func (t *Type) Field(name string, opts ...LookupOption) (*Field, error) {
	v, ok := t.typ.Field(name, newLookup(opts).flags)
	return projection.Map(v, ok, t.capability("Field"), t.subject(name), t.u.Field)
}

// NestedType finds a nested type by name.
func (t *Type) NestedType(name string, opts ...LookupOption) (*Type, error) {
	v, ok := t.typ.NestedType(name, newLookup(opts).flags)
	return projection.Map(v, ok, t.capability("NestedType"), t.subject(name), t.u.Type)
}

// Method finds a method by name. Overloads are told apart with WithTypes
// and WithBinder.
func (t *Type) Method(name string, opts ...LookupOption) (*Method, error) {
	l := newLookup(opts)
	v, ok := t.typ.Method(name, l.flags, l.binder, l.types)
	return projection.Map(v, ok, t.capability("Method"), t.subject(name), t.u.Method)
}

// Constructor finds a constructor. Overloads are told apart with WithTypes
// and WithBinder.
func (t *Type) Constructor(opts ...LookupOption) (*Constructor, error) {
	l := newLookup(opts)
	v, ok := t.typ.Constructor(l.flags, l.binder, l.types)
	return projection.Map(v, ok, t.capability("Constructor"), label(t.origin), t.u.Constructor)
}

// Property finds a property by name, optionally by WithReturnType and, for
// indexers, WithTypes.
func (t *Type) Property(name string, opts ...LookupOption) (*Property, error) {
	l := newLookup(opts)
	v, ok := t.typ.Property(name, l.flags, l.binder, l.returnType, l.types)
	return projection.Map(v, ok, t.capability("Property"), t.subject(name), t.u.Property)
}

func (t *Type) subject(name string) string {
	return label(t.origin) + "::" + name
}
