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
	"fmt"

	"dirpx.dev/facade/apis"
	"dirpx.dev/facade/faults"
	"dirpx.dev/facade/kind"
	"dirpx.dev/facade/projection"
)

// Entity is implemented by every facade.
type Entity interface {
	// Origin returns the underlying entity. It never changes.
	Origin() apis.Entity
	// Equal reports whether other wraps an entity the provider considers
	// equal to this one's origin.
	Equal(other Entity) bool
	// Hash is the origin's hash.
	Hash() uint64
}

// Member is the facade of a type member: *Type, *Field, *Method,
// *Constructor or *Property. The set is closed.
type Member interface {
	Entity
	Kind() kind.Kind

	Name() (string, error)
	DeclaringType() (*Type, error)
	ReflectedType() (*Type, error)
	Module() (string, error)
	MetadataToken() (int, error)
	Attributes() ([]string, error)
	String() string

	base() *member
}

// member binds an origin to the universe that built the facade.
type member struct {
	u      *Universe
	origin apis.Member
	kind   kind.Kind
}

func (m *member) base() *member { return m }

// Kind returns the concrete kind.
func (m *member) Kind() kind.Kind { return m.kind }

// Equal reports whether other wraps an equal origin.
func (m *member) Equal(other Entity) bool {
	return sameOrigin(m.origin, other)
}

// Hash returns the origin's hash.
func (m *member) Hash() uint64 { return m.origin.Hash() }

func (m *member) capability(name string) faults.Capability {
	return faults.Capability{Kind: m.kind.String(), Name: name}
}

// Name returns the member's simple name.
func (m *member) Name() (string, error) {
	v, ok := m.origin.Name()
	return projection.Present(v, ok, m.capability("Name"), label(m.origin))
}

// DeclaringType fails for top-level types.
func (m *member) DeclaringType() (*Type, error) {
	v, ok := m.origin.DeclaringType()
	return projection.Map(v, ok, m.capability("DeclaringType"), label(m.origin), m.u.Type)
}

// ReflectedType returns the type the member was obtained from.
func (m *member) ReflectedType() (*Type, error) {
	v, ok := m.origin.ReflectedType()
	return projection.Map(v, ok, m.capability("ReflectedType"), label(m.origin), m.u.Type)
}

// Module returns the name of the module declaring the member.
func (m *member) Module() (string, error) {
	v, ok := m.origin.Module()
	return projection.Present(v, ok, m.capability("Module"), label(m.origin))
}

// MetadataToken returns the provider's token for the member.
func (m *member) MetadataToken() (int, error) {
	v, ok := m.origin.MetadataToken()
	return projection.Present(v, ok, m.capability("MetadataToken"), label(m.origin))
}

// Attributes returns the custom attribute names, possibly none.
func (m *member) Attributes() ([]string, error) {
	v, ok := m.origin.Attributes()
	return projection.Slice(v, ok, m.capability("Attributes"), label(m.origin), identity[string])
}

// String describes the member for logs and errors.
func (m *member) String() string {
	return m.kind.String() + " " + label(m.origin)
}

// sameOrigin compares through other's Origin, which every kind answers
// with nil on a nil receiver.
func sameOrigin(origin apis.Entity, other Entity) bool {
	if other == nil {
		return false
	}
	o := other.Origin()
	return o != nil && origin.Equal(o)
}

// label renders e for error messages, best effort.
func label(e any) string {
	if s, ok := e.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", e)
}

func identity[T any](v T) T { return v }
