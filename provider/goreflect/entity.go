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
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"

	"dirpx.dev/facade/apis"
)

var errorType = reflect.TypeFor[error]()

// entity carries the identity hash. Equality is decided per kind on the
// underlying reflect value, the hash only narrows candidates.
type entity struct {
	hash uint64
}

func newEntity(kind, key string) entity {
	return entity{hash: xxhash.Sum64String(kind + ":" + key)}
}

// Hash returns the precomputed xxhash of the entity key.
func (e entity) Hash() uint64 { return e.hash }

// typeKey is a hash key for t: two distinct types may share it.
func typeKey(t reflect.Type) string {
	return t.PkgPath() + " " + t.String()
}

// Package is a Go package seen as an assembly.
type Package struct {
	entity
	path    string
	version string
}

// Ensure Package implements apis.AssemblyName.
var _ apis.AssemblyName = (*Package)(nil)

// Equal reports whether other is the package with the same import path.
func (a *Package) Equal(other apis.Entity) bool {
	o, ok := other.(*Package)
	return ok && o.path == a.path
}

// Name returns the import path.
func (a *Package) Name() (string, bool) {
	return a.path, true
}

// FullName returns "path, Version=v" or the bare path when unversioned.
func (a *Package) FullName() (string, bool) {
	if a.version == "" {
		return a.path, true
	}
	return a.path + ", Version=" + a.version, true
}

// Version is the module version from build info, absent when unknown.
func (a *Package) Version() (string, bool) {
	return a.version, a.version != ""
}

// CultureName is always the invariant culture.
func (a *Package) CultureName() (string, bool) {
	return "", true
}

// PublicKeyToken is absent: Go packages are not signed.
func (a *Package) PublicKeyToken() ([]byte, bool) {
	return nil, false
}

// String returns the import path.
func (a *Package) String() string {
	return a.path
}

// Parameter is a function parameter. Go keeps no parameter names.
type Parameter struct {
	entity
	owner apis.Member
	typ   reflect.Type
	pos   int
	p     *Provider
}

// Ensure Parameter implements apis.Parameter.
var _ apis.Parameter = (*Parameter)(nil)

func newParameters(p *Provider, owner apis.Member, ownerKey string, in []reflect.Type) []apis.Parameter {
	out := make([]apis.Parameter, len(in))
	for i, t := range in {
		out[i] = &Parameter{
			entity: newEntity("param", fmt.Sprintf("%s#%d", ownerKey, i)),
			owner:  owner,
			typ:    t,
			pos:    i,
			p:      p,
		}
	}
	return out
}

// Equal reports whether other is the same position of an equal owner.
func (p *Parameter) Equal(other apis.Entity) bool {
	o, ok := other.(*Parameter)
	return ok && o.pos == p.pos && o.owner.Equal(p.owner)
}

// Name is absent: reflect does not expose parameter names.
func (p *Parameter) Name() (string, bool) { return "", false }

// ParameterType returns the declared Go type.
func (p *Parameter) ParameterType() (apis.Type, bool) {
	return p.p.typeOf(p.typ), true
}

// Position returns the zero-based index in the signature.
func (p *Parameter) Position() int { return p.pos }

// DefaultValue is absent: Go has no default arguments.
func (p *Parameter) DefaultValue() (any, bool) { return nil, false }

// Member returns the function owning the parameter.
func (p *Parameter) Member() (apis.Member, bool) { return p.owner, true }

// String describes the parameter as owner#position.
func (p *Parameter) String() string {
	return fmt.Sprintf("%v#%d", p.owner, p.pos)
}

// goMember holds the accessors every Go member answers alike: Go has no
// metadata tokens and no custom attributes.
type goMember struct{}

func (goMember) MetadataToken() (int, bool)   { return 0, false }
func (goMember) Attributes() ([]string, bool) { return []string{}, true }
