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
	"dirpx.dev/facade/apis"
	"dirpx.dev/facade/faults"
	"dirpx.dev/facade/kind"
	"dirpx.dev/facade/projection"
)

// AssemblyName is the facade of an assembly identity. It is not cached:
// compare assembly names with Equal, not ==.
type AssemblyName struct {
	u      *Universe
	origin apis.AssemblyName
}

var _ Entity = (*AssemblyName)(nil)

// Origin returns the underlying assembly name, or nil for a nil facade.
func (a *AssemblyName) Origin() apis.Entity {
	if a == nil {
		return nil
	}
	return a.origin
}

// Equal reports whether other wraps an equal assembly name.
func (a *AssemblyName) Equal(other Entity) bool { return sameOrigin(a.origin, other) }

// Hash returns the origin's hash.
func (a *AssemblyName) Hash() uint64 { return a.origin.Hash() }

func (a *AssemblyName) capability(name string) faults.Capability {
	return faults.Capability{Kind: kind.AssemblyName.String(), Name: name}
}

// Name returns the simple name.
func (a *AssemblyName) Name() (string, error) {
	v, ok := a.origin.Name()
	return projection.Present(v, ok, a.capability("Name"), label(a.origin))
}

// FullName returns the display name, version, culture and key token
// included.
func (a *AssemblyName) FullName() (string, error) {
	v, ok := a.origin.FullName()
	return projection.Present(v, ok, a.capability("FullName"), label(a.origin))
}

// Version returns the assembly version.
func (a *AssemblyName) Version() (string, error) {
	v, ok := a.origin.Version()
	return projection.Present(v, ok, a.capability("Version"), label(a.origin))
}

// CultureName returns the assembly culture, empty for the invariant one.
func (a *AssemblyName) CultureName() (string, error) {
	v, ok := a.origin.CultureName()
	return projection.Present(v, ok, a.capability("CultureName"), label(a.origin))
}

// PublicKeyToken fails for unsigned assemblies.
func (a *AssemblyName) PublicKeyToken() ([]byte, error) {
	v, ok := a.origin.PublicKeyToken()
	return projection.Present(v, ok, a.capability("PublicKeyToken"), label(a.origin))
}

// String returns the display name of the assembly.
func (a *AssemblyName) String() string {
	return kind.AssemblyName.String() + " " + label(a.origin)
}

// Parameter is the facade of a formal parameter. It is not cached.
type Parameter struct {
	u      *Universe
	origin apis.Parameter
}

var _ Entity = (*Parameter)(nil)

// Origin returns the underlying parameter, or nil for a nil facade.
func (p *Parameter) Origin() apis.Entity {
	if p == nil {
		return nil
	}
	return p.origin
}

// Equal reports whether other wraps an equal parameter.
func (p *Parameter) Equal(other Entity) bool { return sameOrigin(p.origin, other) }

// Hash returns the origin's hash.
func (p *Parameter) Hash() uint64 { return p.origin.Hash() }

func (p *Parameter) capability(name string) faults.Capability {
	return faults.Capability{Kind: kind.Parameter.String(), Name: name}
}

// Name returns the parameter name.
func (p *Parameter) Name() (string, error) {
	v, ok := p.origin.Name()
	return projection.Present(v, ok, p.capability("Name"), label(p.origin))
}

// ParameterType returns the declared type of the parameter.
func (p *Parameter) ParameterType() (*Type, error) {
	v, ok := p.origin.ParameterType()
	return projection.Map(v, ok, p.capability("ParameterType"), label(p.origin), p.u.Type)
}

// Position is the zero-based position in the signature.
func (p *Parameter) Position() int {
	return p.origin.Position()
}

// DefaultValue fails for parameters without a default.
func (p *Parameter) DefaultValue() (any, error) {
	v, ok := p.origin.DefaultValue()
	return projection.Present(v, ok, p.capability("DefaultValue"), label(p.origin))
}

// Member resolves the member declaring the parameter.
func (p *Parameter) Member() (Member, error) {
	v, ok := p.origin.Member()
	return projection.MapErr(v, ok, p.capability("Member"), label(p.origin), p.u.Member)
}

// String describes the parameter for logs and errors.
func (p *Parameter) String() string {
	return kind.Parameter.String() + " " + label(p.origin)
}
