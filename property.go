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
	"dirpx.dev/facade/projection"
)

// Property is the facade of an accessor pair.
type Property struct {
	member
	prop apis.Property
}

// Origin returns the underlying property, or nil for a nil facade.
func (x *Property) Origin() apis.Entity {
	if x == nil {
		return nil
	}
	return x.prop
}

var _ Member = (*Property)(nil)

// PropertyType returns the type of the property value.
func (p *Property) PropertyType() (*Type, error) {
	v, ok := p.prop.PropertyType()
	return projection.Map(v, ok, p.capability("PropertyType"), label(p.origin), p.u.Type)
}

// Getter fails for write-only properties.
func (p *Property) Getter() (*Method, error) {
	v, ok := p.prop.GetMethod()
	return projection.Map(v, ok, p.capability("GetMethod"), label(p.origin), p.u.Method)
}

// Setter fails for read-only properties.
func (p *Property) Setter() (*Method, error) {
	v, ok := p.prop.SetMethod()
	return projection.Map(v, ok, p.capability("SetMethod"), label(p.origin), p.u.Method)
}

// CanRead reports whether the property has a getter.
func (p *Property) CanRead() bool { return p.prop.CanRead() }

// CanWrite reports whether the property has a setter.
func (p *Property) CanWrite() bool { return p.prop.CanWrite() }

// IndexParameters returns the indexer parameters, empty for plain
// properties.
func (p *Property) IndexParameters() ([]*Parameter, error) {
	v, ok := p.prop.IndexParameters()
	return projection.Slice(v, ok, p.capability("IndexParameters"), label(p.origin), p.u.Parameter)
}

// Value reads the property of target, the zero Instance for static
// properties.
func (p *Property) Value(target Instance, index ...any) (any, error) {
	return p.prop.Value(target.target(), index)
}

// SetValue writes the property of target.
func (p *Property) SetValue(target Instance, value any, index ...any) error {
	return p.prop.SetValue(target.target(), value, index)
}
