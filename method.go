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
	"dirpx.dev/facade/kind"
	"dirpx.dev/facade/projection"
)

// MethodBase is the facade of an invocable member: *Method or
// *Constructor.
type MethodBase interface {
	Member

	Parameters() ([]*Parameter, error)
	IsStatic() bool
	IsAbstract() bool
	IsPublic() bool
	Invoke(target Instance, args ...any) (Instance, error)
}

// methodBase is the state shared by methods and constructors.
type methodBase struct {
	member
	mb apis.MethodBase
}

func newMethodBase(u *Universe, mb apis.MethodBase, k kind.Kind) methodBase {
	return methodBase{member: member{u: u, origin: mb, kind: k}, mb: mb}
}

// Parameters returns the formal parameters in declaration order.
func (m *methodBase) Parameters() ([]*Parameter, error) {
	v, ok := m.mb.Parameters()
	return projection.Slice(v, ok, m.capability("Parameters"), label(m.origin), m.u.Parameter)
}

// IsStatic reports whether the member is called without a receiver.
func (m *methodBase) IsStatic() bool { return m.mb.IsStatic() }

// IsAbstract reports whether the member has no implementation.
func (m *methodBase) IsAbstract() bool { return m.mb.IsAbstract() }

// IsPublic reports whether the member is exported.
func (m *methodBase) IsPublic() bool { return m.mb.IsPublic() }

// Invoke calls the member on target, the zero Instance for static members.
// A void call returns the zero Instance. Provider errors are returned as
// they are.
func (m *methodBase) Invoke(target Instance, args ...any) (Instance, error) {
	res, err := m.mb.Invoke(target.target(), args)
	if err != nil {
		return Instance{}, err
	}
	return instanceOf(res), nil
}

// Method is the facade of a named method.
type Method struct {
	methodBase
	method apis.Method
}

// Origin returns the underlying method, or nil for a nil facade.
func (x *Method) Origin() apis.Entity {
	if x == nil {
		return nil
	}
	return x.method
}

var _ MethodBase = (*Method)(nil)

// ReturnType returns the declared return type; void methods report the
// provider's void type.
func (m *Method) ReturnType() (*Type, error) {
	v, ok := m.method.ReturnType()
	return projection.Map(v, ok, m.capability("ReturnType"), label(m.origin), m.u.Type)
}

// BaseDefinition returns the method first declaring this slot, m itself
// when it overrides nothing.
func (m *Method) BaseDefinition() (*Method, error) {
	v, ok := m.method.BaseDefinition()
	return projection.Map(v, ok, m.capability("BaseDefinition"), label(m.origin), m.u.Method)
}

// Constructor is the facade of a type initializer.
type Constructor struct {
	methodBase
	ctor apis.Constructor
}

// Origin returns the underlying constructor, or nil for a nil facade.
func (x *Constructor) Origin() apis.Entity {
	if x == nil {
		return nil
	}
	return x.ctor
}

var _ MethodBase = (*Constructor)(nil)

// New creates an instance of the declaring type.
func (c *Constructor) New(args ...any) (Instance, error) {
	res, err := c.ctor.New(args)
	if err != nil {
		return Instance{}, err
	}
	return instanceOf(res), nil
}
