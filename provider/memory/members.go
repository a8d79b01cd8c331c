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
	"errors"
	"fmt"
	"strings"
	"sync"

	"dirpx.dev/facade/apis"
)

// ErrReadOnly is returned when writing a literal field or a property
// without a setter.
var ErrReadOnly = errors.New("memory: member is read-only")

// member is the state shared by every member kind.
type member struct {
	entity
	p         *Provider
	asm       *Assembly
	name      string
	declaring *Type
	public    bool
	static    bool
	token     int
	attrs     []string
}

func (m *member) vis() (public, static bool) {
	return m.public, m.static
}

// Name returns the member name.
func (m *member) Name() (string, bool) {
	if m.absent(CapName) {
		return "", false
	}
	return m.name, true
}

// DeclaringType is absent for top-level types.
func (m *member) DeclaringType() (apis.Type, bool) {
	if m.absent(CapDeclaringType) || m.declaring == nil {
		return nil, false
	}
	return m.declaring, true
}

// ReflectedType is the type the member was obtained from. The memory
// provider always reports the declaring type.
func (m *member) ReflectedType() (apis.Type, bool) {
	if m.absent(CapReflectedType) || m.declaring == nil {
		return nil, false
	}
	return m.declaring, true
}

// Module returns the defining module name, "<assembly>.dll".
func (m *member) Module() (string, bool) {
	if m.absent(CapModule) || m.asm == nil {
		return "", false
	}
	return m.asm.name + ".dll", true
}

// MetadataToken returns the token assigned in definition order.
func (m *member) MetadataToken() (int, bool) {
	if m.absent(CapMetadataToken) {
		return 0, false
	}
	return m.token, true
}

// Attributes returns custom attribute names.
func (m *member) Attributes() ([]string, bool) {
	if m.absent(CapAttributes) {
		return nil, false
	}
	return append([]string{}, m.attrs...), true
}

// String returns the member identifier.
func (m *member) String() string {
	return m.id
}

// checkTarget applies the static/instance target rules.
func (m *member) checkTarget(target any) (any, error) {
	if m.static {
		return nil, nil
	}
	if target == nil {
		return nil, fmt.Errorf("%w: %s", ErrTargetRequired, m.id)
	}
	if o, ok := target.(*Object); ok && !m.declaring.assignableFrom(o.typ) {
		return nil, fmt.Errorf("%w: %s on %s", ErrTargetMismatch, m.id, o.typ.fullName())
	}
	return target, nil
}

// Field is a data member.
type Field struct {
	member
	typ      *Type
	constant any
	literal  bool
	initOnly bool
	initial  any

	mu          sync.RWMutex
	staticValue any
}

// Ensure Field implements apis.Field.
var _ apis.Field = (*Field)(nil)

// Static makes the field static.
func (f *Field) Static() *Field {
	f.static = true
	return f
}

// NonPublic makes the field non-public.
func (f *Field) NonPublic() *Field {
	f.public = false
	return f
}

// InitOnly marks the field as assignable only during construction.
func (f *Field) InitOnly() *Field {
	f.initOnly = true
	return f
}

// Const turns the field into a static literal bound to v.
func (f *Field) Const(v any) *Field {
	f.static = true
	f.literal = true
	f.constant = v
	return f
}

// Initial sets the value new objects (or the static slot) start with.
func (f *Field) Initial(v any) *Field {
	f.initial = v
	f.staticValue = v
	return f
}

// Attr adds custom attribute names.
func (f *Field) Attr(names ...string) *Field {
	f.attrs = append(f.attrs, names...)
	return f
}

// Hide makes the named accessors report absence.
func (f *Field) Hide(caps ...string) *Field {
	f.hide(caps)
	return f
}

// Equal reports whether other is the same field.
func (f *Field) Equal(other apis.Entity) bool {
	return sameID(f, other)
}

// FieldType returns the declared type.
func (f *Field) FieldType() (apis.Type, bool) {
	if f.absent(CapFieldType) || f.typ == nil {
		return nil, false
	}
	return f.typ, true
}

// RawConstantValue is present for literal fields only.
func (f *Field) RawConstantValue() (any, bool) {
	if f.absent(CapRawConstantValue) || !f.literal {
		return nil, false
	}
	return f.constant, true
}

// Field modifiers, as declared by the builder.
func (f *Field) IsStatic() bool   { return f.static }
func (f *Field) IsInitOnly() bool { return f.initOnly }
func (f *Field) IsLiteral() bool  { return f.literal }

// Value reads the field from target (nil for static fields).
func (f *Field) Value(target any) (any, error) {
	if f.literal {
		return f.constant, nil
	}
	target, err := f.checkTarget(target)
	if err != nil {
		return nil, err
	}
	if target == nil {
		f.mu.RLock()
		defer f.mu.RUnlock()
		return f.staticValue, nil
	}
	o, ok := target.(*Object)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a memory object", ErrTargetMismatch, target)
	}
	return o.Get(f.name), nil
}

// SetValue writes the field on target (nil for static fields).
func (f *Field) SetValue(target any, value any) error {
	if f.literal {
		return fmt.Errorf("%w: %s", ErrReadOnly, f.id)
	}
	target, err := f.checkTarget(target)
	if err != nil {
		return err
	}
	if target == nil {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.staticValue = value
		return nil
	}
	o, ok := target.(*Object)
	if !ok {
		return fmt.Errorf("%w: %T is not a memory object", ErrTargetMismatch, target)
	}
	o.Set(f.name, value)
	return nil
}

// Func is the implementation bound to a method. target is nil for static
// methods; a nil result means void.
type Func func(target any, args []any) (any, error)

// methodBase is the state shared by methods and constructors.
type methodBase struct {
	member
	params   []*Parameter
	abstract bool
	fn       Func
}

// Parameters returns the formal parameters in order.
func (m *methodBase) Parameters() ([]apis.Parameter, bool) {
	if m.absent(CapParameters) {
		return nil, false
	}
	return upcast[*Parameter, apis.Parameter](m.params), true
}

// Method modifiers, as declared by the builder.
func (m *methodBase) IsStatic() bool   { return m.static }
func (m *methodBase) IsAbstract() bool { return m.abstract }
func (m *methodBase) IsPublic() bool   { return m.public }

// Invoke calls the bound implementation.
func (m *methodBase) Invoke(target any, args []any) (any, error) {
	if m.fn == nil || m.abstract {
		return nil, fmt.Errorf("%w: %s", ErrNotInvocable, m.id)
	}
	if len(args) != len(m.params) {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrParameterCount, m.id, len(m.params), len(args))
	}
	target, err := m.checkTarget(target)
	if err != nil {
		return nil, err
	}
	return m.fn(target, args)
}

// Method is a named method.
type Method struct {
	methodBase
	returns   *Type
	overrides *Method
}

// Ensure Method implements apis.Method.
var _ apis.Method = (*Method)(nil)

// Func binds the implementation.
func (m *Method) Func(fn Func) *Method {
	m.fn = fn
	return m
}

// Static makes the method static.
func (m *Method) Static() *Method {
	m.static = true
	return m
}

// NonPublic makes the method non-public.
func (m *Method) NonPublic() *Method {
	m.public = false
	return m
}

// Abstract marks the method abstract; abstract methods cannot be invoked.
func (m *Method) Abstract() *Method {
	m.abstract = true
	return m
}

// Overrides records base as the overridden method.
func (m *Method) Overrides(base *Method) *Method {
	m.overrides = base
	return m
}

// Attr adds custom attribute names.
func (m *Method) Attr(names ...string) *Method {
	m.attrs = append(m.attrs, names...)
	return m
}

// Hide makes the named accessors report absence.
func (m *Method) Hide(caps ...string) *Method {
	m.hide(caps)
	return m
}

// Equal reports whether other is the same method.
func (m *Method) Equal(other apis.Entity) bool {
	return sameID(m, other)
}

// ReturnType returns the declared return type.
func (m *Method) ReturnType() (apis.Type, bool) {
	if m.absent(CapReturnType) || m.returns == nil {
		return nil, false
	}
	return m.returns, true
}

// BaseDefinition returns the root of the override chain.
func (m *Method) BaseDefinition() (apis.Method, bool) {
	if m.absent(CapBaseDefinition) {
		return nil, false
	}
	root := m
	for root.overrides != nil {
		root = root.overrides
	}
	return root, true
}

// Constructor is a type initializer.
type Constructor struct {
	methodBase
}

// Ensure Constructor implements apis.Constructor.
var _ apis.Constructor = (*Constructor)(nil)

// Init binds the initializer run on every new object.
func (c *Constructor) Init(fn func(o *Object, args []any) error) *Constructor {
	c.fn = func(target any, args []any) (any, error) {
		o, ok := target.(*Object)
		if !ok {
			return nil, fmt.Errorf("%w: %T is not a memory object", ErrTargetMismatch, target)
		}
		return nil, fn(o, args)
	}
	return c
}

// NonPublic makes the constructor non-public.
func (c *Constructor) NonPublic() *Constructor {
	c.public = false
	return c
}

// Hide makes the named accessors report absence.
func (c *Constructor) Hide(caps ...string) *Constructor {
	c.hide(caps)
	return c
}

// Equal reports whether other is the same constructor.
func (c *Constructor) Equal(other apis.Entity) bool {
	return sameID(c, other)
}

// New creates an object of the declaring type and runs the initializer.
func (c *Constructor) New(args []any) (any, error) {
	if len(args) != len(c.params) {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrParameterCount, c.id, len(c.params), len(args))
	}
	o := NewObject(c.declaring)
	if c.fn != nil {
		if _, err := c.fn(o, args); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Property is an accessor pair.
type Property struct {
	member
	typ       *Type
	index     []*Parameter
	indexSpec []ParamSpec
	getter    *Method
	setter    *Method
}

// Ensure Property implements apis.Property.
var _ apis.Property = (*Property)(nil)

// Get defines the getter "get_<Name>" bound to fn.
func (p *Property) Get(fn func(target any, index []any) (any, error)) *Property {
	p.getter = p.declaring.DefineMethod("get_"+p.name, p.typ, p.indexSpec...).Func(func(target any, args []any) (any, error) {
		return fn(target, args)
	})
	p.getter.static = p.static
	return p
}

// Set defines the setter "set_<Name>" bound to fn.
func (p *Property) Set(fn func(target any, value any, index []any) error) *Property {
	params := append(append([]ParamSpec{}, p.indexSpec...), Param("value", p.typ))
	void := p.p.types["System.Void"]
	p.setter = p.declaring.DefineMethod("set_"+p.name, void, params...).Func(func(target any, args []any) (any, error) {
		n := len(args) - 1
		return nil, fn(target, args[n], args[:n])
	})
	p.setter.static = p.static
	return p
}

// Static makes the property and its accessors static.
func (p *Property) Static() *Property {
	p.static = true
	for _, m := range []*Method{p.getter, p.setter} {
		if m != nil {
			m.static = true
		}
	}
	return p
}

// NonPublic makes the property non-public.
func (p *Property) NonPublic() *Property {
	p.public = false
	return p
}

// Hide makes the named accessors report absence.
func (p *Property) Hide(caps ...string) *Property {
	p.hide(caps)
	return p
}

// Equal reports whether other is the same property.
func (p *Property) Equal(other apis.Entity) bool {
	return sameID(p, other)
}

// PropertyType returns the declared type.
func (p *Property) PropertyType() (apis.Type, bool) {
	if p.absent(CapPropertyType) || p.typ == nil {
		return nil, false
	}
	return p.typ, true
}

// GetMethod is absent for write-only properties.
func (p *Property) GetMethod() (apis.Method, bool) {
	if p.getter == nil {
		return nil, false
	}
	return p.getter, true
}

// SetMethod is absent for read-only properties.
func (p *Property) SetMethod() (apis.Method, bool) {
	if p.setter == nil {
		return nil, false
	}
	return p.setter, true
}

// A property is readable with a getter and writable with a setter.
func (p *Property) CanRead() bool  { return p.getter != nil }
func (p *Property) CanWrite() bool { return p.setter != nil }

// IndexParameters returns the indexer parameters; empty for plain properties.
func (p *Property) IndexParameters() ([]apis.Parameter, bool) {
	if p.absent(CapIndexParameters) {
		return nil, false
	}
	return upcast[*Parameter, apis.Parameter](p.index), true
}

// Value calls the getter.
func (p *Property) Value(target any, index []any) (any, error) {
	if p.getter == nil {
		return nil, fmt.Errorf("%w: %s has no getter", ErrNotInvocable, p.id)
	}
	return p.getter.Invoke(target, index)
}

// SetValue calls the setter.
func (p *Property) SetValue(target any, value any, index []any) error {
	if p.setter == nil {
		return fmt.Errorf("%w: %s", ErrReadOnly, p.id)
	}
	_, err := p.setter.Invoke(target, append(append([]any{}, index...), value))
	return err
}

// indexSignature is a method-shaped view of p's index parameters, used to
// let a binder choose among overloaded indexers.
func indexSignature(p *Property) *Method {
	m := &Method{returns: p.typ}
	m.member = p.member
	m.entity = newEntity("method", p.id+"#index")
	m.params = p.index
	return m
}

// Event is a member kind the facade layer does not model.
type Event struct {
	member
	handler *Type
}

// Equal reports whether other is the same event.
func (e *Event) Equal(other apis.Entity) bool {
	return sameID(e, other)
}

// EventHandlerType returns the delegate type of the event.
func (e *Event) EventHandlerType() (apis.Type, bool) {
	if e.handler == nil {
		return nil, false
	}
	return e.handler, true
}

// ParamSpec describes a parameter in builder calls.
type ParamSpec struct {
	Name       string
	Type       *Type
	def        any
	hasDefault bool
}

// Param returns a ParamSpec without a default value.
func Param(name string, typ *Type) ParamSpec {
	return ParamSpec{Name: name, Type: typ}
}

// Default returns a copy of s with a default value.
func (s ParamSpec) Default(v any) ParamSpec {
	s.def = v
	s.hasDefault = true
	return s
}

// Parameter is a formal parameter.
type Parameter struct {
	entity
	name   string
	typ    *Type
	pos    int
	def    any
	hasDef bool
	owner  apis.Member
}

// Ensure Parameter implements apis.Parameter.
var _ apis.Parameter = (*Parameter)(nil)

func newParameters(owner apis.Member, ownerID string, specs []ParamSpec) []*Parameter {
	out := make([]*Parameter, len(specs))
	for i, s := range specs {
		out[i] = &Parameter{
			entity: newEntity("param", fmt.Sprintf("%s#%d", ownerID, i)),
			name:   s.Name,
			typ:    s.Type,
			pos:    i,
			def:    s.def,
			hasDef: s.hasDefault,
			owner:  owner,
		}
	}
	return out
}

// Hide makes the named accessors report absence.
func (p *Parameter) Hide(caps ...string) *Parameter {
	p.hide(caps)
	return p
}

// Equal reports whether other is the same parameter.
func (p *Parameter) Equal(other apis.Entity) bool {
	return sameID(p, other)
}

// Name is absent for unnamed parameters.
func (p *Parameter) Name() (string, bool) {
	if p.absent(CapName) || p.name == "" {
		return "", false
	}
	return p.name, true
}

// ParameterType returns the declared type.
func (p *Parameter) ParameterType() (apis.Type, bool) {
	if p.absent(CapParameterType) || p.typ == nil {
		return nil, false
	}
	return p.typ, true
}

// Position returns the zero-based index in the signature.
func (p *Parameter) Position() int { return p.pos }

// String returns the parameter identifier.
func (p *Parameter) String() string { return p.id }

// DefaultValue is present for optional parameters only.
func (p *Parameter) DefaultValue() (any, bool) {
	if p.absent(CapDefaultValue) || !p.hasDef {
		return nil, false
	}
	return p.def, true
}

// Member returns the owning method, constructor or property.
func (p *Parameter) Member() (apis.Member, bool) {
	if p.absent(CapMember) || p.owner == nil {
		return nil, false
	}
	return p.owner, true
}

// signature renders "(T1,T2)" for identity paths.
func signature(params []ParamSpec) string {
	names := make([]string, len(params))
	for i, p := range params {
		if p.Type != nil {
			names[i] = p.Type.fullName()
		} else {
			names[i] = "?"
		}
	}
	return "(" + strings.Join(names, ",") + ")"
}
