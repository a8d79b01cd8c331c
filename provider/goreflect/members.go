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
	"errors"
	"fmt"
	"path"
	"reflect"
	"runtime"
	"slices"
	"strconv"

	"dirpx.dev/facade/apis"
)

var (
	// ErrTargetRequired is returned when an instance member is used without a target.
	ErrTargetRequired = errors.New("goreflect: member requires a target")
	// ErrTargetMismatch is returned when the target is not of the declaring type.
	ErrTargetMismatch = errors.New("goreflect: target is not of the declaring type")
	// ErrUnexported is returned when reading or writing an unexported field.
	ErrUnexported = errors.New("goreflect: field is not exported")
	// ErrParameterCount is returned when a call passes the wrong number of arguments.
	ErrParameterCount = errors.New("goreflect: parameter count mismatch")
	// ErrArgumentType is returned when an argument cannot be converted to its parameter type.
	ErrArgumentType = errors.New("goreflect: argument type mismatch")
)

// Field is a struct field.
type Field struct {
	entity
	goMember
	p     *Provider
	owner reflect.Type
	f     reflect.StructField
}

// Ensure Field implements apis.Field.
var _ apis.Field = (*Field)(nil)

func (p *Provider) fieldOf(owner reflect.Type, f reflect.StructField) *Field {
	return &Field{entity: newEntity("field", typeKey(owner)+"::"+f.Name), p: p, owner: owner, f: f}
}

// Equal reports whether other is the same field of the same struct type.
func (f *Field) Equal(other apis.Entity) bool {
	o, ok := other.(*Field)
	return ok && o.owner == f.owner && slices.Equal(o.f.Index, f.f.Index)
}

// Identity accessors of a struct field.
func (f *Field) Name() (string, bool)             { return f.f.Name, true }
func (f *Field) DeclaringType() (apis.Type, bool) { return f.p.typeOf(f.owner), true }
func (f *Field) ReflectedType() (apis.Type, bool) { return f.p.typeOf(f.owner), true }
func (f *Field) Module() (string, bool)           { return f.owner.PkgPath(), f.owner.PkgPath() != "" }
func (f *Field) FieldType() (apis.Type, bool)     { return f.p.typeOf(f.f.Type), true }

// RawConstantValue is absent: struct fields are never constants.
func (f *Field) RawConstantValue() (any, bool) { return nil, false }

// Go struct fields are plain instance fields, never init-only or constant.
func (f *Field) IsStatic() bool   { return false }
func (f *Field) IsInitOnly() bool { return false }
func (f *Field) IsLiteral() bool  { return false }

// Value reads the field of a struct value or pointer.
func (f *Field) Value(target any) (any, error) {
	rv, err := f.structValue(target)
	if err != nil {
		return nil, err
	}
	if !f.f.IsExported() {
		return nil, fmt.Errorf("%w: %s", ErrUnexported, f)
	}
	fv, err := rv.FieldByIndexErr(f.f.Index)
	if err != nil {
		return nil, err
	}
	return fv.Interface(), nil
}

// SetValue writes the field; target must be a pointer.
func (f *Field) SetValue(target any, value any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer {
		return fmt.Errorf("%w: %s needs a pointer target, got %T", ErrTargetMismatch, f, target)
	}
	sv, err := f.structValue(target)
	if err != nil {
		return err
	}
	fv, err := sv.FieldByIndexErr(f.f.Index)
	if err != nil {
		return err
	}
	if !fv.CanSet() {
		return fmt.Errorf("%w: %s", ErrUnexported, f)
	}
	v, err := argument(value, f.f.Type)
	if err != nil {
		return err
	}
	fv.Set(v)
	return nil
}

func (f *Field) structValue(target any) (reflect.Value, error) {
	if target == nil {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrTargetRequired, f)
	}
	rv := reflect.ValueOf(target)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, fmt.Errorf("%w: %s", ErrTargetRequired, f)
		}
		rv = rv.Elem()
	}
	if rv.Type() != f.owner {
		return reflect.Value{}, fmt.Errorf("%w: %s on %T", ErrTargetMismatch, f, target)
	}
	return rv, nil
}

// String returns Owner::Name.
func (f *Field) String() string {
	return typeName(f.owner) + "::" + f.f.Name
}

// Method is a method of a method set.
type Method struct {
	entity
	goMember
	p     *Provider
	owner reflect.Type
	recv  reflect.Type
	m     reflect.Method
}

// Ensure Method implements apis.Method.
var _ apis.Method = (*Method)(nil)

func (p *Provider) methodOf(owner, recv reflect.Type, m reflect.Method) *Method {
	return &Method{entity: newEntity("method", typeKey(owner)+"::"+m.Name), p: p, owner: owner, recv: recv, m: m}
}

// Equal reports whether other is the same method of the same receiver type.
func (m *Method) Equal(other apis.Entity) bool {
	o, ok := other.(*Method)
	return ok && o.owner == m.owner && o.m.Name == m.m.Name
}

// Identity accessors of a method, declared by its receiver type.
func (m *Method) Name() (string, bool)             { return m.m.Name, true }
func (m *Method) DeclaringType() (apis.Type, bool) { return m.p.typeOf(m.owner), true }
func (m *Method) ReflectedType() (apis.Type, bool) { return m.p.typeOf(m.owner), true }
func (m *Method) Module() (string, bool)           { return m.owner.PkgPath(), m.owner.PkgPath() != "" }

// Parameters excludes the receiver.
func (m *Method) Parameters() ([]apis.Parameter, bool) {
	return newParameters(m.p, m, typeKey(m.owner)+"::"+m.m.Name, m.in()), true
}

func (m *Method) in() []reflect.Type {
	ft := m.m.Type
	first := 1
	if m.recv.Kind() == reflect.Interface {
		first = 0
	}
	out := make([]reflect.Type, 0, ft.NumIn()-first)
	for i := first; i < ft.NumIn(); i++ {
		out = append(out, ft.In(i))
	}
	return out
}

// Methods always take a receiver. Only interface methods are abstract, and
// reflect lists exported methods only.
func (m *Method) IsStatic() bool   { return false }
func (m *Method) IsAbstract() bool { return m.recv.Kind() == reflect.Interface }
func (m *Method) IsPublic() bool   { return true }

// ReturnType is the first result, absent for functions without results.
func (m *Method) ReturnType() (apis.Type, bool) {
	if m.m.Type.NumOut() == 0 {
		return nil, false
	}
	return m.p.typeOf(m.m.Type.Out(0)), true
}

// BaseDefinition is m itself: Go has no overriding.
func (m *Method) BaseDefinition() (apis.Method, bool) { return m, true }

// Invoke calls the method on target. Values of the owner type are copied
// into a fresh pointer so pointer-receiver methods can run; their writes
// do not reach the caller's value.
func (m *Method) Invoke(target any, args []any) (any, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: %s", ErrTargetRequired, m)
	}
	rv := reflect.ValueOf(target)
	if rv.Type() == m.owner && m.recv.Kind() != reflect.Interface {
		ptr := reflect.New(m.owner)
		ptr.Elem().Set(rv)
		rv = ptr
	}
	if !rv.Type().AssignableTo(m.recv) {
		return nil, fmt.Errorf("%w: %s on %T", ErrTargetMismatch, m, target)
	}
	return call(rv.MethodByName(m.m.Name), args)
}

// String returns Owner::Name.
func (m *Method) String() string {
	return typeName(m.owner) + "::" + m.m.Name
}

// Constructor is a registered constructor function. Its identity is the
// registration slot: closures of one function literal share a code pointer
// and a name, so neither can tell them apart.
type Constructor struct {
	entity
	goMember
	p     *Provider
	owner reflect.Type
	slot  int
	fn    reflect.Value
}

// Ensure Constructor implements apis.Constructor.
var _ apis.Constructor = (*Constructor)(nil)

func (p *Provider) constructorOf(owner reflect.Type, slot int, fn reflect.Value) *Constructor {
	return &Constructor{entity: newEntity("ctor", ctorKey(owner, slot)), p: p, owner: owner, slot: slot, fn: fn}
}

func ctorKey(owner reflect.Type, slot int) string {
	return typeKey(owner) + "#" + strconv.Itoa(slot)
}

func funcName(fn reflect.Value) string {
	if f := runtime.FuncForPC(fn.Pointer()); f != nil {
		return path.Base(f.Name())
	}
	return fn.Type().String()
}

// Equal reports whether other was registered in the same slot for the same
// type.
func (c *Constructor) Equal(other apis.Entity) bool {
	o, ok := other.(*Constructor)
	return ok && o.p == c.p && o.owner == c.owner && o.slot == c.slot
}

// Name is the function name, e.g. "demo.NewCounter".
func (c *Constructor) Name() (string, bool)             { return funcName(c.fn), true }
func (c *Constructor) DeclaringType() (apis.Type, bool) { return c.p.typeOf(c.owner), true }
func (c *Constructor) ReflectedType() (apis.Type, bool) { return c.p.typeOf(c.owner), true }
func (c *Constructor) Module() (string, bool)           { return c.owner.PkgPath(), c.owner.PkgPath() != "" }

// Parameters lists the arguments of the registered function.
func (c *Constructor) Parameters() ([]apis.Parameter, bool) {
	ft := c.fn.Type()
	in := make([]reflect.Type, ft.NumIn())
	for i := range in {
		in[i] = ft.In(i)
	}
	return newParameters(c.p, c, ctorKey(c.owner, c.slot), in), true
}

// Constructors are registered functions, so always public and concrete.
func (c *Constructor) IsStatic() bool   { return false }
func (c *Constructor) IsAbstract() bool { return false }
func (c *Constructor) IsPublic() bool   { return true }

// Invoke ignores target and calls the constructor.
func (c *Constructor) Invoke(_ any, args []any) (any, error) {
	return c.New(args)
}

// New calls the constructor function.
func (c *Constructor) New(args []any) (any, error) {
	return call(c.fn, args)
}

// String returns Owner::Func for the constructed type.
func (c *Constructor) String() string {
	return typeName(c.owner) + "::" + funcName(c.fn)
}

// call invokes fn with args converted to its parameter types. A trailing
// error result is returned as the error; the first other result, if any,
// as the value.
func call(fn reflect.Value, args []any) (any, error) {
	ft := fn.Type()
	n := ft.NumIn()
	if ft.IsVariadic() && len(args) < n-1 || !ft.IsVariadic() && len(args) != n {
		return nil, fmt.Errorf("%w: %v takes %d, got %d", ErrParameterCount, ft, n, len(args))
	}
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		want := ft.In(min(i, n-1))
		if ft.IsVariadic() && i >= n-1 {
			want = want.Elem()
		}
		v, err := argument(a, want)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i] = v
	}

	out := fn.Call(in)
	if k := len(out); k > 0 && ft.Out(k-1) == errorType {
		if err, _ := out[k-1].Interface().(error); err != nil {
			return nil, err
		}
		out = out[:k-1]
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}

// argument converts a to want; nil becomes the zero value.
func argument(a any, want reflect.Type) (reflect.Value, error) {
	if a == nil {
		return reflect.Zero(want), nil
	}
	v := reflect.ValueOf(a)
	switch {
	case v.Type().AssignableTo(want):
		return v, nil
	case v.Type().ConvertibleTo(want) && v.Kind() != reflect.String && want.Kind() != reflect.String:
		return v.Convert(want), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: %T is not %v", ErrArgumentType, a, want)
	}
}
