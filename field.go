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

// Field is the facade of a data member.
type Field struct {
	member
	field apis.Field
}

// Origin returns the underlying field, or nil for a nil facade.
func (x *Field) Origin() apis.Entity {
	if x == nil {
		return nil
	}
	return x.field
}

var _ Member = (*Field)(nil)

// FieldType returns the declared type.
func (f *Field) FieldType() (*Type, error) {
	v, ok := f.field.FieldType()
	return projection.Map(v, ok, f.capability("FieldType"), label(f.origin), f.u.Type)
}

// RawConstantValue returns the literal bound to a constant field. Fields
// without one fail with a capability error.
func (f *Field) RawConstantValue() (any, error) {
	v, ok := f.field.RawConstantValue()
	return projection.Present(v, ok, f.capability("RawConstantValue"), label(f.origin))
}

// IsStatic reports whether the field belongs to the type rather than an instance.
func (f *Field) IsStatic() bool { return f.field.IsStatic() }

// IsInitOnly reports whether the field can only be set during construction.
func (f *Field) IsInitOnly() bool { return f.field.IsInitOnly() }

// IsLiteral reports whether the field is a compile-time constant.
func (f *Field) IsLiteral() bool { return f.field.IsLiteral() }

// Value reads the field of target, the zero Instance for static fields.
func (f *Field) Value(target Instance) (any, error) {
	return f.field.Value(target.target())
}

// SetValue writes the field of target, the zero Instance for static fields.
func (f *Field) SetValue(target Instance, value any) error {
	return f.field.SetValue(target.target(), value)
}
