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

package apis

// Member is the abstract base of every type member, including nested types.
//
// A provider hands out Members wherever the concrete kind is not statically
// known (enumerations, parameter owners). The concrete kind is recovered by
// asserting to Constructor, Method, Property, Field or Type, in that order.
type Member interface {
	Entity

	Name() (string, bool)
	DeclaringType() (Type, bool)
	ReflectedType() (Type, bool)
	Module() (string, bool)
	MetadataToken() (int, bool)
	// Attributes returns the names of custom attributes applied to the member.
	Attributes() ([]string, bool)
}

// MethodBase is the shared surface of methods and constructors.
type MethodBase interface {
	Member

	Parameters() ([]Parameter, bool)
	IsStatic() bool
	IsAbstract() bool
	IsPublic() bool

	// Invoke calls the member. A nil target denotes a static call and a nil
	// result denotes a void return.
	Invoke(target any, args []any) (any, error)
}

// Method is a named method.
type Method interface {
	MethodBase

	// ReturnType reports the declared return type. Void methods report the
	// provider's void type, not absence.
	ReturnType() (Type, bool)
	// BaseDefinition returns the method this one overrides, or itself when
	// it overrides nothing.
	BaseDefinition() (Method, bool)
}

// Constructor is a type initializer.
type Constructor interface {
	MethodBase

	// New creates a new instance of the declaring type.
	New(args []any) (any, error)
}

// Field is a data member.
type Field interface {
	Member

	FieldType() (Type, bool)
	// RawConstantValue returns the compile-time constant bound to the field.
	RawConstantValue() (any, bool)
	IsStatic() bool
	IsInitOnly() bool
	IsLiteral() bool

	// Value reads the field. target is nil for static fields.
	Value(target any) (any, error)
	// SetValue writes the field. target is nil for static fields.
	SetValue(target any, value any) error
}

// Property is an accessor pair exposed as a member.
type Property interface {
	Member

	PropertyType() (Type, bool)
	GetMethod() (Method, bool)
	SetMethod() (Method, bool)
	CanRead() bool
	CanWrite() bool
	IndexParameters() ([]Parameter, bool)

	// Value reads the property. target is nil for static properties.
	Value(target any, index []any) (any, error)
	// SetValue writes the property. target is nil for static properties.
	SetValue(target any, value any, index []any) error
}
