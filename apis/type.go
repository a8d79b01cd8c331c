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

// Type is a type definition. Types are members so that nested types can be
// enumerated next to fields and methods; top-level types report no
// declaring type.
type Type interface {
	Member

	FullName() (string, bool)
	Namespace() (string, bool)
	AssemblyName() (AssemblyName, bool)
	BaseType() (Type, bool)
	// ElementType is the element of array, pointer, slice, channel and map
	// types.
	ElementType() (Type, bool)
	Interfaces() ([]Type, bool)

	IsInterface() bool
	IsValueType() bool
	IsGeneric() bool
	IsAssignableFrom(other Type) bool

	Fields(flags BindingFlags) ([]Field, bool)
	Methods(flags BindingFlags) ([]Method, bool)
	Constructors(flags BindingFlags) ([]Constructor, bool)
	Properties(flags BindingFlags) ([]Property, bool)
	NestedTypes(flags BindingFlags) ([]Type, bool)
	Members(flags BindingFlags) ([]Member, bool)

	Field(name string, flags BindingFlags) (Field, bool)
	NestedType(name string, flags BindingFlags) (Type, bool)
	// Method finds a method by name. A nil binder selects the provider's
	// default binder; nil types matches any signature.
	Method(name string, flags BindingFlags, binder Binder, types []Type) (Method, bool)
	// Constructor finds a constructor by signature. A nil binder selects the
	// provider's default binder.
	Constructor(flags BindingFlags, binder Binder, types []Type) (Constructor, bool)
	// Property finds a property by name. A nil binder selects the provider's
	// default binder; a nil returnType matches any property type.
	Property(name string, flags BindingFlags, binder Binder, returnType Type, types []Type) (Property, bool)
}
