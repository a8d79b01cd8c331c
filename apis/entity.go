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

// Package apis declares the contracts a reflection provider must satisfy to
// be wrapped by the facade layer.
//
// Every accessor that may legitimately have no value reports it Go-style, as
// a (value, ok) pair. ok == false is the provider's "absent" marker. The
// facade layer turns each absence into a named error; providers never need
// to invent placeholder values.
//
// Collections follow the same shape: ([]T, true) is a present collection
// (possibly empty), (nil, false) means the provider could not produce one.
package apis

// Entity is the identity contract shared by every underlying entity.
//
// Equal and Hash define provider identity. Implementations must keep them
// consistent: a.Equal(b) implies a.Hash() == b.Hash(). The facade layer keys
// its caches on this pair and never on Go interface equality.
type Entity interface {
	// Equal reports whether other denotes the same program element.
	Equal(other Entity) bool
	// Hash returns a hash of the entity identity.
	Hash() uint64
}

// AssemblyName describes the identity of a loaded assembly (a package,
// module or library, depending on the provider).
type AssemblyName interface {
	Entity

	Name() (string, bool)
	FullName() (string, bool)
	Version() (string, bool)
	CultureName() (string, bool)
	PublicKeyToken() ([]byte, bool)
}

// Parameter is a formal parameter of a method, constructor or indexed
// property.
type Parameter interface {
	Entity

	Name() (string, bool)
	ParameterType() (Type, bool)
	// Position is the zero-based position in the owner's signature.
	Position() int
	DefaultValue() (any, bool)
	Member() (Member, bool)
}
