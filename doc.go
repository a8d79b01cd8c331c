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

// Package facade presents the entities of a reflection provider through a
// total, non-null contract.
//
// Providers (see package apis) may report absence for almost anything: a
// field with no declared type, a method with no parameter list, a type with
// no namespace. Every accessor of a facade either returns a populated value
// or a named error. Absence becomes a *faults.CapabilityError; an underlying
// member of a kind the facade does not model becomes a
// *faults.ConversionError; everything else is a provider error returned
// as it is.
//
// # Universe
//
// Facades are built by a Universe, never directly. A Universe owns one
// identity cache per reusable kind (Type, Field, Method, Constructor,
// Property), so asking twice for the facade of the same underlying entity
// returns the same *Type, *Field, ... instance:
//
//	u := facade.New(config.WithLogger(log))
//	t, err := u.LookupType(provider, "demo.Counter")
//	count, err := t.Field("_count", facade.WithFlags(apis.Instance|apis.NonPublic))
//	ft, err := count.FieldType() // the cached facade of System.Int32
//
// AssemblyName and Parameter are leaves: they are built on every request
// and compared through their origin only.
//
// The process-wide Default universe backs the package-level helpers. Hosts
// that load and unload provider contexts should scope a Universe to each
// context, or call Reset, since caches never evict on their own.
//
// # Equality
//
// Equal and Hash delegate to the origin for every kind. Two facades built
// by different universes over the same underlying entity are Equal, even
// though they are distinct instances.
//
// # Invocation
//
// The "no target instance" argument of static members is the zero Instance,
// and void invocations return the zero Instance. Lookups take options;
// omitting WithBinder lets the provider use its default binder.
//
// # Concurrency
//
// Facades are immutable and safe for concurrent use. Cache insertion is
// serialised per cache; everything else is as thread-safe as the provider.
package facade
