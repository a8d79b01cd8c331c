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

// Provider is the entry point of a reflection source.
//
// Lookup failures (not found, invalid argument, malformed input, access
// denied) are provider-defined errors. The facade layer returns them to its
// callers untouched.
type Provider interface {
	// LookupType finds a type by its full name.
	LookupType(name string) (Type, error)
	// LookupAssembly finds an assembly by name.
	LookupAssembly(name string) (AssemblyName, error)
	// Assemblies enumerates the loaded assemblies in load order.
	Assemblies() []AssemblyName
	// Types enumerates the types defined by asm in definition order.
	Types(asm AssemblyName) ([]Type, error)
}
