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

import "strings"

// BindingFlags filters member lookups and enumerations.
type BindingFlags uint32

const (
	// Instance includes instance members.
	Instance BindingFlags = 1 << iota
	// Static includes static members.
	Static
	// Public includes public members.
	Public
	// NonPublic includes non-public members.
	NonPublic
	// DeclaredOnly excludes inherited members.
	DeclaredOnly
	// IgnoreCase makes name lookups case-insensitive.
	IgnoreCase
)

// DefaultLookup is the filter used when a caller does not pass one:
// public instance and static members, inherited ones included.
const DefaultLookup = Instance | Static | Public

// Has reports whether all bits of f are set.
func (b BindingFlags) Has(f BindingFlags) bool {
	return b&f == f
}

// String renders the set flags joined by "|".
func (b BindingFlags) String() string {
	if b == 0 {
		return "None"
	}
	names := []struct {
		f BindingFlags
		n string
	}{
		{Instance, "Instance"},
		{Static, "Static"},
		{Public, "Public"},
		{NonPublic, "NonPublic"},
		{DeclaredOnly, "DeclaredOnly"},
		{IgnoreCase, "IgnoreCase"},
	}
	parts := make([]string, 0, len(names))
	for _, n := range names {
		if b.Has(n.f) {
			parts = append(parts, n.n)
		}
	}
	return strings.Join(parts, "|")
}

// Binder selects one overload among candidates that share a name.
// Providers fall back to their own default binder when given nil.
type Binder interface {
	SelectMethod(flags BindingFlags, candidates []MethodBase, types []Type) (MethodBase, bool)
}
