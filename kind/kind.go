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

// Package kind names the closed set of entity kinds the facade models.
package kind

import (
	"fmt"
	"strings"

	"dirpx.dev/facade/apis"
)

// Kind identifies the concrete kind of an entity.
//
// # Overview
//
// Kind is the tag of the sum type over underlying members. Every member a
// provider hands out as apis.Member classifies to exactly one Kind through
// Of. The member kinds are:
//
//   - Constructor apis.Constructor
//   - Method      apis.Method
//   - Property    apis.Property
//   - Field       apis.Field
//   - Type        apis.Type (nested or top-level)
//
// AssemblyName and Parameter are not members. They exist so that logs,
// metrics and error messages can label every facade kind with the same
// vocabulary.
//
// Unknown is the catch-all variant. A member that classifies as Unknown is
// a provider extension the facade does not model; resolvers MUST fail on it
// and MUST NOT degrade it to a base kind.
//
// # Contract
//
//   - The zero value is Unknown.
//   - Adding kinds is allowed, but existing values MUST NOT change their
//     meaning; String tokens are stable.
type Kind int

const (
	// Unknown is the catch-all variant for unmodelled members.
	Unknown Kind = iota
	// Constructor is a type initializer.
	Constructor
	// Method is a named method.
	Method
	// Property is an accessor pair.
	Property
	// Field is a data member.
	Field
	// Type is a type definition, nested or not.
	Type
	// AssemblyName is an assembly identity.
	AssemblyName
	// Parameter is a formal parameter.
	Parameter
)

// Members lists the member kinds in classification priority order.
var Members = []Kind{Constructor, Method, Property, Field, Type}

// Of classifies m.
//
// # Semantics
//
// Of tests m against each member kind in a fixed priority order:
// Constructor, Method, Property, Field, Type. The first match wins. The
// order matters because Go interfaces are structural: a provider value may
// satisfy more than one contract (a constructor is also a method base), and
// the more specific kind must be seen first.
//
// A nil m, or one satisfying none of the contracts, yields Unknown.
func Of(m apis.Member) Kind {
	switch m.(type) {
	case nil:
		return Unknown
	case apis.Constructor:
		return Constructor
	case apis.Method:
		return Method
	case apis.Property:
		return Property
	case apis.Field:
		return Field
	case apis.Type:
		return Type
	default:
		return Unknown
	}
}

// IsMember reports whether k is one of the member kinds.
func (k Kind) IsMember() bool {
	switch k {
	case Constructor, Method, Property, Field, Type:
		return true
	default:
		return false
	}
}

// String returns a human-readable representation of the Kind value.
//
// For unknown or out-of-range values, String returns "Unknown(<n>)" and
// never panics, so corrupted values can still be logged.
func (k Kind) String() string {
	switch k {
	case Unknown:
		return "Unknown"
	case Constructor:
		return "Constructor"
	case Method:
		return "Method"
	case Property:
		return "Property"
	case Field:
		return "Field"
	case Type:
		return "Type"
	case AssemblyName:
		return "AssemblyName"
	case Parameter:
		return "Parameter"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Parse parses a textual representation of a Kind.
//
// Matching is case-insensitive and ignores surrounding whitespace. "Unknown"
// is not accepted: the catch-all variant is never configured explicitly.
// On failure Parse returns Unknown and a non-nil error.
func Parse(s string) (Kind, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Unknown, fmt.Errorf("kind: empty kind")
	}

	switch strings.ToLower(trimmed) {
	case "constructor":
		return Constructor, nil
	case "method":
		return Method, nil
	case "property":
		return Property, nil
	case "field":
		return Field, nil
	case "type":
		return Type, nil
	case "assemblyname":
		return AssemblyName, nil
	case "parameter":
		return Parameter, nil
	default:
		return Unknown, fmt.Errorf("kind: unknown kind %q", s)
	}
}

// MustParse is like Parse but panics on invalid input.
// Use it for hard-coded values only.
func MustParse(s string) Kind {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

// MarshalText implements encoding.TextMarshaler.
// Unknown and out-of-range values are rejected rather than persisted.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case Constructor, Method, Property, Field, Type, AssemblyName, Parameter:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("kind: cannot marshal kind %d", int(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler with the same rules as
// Parse. On failure *k is left unchanged.
func (k *Kind) UnmarshalText(text []byte) error {
	value, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = value
	return nil
}
