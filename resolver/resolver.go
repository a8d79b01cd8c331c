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

// Package resolver dispatches an abstractly typed member to the constructor
// of its concrete kind.
package resolver

import (
	"errors"
	"fmt"

	"dirpx.dev/facade/apis"
	"dirpx.dev/facade/faults"
	"dirpx.dev/facade/kind"
)

// ErrIncompleteTable is returned by Validate when a member kind has no
// constructor.
var ErrIncompleteTable = errors.New("facade(resolver): incomplete dispatch table")

// Table holds one constructor per member kind. F is the common result type,
// usually the facade's member interface.
type Table[F any] struct {
	Constructor func(apis.Constructor) F
	Method      func(apis.Method) F
	Property    func(apis.Property) F
	Field       func(apis.Field) F
	Type        func(apis.Type) F
}

// Validate reports a missing constructor.
func (t *Table[F]) Validate() error {
	for _, k := range kind.Members {
		if !t.has(k) {
			return fmt.Errorf("%w: no constructor for %s", ErrIncompleteTable, k)
		}
	}
	return nil
}

func (t *Table[F]) has(k kind.Kind) bool {
	switch k {
	case kind.Constructor:
		return t.Constructor != nil
	case kind.Method:
		return t.Method != nil
	case kind.Property:
		return t.Property != nil
	case kind.Field:
		return t.Field != nil
	case kind.Type:
		return t.Type != nil
	default:
		return false
	}
}

// Resolve classifies m with kind.Of and calls the matching constructor.
// Members outside the known set fail with a *faults.ConversionError before
// anything is constructed.
func (t *Table[F]) Resolve(m apis.Member) (F, error) {
	var zero F
	switch k := kind.Of(m); k {
	case kind.Constructor:
		return t.Constructor(m.(apis.Constructor)), nil
	case kind.Method:
		return t.Method(m.(apis.Method)), nil
	case kind.Property:
		return t.Property(m.(apis.Property)), nil
	case kind.Field:
		return t.Field(m.(apis.Field)), nil
	case kind.Type:
		return t.Type(m.(apis.Type)), nil
	case kind.Unknown:
		return zero, faults.Unconvertible(m)
	default:
		// kind.Of never yields non-member kinds.
		return zero, fmt.Errorf("%w: unexpected kind %s", faults.ErrUnsupportedConversion, k)
	}
}
