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

// Package faults defines the two failure conditions raised by the facade
// layer itself.
//
// Anything else a caller sees is a provider error, returned verbatim. The
// split lets callers tell "the provider gave no value where the contract
// promises one" and "the provider grew a kind the facade does not model"
// apart from ordinary lookup failures:
//
//	var ce *faults.CapabilityError
//	switch {
//	case errors.As(err, &ce):
//		// ce.Capability names the accessor, ce.Entity the element.
//	case errors.Is(err, faults.ErrUnsupportedConversion):
//		// unknown member kind
//	default:
//		// provider error
//	}
package faults

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedCapability is matched by every *CapabilityError.
	ErrUnsupportedCapability = errors.New("facade: unsupported capability")
	// ErrUnsupportedConversion is matched by every *ConversionError.
	ErrUnsupportedConversion = errors.New("facade: unsupported conversion")
)

// Capability names one accessor of one entity kind, e.g.
// Capability{Kind: "Field", Name: "RawConstantValue"}.
type Capability struct {
	Kind string
	Name string
}

// String returns Kind.Name.
func (c Capability) String() string {
	return c.Kind + "." + c.Name
}

// CapabilityError reports that the provider returned an absent value for an
// accessor the facade contract promises to be present.
type CapabilityError struct {
	Capability Capability
	// Entity is a human-readable label of the element, best effort.
	Entity string
}

// Error implements error.
func (e *CapabilityError) Error() string {
	if e.Entity == "" {
		return fmt.Sprintf("facade: %s is not supported", e.Capability)
	}
	return fmt.Sprintf("facade: %s is not supported for %s", e.Capability, e.Entity)
}

// Is makes errors.Is(err, ErrUnsupportedCapability) hold.
func (e *CapabilityError) Is(target error) bool {
	return target == ErrUnsupportedCapability
}

// ConversionError reports an underlying member whose concrete kind is
// outside the closed set the resolver knows.
type ConversionError struct {
	// Origin is the Go type of the rejected underlying entity.
	Origin string
}

// Error implements error.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("facade: cannot convert member of type %s", e.Origin)
}

// Is makes errors.Is(err, ErrUnsupportedConversion) hold.
func (e *ConversionError) Is(target error) bool {
	return target == ErrUnsupportedConversion
}

// Unsupported builds the *CapabilityError for c on entity.
func Unsupported(c Capability, entity string) error {
	return &CapabilityError{Capability: c, Entity: entity}
}

// Unconvertible builds a *ConversionError for origin.
func Unconvertible(origin any) error {
	return &ConversionError{Origin: fmt.Sprintf("%T", origin)}
}
