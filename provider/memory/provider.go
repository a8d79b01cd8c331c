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

// Package memory is an in-memory reflection provider.
//
// A model is assembled with a fluent builder (or loaded from a YAML/JSON
// document) and then served through the apis contracts. Every accessor can
// be made to report absence with Hide, so every projection path of the
// facade layer can be exercised without a real metadata source:
//
//	p := memory.New()
//	core := p.Assembly("core").SetVersion("1.0.0")
//	i32 := core.Type("System", "Int32").MarkValueType()
//	counter := core.Type("demo", "Counter")
//	counter.DefineField("_count", i32).NonPublic()
//
// Members are invocable when bound to Go functions (Func, Init, DefineProperty accessors).
// Instances created by constructors are *Object values.
//
// The builder is not synchronized: finish the model before sharing the
// provider between goroutines. Reads are safe for concurrent use.
package memory

import (
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/facade/apis"
)

var (
	// ErrNotFound is returned by lookups that match nothing.
	ErrNotFound = errors.New("memory: not found")
	// ErrInvalidArgument is returned for malformed lookup input.
	ErrInvalidArgument = errors.New("memory: invalid argument")
	// ErrTargetRequired is returned when an instance member is used without a target.
	ErrTargetRequired = errors.New("memory: non-static member requires a target")
	// ErrTargetMismatch is returned when the target is not an instance of the declaring type.
	ErrTargetMismatch = errors.New("memory: target is not an instance of the declaring type")
	// ErrNotInvocable is returned when a member has no bound implementation.
	ErrNotInvocable = errors.New("memory: member has no implementation")
	// ErrParameterCount is returned when an invocation passes the wrong number of arguments.
	ErrParameterCount = errors.New("memory: parameter count mismatch")
)

// Provider serves an in-memory model.
type Provider struct {
	assemblies []*Assembly
	types      map[string]*Type
	tokens     int
}

// Ensure Provider implements apis.Provider.
var _ apis.Provider = (*Provider)(nil)

// New returns an empty provider.
func New() *Provider {
	return &Provider{types: make(map[string]*Type)}
}

// nextToken hands out metadata tokens in definition order.
func (p *Provider) nextToken() int {
	p.tokens++
	return 0x06000000 | p.tokens
}

// Assembly defines a new assembly, or returns the existing one with that name.
func (p *Provider) Assembly(name string) *Assembly {
	for _, a := range p.assemblies {
		if a.name == name {
			return a
		}
	}
	a := &Assembly{entity: newEntity("assembly", name), p: p, name: name}
	p.assemblies = append(p.assemblies, a)
	return a
}

// LookupType finds a type by its full name ("Namespace.Name", nested types
// as "Outer+Inner").
func (p *Provider) LookupType(name string) (apis.Type, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty type name", ErrInvalidArgument)
	}
	t, ok := p.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: type %q", ErrNotFound, name)
	}
	return t, nil
}

// LookupAssembly finds an assembly by simple name.
func (p *Provider) LookupAssembly(name string) (apis.AssemblyName, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty assembly name", ErrInvalidArgument)
	}
	for _, a := range p.assemblies {
		if a.name == name {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: assembly %q", ErrNotFound, name)
}

// Assemblies enumerates assemblies in definition order.
func (p *Provider) Assemblies() []apis.AssemblyName {
	out := make([]apis.AssemblyName, len(p.assemblies))
	for i, a := range p.assemblies {
		out[i] = a
	}
	return out
}

// Types enumerates the top-level and nested types of asm in definition order.
func (p *Provider) Types(asm apis.AssemblyName) ([]apis.Type, error) {
	if asm == nil {
		return nil, fmt.Errorf("%w: nil assembly", ErrInvalidArgument)
	}
	for _, a := range p.assemblies {
		if a.Equal(asm) {
			out := make([]apis.Type, len(a.types))
			for i, t := range a.types {
				out[i] = t
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: assembly %v", ErrNotFound, asm)
}

// register indexes t by full name. Redefinitions keep the first type.
func (p *Provider) register(t *Type) {
	if _, ok := p.types[t.fullName()]; !ok {
		p.types[t.fullName()] = t
	}
}
