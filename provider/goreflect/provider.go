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

// Package goreflect serves Go types through the apis provider contracts.
//
// Go's type system maps onto the contracts as follows:
//
//   - a package is an assembly, named by its import path;
//   - a named type is a type, named "pkg.Type" (generic instantiation
//     parameters stripped);
//   - struct fields are instance fields, exported ones public;
//   - the method set of *T is the method list of T;
//   - functions registered with RegisterConstructor are constructors of the
//     type they return.
//
// Everything Go does not have is reported absent: declaring types,
// metadata tokens, parameter names, constants, default values. Properties
// and nested types are present and empty.
//
// Entities are handed out fresh on every call and compare by the reflect
// type (or function) they describe.
package goreflect

import (
	"errors"
	"fmt"
	"reflect"
	"runtime/debug"
	"slices"
	"strings"
	"sync"

	"dirpx.dev/facade/apis"
)

var (
	// ErrNotFound is returned by lookups that match nothing.
	ErrNotFound = errors.New("goreflect: not found")
	// ErrInvalidArgument is returned for malformed input.
	ErrInvalidArgument = errors.New("goreflect: invalid argument")
	// ErrNotConstructor is returned by RegisterConstructor for values that
	// are not functions returning a named type.
	ErrNotConstructor = errors.New("goreflect: not a constructor function")
)

// Provider serves registered Go types. It is safe for concurrent use.
type Provider struct {
	mu     sync.RWMutex
	byName map[string]reflect.Type
	order  []reflect.Type
	ctors  map[reflect.Type][]reflect.Value
	build  *debug.BuildInfo
}

// Ensure Provider implements apis.Provider.
var _ apis.Provider = (*Provider)(nil)

// New returns an empty provider. Module versions are taken from the
// running binary's build info when available.
func New() *Provider {
	p := &Provider{
		byName: make(map[string]reflect.Type),
		ctors:  make(map[reflect.Type][]reflect.Value),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		p.build = bi
	}
	return p
}

// Register registers the named types of values, unwrapping pointers,
// slices, arrays, channels and maps: Register(&T{}) registers T. Use a nil
// pointer to register an interface type: Register((*io.Reader)(nil)).
func (p *Provider) Register(values ...any) error {
	ts := make([]reflect.Type, 0, len(values))
	for _, v := range values {
		if v == nil {
			return fmt.Errorf("%w: nil value", ErrInvalidArgument)
		}
		ts = append(ts, reflect.TypeOf(v))
	}
	return p.RegisterType(ts...)
}

// RegisterType is Register for reflect types.
func (p *Provider) RegisterType(ts ...reflect.Type) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range ts {
		if _, err := p.add(t); err != nil {
			return err
		}
	}
	return nil
}

// add registers the named type behind t. Callers hold mu.
func (p *Provider) add(t reflect.Type) (reflect.Type, error) {
	named, err := normalize(t)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", err, t)
	}
	name := typeName(named)
	if _, ok := p.byName[name]; !ok {
		p.byName[name] = named
		p.order = append(p.order, named)
	}
	return named, nil
}

// RegisterConstructor registers fn as a constructor of the named type it
// returns. fn returns the value, optionally followed by an error:
//
//	func NewCounter(start int) *Counter
//	func Open(path string) (*Store, error)
//
// The declaring type is registered too.
func (p *Provider) RegisterConstructor(fns ...any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, fn := range fns {
		v := reflect.ValueOf(fn)
		if v.Kind() != reflect.Func || v.IsNil() {
			return fmt.Errorf("%w: %T", ErrNotConstructor, fn)
		}
		ft := v.Type()
		if ft.NumOut() == 0 || ft.NumOut() > 2 || ft.NumOut() == 2 && ft.Out(1) != errorType {
			return fmt.Errorf("%w: %v", ErrNotConstructor, ft)
		}
		named, err := p.add(ft.Out(0))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrNotConstructor, err)
		}
		p.ctors[named] = append(p.ctors[named], v)
	}
	return nil
}

// LookupType finds a registered type by its "pkg.Type" name.
func (p *Provider) LookupType(name string) (apis.Type, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty type name", ErrInvalidArgument)
	}
	p.mu.RLock()
	t, ok := p.byName[name]
	p.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: type %q", ErrNotFound, name)
	}
	return p.typeOf(t), nil
}

// LookupAssembly finds the package of a registered type by import path.
func (p *Provider) LookupAssembly(name string) (apis.AssemblyName, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty package path", ErrInvalidArgument)
	}
	for _, a := range p.Assemblies() {
		if a.(*Package).path == name {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: package %q", ErrNotFound, name)
}

// Assemblies enumerates the packages of registered types in registration
// order.
func (p *Provider) Assemblies() []apis.AssemblyName {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []apis.AssemblyName
	seen := map[string]bool{}
	for _, t := range p.order {
		if pkg := t.PkgPath(); pkg != "" && !seen[pkg] {
			seen[pkg] = true
			out = append(out, p.pkg(pkg))
		}
	}
	return out
}

// Types enumerates the registered types of asm in registration order.
func (p *Provider) Types(asm apis.AssemblyName) ([]apis.Type, error) {
	pkg, ok := asm.(*Package)
	if !ok || pkg == nil {
		return nil, fmt.Errorf("%w: %T is not a Go package", ErrInvalidArgument, asm)
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := []apis.Type{}
	for _, t := range p.order {
		if t.PkgPath() == pkg.path {
			out = append(out, p.typeOf(t))
		}
	}
	return out, nil
}

// TypeOf returns the entity of an arbitrary Go type, registered or not.
func (p *Provider) TypeOf(t reflect.Type) (apis.Type, error) {
	if t == nil {
		return nil, ErrNilType
	}
	return p.typeOf(t), nil
}

func (p *Provider) registered() []reflect.Type {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.order)
}

func (p *Provider) constructors(t reflect.Type) []reflect.Value {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.ctors[t])
}

// pkg builds the package entity for path, versioned from build info.
func (p *Provider) pkg(path string) *Package {
	a := &Package{entity: newEntity("package", path), path: path}
	if p.build == nil {
		return a
	}
	within := func(mod string) bool {
		return mod != "" && (path == mod || strings.HasPrefix(path, mod+"/"))
	}
	if within(p.build.Main.Path) {
		a.version = p.build.Main.Version
	}
	for _, dep := range p.build.Deps {
		if within(dep.Path) {
			a.version = dep.Version
		}
	}
	if a.version == "(devel)" {
		a.version = ""
	}
	return a
}
