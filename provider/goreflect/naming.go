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

package goreflect

import (
	"errors"
	"path"
	"reflect"
	"strings"
	"sync"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("goreflect: nil reflect.Type provided")
	// ErrNotNamed indicates that a type, after unwrapping containers, has no
	// name (anonymous struct, func, interface{}).
	ErrNotNamed = errors.New("goreflect: type has no name")
)

// maxUnwrap bounds container unwrapping in normalize.
const maxUnwrap = 8

// normalize unwraps containers and returns the nearest named inner type.
//
// Unwrapping policy:
//   - ptr/slice/array/chan -> Elem()
//   - map[K]V: the element if named, else the key if named, else keep
//     unwrapping the element
//   - default: t if named, ErrNotNamed otherwise
func normalize(t reflect.Type) (reflect.Type, error) {
	if t == nil {
		return nil, ErrNilType
	}
	for i := 0; t != nil && i < maxUnwrap; i++ {
		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
			t = t.Elem()
		case reflect.Map:
			if et := t.Elem(); et.Name() != "" {
				return et, nil
			}
			if kt := t.Key(); kt.Name() != "" {
				return kt, nil
			}
			t = t.Elem()
		default:
			if t.Name() != "" {
				return t, nil
			}
			return nil, ErrNotNamed
		}
	}
	if t != nil && t.Name() != "" {
		return t, nil
	}
	return nil, ErrNotNamed
}

// fullNames memoizes typeName by type.
var fullNames sync.Map // key: reflect.Type, val: string

// typeName returns "pkg.Type" for named types, with generic instantiation
// parameters stripped, the bare name for predeclared types and the Go
// syntax for unnamed ones ("[]pkg.T").
func typeName(t reflect.Type) string {
	if v, ok := fullNames.Load(t); ok {
		return v.(string)
	}
	var name string
	switch {
	case t.Name() == "":
		name = t.String()
	case t.PkgPath() == "":
		name = t.Name()
	default:
		name = path.Base(t.PkgPath()) + "." + stripTypeParams(t.Name())
	}
	fullNames.Store(t, name)
	return name
}

// stripTypeParams removes a generic instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
