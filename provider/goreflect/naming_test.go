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
	"reflect"
	"runtime"
	"sync"
	"testing"
)

// Local test types.
type A struct{}
type G[T any] struct{}
type W[T any] struct{ V T }

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		want reflect.Type
	}{
		{"plain", reflect.TypeOf(A{}), reflect.TypeOf(A{})},
		{"ptr", reflect.TypeOf(&A{}), reflect.TypeOf(A{})},
		{"slice", reflect.TypeOf([]A{}), reflect.TypeOf(A{})},
		{"array", reflect.TypeOf([2]A{}), reflect.TypeOf(A{})},
		{"chan", reflect.TypeOf((chan A)(nil)), reflect.TypeOf(A{})},
		{"map prefers elem", reflect.TypeOf(map[string]A{}), reflect.TypeOf(A{})},
		{"map falls back to key", reflect.TypeOf(map[A][]int{}), reflect.TypeOf(A{})},
		{"builtin", reflect.TypeOf(0), reflect.TypeOf(0)},
		{"interface via nil pointer", reflect.TypeOf((*error)(nil)), errorType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalize(tc.typ)
			if err != nil {
				t.Fatalf("normalize(%v) returned error: %v", tc.typ, err)
			}
			if got != tc.want {
				t.Fatalf("normalize(%v) = %v, want %v", tc.typ, got, tc.want)
			}
		})
	}
}

func TestNormalize_Errors(t *testing.T) {
	if _, err := normalize(nil); !errors.Is(err, ErrNilType) {
		t.Fatalf("normalize(nil) error = %v, want ErrNilType", err)
	}
	for _, typ := range []reflect.Type{
		reflect.TypeOf(struct{}{}),
		reflect.TypeOf(func() {}),
		reflect.TypeOf([]struct{ X int }{}),
		reflect.TypeOf(map[struct{}][]func(){}),
	} {
		if _, err := normalize(typ); !errors.Is(err, ErrNotNamed) {
			t.Fatalf("normalize(%v) error = %v, want ErrNotNamed", typ, err)
		}
	}
}

func TestTypeName(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		want string
	}{
		{"named", reflect.TypeOf(A{}), "goreflect.A"},
		{"generic strips params", reflect.TypeOf(G[int]{}), "goreflect.G"},
		{"nested generic", reflect.TypeOf(W[G[int]]{}), "goreflect.W"},
		{"builtin", reflect.TypeOf(""), "string"},
		{"unnamed", reflect.TypeOf([]A{}), "[]goreflect.A"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := typeName(tc.typ); got != tc.want {
				t.Fatalf("typeName(%v) = %q, want %q", tc.typ, got, tc.want)
			}
		})
	}
}

func TestStripTypeParams(t *testing.T) {
	for in, want := range map[string]string{
		"T":                 "T",
		"T[int]":            "T",
		"Map[string,[]int]": "Map",
		"":                  "",
	} {
		if got := stripTypeParams(in); got != want {
			t.Fatalf("stripTypeParams(%q) = %q, want %q", in, got, want)
		}
	}
}

// TestTypeName_Concurrent hammers the memo with a small set of types.
func TestTypeName_Concurrent(t *testing.T) {
	types := []reflect.Type{
		reflect.TypeOf(A{}),
		reflect.TypeOf(G[int]{}),
		reflect.TypeOf(G[string]{}),
		reflect.TypeOf(W[A]{}),
	}
	want := []string{"goreflect.A", "goreflect.G", "goreflect.G", "goreflect.W"}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	errs := make(chan string, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				j := (i + w) % len(types)
				if got := typeName(types[j]); got != want[j] {
					errs <- got
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Fatalf("concurrent typeName returned %q", got)
	}
}
