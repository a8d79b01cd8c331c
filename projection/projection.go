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

// Package projection implements the non-null projection rule: the single
// transformation every facade accessor applies to a provider result.
//
// A provider result is a (value, ok) pair. Projection turns ok == false into
// a *faults.CapabilityError naming the accessor, and passes present values
// through, optionally wrapping them (for example into a cached facade).
// Collections keep their order and stay distinguishable from absence: a
// present empty collection projects to a non-nil empty slice.
//
// Wrapped values are usually provider entities. A nil interface reported as
// present, or found inside a present collection, is absence as well: it
// never reaches wrap.
package projection

import (
	"iter"
	"slices"

	"dirpx.dev/facade/faults"
)

// Present returns v when ok, or a capability error for c otherwise.
func Present[T any](v T, ok bool, c faults.Capability, entity string) (T, error) {
	if !ok {
		var zero T
		return zero, faults.Unsupported(c, entity)
	}
	return v, nil
}

// Map is Present followed by wrap on the present value.
func Map[T, R any](v T, ok bool, c faults.Capability, entity string, wrap func(T) R) (R, error) {
	if !ok || isNil(v) {
		var zero R
		return zero, faults.Unsupported(c, entity)
	}
	return wrap(v), nil
}

// MapErr is Map for wrap functions that can fail (resolver dispatch).
// Errors from wrap are returned as they are.
func MapErr[T, R any](v T, ok bool, c faults.Capability, entity string, wrap func(T) (R, error)) (R, error) {
	if !ok || isNil(v) {
		var zero R
		return zero, faults.Unsupported(c, entity)
	}
	return wrap(v)
}

// Slice projects a collection: absent fails, present maps every element in
// order. The result is never nil on success.
func Slice[T, R any](vs []T, ok bool, c faults.Capability, entity string, wrap func(T) R) ([]R, error) {
	if !ok || slices.ContainsFunc(vs, isNil[T]) {
		return nil, faults.Unsupported(c, entity)
	}
	out := make([]R, len(vs))
	for i, v := range vs {
		out[i] = wrap(v)
	}
	return out, nil
}

// SliceErr is Slice for wrap functions that can fail. The first failing
// element aborts the projection and no partial result is returned.
func SliceErr[T, R any](vs []T, ok bool, c faults.Capability, entity string, wrap func(T) (R, error)) ([]R, error) {
	if !ok || slices.ContainsFunc(vs, isNil[T]) {
		return nil, faults.Unsupported(c, entity)
	}
	out := make([]R, len(vs))
	for i, v := range vs {
		r, err := wrap(v)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// isNil reports whether v holds a nil interface. Non-interface values are
// never nil here.
func isNil[T any](v T) bool {
	return any(v) == nil
}

// Seq lazily maps src through wrap, preserving order. The result can be
// ranged over again exactly when src can.
func Seq[T, R any](src iter.Seq[T], wrap func(T) R) iter.Seq[R] {
	return func(yield func(R) bool) {
		if src == nil {
			return
		}
		for v := range src {
			if !yield(wrap(v)) {
				return
			}
		}
	}
}

// Seq2 is Seq for wrap functions that can fail. Each element is yielded with
// its own error; iteration continues until the consumer stops.
func Seq2[T, R any](src iter.Seq[T], wrap func(T) (R, error)) iter.Seq2[R, error] {
	return func(yield func(R, error) bool) {
		if src == nil {
			return
		}
		for v := range src {
			if !yield(wrap(v)) {
				return
			}
		}
	}
}
