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

package memory

import (
	"slices"
	"sync"

	"dirpx.dev/facade/apis"
)

// Object is an instance of a memory type. Instance field values live in the
// object, keyed by field name.
type Object struct {
	typ *Type

	mu     sync.RWMutex
	values map[string]any
}

// NewObject returns an object of t with every instance field, inherited
// ones included, set to its initial value.
func NewObject(t *Type) *Object {
	o := &Object{typ: t, values: make(map[string]any)}
	for cur := t; cur != nil; cur = cur.base {
		for _, f := range cur.fields {
			if f.static {
				continue
			}
			if _, ok := o.values[f.name]; !ok {
				o.values[f.name] = f.initial
			}
		}
	}
	return o
}

// Type returns the object's type.
func (o *Object) Type() apis.Type {
	return o.typ
}

// Get returns the value of the named field.
func (o *Object) Get(name string) any {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.values[name]
}

// Set stores the value of the named field.
func (o *Object) Set(name string, v any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.values[name] = v
}

// Fields returns the field names in sorted order.
func (o *Object) Fields() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	names := make([]string, 0, len(o.values))
	for n := range o.values {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
