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

package facade

import "dirpx.dev/facade/apis"

// LookupOption tunes a member lookup or enumeration.
type LookupOption func(*lookup)

type lookup struct {
	flags      apis.BindingFlags
	binder     apis.Binder
	types      []apis.Type
	returnType apis.Type
}

func newLookup(opts []LookupOption) lookup {
	l := lookup{flags: apis.DefaultLookup}
	for _, opt := range opts {
		if opt != nil {
			opt(&l)
		}
	}
	return l
}

// WithFlags sets the binding flags. The default is apis.DefaultLookup.
func WithFlags(flags apis.BindingFlags) LookupOption {
	return func(l *lookup) {
		l.flags = flags
	}
}

// WithBinder selects among overloads with b. Without it, or with a nil b,
// the provider applies its own default binder.
func WithBinder(b apis.Binder) LookupOption {
	return func(l *lookup) {
		l.binder = b
	}
}

// WithTypes restricts a lookup to the given parameter types, in order.
// WithTypes() with no types selects parameterless overloads; omitting the
// option leaves the signature unconstrained.
func WithTypes(types ...*Type) LookupOption {
	return func(l *lookup) {
		l.types = make([]apis.Type, len(types))
		for i, t := range types {
			l.types[i] = t.typ
		}
	}
}

// WithReturnType restricts a property lookup to the given property type.
func WithReturnType(t *Type) LookupOption {
	return func(l *lookup) {
		if t != nil {
			l.returnType = t.typ
		}
	}
}
