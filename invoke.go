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

// Instance is the target or result of an invocation. The zero Instance
// means "no instance": it is the target of static members and the result
// of void methods.
type Instance struct {
	v any
}

// On returns the Instance wrapping v. On(nil) is the zero Instance.
func On(v any) Instance {
	return Instance{v: v}
}

// IsZero reports whether i is "no instance".
func (i Instance) IsZero() bool {
	return i.v == nil
}

// Value returns the wrapped value, nil for the zero Instance.
func (i Instance) Value() any {
	return i.v
}

// target is the provider's form of i: nil for the zero Instance.
func (i Instance) target() any {
	return i.v
}

// instanceOf is the facade form of a provider result: a nil (void) result
// becomes the zero Instance.
func instanceOf(res any) Instance {
	if res == nil {
		return Instance{}
	}
	return Instance{v: res}
}
