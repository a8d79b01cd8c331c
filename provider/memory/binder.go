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

import "dirpx.dev/facade/apis"

// DefaultBinder is used whenever a lookup receives a nil binder.
//
// With nil types it selects the only candidate and fails on ambiguity.
// Otherwise it selects the candidate whose parameter types equal types
// position by position.
var DefaultBinder apis.Binder = exactBinder{}

type exactBinder struct{}

// SelectMethod picks the candidate whose parameter types equal types. Nil
// types selects the only candidate, if there is exactly one.
func (exactBinder) SelectMethod(_ apis.BindingFlags, candidates []apis.MethodBase, types []apis.Type) (apis.MethodBase, bool) {
	if types == nil {
		if len(candidates) == 1 {
			return candidates[0], true
		}
		return nil, false
	}
	for _, c := range candidates {
		if signatureMatches(c, types) {
			return c, true
		}
	}
	return nil, false
}

func signatureMatches(m apis.MethodBase, types []apis.Type) bool {
	params, ok := m.Parameters()
	if !ok || len(params) != len(types) {
		return false
	}
	for i, p := range params {
		pt, ok := p.ParameterType()
		if !ok || types[i] == nil || !pt.Equal(types[i]) {
			return false
		}
	}
	return true
}
