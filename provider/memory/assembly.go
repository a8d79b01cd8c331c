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
	"encoding/hex"
	"fmt"

	"dirpx.dev/facade/apis"
)

// Assembly is an assembly definition and its identity.
type Assembly struct {
	entity
	p       *Provider
	name    string
	version string
	culture string
	token   []byte
	types   []*Type
}

// Ensure Assembly implements apis.AssemblyName.
var _ apis.AssemblyName = (*Assembly)(nil)

// SetVersion sets the assembly version ("1.2.0.0").
func (a *Assembly) SetVersion(v string) *Assembly {
	a.version = v
	return a
}

// SetCulture sets the culture name. The default is the invariant culture "".
func (a *Assembly) SetCulture(c string) *Assembly {
	a.culture = c
	return a
}

// SetPublicKeyToken sets the public key token.
func (a *Assembly) SetPublicKeyToken(token []byte) *Assembly {
	a.token = append([]byte(nil), token...)
	return a
}

// Hide makes the named accessors report absence.
func (a *Assembly) Hide(caps ...string) *Assembly {
	a.hide(caps)
	return a
}

// Type defines a top-level type, or returns the existing one.
func (a *Assembly) Type(namespace, name string) *Type {
	full := name
	if namespace != "" {
		full = namespace + "." + name
	}
	if t, ok := a.p.types[full]; ok {
		return t
	}
	t := newType(a, nil, namespace, name)
	a.types = append(a.types, t)
	a.p.register(t)
	return t
}

// Equal reports whether other is the same assembly.
func (a *Assembly) Equal(other apis.Entity) bool {
	return sameID(a, other)
}

// Name returns the simple name.
func (a *Assembly) Name() (string, bool) {
	if a.absent(CapName) {
		return "", false
	}
	return a.name, true
}

// FullName returns the display name, e.g.
// "core, Version=1.0.0, Culture=neutral, PublicKeyToken=null".
func (a *Assembly) FullName() (string, bool) {
	if a.absent(CapFullName) {
		return "", false
	}
	version := a.version
	if version == "" {
		version = "0.0.0.0"
	}
	culture := a.culture
	if culture == "" {
		culture = "neutral"
	}
	token := "null"
	if len(a.token) > 0 {
		token = hex.EncodeToString(a.token)
	}
	return fmt.Sprintf("%s, Version=%s, Culture=%s, PublicKeyToken=%s", a.name, version, culture, token), true
}

// Version returns the version; absent when none was set.
func (a *Assembly) Version() (string, bool) {
	if a.absent(CapVersion) || a.version == "" {
		return "", false
	}
	return a.version, true
}

// CultureName returns the culture; "" is the invariant culture.
func (a *Assembly) CultureName() (string, bool) {
	if a.absent(CapCultureName) {
		return "", false
	}
	return a.culture, true
}

// PublicKeyToken returns the token; absent for unsigned assemblies.
func (a *Assembly) PublicKeyToken() ([]byte, bool) {
	if a.absent(CapPublicKeyToken) || a.token == nil {
		return nil, false
	}
	return append([]byte(nil), a.token...), true
}

// String returns the assembly display name.
func (a *Assembly) String() string {
	return a.name
}
