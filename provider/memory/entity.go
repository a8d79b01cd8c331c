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
	"github.com/cespare/xxhash/v2"

	"dirpx.dev/facade/apis"
)

// Capability names accepted by Hide. Each makes the accessor of the same
// name report absence.
const (
	CapName             = "Name"
	CapDeclaringType    = "DeclaringType"
	CapReflectedType    = "ReflectedType"
	CapModule           = "Module"
	CapMetadataToken    = "MetadataToken"
	CapAttributes       = "Attributes"
	CapFullName         = "FullName"
	CapNamespace        = "Namespace"
	CapAssemblyName     = "AssemblyName"
	CapBaseType         = "BaseType"
	CapElementType      = "ElementType"
	CapInterfaces       = "Interfaces"
	CapFields           = "Fields"
	CapMethods          = "Methods"
	CapConstructors     = "Constructors"
	CapProperties       = "Properties"
	CapNestedTypes      = "NestedTypes"
	CapMembers          = "Members"
	CapFieldType        = "FieldType"
	CapParameters       = "Parameters"
	CapReturnType       = "ReturnType"
	CapBaseDefinition   = "BaseDefinition"
	CapPropertyType     = "PropertyType"
	CapIndexParameters  = "IndexParameters"
	CapParameterType    = "ParameterType"
	CapMember           = "Member"
	CapVersion          = "Version"
	CapCultureName      = "CultureName"
	CapPublicKeyToken   = "PublicKeyToken"
	CapRawConstantValue = "RawConstantValue"
	CapDefaultValue     = "DefaultValue"
)

// entity carries identity and the set of hidden accessors.
// Identity is structural: the id path of the element, not the pointer.
type entity struct {
	id     string
	hash   uint64
	hidden map[string]struct{}
}

func newEntity(kind, id string) entity {
	return entity{id: id, hash: xxhash.Sum64String(kind + ":" + id)}
}

// Hash returns the identity hash.
func (e *entity) Hash() uint64 {
	return e.hash
}

// ID returns the identity path, e.g. "demo.Counter::_count".
func (e *entity) ID() string {
	return e.id
}

func (e *entity) hide(caps []string) {
	if e.hidden == nil {
		e.hidden = make(map[string]struct{}, len(caps))
	}
	for _, c := range caps {
		e.hidden[c] = struct{}{}
	}
}

func (e *entity) absent(capability string) bool {
	_, ok := e.hidden[capability]
	return ok
}

// sameID is the Equal body shared by every entity kind. T is the concrete
// pointer type so that a field and a method with the same path never match.
func sameID[T interface{ ID() string }](self T, other apis.Entity) bool {
	o, ok := other.(T)
	return ok && o.ID() == self.ID()
}
