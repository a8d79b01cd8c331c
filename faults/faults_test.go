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

package faults_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/facade/faults"
)

func TestCapabilityError(t *testing.T) {
	err := faults.Unsupported(faults.Capability{Kind: "Field", Name: "RawConstantValue"}, "Counter._count")

	assert.ErrorIs(t, err, faults.ErrUnsupportedCapability)
	assert.NotErrorIs(t, err, faults.ErrUnsupportedConversion)
	assert.Equal(t, "facade: Field.RawConstantValue is not supported for Counter._count", err.Error())

	var ce *faults.CapabilityError
	require.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &ce)
	assert.Equal(t, "RawConstantValue", ce.Capability.Name)
	assert.Equal(t, "Field", ce.Capability.Kind)
}

func TestCapabilityError_NoEntity(t *testing.T) {
	err := faults.Unsupported(faults.Capability{Kind: "Type", Name: "BaseType"}, "")
	assert.Equal(t, "facade: Type.BaseType is not supported", err.Error())
}

type oddMember struct{}

func TestConversionError(t *testing.T) {
	err := faults.Unconvertible(oddMember{})

	assert.ErrorIs(t, err, faults.ErrUnsupportedConversion)
	assert.False(t, errors.Is(err, faults.ErrUnsupportedCapability))
	assert.Contains(t, err.Error(), "faults_test.oddMember")
}
