// Copyright 2025 The Lattice Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMethodFromStringKnownAndUnknown(t *testing.T) {
	m, ok := methodFromString("GET")
	assert.True(t, ok)
	assert.Equal(t, MethodGet, m)

	_, ok = methodFromString("BREW")
	assert.False(t, ok)
}

func TestDefaultMethodsIsGetOnly(t *testing.T) {
	assert.True(t, DefaultMethods.Has(MethodGet))
	assert.False(t, DefaultMethods.Has(MethodPost))
}

func TestMethodsSetBuildsBitmask(t *testing.T) {
	s := Methods(MethodGet, MethodPost)
	assert.True(t, s.Has(MethodGet))
	assert.True(t, s.Has(MethodPost))
	assert.False(t, s.Has(MethodDelete))
	assert.Equal(t, []Method{MethodGet, MethodPost}, s.list())
}
