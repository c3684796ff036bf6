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

package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeLiteralOnly(t *testing.T) {
	tokens, err := Tokenize("/users")
	require.NoError(t, err)
	assert.Equal(t, []Token{{Literal: "/users", Kind: None}}, tokens)
}

func TestTokenizeMixed(t *testing.T) {
	tokens, err := Tokenize("/users/<int>/posts/<path>")
	require.NoError(t, err)
	assert.Equal(t, []Token{
		{Literal: "/users/", Kind: None},
		{Kind: Int},
		{Literal: "/posts/", Kind: None},
		{Kind: Path},
	}, tokens)
}

func TestTokenizeAliases(t *testing.T) {
	for _, name := range []string{"<double>", "<float>"} {
		kinds, err := Kinds(name)
		require.NoError(t, err)
		assert.Equal(t, []Kind{Double}, kinds)
	}
	for _, name := range []string{"<str>", "<string>"} {
		kinds, err := Kinds(name)
		require.NoError(t, err)
		assert.Equal(t, []Kind{String}, kinds)
	}
}

func TestTokenizeUnrecognized(t *testing.T) {
	_, err := Tokenize("/users/<bogus>")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnrecognizedToken)
}

func TestTokenizeUnterminated(t *testing.T) {
	_, err := Tokenize("/users/<int")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnrecognizedToken)
}

func TestKindsOrder(t *testing.T) {
	kinds, err := Kinds("/a/<int>/b/<string>/c/<int>")
	require.NoError(t, err)
	assert.Equal(t, []Kind{Int, String, Int}, kinds)
}
