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

// Package pattern tokenizes route patterns of the form used by the
// router core: literal path characters interleaved with typed parameter
// tokens such as <int> or <path>.
package pattern

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnrecognizedToken is returned by Tokenize when a pattern contains a
// "<...>" sequence that isn't one of the recognized parameter keywords,
// or that's never closed. The router package re-exports this as
// ErrUnknownToken for callers that don't otherwise import this package.
var ErrUnrecognizedToken = errors.New("unrecognized or malformed parameter token")

// Kind is the closed enumeration of parameter kinds a pattern token may
// carry. None marks a literal (non-parameter) token.
type Kind int

const (
	None Kind = iota
	Int
	Uint
	Double
	String
	Path
)

// String returns a human-readable name, used in error messages.
func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Uint:
		return "uint"
	case Double:
		return "float"
	case String:
		return "str"
	case Path:
		return "path"
	default:
		return "literal"
	}
}

// tokenNames maps the recognized token keywords to their kind. "double"
// is an alias of "float" and "string" is an alias of "str", per spec.
var tokenNames = map[string]Kind{
	"int":    Int,
	"uint":   Uint,
	"float":  Double,
	"double": Double,
	"str":    String,
	"string": String,
	"path":   Path,
}

// Token is one element of a tokenized pattern: either a run of literal
// characters (Kind == None, Literal non-empty) or a single parameter
// token (Kind != None, Literal empty).
type Token struct {
	Literal string
	Kind    Kind
}

// Tokenize splits pattern into an ordered sequence of literal runs and
// parameter tokens. Unlike the trie's own char-by-char insertion walk,
// this coalesces consecutive literal characters into one Token, which is
// what callers that only care about structure (the binder, dynamic-rule
// validation) want.
//
// Any "<...>" sequence that isn't one of the seven recognized keywords is
// rejected.
func Tokenize(p string) ([]Token, error) {
	var tokens []Token
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, Token{Literal: lit.String(), Kind: None})
			lit.Reset()
		}
	}

	i := 0
	for i < len(p) {
		if p[i] != '<' {
			lit.WriteByte(p[i])
			i++
			continue
		}

		end := strings.IndexByte(p[i:], '>')
		if end == -1 {
			return nil, fmt.Errorf("%w: pattern %q: unterminated parameter token at offset %d", ErrUnrecognizedToken, p, i)
		}
		name := p[i+1 : i+end]
		kind, ok := tokenNames[name]
		if !ok {
			return nil, fmt.Errorf("%w: pattern %q: unrecognized parameter token <%s>", ErrUnrecognizedToken, p, name)
		}
		flush()
		tokens = append(tokens, Token{Kind: kind})
		i += end + 1
	}
	flush()

	return tokens, nil
}

// Kinds returns just the ordered parameter-kind sequence of a pattern,
// skipping literal runs. Used to validate a dynamic rule's handler
// against its pattern, and to drive the typed binder's ordinal table.
func Kinds(p string) ([]Kind, error) {
	tokens, err := Tokenize(p)
	if err != nil {
		return nil, err
	}

	var kinds []Kind
	for _, t := range tokens {
		if t.Kind != None {
			kinds = append(kinds, t.Kind)
		}
	}

	return kinds, nil
}
