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

// BoundParams holds the typed values extracted during a single trie
// match, partitioned by kind and kept in the order the matcher
// encountered them along the winning path. String and Path parameters
// share the Strings slice: a <path> token cannot be told apart from a
// <str> token once it reaches a Go handler parameter of type string, so
// both are addressed the same way — by (kind, ordinal_within_kind).
//
// A BoundParams value is built fresh per request on the calling
// goroutine and never shared across requests or goroutines.
type BoundParams struct {
	Ints    []int64
	Uints   []uint64
	Doubles []float64
	Strings []string
}

func (b *BoundParams) pushInt(v int64) int { b.Ints = append(b.Ints, v); return len(b.Ints) - 1 }
func (b *BoundParams) pushUint(v uint64) int { b.Uints = append(b.Uints, v); return len(b.Uints) - 1 }
func (b *BoundParams) pushDouble(v float64) int { b.Doubles = append(b.Doubles, v); return len(b.Doubles) - 1 }
func (b *BoundParams) pushString(v string) int { b.Strings = append(b.Strings, v); return len(b.Strings) - 1 }

func (b *BoundParams) popInt()    { b.Ints = b.Ints[:len(b.Ints)-1] }
func (b *BoundParams) popUint()   { b.Uints = b.Uints[:len(b.Uints)-1] }
func (b *BoundParams) popDouble() { b.Doubles = b.Doubles[:len(b.Doubles)-1] }
func (b *BoundParams) popString() { b.Strings = b.Strings[:len(b.Strings)-1] }

// clone returns a deep copy, taken only at the moment a new best (lowest
// rule id) complete match is found during the trie's DFS; cheap because
// matches are rare relative to the branches explored.
func (b BoundParams) clone() BoundParams {
	var out BoundParams
	if len(b.Ints) > 0 {
		out.Ints = append([]int64(nil), b.Ints...)
	}
	if len(b.Uints) > 0 {
		out.Uints = append([]uint64(nil), b.Uints...)
	}
	if len(b.Doubles) > 0 {
		out.Doubles = append([]float64(nil), b.Doubles...)
	}
	if len(b.Strings) > 0 {
		out.Strings = append([]string(nil), b.Strings...)
	}
	return out
}

// Int returns the ordinal-th Int parameter (0-based, in pattern order).
func (b BoundParams) Int(ordinal int) int64 { return b.Ints[ordinal] }

// Uint returns the ordinal-th Uint parameter.
func (b BoundParams) Uint(ordinal int) uint64 { return b.Uints[ordinal] }

// Double returns the ordinal-th Double parameter.
func (b BoundParams) Double(ordinal int) float64 { return b.Doubles[ordinal] }

// String returns the ordinal-th String (or Path) parameter.
func (b BoundParams) String(ordinal int) string { return b.Strings[ordinal] }
