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
	"fmt"
	"reflect"

	"github.com/lattice-http/router/pattern"
)

var (
	requestPtrType  = reflect.TypeOf((*Request)(nil))
	responsePtrType = reflect.TypeOf((*Response)(nil))
	int64Type       = reflect.TypeOf(int64(0))
	uint64Type      = reflect.TypeOf(uint64(0))
	float64Type     = reflect.TypeOf(float64(0))
	stringType      = reflect.TypeOf("")
)

// ordinalSpec is a precomputed (kind, ordinal) address into BoundParams,
// one per handler parameter position that isn't *Request/*Response.
type ordinalSpec struct {
	kind    pattern.Kind
	ordinal int
}

// binder adapts a handler of heterogeneous, reflect-discovered signature
// into the uniform invocation the router performs on every request. It
// is built once, via reflect, at Validate() time; invoke never touches
// reflect's type machinery again, only Value.Call.
type binder struct {
	fn       reflect.Value
	hasReq   bool
	hasResp  bool
	params   []ordinalSpec
	hasOut   bool
	outKind  reflect.Kind
	outIsPtr bool
}

// buildBinder inspects handler's signature once and matches it against
// kinds, the static parameter-kind list the rule expects (the pattern's
// own tokens for a dynamic rule, or nil for a typed/catch-all rule, whose
// handler must then take no parameters beyond *Request/*Response).
//
// The accepted shapes are exactly spec.md §4.2's four: (params...),
// (*Request, params...), (*Response, params...), (*Request, *Response,
// params...). The last two forms must return nothing; the first two may
// return nothing, a string (body), an int (status code), or a *Response
// (used directly).
func buildBinder(handler interface{}, kinds []pattern.Kind) (*binder, error) {
	if handler == nil {
		return nil, ErrHandlerMissing
	}

	fn := reflect.ValueOf(handler)
	t := fn.Type()
	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: handler is %s, not a function", ErrUnsupportedHandlerSignature, t.Kind())
	}

	b := &binder{fn: fn}

	idx := 0
	if t.NumIn() > idx && t.In(idx) == requestPtrType {
		b.hasReq = true
		idx++
	}
	if t.NumIn() > idx && t.In(idx) == responsePtrType {
		b.hasResp = true
		idx++
	}

	remaining := t.NumIn() - idx
	if remaining != len(kinds) {
		return nil, fmt.Errorf("%w: handler takes %d parameter(s), pattern expects %d", ErrHandlerArityMismatch, remaining, len(kinds))
	}

	counts := make(map[pattern.Kind]int, 4)
	for i, k := range kinds {
		paramType := t.In(idx + i)
		if want := nativeType(k); paramType != want {
			return nil, fmt.Errorf("%w: parameter %d is %s, want %s for <%s>", ErrHandlerArityMismatch, i, paramType, want, k)
		}
		ord := counts[k]
		counts[k]++
		b.params = append(b.params, ordinalSpec{kind: k, ordinal: ord})
	}

	if b.hasResp {
		if t.NumOut() != 0 {
			return nil, fmt.Errorf("%w: handler taking *Response must return nothing", ErrUnsupportedHandlerSignature)
		}
	} else {
		switch t.NumOut() {
		case 0:
		case 1:
			out := t.Out(0)
			b.hasOut = true
			b.outKind = out.Kind()
			b.outIsPtr = out == responsePtrType
			if !b.outIsPtr && out.Kind() != reflect.String && !isIntKind(out.Kind()) {
				return nil, fmt.Errorf("%w: unsupported return type %s", ErrUnsupportedHandlerSignature, out)
			}
		default:
			return nil, fmt.Errorf("%w: handler has %d return values, want 0 or 1", ErrUnsupportedHandlerSignature, t.NumOut())
		}
	}

	return b, nil
}

func nativeType(k pattern.Kind) reflect.Type {
	switch k {
	case pattern.Int:
		return int64Type
	case pattern.Uint:
		return uint64Type
	case pattern.Double:
		return float64Type
	default: // String, Path
		return stringType
	}
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

// invoke calls the bound handler with req/resp and the values addressed
// out of bp, then folds any return value into resp.
func (b *binder) invoke(req *Request, resp *Response, bp BoundParams) {
	args := make([]reflect.Value, 0, 2+len(b.params))
	if b.hasReq {
		args = append(args, reflect.ValueOf(req))
	}
	if b.hasResp {
		args = append(args, reflect.ValueOf(resp))
	}
	for _, p := range b.params {
		switch p.kind {
		case pattern.Int:
			args = append(args, reflect.ValueOf(bp.Int(p.ordinal)))
		case pattern.Uint:
			args = append(args, reflect.ValueOf(bp.Uint(p.ordinal)))
		case pattern.Double:
			args = append(args, reflect.ValueOf(bp.Double(p.ordinal)))
		default:
			args = append(args, reflect.ValueOf(bp.String(p.ordinal)))
		}
	}

	out := b.fn.Call(args)
	if b.hasResp || !b.hasOut || len(out) == 0 {
		return
	}

	result := out[0]
	switch {
	case b.outIsPtr:
		if !result.IsNil() {
			*resp = *result.Interface().(*Response)
		}
	case result.Kind() == reflect.String:
		resp.Body = append(resp.Body[:0], result.String()...)
	case isIntKind(result.Kind()):
		resp.Status = int(result.Int())
	}
}
