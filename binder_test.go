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
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-http/router/pattern"
)

func TestBuildBinderParamsOnly(t *testing.T) {
	b, err := buildBinder(func(id int64, name string) string {
		return name
	}, []pattern.Kind{pattern.Int, pattern.String})
	require.NoError(t, err)

	bp := BoundParams{Ints: []int64{7}, Strings: []string{"ada"}}
	resp := newResponse()
	b.invoke(&Request{}, resp, bp)
	assert.Equal(t, "ada", string(resp.Body))
}

func TestBuildBinderOrdinalsRepeatKind(t *testing.T) {
	var gotFirst, gotSecond int64
	b, err := buildBinder(func(a, c int64) string {
		gotFirst, gotSecond = a, c
		return ""
	}, []pattern.Kind{pattern.Int, pattern.Int})
	require.NoError(t, err)

	bp := BoundParams{Ints: []int64{10, 20}}
	b.invoke(&Request{}, newResponse(), bp)
	assert.Equal(t, int64(10), gotFirst)
	assert.Equal(t, int64(20), gotSecond)
}

func TestBuildBinderRequestAndResponseForm(t *testing.T) {
	b, err := buildBinder(func(req *Request, resp *Response) {
		resp.Status = http.StatusAccepted
	}, nil)
	require.NoError(t, err)

	resp := newResponse()
	b.invoke(&Request{}, resp, BoundParams{})
	assert.Equal(t, http.StatusAccepted, resp.Status)
}

func TestBuildBinderIntReturnSetsStatus(t *testing.T) {
	b, err := buildBinder(func() int { return http.StatusCreated }, nil)
	require.NoError(t, err)

	resp := newResponse()
	b.invoke(&Request{}, resp, BoundParams{})
	assert.Equal(t, http.StatusCreated, resp.Status)
}

func TestBuildBinderResponseReturnUsedDirectly(t *testing.T) {
	b, err := buildBinder(func() *Response {
		return &Response{Status: http.StatusConflict, Header: make(http.Header)}
	}, nil)
	require.NoError(t, err)

	resp := newResponse()
	b.invoke(&Request{}, resp, BoundParams{})
	assert.Equal(t, http.StatusConflict, resp.Status)
}

func TestBuildBinderArityMismatch(t *testing.T) {
	_, err := buildBinder(func(a int64) string { return "" }, []pattern.Kind{pattern.Int, pattern.String})
	assert.ErrorIs(t, err, ErrHandlerArityMismatch)
}

func TestBuildBinderWrongKindType(t *testing.T) {
	_, err := buildBinder(func(a string) string { return "" }, []pattern.Kind{pattern.Int})
	assert.ErrorIs(t, err, ErrHandlerArityMismatch)
}

func TestBuildBinderResponseFormMustReturnNothing(t *testing.T) {
	_, err := buildBinder(func(resp *Response) string { return "x" }, nil)
	assert.ErrorIs(t, err, ErrUnsupportedHandlerSignature)
}

func TestBuildBinderNilHandler(t *testing.T) {
	_, err := buildBinder(nil, nil)
	assert.ErrorIs(t, err, ErrHandlerMissing)
}
