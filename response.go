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

import "net/http"

// Response is the response object handlers populate. The ServeHTTP
// adapter is the only place it gets flushed onto an actual
// http.ResponseWriter.
type Response struct {
	Status int
	Header http.Header
	Body   []byte

	// HeadResponse marks that the request was originally HEAD: the
	// adapter must suppress the body it otherwise writes, but every
	// header the GET dispatch would have produced still applies.
	HeadResponse bool

	// ManualLengthHeader suppresses automatic Content-Length injection,
	// set on OPTIONS responses which carry no body but aren't empty by
	// omission.
	ManualLengthHeader bool
}

func newResponse() *Response {
	return &Response{Status: http.StatusOK, Header: make(http.Header)}
}

// resetResponse restores a pooled Response to its zero-request state in
// place, reusing its Header map and Body backing array rather than
// reallocating them.
func resetResponse(r *Response) {
	r.Status = http.StatusOK
	if r.Header == nil {
		r.Header = make(http.Header)
	} else {
		for k := range r.Header {
			delete(r.Header, k)
		}
	}
	r.Body = r.Body[:0]
	r.HeadResponse = false
	r.ManualLengthHeader = false
}

// WriteString appends s to the response body and returns the byte count,
// mirroring io.StringWriter for handlers that build a body incrementally.
func (r *Response) WriteString(s string) (int, error) {
	r.Body = append(r.Body, s...)
	return len(s), nil
}

// Write appends p to the response body, satisfying io.Writer.
func (r *Response) Write(p []byte) (int, error) {
	r.Body = append(r.Body, p...)
	return len(p), nil
}
