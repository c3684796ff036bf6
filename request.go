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
	"crypto/tls"
	"net/http"
)

// Request is the parsed request the core dispatches on. It carries
// nothing the core doesn't need: the HTTP parser, socket layer and TLS
// termination that produced it live outside this package.
type Request struct {
	Method Method
	Path   string
	Header http.Header
	Host   string

	// TLS is non-nil when the ServeHTTP adapter observed a TLS
	// connection; used only to pick the redirect scheme.
	TLS *tls.ConnectionState

	// Raw is the underlying *http.Request when the router was reached
	// through ServeHTTP. It is nil when Handle is called directly with a
	// hand-built Request, and is never read by the routing core itself —
	// it exists purely so a WebSocket upgrade handoff can reach the
	// connection.
	Raw *http.Request
}
