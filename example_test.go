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

package router_test

import (
	"fmt"
	"net/http"

	router "github.com/lattice-http/router"
)

func Example() {
	rt := router.New()
	rt.Get("/users/<int>", func(id int64) string {
		return fmt.Sprintf("user %d", id)
	})

	resp := rt.Handle(&router.Request{
		Method: router.MethodGet,
		Path:   "/users/42",
		Header: make(http.Header),
	})

	fmt.Println(resp.Status, string(resp.Body))
	// Output: 200 user 42
}
