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

// Package benchmarks compares this module's dispatch cost against a few
// other well-known Go routers, isolated in its own module (with a
// replace directive back to the parent) so gin/echo/chi never appear in
// the core module's dependency graph.
package benchmarks

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/chi/v5"
	"github.com/labstack/echo/v4"

	router "github.com/lattice-http/router"
)

func BenchmarkLatticeStaticRoute(b *testing.B) {
	rt := router.New()
	rt.Get("/users/list", func() string { return "ok" })
	require(b, rt.Validate())

	req := httptest.NewRequest(http.MethodGet, "/users/list", nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rt.ServeHTTP(httptest.NewRecorder(), req)
	}
}

func BenchmarkLatticeIntParam(b *testing.B) {
	rt := router.New()
	rt.Get("/users/<int>", func(id int64) string { return strconv.FormatInt(id, 10) })
	require(b, rt.Validate())

	req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rt.ServeHTTP(httptest.NewRecorder(), req)
	}
}

func BenchmarkGinIntParam(b *testing.B) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/users/:id", func(c *gin.Context) { c.String(http.StatusOK, c.Param("id")) })

	req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
}

func BenchmarkEchoIntParam(b *testing.B) {
	e := echo.New()
	e.GET("/users/:id", func(c echo.Context) error { return c.String(http.StatusOK, c.Param("id")) })

	req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.ServeHTTP(httptest.NewRecorder(), req)
	}
}

func BenchmarkChiIntParam(b *testing.B) {
	r := chi.NewRouter()
	r.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chi.URLParam(r, "id")))
	})

	req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
}

func require(b *testing.B, err error) {
	b.Helper()
	if err != nil {
		b.Fatal(err)
	}
}
