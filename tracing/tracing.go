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

// Package tracing is an optional OpenTelemetry-backed implementation of
// router.ObservabilityRecorder. Because match/redirect/not-found/panic
// outcomes are reported after the fact rather than wrapping the
// dispatch call, this recorder emits one short-lived span per outcome
// instead of a single request-spanning trace — the seam the core
// exposes is an event callback, not a context-carrying middleware
// chain (which spec.md explicitly rules out).
package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	router "github.com/lattice-http/router"
)

// Recorder emits a span per recorded outcome via the given Tracer.
type Recorder struct {
	tracer trace.Tracer
}

// New builds a Recorder using the named tracer from provider.
func New(provider trace.TracerProvider, instrumentationName string) *Recorder {
	return &Recorder{tracer: provider.Tracer(instrumentationName)}
}

func (r *Recorder) span(name string, attrs ...attribute.KeyValue) {
	_, span := r.tracer.Start(context.Background(), name, trace.WithAttributes(attrs...))
	span.End()
}

func (r *Recorder) RecordMatch(method router.Method, pattern string, status int) {
	span := r.start("router.match", attribute.String("http.method", method.String()), attribute.String("http.route", pattern))
	defer span.End()
	span.SetAttributes(attribute.Int("http.status_code", status))
	if status >= 500 {
		span.SetStatus(codes.Error, "handler returned server error")
	}
}

func (r *Recorder) RecordRedirect(method router.Method, path string) {
	r.span("router.redirect", attribute.String("http.method", method.String()), attribute.String("http.target", path))
}

func (r *Recorder) RecordNotFound(method router.Method, path string) {
	r.span("router.not_found", attribute.String("http.method", method.String()), attribute.String("http.target", path))
}

func (r *Recorder) RecordMethodNotAllowed(method router.Method, path string) {
	r.span("router.method_not_allowed", attribute.String("http.method", method.String()), attribute.String("http.target", path))
}

func (r *Recorder) RecordPanic(method router.Method, path string) {
	span := r.start("router.panic", attribute.String("http.method", method.String()), attribute.String("http.target", path))
	defer span.End()
	span.SetStatus(codes.Error, "handler panicked")
}

func (r *Recorder) start(name string, attrs ...attribute.KeyValue) trace.Span {
	_, span := r.tracer.Start(context.Background(), name, trace.WithAttributes(attrs...))
	return span
}
