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

// Package otelmetrics is an optional OpenTelemetry-metrics-backed
// implementation of router.ObservabilityRecorder, for embedders who
// export to an OTLP collector rather than scrape Prometheus. It counts
// the same five outcomes as router/metrics, just through
// metric.Int64Counter instruments instead of prometheus.CounterVec.
package otelmetrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	router "github.com/lattice-http/router"
)

// Recorder counts matches, redirects, not-founds, method-not-alloweds
// and panics by HTTP method, via instruments drawn from a single Meter.
type Recorder struct {
	matches          metric.Int64Counter
	redirects        metric.Int64Counter
	notFound         metric.Int64Counter
	methodNotAllowed metric.Int64Counter
	panics           metric.Int64Counter
}

// New builds a Recorder using the named meter from provider. It panics
// if instrument creation fails, which only happens on a malformed name.
func New(provider metric.MeterProvider, instrumentationName string) *Recorder {
	meter := provider.Meter(instrumentationName)

	mustCounter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			panic(fmt.Sprintf("otelmetrics: %s: %v", name, err))
		}
		return c
	}

	return &Recorder{
		matches:          mustCounter("lattice.router.matches", "Requests dispatched to a matched rule, by method, pattern and status."),
		redirects:        mustCounter("lattice.router.redirects", "Trailing-slash redirects issued, by method."),
		notFound:         mustCounter("lattice.router.not_found", "Requests with no matching rule and no catch-all, by method."),
		methodNotAllowed: mustCounter("lattice.router.method_not_allowed", "Requests matching a different method's rule, by method."),
		panics:           mustCounter("lattice.router.handler_panics", "Handler invocations that panicked, by method."),
	}
}

func (r *Recorder) RecordMatch(method router.Method, pattern string, status int) {
	r.matches.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("http.method", method.String()),
		attribute.String("http.route", pattern),
		attribute.String("http.status_class", statusClass(status)),
	))
}

func (r *Recorder) RecordRedirect(method router.Method, _ string) {
	r.redirects.Add(context.Background(), 1, metric.WithAttributes(attribute.String("http.method", method.String())))
}

func (r *Recorder) RecordNotFound(method router.Method, _ string) {
	r.notFound.Add(context.Background(), 1, metric.WithAttributes(attribute.String("http.method", method.String())))
}

func (r *Recorder) RecordMethodNotAllowed(method router.Method, _ string) {
	r.methodNotAllowed.Add(context.Background(), 1, metric.WithAttributes(attribute.String("http.method", method.String())))
}

func (r *Recorder) RecordPanic(method router.Method, _ string) {
	r.panics.Add(context.Background(), 1, metric.WithAttributes(attribute.String("http.method", method.String())))
}

func statusClass(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
