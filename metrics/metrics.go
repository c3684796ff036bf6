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

// Package metrics is an optional Prometheus-backed implementation of
// router.ObservabilityRecorder. It is never imported by the core
// package; an embedding application opts in with
// router.WithObservabilityRecorder(metrics.New(...)).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	router "github.com/lattice-http/router"
)

// Recorder counts matches, redirects, not-founds, method-not-alloweds
// and panics by HTTP method, the same shape as the teacher's own
// Prometheus-backed observability hook.
type Recorder struct {
	matches          *prometheus.CounterVec
	redirects        *prometheus.CounterVec
	notFound         *prometheus.CounterVec
	methodNotAllowed *prometheus.CounterVec
	panics           *prometheus.CounterVec
}

// New builds a Recorder and registers its collectors with reg. Passing
// prometheus.DefaultRegisterer matches the common case.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		matches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lattice_router_matches_total",
			Help: "Requests dispatched to a matched rule, by method and status.",
		}, []string{"method", "pattern", "status"}),
		redirects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lattice_router_redirects_total",
			Help: "Trailing-slash redirects issued, by method.",
		}, []string{"method"}),
		notFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lattice_router_not_found_total",
			Help: "Requests with no matching rule and no catch-all, by method.",
		}, []string{"method"}),
		methodNotAllowed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lattice_router_method_not_allowed_total",
			Help: "Requests matching a different method's rule, by method.",
		}, []string{"method"}),
		panics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lattice_router_handler_panics_total",
			Help: "Handler invocations that panicked, by method.",
		}, []string{"method"}),
	}

	reg.MustRegister(r.matches, r.redirects, r.notFound, r.methodNotAllowed, r.panics)
	return r
}

func (r *Recorder) RecordMatch(method router.Method, pattern string, status int) {
	r.matches.WithLabelValues(method.String(), pattern, statusLabel(status)).Inc()
}

func (r *Recorder) RecordRedirect(method router.Method, _ string) {
	r.redirects.WithLabelValues(method.String()).Inc()
}

func (r *Recorder) RecordNotFound(method router.Method, _ string) {
	r.notFound.WithLabelValues(method.String()).Inc()
}

func (r *Recorder) RecordMethodNotAllowed(method router.Method, _ string) {
	r.methodNotAllowed.WithLabelValues(method.String()).Inc()
}

func (r *Recorder) RecordPanic(method router.Method, _ string) {
	r.panics.WithLabelValues(method.String()).Inc()
}

func statusLabel(status int) string {
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
