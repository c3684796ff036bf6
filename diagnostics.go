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

// DiagnosticKind classifies the outcome a DiagnosticEvent reports.
type DiagnosticKind string

const (
	DiagnosticMatch            DiagnosticKind = "match"
	DiagnosticRedirect         DiagnosticKind = "redirect"
	DiagnosticNotFound         DiagnosticKind = "not_found"
	DiagnosticMethodNotAllowed DiagnosticKind = "method_not_allowed"
	DiagnosticPanic            DiagnosticKind = "panic"
	DiagnosticUpgradeRefused   DiagnosticKind = "upgrade_refused"
)

// DiagnosticEvent is one per-request outcome. The router never logs on
// its own — logging is an external collaborator — it only constructs
// this value and hands it to whatever DiagnosticHandler the embedding
// application registered, typically one backed by log/slog.
type DiagnosticEvent struct {
	Method   Method
	Path     string
	RuleName string
	Status   int
	Kind     DiagnosticKind

	// Fields carries kind-specific structured context that doesn't
	// deserve a named field of its own — currently just the recovered
	// value for DiagnosticPanic.
	Fields map[string]any
}

// DiagnosticHandler receives one DiagnosticEvent per dispatched request.
// Implementations must not block meaningfully; the router calls this
// synchronously on the dispatching goroutine.
type DiagnosticHandler interface {
	HandleDiagnostic(DiagnosticEvent)
}

// ObservabilityRecorder is the metrics/tracing seam. It is deliberately
// narrower than DiagnosticHandler and shaped around counters a recorder
// backend (Prometheus, OpenTelemetry) can increment or a span it can
// close, rather than a single free-form event.
type ObservabilityRecorder interface {
	RecordMatch(method Method, pattern string, status int)
	RecordRedirect(method Method, path string)
	RecordNotFound(method Method, path string)
	RecordMethodNotAllowed(method Method, path string)
	RecordPanic(method Method, path string)
}

func (rt *Router) emitDiagnostic(ev DiagnosticEvent) {
	if rt.diagnostics != nil {
		rt.diagnostics.HandleDiagnostic(ev)
	}
}

func (rt *Router) recordMatch(req *Request, rule Rule, resp *Response) {
	rt.emitDiagnostic(DiagnosticEvent{Method: req.Method, Path: req.Path, RuleName: rule.Name(), Status: resp.Status, Kind: DiagnosticMatch})
	if rt.observability != nil {
		rt.observability.RecordMatch(req.Method, rule.Pattern(), resp.Status)
	}
}

func (rt *Router) recordRedirect(req *Request, resp *Response) {
	rt.emitDiagnostic(DiagnosticEvent{Method: req.Method, Path: req.Path, Status: resp.Status, Kind: DiagnosticRedirect})
	if rt.observability != nil {
		rt.observability.RecordRedirect(req.Method, req.Path)
	}
}

func (rt *Router) recordNotFound(req *Request, resp *Response) {
	rt.emitDiagnostic(DiagnosticEvent{Method: req.Method, Path: req.Path, Status: resp.Status, Kind: DiagnosticNotFound})
	if rt.observability != nil {
		rt.observability.RecordNotFound(req.Method, req.Path)
	}
}

func (rt *Router) recordMethodNotAllowed(req *Request, resp *Response) {
	rt.emitDiagnostic(DiagnosticEvent{Method: req.Method, Path: req.Path, Status: resp.Status, Kind: DiagnosticMethodNotAllowed})
	if rt.observability != nil {
		rt.observability.RecordMethodNotAllowed(req.Method, req.Path)
	}
}

func (rt *Router) recordPanic(req *Request, rule Rule, recovered interface{}) {
	name := ""
	if rule != nil {
		name = rule.Name()
	}
	rt.emitDiagnostic(DiagnosticEvent{
		Method:   req.Method,
		Path:     req.Path,
		RuleName: name,
		Status:   500,
		Kind:     DiagnosticPanic,
		Fields:   map[string]any{"recovered": recovered},
	})
	if rt.observability != nil {
		rt.observability.RecordPanic(req.Method, req.Path)
	}
}
